/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package param

import (
	"context"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"dirpx.dev/dxparam/dxcore/errors"
	"dirpx.dev/dxparam/dxcore/naming"
)

// Once returns a function that builds the list on first call and returns the
// same list afterwards. Concurrent first calls build once. The returned
// function panics if build fails.
//
//	var nodeParams = param.Once(func() (*param.List[*Node], error) {
//	    return param.NewBuilder[*Node]().With(...).Build()
//	})
func Once[O any](build func() (*List[O], error)) func() *List[O] {
	values := sync.OnceValues(build)
	return func() *List[O] {
		l, err := values()
		if err != nil {
			panic(err)
		}
		return l
	}
}

// registryEntry is the slot of one owner type. The list is published once.
type registryEntry struct {
	once   sync.Once
	loaded atomic.Bool
	list   Descriptors
	err    error
}

// Registry memoizes one descriptor list per owner type. It is safe for
// concurrent use; each type's list is built or registered exactly once.
type Registry struct {
	entries sync.Map // reflect.Type -> *registryEntry
	logger  *slog.Logger
}

// NewRegistry returns an empty registry. A nil logger discards.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{logger: logger}
}

var defaultRegistry = NewRegistry(nil)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

func (r *Registry) entry(t reflect.Type) *registryEntry {
	if e, ok := r.entries.Load(t); ok {
		return e.(*registryEntry)
	}
	e, _ := r.entries.LoadOrStore(t, &registryEntry{})
	return e.(*registryEntry)
}

func (r *Registry) publish(e *registryEntry, t reflect.Type, l Descriptors) {
	e.list = l
	e.loaded.Store(true)
	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "descriptor list registered",
		slog.String("type", naming.Qualified(t)),
		slog.Int("count", len(l.Names())),
	)
}

// Register stores l as the list of O. Registering the same list again is a
// no-op; registering a different one, or registering after a failed build,
// fails with errors.DuplicateNameError.
func Register[O any](r *Registry, l *List[O]) error {
	if r == nil {
		return &errors.NullArgumentError{Position: 1, Name: "registry", Operation: "Register"}
	}
	if l == nil {
		return &errors.NullArgumentError{Position: 2, Name: "list", Operation: "Register"}
	}
	t := reflect.TypeFor[O]()
	e := r.entry(t)

	stored := false
	e.once.Do(func() {
		r.publish(e, t, l)
		stored = true
	})
	if stored {
		return nil
	}
	if e.err != nil || e.list != Descriptors(l) {
		return &errors.DuplicateNameError{Type: "Registry", Name: naming.Qualified(t)}
	}
	return nil
}

// LoadOrBuild returns the list of O, calling build if none is stored yet.
// build runs at most once per type; its error is kept and returned to every
// later caller until Reset.
func LoadOrBuild[O any](r *Registry, build func() (*List[O], error)) (*List[O], error) {
	if r == nil {
		return nil, &errors.NullArgumentError{Position: 1, Name: "registry", Operation: "LoadOrBuild"}
	}
	if build == nil {
		return nil, &errors.NullArgumentError{Position: 2, Name: "build", Operation: "LoadOrBuild"}
	}
	t := reflect.TypeFor[O]()
	e := r.entry(t)

	e.once.Do(func() {
		l, err := build()
		switch {
		case err != nil:
			e.err = err
		case l == nil:
			e.err = &errors.NullArgumentError{Position: 1, Name: "list", Operation: "LoadOrBuild"}
		default:
			r.publish(e, t, l)
		}
	})
	if e.err != nil {
		return nil, e.err
	}
	return e.list.(*List[O]), nil
}

// Lookup returns the list registered for t.
func (r *Registry) Lookup(t reflect.Type) (Descriptors, bool) {
	v, ok := r.entries.Load(t)
	if !ok {
		return nil, false
	}
	e := v.(*registryEntry)
	if !e.loaded.Load() {
		return nil, false
	}
	return e.list, true
}

// Entry describes one registered list.
type Entry struct {
	Type  reflect.Type
	Names []string
}

// Entries returns the registered lists sorted by qualified type name.
func (r *Registry) Entries() []Entry {
	var out []Entry
	r.entries.Range(func(k, v any) bool {
		e := v.(*registryEntry)
		if e.loaded.Load() {
			out = append(out, Entry{Type: k.(reflect.Type), Names: e.list.Names()})
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return naming.Qualified(out[i].Type) < naming.Qualified(out[j].Type)
	})
	return out
}

// Count returns the number of registered lists.
func (r *Registry) Count() int {
	n := 0
	r.entries.Range(func(_, v any) bool {
		if v.(*registryEntry).loaded.Load() {
			n++
		}
		return true
	})
	return n
}

// Reset forgets every list and kept build error.
func (r *Registry) Reset() {
	r.entries.Clear()
}
