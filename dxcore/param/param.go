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
	"reflect"

	"dirpx.dev/dxparam/dxcore/errors"
	"dirpx.dev/dxparam/dxcore/policy"
	"dirpx.dev/dxparam/dxcore/profile"
)

// OverrideFunc renders a value in place of the default engine.
//
// For self-describing values it is called with preventing set to true when
// the value has already been rendered in the current call; otherwise the
// value is rendered recursively and the override is not consulted. For other
// values it replaces the native string form and is called with preventing
// set to false.
type OverrideFunc func(v any, preventing bool) string

// Option configures a descriptor.
type Option func(*settings)

type settings struct {
	override OverrideFunc
}

// WithOverride installs a custom rendering. On Slice and Map descriptors it
// applies to every entry and key.
func WithOverride(fn OverrideFunc) Option {
	return func(s *settings) { s.override = fn }
}

func applyOptions(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// entry is one key/value pair of a map-valued descriptor.
type entry struct {
	key, value any
}

// Param describes one field of the owner type O: its name, how to read it,
// which derived operations it takes part in and the shape of its value.
//
// Params are immutable. Construct them with Single, Primary, Slice or Map
// and add them to a Builder; the list produced by the builder holds copies
// bound to its formatting profile.
type Param[O any] struct {
	owner    reflect.Type
	name     string
	get      func(O) any
	usage    policy.Usage
	kind     Kind
	primary  bool
	override OverrideFunc

	// items and entries unpack Collection and Map values; lookup finds a key
	// in a Map value.
	items   func(v any) []any
	entries func(v any) []entry
	lookup  func(m, k any) (any, bool)

	prof *profile.Profile
}

// Single describes a single-valued field of type V.
func Single[O, V any](name string, get func(O) V, usage policy.Usage, opts ...Option) *Param[O] {
	return newSingle(name, get, usage, false, opts)
}

// Primary describes a single-valued field that is also shown in the short
// form used when a cycle cuts full rendering of the owner.
func Primary[O, V any](name string, get func(O) V, usage policy.Usage, opts ...Option) *Param[O] {
	return newSingle(name, get, usage, true, opts)
}

func newSingle[O, V any](name string, get func(O) V, usage policy.Usage, primary bool, opts []Option) *Param[O] {
	s := applyOptions(opts)
	p := &Param[O]{
		owner:    reflect.TypeFor[O](),
		name:     name,
		usage:    usage,
		kind:     singleKind(reflect.TypeFor[V]()),
		primary:  primary,
		override: s.override,
	}
	if get != nil {
		p.get = func(o O) any { return get(o) }
	}
	return p
}

// Slice describes a slice-valued field whose entries of type E are rendered,
// compared and hashed one by one.
func Slice[O, E any](name string, get func(O) []E, usage policy.Usage, opts ...Option) *Param[O] {
	p := &Param[O]{
		owner:    reflect.TypeFor[O](),
		name:     name,
		usage:    usage,
		kind:     collectionKind(reflect.TypeFor[E]()),
		override: applyOptions(opts).override,
		items: func(v any) []any {
			s := v.([]E)
			out := make([]any, len(s))
			for i, e := range s {
				out[i] = e
			}
			return out
		},
	}
	if get != nil {
		p.get = func(o O) any { return get(o) }
	}
	return p
}

// Map describes a map-valued field whose keys K and entries V are rendered,
// compared and hashed one by one.
func Map[O any, K comparable, V any](name string, get func(O) map[K]V, usage policy.Usage, opts ...Option) *Param[O] {
	p := &Param[O]{
		owner:    reflect.TypeFor[O](),
		name:     name,
		usage:    usage,
		kind:     mapKind(reflect.TypeFor[K](), reflect.TypeFor[V]()),
		override: applyOptions(opts).override,
		entries: func(v any) []entry {
			m := v.(map[K]V)
			out := make([]entry, 0, len(m))
			for k, e := range m {
				out = append(out, entry{key: k, value: e})
			}
			return out
		},
		lookup: func(m, k any) (any, bool) {
			kk, _ := k.(K)
			e, ok := m.(map[K]V)[kk]
			return e, ok
		},
	}
	if get != nil {
		p.get = func(o O) any { return get(o) }
	}
	return p
}

// Name returns the descriptor name.
func (p *Param[O]) Name() string { return p.name }

// Usage returns the usage policy.
func (p *Param[O]) Usage() policy.Usage { return p.usage }

// Kind returns the value kind.
func (p *Param[O]) Kind() Kind { return p.kind }

// IsPrimary reports whether the descriptor belongs to the primary view.
func (p *Param[O]) IsPrimary() bool { return p.primary }

// OwnerType returns the type of O.
func (p *Param[O]) OwnerType() reflect.Type { return p.owner }

// profile returns the bound profile, or the default one for descriptors
// used outside of a list.
func (p *Param[O]) profile() *profile.Profile {
	if p.prof != nil {
		return p.prof
	}
	def := profile.Default()
	return &def
}

// Get returns the field value of owner.
func (p *Param[O]) Get(owner O) (any, error) {
	if isNil(owner) {
		return nil, &errors.NullArgumentError{Position: 1, Name: "owner", Operation: "Param.Get"}
	}
	return p.get(owner), nil
}

// SafeGet returns the field value of owner, or false when owner is absent.
func (p *Param[O]) SafeGet(owner O) (any, bool) {
	if isNil(owner) {
		return nil, false
	}
	return p.get(owner), true
}

// Equal reports whether a and b have equal values for this field. The same
// reference (including two absent owners) is always equal; exactly one
// absent owner never is.
func (p *Param[O]) Equal(a, b O) bool {
	return p.equal(a, b, newEqState())
}

// Hash returns the hash of owner's value for this field, 0 for an absent
// owner or value.
func (p *Param[O]) Hash(owner O) uint64 {
	return p.hash(owner, newHashState())
}

// Render returns the string form of owner's value for this field. A nil
// visited starts a fresh set.
func (p *Param[O]) Render(owner O, visited *Visited) string {
	if visited == nil {
		visited = NewVisited()
	}
	return p.render(owner, visited)
}

// NameValue renders the field as a name/value pair, quoting the value unless
// it is a marker.
func (p *Param[O]) NameValue(owner O, visited *Visited) string {
	return p.profile().NameValue(p.name, p.Render(owner, visited))
}
