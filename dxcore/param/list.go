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
	"fmt"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"

	"dirpx.dev/dxparam/dxcore/errors"
	"dirpx.dev/dxparam/dxcore/policy"
	"dirpx.dev/dxparam/dxcore/profile"
)

// Descriptors is the type-erased view of a List, used to render, compare and
// hash nested values without knowing their owner type. Only *List
// implements it.
type Descriptors interface {
	// OwnerType returns the type the descriptors belong to.
	OwnerType() reflect.Type

	// Names returns the descriptor names in declaration order.
	Names() []string

	// HasPrimary reports whether the primary view is non-empty.
	HasPrimary() bool

	render(v any, visited *Visited) string
	renderPrimary(v any) string
	equal(a, b any, st *eqState) bool
	hash(v any, st *hashState) uint64
}

// Describable is implemented by types whose fields are declared with a
// descriptor list. Values of such types are rendered, compared and hashed
// through the list when they appear inside other described types.
type Describable interface {
	Descriptors() Descriptors
}

func descriptorsOf(v any) Descriptors {
	d, ok := v.(Describable)
	if !ok {
		return nil
	}
	return d.Descriptors()
}

// List is the ordered, name-unique, immutable set of descriptors of O. Build
// it with a Builder. A List is safe for concurrent use.
type List[O any] struct {
	owner  reflect.Type
	names  []string
	params map[string]*Param[O]
	prof   profile.Profile
	guard  policy.Guard

	all, equalsView, hashView, stringView, primaryView []*Param[O]
}

var _ Descriptors = (*List[struct{}])(nil)

// newList copies ordered params and binds them to a copy of prof.
func newList[O any](owner reflect.Type, ordered []*Param[O], prof profile.Profile, guard policy.Guard) *List[O] {
	l := &List[O]{
		owner:  owner,
		names:  make([]string, 0, len(ordered)),
		params: make(map[string]*Param[O], len(ordered)),
		prof:   prof,
		guard:  guard,
	}
	for _, src := range ordered {
		p := *src
		p.prof = &l.prof

		l.names = append(l.names, p.name)
		l.params[p.name] = &p
		l.all = append(l.all, &p)
		if p.usage.InEquals() {
			l.equalsView = append(l.equalsView, &p)
		}
		if p.usage.InHash() {
			l.hashView = append(l.hashView, &p)
		}
		if p.usage.InString() {
			l.stringView = append(l.stringView, &p)
		}
		if p.primary {
			l.primaryView = append(l.primaryView, &p)
		}
	}
	return l
}

// OwnerType returns the type of O.
func (l *List[O]) OwnerType() reflect.Type { return l.owner }

// Names returns the descriptor names in declaration order.
func (l *List[O]) Names() []string { return append([]string(nil), l.names...) }

// Len returns the number of descriptors.
func (l *List[O]) Len() int { return len(l.names) }

// Lookup returns the descriptor with the given name.
func (l *List[O]) Lookup(name string) (*Param[O], bool) {
	p, ok := l.params[name]
	return p, ok
}

// Profile returns the formatting profile.
func (l *List[O]) Profile() profile.Profile { return l.prof }

// Guard returns the guard the list was built under.
func (l *List[O]) Guard() policy.Guard { return l.guard }

// HasPrimary reports whether the primary view is non-empty.
func (l *List[O]) HasPrimary() bool { return len(l.primaryView) > 0 }

// All returns every descriptor in declaration order.
func (l *List[O]) All() []*Param[O] { return clone(l.all) }

// EqualsView returns the descriptors taking part in equality.
func (l *List[O]) EqualsView() []*Param[O] { return clone(l.equalsView) }

// HashView returns the descriptors taking part in hashing.
func (l *List[O]) HashView() []*Param[O] { return clone(l.hashView) }

// StringView returns the descriptors taking part in rendering.
func (l *List[O]) StringView() []*Param[O] { return clone(l.stringView) }

// PrimaryView returns the descriptors flagged primary.
func (l *List[O]) PrimaryView() []*Param[O] { return clone(l.primaryView) }

func clone[O any](ps []*Param[O]) []*Param[O] {
	return append([]*Param[O](nil), ps...)
}

// Equal reports whether a and b are equal over EqualsView.
//
// The same reference is equal to itself and two absent values are equal;
// exactly one absent value is not. When neither operand is an O they are
// compared with reflect.DeepEqual; when exactly one is, they differ.
func (l *List[O]) Equal(a, b any) bool {
	return l.equal(a, b, newEqState())
}

func (l *List[O]) equal(a, b any, st *eqState) bool {
	if sameRef(a, b) {
		return true
	}
	an, bn := isNil(a), isNil(b)
	if an || bn {
		return an && bn
	}
	oa, aok := a.(O)
	ob, bok := b.(O)
	if !aok && !bok {
		return reflect.DeepEqual(a, b)
	}
	if aok != bok {
		return false
	}
	for _, p := range l.equalsView {
		if !p.equal(oa, ob, st) {
			return false
		}
	}
	return true
}

// Hash combines the hashes of the HashView values in declaration order. It
// returns 0 for an absent obj.
func (l *List[O]) Hash(obj O) uint64 {
	return l.hashOwner(obj, newHashState())
}

func (l *List[O]) hashOwner(obj O, st *hashState) uint64 {
	if isNil(obj) {
		return 0
	}
	d := xxhash.New()
	for _, p := range l.hashView {
		writeUint64(d, p.hash(obj, st))
	}
	return d.Sum64()
}

func (l *List[O]) hash(v any, st *hashState) uint64 {
	o, ok := v.(O)
	if !ok {
		return deepHash(v)
	}
	return l.hashOwner(o, st)
}

// Render renders obj with a fresh Visited set.
func (l *List[O]) Render(obj O) (string, error) {
	return l.RenderWith(obj, nil)
}

// RenderWith renders obj, sharing visited with an enclosing render call. A
// nil visited starts a fresh set. obj itself is recorded before its fields
// are rendered.
func (l *List[O]) RenderWith(obj O, visited *Visited) (string, error) {
	if isNil(obj) {
		return "", &errors.NullArgumentError{Position: 1, Name: "obj", Operation: "List.Render"}
	}
	if visited == nil {
		visited = NewVisited()
	}
	return l.renderOwner(obj, visited), nil
}

// RenderPrimary renders obj over PrimaryView with a throwaway Visited set.
// An empty primary view renders the recursion marker in place of the
// parameters.
func (l *List[O]) RenderPrimary(obj O) (string, error) {
	if isNil(obj) {
		return "", &errors.NullArgumentError{Position: 1, Name: "obj", Operation: "List.RenderPrimary"}
	}
	return l.renderPrimaryOwner(obj), nil
}

// String renders obj like Render but renders an absent obj as the null
// marker. It suits String methods of described types.
func (l *List[O]) String(obj O) string {
	if isNil(obj) {
		return l.prof.NullMarker()
	}
	return l.renderOwner(obj, NewVisited())
}

func (l *List[O]) renderOwner(obj O, visited *Visited) string {
	visited.Mark(obj)

	params := l.prof.EmptyMarker()
	if len(l.stringView) > 0 {
		parts := make([]string, len(l.stringView))
		for i, p := range l.stringView {
			parts[i] = p.nameValue(obj, visited)
		}
		params = strings.Join(parts, l.prof.Delimiter())
	}
	return l.wrap(obj, params)
}

func (l *List[O]) renderPrimaryOwner(obj O) string {
	if len(l.primaryView) == 0 {
		return l.wrap(obj, l.prof.RecursionMarker())
	}

	visited := NewVisited()
	visited.Mark(obj)
	parts := make([]string, len(l.primaryView))
	for i, p := range l.primaryView {
		parts[i] = p.nameValue(obj, visited)
	}
	return l.wrap(obj, strings.Join(parts, l.prof.Delimiter()))
}

func (l *List[O]) wrap(obj O, params string) string {
	return l.prof.Wrap(l.prof.TypeName(reflect.TypeOf(obj)), l.prof.HashString(l.Hash(obj)), params)
}

func (l *List[O]) render(v any, visited *Visited) string {
	o, ok := v.(O)
	if !ok {
		return fmt.Sprint(v)
	}
	return l.renderOwner(o, visited)
}

func (l *List[O]) renderPrimary(v any) string {
	o, ok := v.(O)
	if !ok {
		return fmt.Sprint(v)
	}
	return l.renderPrimaryOwner(o)
}
