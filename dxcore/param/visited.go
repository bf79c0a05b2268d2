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
	"unsafe"
)

// identity is the reference identity of a value: the address it points to
// and, for slices, its length.
type identity struct {
	ptr unsafe.Pointer
	n   int
}

// identityOf returns the reference identity of v. Values without one
// (structs, scalars, nil references) report false; they cannot close a
// cycle on their own.
func identityOf(v any) (identity, bool) {
	if v == nil {
		return identity{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{ptr: rv.UnsafePointer()}, true
	case reflect.Slice:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{ptr: rv.UnsafePointer(), n: rv.Len()}, true
	default:
		return identity{}, false
	}
}

// sameRef reports whether a and b are the same reference of the same type.
func sameRef(a, b any) bool {
	ia, ok := identityOf(a)
	if !ok {
		return false
	}
	ib, ok := identityOf(b)
	return ok && ia == ib && reflect.TypeOf(a) == reflect.TypeOf(b)
}

// isNil reports whether v is absent: a nil interface or a nil pointer, map,
// slice, channel or function.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// Visited records, per dynamic type, the identities already rendered during
// one top-level render call. It is not safe for concurrent use and must not
// outlive the call that created it.
type Visited struct {
	seen map[reflect.Type]map[identity]struct{}
}

// NewVisited returns an empty set.
func NewVisited() *Visited {
	return &Visited{seen: make(map[reflect.Type]map[identity]struct{})}
}

// Mark records x and reports whether it was not recorded before. Values
// without reference identity are never recorded and always report true.
func (v *Visited) Mark(x any) bool {
	id, ok := identityOf(x)
	if !ok {
		return true
	}
	t := reflect.TypeOf(x)
	ids := v.seen[t]
	if ids == nil {
		ids = make(map[identity]struct{})
		v.seen[t] = ids
	}
	if _, dup := ids[id]; dup {
		return false
	}
	ids[id] = struct{}{}
	return true
}

// Seen reports whether x has been recorded.
func (v *Visited) Seen(x any) bool {
	id, ok := identityOf(x)
	if !ok {
		return false
	}
	_, seen := v.seen[reflect.TypeOf(x)][id]
	return seen
}

// Len returns the number of recorded identities.
func (v *Visited) Len() int {
	n := 0
	for _, ids := range v.seen {
		n += len(ids)
	}
	return n
}
