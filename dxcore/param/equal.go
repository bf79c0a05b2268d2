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

import "reflect"

// pairKey identifies two references of one type being compared.
type pairKey struct {
	t    reflect.Type
	a, b identity
}

// eqState is the per-call state of an equality check. Pairs already under
// comparison are assumed equal when met again, which is how
// reflect.DeepEqual terminates on cycles.
type eqState struct {
	pairs map[pairKey]struct{}
}

func newEqState() *eqState {
	return &eqState{pairs: make(map[pairKey]struct{})}
}

// enter records the pair (a, b) and reports whether it was new. Values
// without reference identity are always new.
func (s *eqState) enter(a, b any) bool {
	ia, ok := identityOf(a)
	if !ok {
		return true
	}
	ib, ok := identityOf(b)
	if !ok {
		return true
	}
	k := pairKey{t: reflect.TypeOf(a), a: ia, b: ib}
	if _, dup := s.pairs[k]; dup {
		return false
	}
	s.pairs[k] = struct{}{}
	return true
}

// equal compares the field of two owners.
func (p *Param[O]) equal(a, b O, st *eqState) bool {
	if sameRef(a, b) {
		return true
	}
	an, bn := isNil(a), isNil(b)
	if an || bn {
		return an && bn
	}
	va, vb := p.get(a), p.get(b)

	switch p.kind.tag {
	case CollectionKind:
		return p.collectionsEqual(va, vb, st)
	case MapKind:
		return p.mapsEqual(va, vb, st)
	default:
		return valuesEqual(va, vb, st)
	}
}

func (p *Param[O]) collectionsEqual(va, vb any, st *eqState) bool {
	an, bn := isNil(va), isNil(vb)
	if an || bn {
		return an && bn
	}
	if sameRef(va, vb) {
		return true
	}
	xa, xb := p.items(va), p.items(vb)
	if len(xa) != len(xb) {
		return false
	}
	for i := range xa {
		if !valuesEqual(xa[i], xb[i], st) {
			return false
		}
	}
	return true
}

func (p *Param[O]) mapsEqual(va, vb any, st *eqState) bool {
	an, bn := isNil(va), isNil(vb)
	if an || bn {
		return an && bn
	}
	if sameRef(va, vb) {
		return true
	}
	ea := p.entries(va)
	if len(ea) != reflect.ValueOf(vb).Len() {
		return false
	}
	for _, e := range ea {
		other, ok := p.lookup(vb, e.key)
		if !ok || !valuesEqual(e.value, other, st) {
			return false
		}
	}
	return true
}

// valuesEqual compares two field values. Describable values of the same
// dynamic type are compared through their descriptor list; everything else
// falls back to reflect.DeepEqual.
func valuesEqual(a, b any, st *eqState) bool {
	an, bn := isNil(a), isNil(b)
	if an || bn {
		return an && bn && reflect.TypeOf(a) == reflect.TypeOf(b)
	}
	if sameRef(a, b) {
		return true
	}
	if ds := descriptorsOf(a); ds != nil && reflect.TypeOf(a) == reflect.TypeOf(b) {
		if !st.enter(a, b) {
			return true
		}
		return ds.equal(a, b, st)
	}
	return reflect.DeepEqual(a, b)
}
