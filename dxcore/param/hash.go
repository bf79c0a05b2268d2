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
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Equality assumes a pair already under comparison is equal, so equal values
// are equal as infinitely unrolled trees whatever the length of their cycles.
// Hashes therefore cover the unrolled tree down to a fixed depth and never
// depend on where a cycle closes.
const (
	// nestedDepth is how many describable values deep a hash descends.
	nestedDepth = 2

	// refDepth is how many pointer, map and slice levels deep deepHash
	// descends.
	refDepth = 6

	// truncatedHash stands in for a non-nil value below the depth limit.
	truncatedHash uint64 = 0x9e3779b97f4a7c15
)

// hashState is the per-call state of a hash computation: the number of
// describable values being hashed on the current path.
type hashState struct {
	depth int
}

func newHashState() *hashState {
	return &hashState{}
}

func writeUint64(d *xxhash.Digest, x uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	_, _ = d.Write(b[:])
}

func pairHash(k, v uint64) uint64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], k)
	binary.LittleEndian.PutUint64(b[8:], v)
	return xxhash.Sum64(b[:])
}

// hash returns the hash of the field of owner; 0 when the owner or the value
// is absent.
func (p *Param[O]) hash(owner O, st *hashState) uint64 {
	if isNil(owner) {
		return 0
	}
	v := p.get(owner)
	if isNil(v) {
		return 0
	}

	switch p.kind.tag {
	case CollectionKind:
		items := p.items(v)
		d := xxhash.New()
		writeUint64(d, uint64(len(items)))
		for _, e := range items {
			writeUint64(d, valueHash(e, st))
		}
		return d.Sum64()
	case MapKind:
		// Entry order is unspecified, so entries are combined with a sum.
		entries := p.entries(v)
		h := uint64(len(entries))
		for _, e := range entries {
			h += pairHash(valueHash(e.key, st), valueHash(e.value, st))
		}
		return h
	default:
		return valueHash(v, st)
	}
}

// valueHash hashes one value consistently with valuesEqual.
func valueHash(v any, st *hashState) uint64 {
	if isNil(v) {
		return 0
	}
	ds := descriptorsOf(v)
	if ds == nil {
		return deepHash(v)
	}
	if st.depth >= nestedDepth {
		return truncatedHash
	}
	st.depth++
	defer func() { st.depth-- }()
	return ds.hash(v, st)
}

// deepHash hashes v so that reflect.DeepEqual values hash alike. Functions
// hash to 0 and references below refDepth to truncatedHash.
func deepHash(v any) uint64 {
	if v == nil {
		return 0
	}
	var h deepHasher
	return h.hash(reflect.ValueOf(v))
}

type deepHasher struct {
	depth int
}

// descend reports whether one more reference level may be hashed and, if
// so, enters it. Callers leave with h.depth--.
func (h *deepHasher) descend() bool {
	if h.depth >= refDepth {
		return false
	}
	h.depth++
	return true
}

func (h *deepHasher) hash(v reflect.Value) uint64 {
	if !v.IsValid() {
		return 0
	}

	d := xxhash.New()
	writeUint64(d, uint64(v.Kind()))

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			writeUint64(d, 1)
		} else {
			writeUint64(d, 0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint64(d, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeUint64(d, v.Uint())
	case reflect.Float32, reflect.Float64:
		writeUint64(d, floatBits(v.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		writeUint64(d, floatBits(real(c)))
		writeUint64(d, floatBits(imag(c)))
	case reflect.String:
		_, _ = d.WriteString(v.String())
	case reflect.Array:
		for i := range v.Len() {
			writeUint64(d, h.hash(v.Index(i)))
		}
	case reflect.Slice:
		if v.IsNil() {
			return 0
		}
		if !h.descend() {
			return truncatedHash
		}
		defer func() { h.depth-- }()
		writeUint64(d, uint64(v.Len()))
		for i := range v.Len() {
			writeUint64(d, h.hash(v.Index(i)))
		}
	case reflect.Map:
		if v.IsNil() {
			return 0
		}
		if !h.descend() {
			return truncatedHash
		}
		defer func() { h.depth-- }()
		sum := uint64(v.Len())
		iter := v.MapRange()
		for iter.Next() {
			sum += pairHash(h.hash(iter.Key()), h.hash(iter.Value()))
		}
		writeUint64(d, sum)
	case reflect.Pointer:
		if v.IsNil() {
			return 0
		}
		if !h.descend() {
			return truncatedHash
		}
		defer func() { h.depth-- }()
		writeUint64(d, h.hash(v.Elem()))
	case reflect.Interface:
		if v.IsNil() {
			return 0
		}
		writeUint64(d, h.hash(v.Elem()))
	case reflect.Struct:
		for i := range v.NumField() {
			writeUint64(d, h.hash(v.Field(i)))
		}
	case reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			return 0
		}
		writeUint64(d, uint64(v.Pointer()))
	default:
		// Func values are only DeepEqual when both are nil.
		return 0
	}
	return d.Sum64()
}

// floatBits folds -0 into +0, which compare equal.
func floatBits(f float64) uint64 {
	if f == 0 {
		f = 0
	}
	return math.Float64bits(f)
}
