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

// KindTag tells the shape of a descriptor's value apart.
type KindTag int

const (
	// SingleKind is a single value.
	SingleKind KindTag = iota
	// CollectionKind is a slice whose entries are rendered one by one.
	CollectionKind
	// MapKind is a map whose keys and entries are rendered one by one.
	MapKind
)

// String returns "single", "collection", "map" or "unknown".
func (t KindTag) String() string {
	switch t {
	case SingleKind:
		return "single"
	case CollectionKind:
		return "collection"
	case MapKind:
		return "map"
	default:
		return "unknown"
	}
}

// shape is a declared Go type plus whether values of it may describe
// themselves. Interface types may, depending on the dynamic value.
type shape struct {
	t           reflect.Type
	mayDescribe bool
}

var describableType = reflect.TypeFor[Describable]()

func shapeOf(t reflect.Type) shape {
	return shape{
		t:           t,
		mayDescribe: t.Kind() == reflect.Interface || t.Implements(describableType),
	}
}

// Kind is the closed union Single(value) | Collection(entry) | Map(key,
// entry). It is fixed when a descriptor is constructed.
type Kind struct {
	tag   KindTag
	value shape
	key   shape
}

func singleKind(v reflect.Type) Kind {
	return Kind{tag: SingleKind, value: shapeOf(v)}
}

func collectionKind(entry reflect.Type) Kind {
	return Kind{tag: CollectionKind, value: shapeOf(entry)}
}

func mapKind(key, entry reflect.Type) Kind {
	return Kind{tag: MapKind, key: shapeOf(key), value: shapeOf(entry)}
}

// Tag returns the kind tag.
func (k Kind) Tag() KindTag { return k.tag }

// ValueType returns the value type of a Single kind, or the entry type of a
// Collection or Map kind.
func (k Kind) ValueType() reflect.Type { return k.value.t }

// KeyType returns the key type of a Map kind, nil otherwise.
func (k Kind) KeyType() reflect.Type { return k.key.t }

// String renders the kind as "single(int)", "collection(string)" or
// "map(string,int)".
func (k Kind) String() string {
	switch k.tag {
	case SingleKind, CollectionKind:
		return k.tag.String() + "(" + typeString(k.value.t) + ")"
	case MapKind:
		return "map(" + typeString(k.key.t) + "," + typeString(k.value.t) + ")"
	default:
		return "unknown"
	}
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
