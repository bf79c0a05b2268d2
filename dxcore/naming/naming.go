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

// Package naming turns Go types into the short names shown in rendered
// values, for example "Point" or "geo.Point".
//
// Pointers are unwrapped to the nearest named type and generic instantiation
// parameters are stripped. Results are memoized per (type, style); the cache
// is safe for concurrent use.
package naming

import (
	"path"
	"reflect"
	"strings"
	"sync"
)

// Func maps a type to its display name.
type Func func(t reflect.Type) string

// Style selects one of the built-in naming functions.
type Style int

const (
	// SimpleStyle renders "Type".
	SimpleStyle Style = iota
	// QualifiedStyle renders "pkg.Type", where pkg is the last element of
	// the package path.
	QualifiedStyle
)

// Textual forms of the Style constants.
const (
	SimpleStr    = "simple"
	QualifiedStr = "qualified"
)

// String returns the textual form of s.
func (s Style) String() string {
	switch s {
	case SimpleStyle:
		return SimpleStr
	case QualifiedStyle:
		return QualifiedStr
	default:
		return "unknown"
	}
}

// ParseStyle parses "simple" or "qualified". The empty string means simple.
func ParseStyle(str string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "", SimpleStr:
		return SimpleStyle, true
	case QualifiedStr:
		return QualifiedStyle, true
	default:
		return SimpleStyle, false
	}
}

// Func returns the naming function for s. Unknown styles fall back to Simple.
func (s Style) Func() Func {
	if s == QualifiedStyle {
		return Qualified
	}
	return Simple
}

// maxUnwrap bounds pointer unwrapping.
const maxUnwrap = 8

// cacheKey memoizes by type and style.
type cacheKey struct {
	t     reflect.Type
	style Style
}

// nameCache caches resolved names.
var nameCache sync.Map // key: cacheKey, val: string

// Simple returns the unqualified name of t's nearest named type.
// Unnamed types fall back to t.String(); a nil type yields "nil".
func Simple(t reflect.Type) string {
	return byType(t, SimpleStyle)
}

// Qualified returns "pkg.Type" for t's nearest named type. Builtin and
// unnamed types are returned as for Simple.
func Qualified(t reflect.Type) string {
	return byType(t, QualifiedStyle)
}

func byType(t reflect.Type, style Style) string {
	if t == nil {
		return "nil"
	}
	key := cacheKey{t: t, style: style}
	if v, ok := nameCache.Load(key); ok {
		return v.(string)
	}

	base := t
	for i := 0; i < maxUnwrap && base.Name() == "" && base.Kind() == reflect.Pointer; i++ {
		base = base.Elem()
	}

	var name string
	switch {
	case base.Name() == "":
		name = t.String()
	case style == QualifiedStyle && base.PkgPath() != "":
		name = path.Base(base.PkgPath()) + "." + stripTypeParams(base.Name())
	default:
		name = stripTypeParams(base.Name())
	}

	nameCache.Store(key, name)
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
