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

// Package policy defines which derived operations a described field takes
// part in, and which of those combinations a descriptor list accepts.
//
// A Usage is one point of the lattice {include, exclude} x {equals, hash,
// string}. Four points are safe: they cannot make two equal values report
// different hashes. The other four can, and are only accepted by a builder
// whose Guard is AllowUnsafe.
//
//	Usage                 equals  hash  string  safe
//	IncludedInAll           x      x      x      yes
//	IgnoredForAll                                 yes
//	IncludedInStringOnly                  x      yes
//	IgnoredForString        x      x             yes
//	IgnoredForEquals               x      x      no
//	IgnoredForHash          x             x      no
//	IncludedInEqualsOnly    x                    no
//	IncludedInHashOnly             x             no
package policy

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxparam/dxcore/errors"
	"gopkg.in/yaml.v3"
)

// Usage states whether a field is included in equality, hashing and string
// rendering.
type Usage int

const (
	// IncludedInAll includes the field in equals, hash and string.
	// This is the zero value.
	IncludedInAll Usage = iota

	// IgnoredForAll excludes the field from every derived operation.
	IgnoredForAll

	// IncludedInStringOnly shows the field in the string form only.
	IncludedInStringOnly

	// IgnoredForString includes the field in equals and hash but hides it
	// from the string form.
	IgnoredForString

	// IgnoredForEquals includes the field in hash and string only.
	IgnoredForEquals

	// IgnoredForHash includes the field in equals and string only.
	IgnoredForHash

	// IncludedInEqualsOnly includes the field in equals only.
	IncludedInEqualsOnly

	// IncludedInHashOnly includes the field in hash only.
	IncludedInHashOnly
)

// Textual forms of the Usage constants.
const (
	IncludedInAllStr        = "included-in-all"
	IgnoredForAllStr        = "ignored-for-all"
	IncludedInStringOnlyStr = "included-in-string-only"
	IgnoredForStringStr     = "ignored-for-string"
	IgnoredForEqualsStr     = "ignored-for-equals"
	IgnoredForHashStr       = "ignored-for-hash"
	IncludedInEqualsOnlyStr = "included-in-equals-only"
	IncludedInHashOnlyStr   = "included-in-hash-only"
)

// usageFlags lists, per constant, membership in equals, hash and string.
var usageFlags = [...]struct {
	name                string
	equals, hash, strng bool
}{
	IncludedInAll:        {IncludedInAllStr, true, true, true},
	IgnoredForAll:        {IgnoredForAllStr, false, false, false},
	IncludedInStringOnly: {IncludedInStringOnlyStr, false, false, true},
	IgnoredForString:     {IgnoredForStringStr, true, true, false},
	IgnoredForEquals:     {IgnoredForEqualsStr, false, true, true},
	IgnoredForHash:       {IgnoredForHashStr, true, false, true},
	IncludedInEqualsOnly: {IncludedInEqualsOnlyStr, true, false, false},
	IncludedInHashOnly:   {IncludedInHashOnlyStr, false, true, false},
}

// Usages returns every valid Usage in declaration order.
func Usages() []Usage {
	out := make([]Usage, len(usageFlags))
	for i := range usageFlags {
		out[i] = Usage(i)
	}
	return out
}

// UsageOf returns the Usage with the given membership flags.
func UsageOf(equals, hash, str bool) Usage {
	for i, f := range usageFlags {
		if f.equals == equals && f.hash == hash && f.strng == str {
			return Usage(i)
		}
	}
	// All eight combinations are present in usageFlags.
	panic("policy: incomplete usage table")
}

// String returns the kebab-case form of u, or "unknown".
func (u Usage) String() string {
	if !u.Valid() {
		return "unknown"
	}
	return usageFlags[u].name
}

// ParseUsage parses the textual form of a Usage.
//
// Matching ignores case, dashes and underscores, so "ignored-for-hash",
// "IgnoredForHash", "ignored_for_hash" and "IGNORED_FOR_HASH" are
// equivalent.
func ParseUsage(str string) (Usage, error) {
	key := foldName(str)
	if key != "" {
		for i, f := range usageFlags {
			if foldName(f.name) == key {
				return Usage(i), nil
			}
		}
	}
	return IncludedInAll, &errors.ParseError{Type: "Usage", Value: str}
}

// foldName lowercases s and drops '-' and '_' separators.
func foldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "").Replace(s)
}

// Valid reports whether u is one of the declared constants.
func (u Usage) Valid() bool {
	return u >= IncludedInAll && int(u) < len(usageFlags)
}

// InEquals reports whether the field takes part in equality.
func (u Usage) InEquals() bool {
	return u.Valid() && usageFlags[u].equals
}

// InHash reports whether the field takes part in hashing.
func (u Usage) InHash() bool {
	return u.Valid() && usageFlags[u].hash
}

// InString reports whether the field is shown in the string form.
func (u Usage) InString() bool {
	return u.Valid() && usageFlags[u].strng
}

// Safe reports whether u cannot break "equal implies same hash".
func (u Usage) Safe() bool {
	switch u {
	case IncludedInAll, IgnoredForAll, IncludedInStringOnly, IgnoredForString:
		return true
	default:
		return false
	}
}

// TypeName returns "Usage".
func (u Usage) TypeName() string {
	return "Usage"
}

// IsZero reports whether u is the zero value (IncludedInAll).
func (u Usage) IsZero() bool {
	return u == IncludedInAll
}

// Equal reports whether other is a Usage (or non-nil *Usage) equal to u.
func (u Usage) Equal(other any) bool {
	switch v := other.(type) {
	case Usage:
		return u == v
	case *Usage:
		if v == nil {
			return false
		}
		return u == *v
	default:
		return false
	}
}

// Validate returns a MarshalError for values outside the declared set.
func (u Usage) Validate() error {
	if !u.Valid() {
		return &errors.MarshalError{Type: "Usage", Value: int(u)}
	}
	return nil
}

// MarshalJSON encodes u as its textual form.
func (u Usage) MarshalJSON() ([]byte, error) {
	if !u.Valid() {
		return nil, &errors.MarshalError{Type: "Usage", Value: int(u)}
	}
	return []byte(`"` + u.String() + `"`), nil
}

// UnmarshalJSON accepts either the textual form or the numeric value.
func (u *Usage) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Usage", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Usage", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseUsage(str)
		if err != nil {
			return err
		}
		*u = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Usage", Data: data, Reason: err.Error()}
	}
	if !Usage(i).Valid() {
		return &errors.UnmarshalError{Type: "Usage", Data: data, Reason: "invalid numeric value"}
	}
	*u = Usage(i)
	return nil
}

// MarshalText encodes u as its textual form.
func (u Usage) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, &errors.MarshalError{Type: "Usage", Value: int(u)}
	}
	return []byte(u.String()), nil
}

// UnmarshalText parses the textual form.
func (u *Usage) UnmarshalText(text []byte) error {
	parsed, err := ParseUsage(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalYAML encodes u as its textual form.
func (u Usage) MarshalYAML() (any, error) {
	if !u.Valid() {
		return nil, &errors.MarshalError{Type: "Usage", Value: int(u)}
	}
	return u.String(), nil
}

// UnmarshalYAML parses the textual form from a scalar node.
func (u *Usage) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Usage", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseUsage(str)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
