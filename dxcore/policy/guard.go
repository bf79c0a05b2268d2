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

package policy

import (
	"encoding/json"

	"dirpx.dev/dxparam/dxcore/errors"
	"gopkg.in/yaml.v3"
)

// Guard gates which Usage values a descriptor list under construction
// accepts.
//
// The zero value, SafeOnly, rejects every usage that can make two equal
// values report different hashes. AllowUnsafe accepts all eight usages and
// exists so that opting into them is an explicit, named choice.
type Guard int

const (
	// SafeOnly accepts only the four safe usages. This is the zero value.
	SafeOnly Guard = iota

	// AllowUnsafe accepts every valid usage.
	AllowUnsafe
)

// Textual forms of the Guard constants.
const (
	SafeOnlyStr    = "safe-only"
	AllowUnsafeStr = "allow-unsafe"
)

// String returns the kebab-case form of g, or "unknown".
func (g Guard) String() string {
	switch g {
	case SafeOnly:
		return SafeOnlyStr
	case AllowUnsafe:
		return AllowUnsafeStr
	default:
		return "unknown"
	}
}

// ParseGuard parses the textual form of a Guard.
func ParseGuard(str string) (Guard, error) {
	switch foldName(str) {
	case foldName(SafeOnlyStr):
		return SafeOnly, nil
	case foldName(AllowUnsafeStr):
		return AllowUnsafe, nil
	default:
		return SafeOnly, &errors.ParseError{Type: "Guard", Value: str}
	}
}

// Valid reports whether g is one of the declared constants.
func (g Guard) Valid() bool {
	return g == SafeOnly || g == AllowUnsafe
}

// Allows reports whether u may be added under g. Invalid usages and invalid
// guards never allow anything.
func (g Guard) Allows(u Usage) bool {
	if !u.Valid() {
		return false
	}
	switch g {
	case SafeOnly:
		return u.Safe()
	case AllowUnsafe:
		return true
	default:
		return false
	}
}

// Allowed returns the usages g accepts, in declaration order.
func (g Guard) Allowed() []Usage {
	out := make([]Usage, 0, len(usageFlags))
	for _, u := range Usages() {
		if g.Allows(u) {
			out = append(out, u)
		}
	}
	return out
}

// TypeName returns "Guard".
func (g Guard) TypeName() string {
	return "Guard"
}

// MarshalJSON encodes g as its textual form.
func (g Guard) MarshalJSON() ([]byte, error) {
	if !g.Valid() {
		return nil, &errors.MarshalError{Type: "Guard", Value: int(g)}
	}
	return []byte(`"` + g.String() + `"`), nil
}

// UnmarshalJSON parses the textual form.
func (g *Guard) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &errors.UnmarshalError{Type: "Guard", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseGuard(str)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalText encodes g as its textual form.
func (g Guard) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, &errors.MarshalError{Type: "Guard", Value: int(g)}
	}
	return []byte(g.String()), nil
}

// UnmarshalText parses the textual form.
func (g *Guard) UnmarshalText(text []byte) error {
	parsed, err := ParseGuard(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalYAML encodes g as its textual form.
func (g Guard) MarshalYAML() (any, error) {
	if !g.Valid() {
		return nil, &errors.MarshalError{Type: "Guard", Value: int(g)}
	}
	return g.String(), nil
}

// UnmarshalYAML parses the textual form from a scalar node.
func (g *Guard) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Guard", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseGuard(str)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
