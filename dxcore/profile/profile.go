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

// Package profile holds the formatting profile used when described values
// are rendered: the markers printed for absent values, detected cycles and
// empty parameter lists, the delimiter, the three fmt templates, and the
// functions that turn a type and a hash into text.
//
// With the default profile a value renders as
//
//	Point@1f3a9c [x='1', y='2']
//
// where "Point" comes from TypeName, "1f3a9c" from HashString and each
// parameter goes through NameValueFormat and ValueFormat.
//
// A Profile is a plain value. Descriptor lists copy the profile they are
// built with, so changing a Profile afterwards never affects a built list.
//
// Profiles can be built in code with New and functional options, decoded
// from YAML with LoadYAML / LoadFile, or read from DXPARAM_* environment
// variables with FromEnv. Every template is validated when it is set.
package profile

import (
	"fmt"
	"reflect"
	"strconv"

	"dirpx.dev/dxparam/dxcore/errors"
	"dirpx.dev/dxparam/dxcore/naming"
	"dirpx.dev/rxmerr"
)

// Default values of the profile options.
const (
	DefaultNullMarker      = "null"
	DefaultRecursionMarker = "..."
	DefaultEmptyMarker     = " "
	DefaultDelimiter       = ", "
	DefaultNameValueFormat = "%s=%s"
	DefaultValueFormat     = "'%s'"
	DefaultWrapFormat      = "%s@%s [%s]"
)

// HashFunc renders a hash value.
type HashFunc func(h uint64) string

// HexHash renders h as lowercase hexadecimal.
func HexHash(h uint64) string {
	return strconv.FormatUint(h, 16)
}

// Profile is a formatting profile. The zero value is not usable; start from
// Default or New.
type Profile struct {
	nullMarker      string
	recursionMarker string
	emptyMarker     string
	delimiter       string
	nameValueFormat string
	valueFormat     string
	wrapFormat      string
	typeName        naming.Func
	hashString      HashFunc
}

// Default returns the default profile.
func Default() Profile {
	return Profile{
		nullMarker:      DefaultNullMarker,
		recursionMarker: DefaultRecursionMarker,
		emptyMarker:     DefaultEmptyMarker,
		delimiter:       DefaultDelimiter,
		nameValueFormat: DefaultNameValueFormat,
		valueFormat:     DefaultValueFormat,
		wrapFormat:      DefaultWrapFormat,
		typeName:        naming.Simple,
		hashString:      HexHash,
	}
}

// Option configures a Profile during New.
type Option func(*Profile) error

// New returns the default profile with opts applied. Every failing option is
// reported; the returned profile is only meaningful when err is nil.
func New(opts ...Option) (Profile, error) {
	p := Default()
	c := rxmerr.NewCollector()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&p); err != nil {
			c.Append(err)
		}
	}
	return p, c.Err()
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) Profile {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// WithNullMarker sets the marker printed for absent values.
func WithNullMarker(s string) Option {
	return func(p *Profile) error { return p.SetNullMarker(s) }
}

// WithRecursionMarker sets the marker printed when a cycle is cut.
func WithRecursionMarker(s string) Option {
	return func(p *Profile) error { return p.SetRecursionMarker(s) }
}

// WithEmptyMarker sets the marker printed for an empty parameter list.
func WithEmptyMarker(s string) Option {
	return func(p *Profile) error { return p.SetEmptyMarker(s) }
}

// WithDelimiter sets the separator between name/value pairs.
func WithDelimiter(s string) Option {
	return func(p *Profile) error { return p.SetDelimiter(s) }
}

// WithNameValueFormat sets the 2-slot (name, value) template.
func WithNameValueFormat(tpl string) Option {
	return func(p *Profile) error { return p.SetNameValueFormat(tpl) }
}

// WithValueFormat sets the 1-slot quoting template.
func WithValueFormat(tpl string) Option {
	return func(p *Profile) error { return p.SetValueFormat(tpl) }
}

// WithWrapFormat sets the 3-slot (type, hash, params) template.
func WithWrapFormat(tpl string) Option {
	return func(p *Profile) error { return p.SetWrapFormat(tpl) }
}

// WithTypeName sets the type naming function.
func WithTypeName(fn naming.Func) Option {
	return func(p *Profile) error { return p.SetTypeName(fn) }
}

// WithNamingStyle selects one of the built-in naming functions.
func WithNamingStyle(s naming.Style) Option {
	return func(p *Profile) error { return p.SetTypeName(s.Func()) }
}

// WithHashString sets the hash rendering function.
func WithHashString(fn HashFunc) Option {
	return func(p *Profile) error { return p.SetHashString(fn) }
}

// SetNullMarker sets the marker printed for absent values.
func (p *Profile) SetNullMarker(s string) error {
	p.nullMarker = s
	return nil
}

// SetRecursionMarker sets the marker printed when a cycle is cut.
func (p *Profile) SetRecursionMarker(s string) error {
	p.recursionMarker = s
	return nil
}

// SetEmptyMarker sets the marker printed for an empty parameter list.
func (p *Profile) SetEmptyMarker(s string) error {
	p.emptyMarker = s
	return nil
}

// SetDelimiter sets the separator between name/value pairs.
func (p *Profile) SetDelimiter(s string) error {
	p.delimiter = s
	return nil
}

// SetNameValueFormat sets the name/value template. It must have exactly two
// string verbs; the profile is left unchanged otherwise.
func (p *Profile) SetNameValueFormat(tpl string) error {
	if err := CheckTemplate("NameValueFormat", tpl, NameValueSlots); err != nil {
		return err
	}
	p.nameValueFormat = tpl
	return nil
}

// SetValueFormat sets the quoting template. It must have exactly one string
// verb.
func (p *Profile) SetValueFormat(tpl string) error {
	if err := CheckTemplate("ValueFormat", tpl, ValueSlots); err != nil {
		return err
	}
	p.valueFormat = tpl
	return nil
}

// SetWrapFormat sets the wrapping template. It must have exactly three
// string verbs: type name, hash string and joined parameters.
func (p *Profile) SetWrapFormat(tpl string) error {
	if err := CheckTemplate("WrapFormat", tpl, WrapSlots); err != nil {
		return err
	}
	p.wrapFormat = tpl
	return nil
}

// SetTypeName sets the type naming function.
func (p *Profile) SetTypeName(fn naming.Func) error {
	if fn == nil {
		return &errors.NullArgumentError{Position: 1, Name: "fn", Operation: "Profile.SetTypeName"}
	}
	p.typeName = fn
	return nil
}

// SetHashString sets the hash rendering function.
func (p *Profile) SetHashString(fn HashFunc) error {
	if fn == nil {
		return &errors.NullArgumentError{Position: 1, Name: "fn", Operation: "Profile.SetHashString"}
	}
	p.hashString = fn
	return nil
}

// NullMarker returns the marker printed for absent values.
func (p Profile) NullMarker() string { return p.nullMarker }

// RecursionMarker returns the marker printed when a cycle is cut.
func (p Profile) RecursionMarker() string { return p.recursionMarker }

// EmptyMarker returns the marker printed for an empty parameter list.
func (p Profile) EmptyMarker() string { return p.emptyMarker }

// Delimiter returns the separator between name/value pairs.
func (p Profile) Delimiter() string { return p.delimiter }

// NameValueFormat returns the name/value template.
func (p Profile) NameValueFormat() string { return p.nameValueFormat }

// ValueFormat returns the quoting template.
func (p Profile) ValueFormat() string { return p.valueFormat }

// WrapFormat returns the wrapping template.
func (p Profile) WrapFormat() string { return p.wrapFormat }

// Validate reports every problem of p at once. Profiles obtained from
// Default, New, LoadYAML or FromEnv are valid; Validate is for profiles of
// unknown origin such as the zero value.
func (p Profile) Validate() error {
	c := rxmerr.NewCollector()
	if err := CheckTemplate("NameValueFormat", p.nameValueFormat, NameValueSlots); err != nil {
		c.Append(err)
	}
	if err := CheckTemplate("ValueFormat", p.valueFormat, ValueSlots); err != nil {
		c.Append(err)
	}
	if err := CheckTemplate("WrapFormat", p.wrapFormat, WrapSlots); err != nil {
		c.Append(err)
	}
	if p.typeName == nil {
		c.Append(&errors.ValidationError{Type: "Profile", Field: "TypeName", Reason: "must not be nil"})
	}
	if p.hashString == nil {
		c.Append(&errors.ValidationError{Type: "Profile", Field: "HashString", Reason: "must not be nil"})
	}
	return c.Err()
}

// IsMarker reports whether s is the null, recursion or empty marker. Markers
// are never quoted.
func (p Profile) IsMarker(s string) bool {
	return s == p.nullMarker || s == p.recursionMarker || s == p.emptyMarker
}

// Quote applies ValueFormat to value unless it is a marker.
func (p Profile) Quote(value string) string {
	if p.IsMarker(value) {
		return value
	}
	return fmt.Sprintf(p.valueFormat, value)
}

// NameValue renders one parameter: NameValueFormat over name and the quoted
// value.
func (p Profile) NameValue(name, value string) string {
	return fmt.Sprintf(p.nameValueFormat, name, p.Quote(value))
}

// Wrap applies WrapFormat.
func (p Profile) Wrap(typeName, hash, params string) string {
	return fmt.Sprintf(p.wrapFormat, typeName, hash, params)
}

// TypeName returns the display name of t.
func (p Profile) TypeName(t reflect.Type) string {
	if p.typeName == nil {
		return naming.Simple(t)
	}
	return p.typeName(t)
}

// HashString renders h.
func (p Profile) HashString(h uint64) string {
	if p.hashString == nil {
		return HexHash(h)
	}
	return p.hashString(h)
}
