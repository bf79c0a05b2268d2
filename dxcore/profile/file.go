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

package profile

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"dirpx.dev/dxparam/dxcore/errors"
	"dirpx.dev/dxparam/dxcore/naming"
	"dirpx.dev/rxmerr"
	bsemver "github.com/blang/semver/v4"
	"github.com/invopop/jsonschema"
	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// FileVersion is the profile file format version written by this package.
// Files declaring another major version are rejected.
const FileVersion = "1.0.0"

// File is the serialized form of a Profile. Absent fields keep their
// defaults; a present empty string is a valid marker value.
//
// Example:
//
//	version: 1.0.0
//	null_marker: "<nil>"
//	recursion_marker: "~"
//	wrap_format: "%s#%s{%s}"
//	type_names: qualified
type File struct {
	Version         *string `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"description=Profile file format version (semver)"`
	NullMarker      *string `yaml:"null_marker,omitempty" json:"null_marker,omitempty" jsonschema:"description=Printed for absent values"`
	RecursionMarker *string `yaml:"recursion_marker,omitempty" json:"recursion_marker,omitempty" jsonschema:"description=Printed when a reference cycle is cut"`
	EmptyMarker     *string `yaml:"empty_marker,omitempty" json:"empty_marker,omitempty" jsonschema:"description=Printed when no parameter is shown"`
	Delimiter       *string `yaml:"delimiter,omitempty" json:"delimiter,omitempty" jsonschema:"description=Separator between name/value pairs"`
	NameValueFormat *string `yaml:"name_value_format,omitempty" json:"name_value_format,omitempty" jsonschema:"description=fmt template with two string verbs: name and value"`
	ValueFormat     *string `yaml:"value_format,omitempty" json:"value_format,omitempty" jsonschema:"description=fmt template with one string verb used to quote values"`
	WrapFormat      *string `yaml:"wrap_format,omitempty" json:"wrap_format,omitempty" jsonschema:"description=fmt template with three string verbs: type name and hash and parameters"`
	TypeNames       *string `yaml:"type_names,omitempty" json:"type_names,omitempty" jsonschema:"enum=simple,enum=qualified,description=Type naming style"`
}

// Profile converts f into a Profile, reporting every invalid field.
func (f File) Profile() (Profile, error) {
	p := Default()
	c := rxmerr.NewCollector()
	apply := func(v *string, set func(string) error) {
		if v == nil {
			return
		}
		if err := set(*v); err != nil {
			c.Append(err)
		}
	}

	apply(f.Version, checkVersion)
	apply(f.NullMarker, p.SetNullMarker)
	apply(f.RecursionMarker, p.SetRecursionMarker)
	apply(f.EmptyMarker, p.SetEmptyMarker)
	apply(f.Delimiter, p.SetDelimiter)
	apply(f.NameValueFormat, p.SetNameValueFormat)
	apply(f.ValueFormat, p.SetValueFormat)
	apply(f.WrapFormat, p.SetWrapFormat)
	apply(f.TypeNames, func(s string) error {
		style, ok := naming.ParseStyle(s)
		if !ok {
			return &errors.ValidationError{Type: "File", Field: "type_names", Reason: "unknown naming style " + s, Value: s}
		}
		return p.SetTypeName(style.Func())
	})

	return p, c.Err()
}

// checkVersion accepts any semver with the major version of FileVersion. A
// leading "v" is allowed.
func checkVersion(s string) error {
	v, err := bsemver.Parse(strings.TrimPrefix(s, "v"))
	if err != nil {
		return &errors.ValidationError{Type: "File", Field: "version", Reason: err.Error(), Value: s}
	}
	if v.Major != bsemver.MustParse(FileVersion).Major {
		return &errors.ValidationError{Type: "File", Field: "version", Reason: "unsupported major version, want " + FileVersion, Value: s}
	}
	return nil
}

// LoadYAML decodes a profile from YAML. Unknown keys are rejected. An empty
// document yields the default profile.
func LoadYAML(data []byte) (Profile, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	p, err := f.Profile()
	if err != nil {
		return Profile{}, fmt.Errorf("profile is invalid: %w", err)
	}
	return p, nil
}

// LoadFile reads and decodes a YAML profile file.
func LoadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("cannot read profile %s: %w", path, err)
	}
	return LoadYAML(data)
}

// envFile mirrors File for envdecode, which fills plain fields only.
type envFile struct {
	NullMarker      string `env:"DXPARAM_NULL_MARKER"`
	RecursionMarker string `env:"DXPARAM_RECURSION_MARKER"`
	EmptyMarker     string `env:"DXPARAM_EMPTY_MARKER"`
	Delimiter       string `env:"DXPARAM_DELIMITER"`
	NameValueFormat string `env:"DXPARAM_NAME_VALUE_FORMAT"`
	ValueFormat     string `env:"DXPARAM_VALUE_FORMAT"`
	WrapFormat      string `env:"DXPARAM_WRAP_FORMAT"`
	TypeNames       string `env:"DXPARAM_TYPE_NAMES"`
}

// FromEnv builds a profile from DXPARAM_* environment variables. Unset or
// empty variables keep their defaults, so an empty marker cannot be set
// through the environment.
func FromEnv() (Profile, error) {
	e := envFile{
		NullMarker:      DefaultNullMarker,
		RecursionMarker: DefaultRecursionMarker,
		EmptyMarker:     DefaultEmptyMarker,
		Delimiter:       DefaultDelimiter,
		NameValueFormat: DefaultNameValueFormat,
		ValueFormat:     DefaultValueFormat,
		WrapFormat:      DefaultWrapFormat,
		TypeNames:       naming.SimpleStr,
	}
	if err := envdecode.Decode(&e); err != nil && !stderrors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Profile{}, fmt.Errorf("cannot decode environment: %w", err)
	}

	p, err := File{
		NullMarker:      &e.NullMarker,
		RecursionMarker: &e.RecursionMarker,
		EmptyMarker:     &e.EmptyMarker,
		Delimiter:       &e.Delimiter,
		NameValueFormat: &e.NameValueFormat,
		ValueFormat:     &e.ValueFormat,
		WrapFormat:      &e.WrapFormat,
		TypeNames:       &e.TypeNames,
	}.Profile()
	if err != nil {
		return Profile{}, fmt.Errorf("profile is invalid: %w", err)
	}
	return p, nil
}

// Schema returns the JSON schema of File, for editors and config linters.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(&File{})
	s.Title = "dxparam formatting profile"
	return json.MarshalIndent(s, "", "  ")
}
