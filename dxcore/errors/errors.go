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

// Package errors provides the error types shared by every dxparam package.
//
// The errors in this package are simple value carriers with stable message
// formats. They are designed to be:
//
//   - easy to construct from builder, profile and codec code,
//   - easy to recognize via errors.As,
//   - and easy for users to understand when surfaced in logs or diagnostics.
//
// All of them describe construction or configuration mistakes. None of them
// is transient, so callers should surface them rather than retry.
//
// # Error Types
//
//   - NullArgumentError
//     A required argument was absent (nil owner, nil accessor, empty name).
//
//   - DuplicateNameError / UnknownNameError
//     A descriptor list builder was asked to add a name that already exists,
//     or to update/remove a name that does not exist.
//
//   - PolicyNotAllowedError
//     A descriptor carries a usage policy that the active policy guard
//     rejects.
//
//   - InvalidFormatTemplateError
//     A formatting profile template does not accept its documented slots.
//
//   - ParseError, MarshalError, UnmarshalError
//     Codec failures of enum-like values such as policy.Usage.
//
//   - ValidationError
//     A composite value (for example a profile file) failed validation.
//
// # Usage
//
//	if err := b.Add(p); err != nil {
//	    var dup *errors.DuplicateNameError
//	    if stderrors.As(err, &dup) {
//	        // ...
//	    }
//	}
package errors

import "strconv"

// NullArgumentError is returned when a required argument is absent.
//
// Position is the 1-based position of the argument in the failing call,
// Name is the parameter name and Operation names the call that rejected it
// (for example "Param.Get" or "Builder.Add").
type NullArgumentError struct {
	// Position is the 1-based argument position.
	Position int

	// Name is the name of the missing argument.
	Name string

	// Operation is the operation that required the argument.
	Operation string
}

// Error implements the error interface for NullArgumentError.
//
// The error message format is:
//
//	"dxparam: {Operation}: argument {Position} ({Name}) must not be nil"
func (e *NullArgumentError) Error() string {
	return "dxparam: " + e.Operation + ": argument " + strconv.Itoa(e.Position) + " (" + e.Name + ") must not be nil"
}

// DuplicateNameError is returned when a descriptor name is added twice to
// the same descriptor list, or when a registry already holds a list for a
// type.
type DuplicateNameError struct {
	// Type is the owner type name.
	Type string

	// Name is the conflicting descriptor name.
	Name string
}

// Error implements the error interface for DuplicateNameError.
//
// The error message format is:
//
//	"dxparam: duplicate name {Name} in {Type}"
func (e *DuplicateNameError) Error() string {
	return "dxparam: duplicate name " + strconv.Quote(e.Name) + " in " + e.Type
}

// UnknownNameError is returned when a descriptor list builder is asked to
// update or remove a name it does not contain.
type UnknownNameError struct {
	// Type is the owner type name.
	Type string

	// Name is the name that was not found.
	Name string
}

// Error implements the error interface for UnknownNameError.
//
// The error message format is:
//
//	"dxparam: unknown name {Name} in {Type}"
func (e *UnknownNameError) Error() string {
	return "dxparam: unknown name " + strconv.Quote(e.Name) + " in " + e.Type
}

// PolicyNotAllowedError is returned when a descriptor's usage policy is not
// permitted by the guard of the builder it is added to.
//
// The usual cause is a policy that can break the equality/hash contract
// (for example "included in equals, ignored for hash") added under the
// default safe-only guard.
type PolicyNotAllowedError struct {
	// Type is the owner type name.
	Type string

	// Name is the descriptor name.
	Name string

	// Usage is the textual form of the rejected usage policy.
	Usage string

	// Guard is the textual form of the active guard.
	Guard string
}

// Error implements the error interface for PolicyNotAllowedError.
//
// The error message format is:
//
//	"dxparam: {Type}.{Name}: usage {Usage} not allowed by guard {Guard}"
func (e *PolicyNotAllowedError) Error() string {
	return "dxparam: " + e.Type + "." + e.Name + ": usage " + e.Usage + " not allowed by guard " + e.Guard
}

// InvalidFormatTemplateError is returned when a formatting profile template
// does not accept the number or kind of slots documented for its option.
type InvalidFormatTemplateError struct {
	// Option is the profile option being set (for example "NameValueFormat").
	Option string

	// Template is the rejected template string.
	Template string

	// Slots is the number of string slots the option requires.
	Slots int

	// Reason explains the mismatch.
	Reason string
}

// Error implements the error interface for InvalidFormatTemplateError.
//
// The error message format is:
//
//	"dxparam: invalid {Option} template {Template} (want {Slots} slots): {Reason}"
func (e *InvalidFormatTemplateError) Error() string {
	return "dxparam: invalid " + e.Option + " template " + strconv.Quote(e.Template) +
		" (want " + strconv.Itoa(e.Slots) + " slots): " + e.Reason
}

// ParseError is returned when parsing a string into a strongly typed enum-like
// value fails.
//
// Type identifies the logical type being parsed (for example, "Usage" or
// "Guard"), and Value contains the exact string that could not be
// interpreted.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Usage").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxparam: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "dxparam: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails due to it being
// outside the set of valid constants.
//
// In most cases a MarshalError indicates a programming error, such as a
// numeric conversion that produced a value no constant corresponds to.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxparam: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "dxparam: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Data keeps the raw payload for callers that want to log it; it is not part
// of the formatted message.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxparam: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "dxparam: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a composite value fails.
//
// Field optionally identifies which field failed validation and Value
// optionally carries the offending value.
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxparam: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxparam: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxparam: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxparam: invalid " + e.Type + ": " + e.Reason
}
