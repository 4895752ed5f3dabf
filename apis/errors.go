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

package apis

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAttributeName is matched by *InvalidAttributeNameError.
	ErrInvalidAttributeName = errors.New("invalid attribute name")
	// ErrUnknownAttributeType is matched by *UnknownAttributeTypeError.
	ErrUnknownAttributeType = errors.New("unknown attribute type")
	// ErrCoercion is matched by *CoercionError.
	ErrCoercion = errors.New("coercion failed")
)

// InvalidAttributeNameError is a declaration-time error for reserved or
// empty attribute names.
type InvalidAttributeNameError struct {
	Name string
}

func (e *InvalidAttributeNameError) Error() string {
	if e.Name == "" {
		return "attribute name must not be empty"
	}
	return fmt.Sprintf("%q is not allowed as an attribute name", e.Name)
}

func (e *InvalidAttributeNameError) Is(target error) bool {
	return target == ErrInvalidAttributeName
}

// UnknownAttributeTypeError is a declaration-time error for type references
// that cannot be resolved to a coercion strategy.
type UnknownAttributeTypeError struct {
	Type   string
	Reason string
}

func (e *UnknownAttributeTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unknown attribute type %q: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("unknown attribute type %q", e.Type)
}

func (e *UnknownAttributeTypeError) Is(target error) bool {
	return target == ErrUnknownAttributeType
}

// CoercionError is an assignment-time error raised when a raw value cannot
// be converted to the declared type under strict mode.
type CoercionError struct {
	Attribute string
	Type      string
	Value     any
	Err       error
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("cannot coerce %#v to %s for attribute %q", e.Value, e.Type, e.Attribute)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoercionError) Is(target error) bool {
	return target == ErrCoercion
}

func (e *CoercionError) Unwrap() error { return e.Err }

// NewUnknownAttributeTypeError creates an UnknownAttributeTypeError for t.
func NewUnknownAttributeTypeError(t Type, reason string) error {
	return &UnknownAttributeTypeError{Type: t.String(), Reason: reason}
}

// IsInvalidAttributeName checks if err is an invalid attribute name error.
func IsInvalidAttributeName(err error) bool {
	return errors.Is(err, ErrInvalidAttributeName)
}

// IsUnknownAttributeType checks if err is an unknown attribute type error.
func IsUnknownAttributeType(err error) bool {
	return errors.Is(err, ErrUnknownAttributeType)
}

// IsCoercion checks if err is a coercion error.
func IsCoercion(err error) bool {
	return errors.Is(err, ErrCoercion)
}
