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

package attrs

import (
	"errors"

	"dirpx.dev/attrs/apis"
)

var (
	// ErrPrivateMethod is returned when the bulk mutator is called on a
	// class where it is not public (value objects, WithoutMassAssignment).
	ErrPrivateMethod = errors.New("attrs: private method called")
	// ErrPrivateWriter is returned by Set for attributes with a private writer.
	ErrPrivateWriter = errors.New("attrs: private writer called")
	// ErrUnknownAttribute is returned for names that are not declared.
	ErrUnknownAttribute = errors.New("attrs: unknown attribute")
	// ErrNoMethod is returned by Invoke for unknown writer methods.
	ErrNoMethod = errors.New("attrs: undefined writer method")
	// ErrAlreadyValueObject is returned when value-object mode is activated twice.
	ErrAlreadyValueObject = errors.New("attrs: class is already a value object")
	// ErrWriterConflict is returned when a custom writer would replace an
	// attribute writer.
	ErrWriterConflict = errors.New("attrs: writer is already defined by an attribute")
	// ErrDuplicateClass is returned when a catalog already holds a class name.
	ErrDuplicateClass = errors.New("attrs: class already defined")
	// ErrNilClass is returned when a nil class is added to a catalog.
	ErrNilClass = errors.New("attrs: nil class")
)

// ReservedNames can never be declared as attributes.
var ReservedNames = []string{"attributes"}

// validateName rejects reserved and malformed attribute names.
func validateName(name string) error {
	if name == "" {
		return &apis.InvalidAttributeNameError{Name: name}
	}
	for _, r := range ReservedNames {
		if name == r {
			return &apis.InvalidAttributeNameError{Name: name}
		}
	}
	for i := 0; i < len(name); i++ {
		if name[i] == apis.WriterSuffix[0] {
			return &apis.InvalidAttributeNameError{Name: name}
		}
	}
	return nil
}
