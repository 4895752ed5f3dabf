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

package schema

// Document is a set of class declarations.
type Document struct {
	Classes []ClassSpec `yaml:"classes"`
}

// ClassSpec declares one class.
type ClassSpec struct {
	Name string `yaml:"name"`
	// Extends names a class of the same document to derive from.
	Extends string `yaml:"extends,omitempty"`
	// ValueObject activates value-object mode; Attributes are then declared
	// inside the activation block.
	ValueObject bool `yaml:"value_object,omitempty"`
	// AllowWriters lists writers exempted from value-object privacy.
	AllowWriters []string `yaml:"allow_writers,omitempty"`
	// Strict is the default strictness of the class' attributes.
	Strict *bool `yaml:"strict,omitempty"`
	// MassAssignment disables SetAttributes when false. Subclasses inherit
	// the setting of their parent.
	MassAssignment *bool `yaml:"mass_assignment,omitempty"`

	Attributes []AttributeSpec `yaml:"attributes"`
}

// AttributeSpec declares one attribute.
type AttributeSpec struct {
	Name string `yaml:"name"`
	// Type is a type expression; empty means any.
	Type         string         `yaml:"type,omitempty"`
	Default      any            `yaml:"default,omitempty"`
	Writer       string         `yaml:"writer,omitempty"`
	Reader       string         `yaml:"reader,omitempty"`
	Strict       *bool          `yaml:"strict,omitempty"`
	Required     *bool          `yaml:"required,omitempty"`
	Coerce       *bool          `yaml:"coerce,omitempty"`
	NullifyBlank *bool          `yaml:"nullify_blank,omitempty"`
	Lazy         bool           `yaml:"lazy,omitempty"`
	Options      map[string]any `yaml:"options,omitempty"`
}
