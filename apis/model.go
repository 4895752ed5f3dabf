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

// Model is an attribute-bearing structure that can be embedded as the type
// of another attribute.
type Model interface {
	// Name returns the structure's name.
	Name() string
	// Build constructs a new instance from an attribute-value mapping.
	Build(values map[string]any) (Instance, error)
	// IsInstance reports whether v is already an instance of this structure.
	IsInstance(v any) bool
}

// Instance is a constructed attribute-bearing value.
type Instance interface {
	// Attributes returns a read-only snapshot of the set attribute values.
	Attributes() map[string]any
}

// Catalog resolves embedded structures by name.
type Catalog interface {
	Lookup(name string) (Model, bool)
}
