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

// Package attrs declares typed attributes on classes and builds objects
// from attribute-value mappings.
//
// A Class owns an ordered registry of attribute descriptors. Declaring an
// attribute resolves its type into a coercion strategy once; every later
// assignment runs that strategy. Objects are built with Class.New, updated
// with Object.Set or mass-assigned with Object.SetAttributes.
//
// # Declaring attributes
//
//	person := attrs.NewClass("Person").
//		MustAttribute("name", types.String()).
//		MustAttribute("age", types.Integer(), attrs.Strict(true)).
//		MustAttribute("tags", types.ArrayOf(types.String()), attrs.Default([]any{}))
//
//	p, err := person.New(map[string]any{"name": "Ada", "age": "36"})
//	// p.Attributes() == map[string]any{"name": "Ada", "age": 36, "tags": []any{}}
//
// Type references come from package types: primitives resolved by tag
// against the coercer registry (see RegisterCoercer), sequences and
// mappings whose elements are resolved recursively, embedded classes
// (types.Embed, or types.Ref resolved against a Catalog), concrete Go types
// (types.Of) and custom coercers.
//
// Declaration errors surface immediately: reserved names fail with
// *apis.InvalidAttributeNameError, unresolvable types with
// *apis.UnknownAttributeTypeError. A failed declaration leaves the class
// unchanged.
//
// # Strictness
//
// By default a value that cannot be coerced is kept as the best-effort
// result of the strategy (often the raw value). Strict attributes instead
// fail the call with *apis.CoercionError; construction is all-or-nothing.
//
// # Mass assignment
//
// SetAttributes writes a key only when "key=" is in the class' allowed
// writer set and the key is a declared attribute. Everything else is
// skipped without error. The allowed set is the public writers of the
// class minus a fixed denylist (==, !=, ===, []=, attributes=), cached per
// class and invalidated on every declaration.
//
// # Value objects
//
// Class.Values activates value-object mode: later declarations get private
// writers, SetAttributes becomes private and objects compare by value
// (Object.Equal, Object.Hash). Equality always uses the attributes declared
// at comparison time. Activation happens at most once per class.
//
// # Defaults
//
// Classes pick up process-wide defaults at creation: configuration
// (SetConfig), builder (SetBuilder), the shared coercer registry and the
// default catalog. The defaults are published through an atomic snapshot,
// so reads never block.
package attrs
