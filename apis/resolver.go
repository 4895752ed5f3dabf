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

// Resolver turns a requested type and options into a concrete descriptor.
// Typical chain: Custom -> Identity -> Primitive -> Collection -> Embedded -> Reflect.
type Resolver interface {
	// Resolve builds the descriptor for name. The injected name is
	// authoritative: a pass-through "name" option never replaces it.
	Resolve(name string, t Type, opts Options) (*Attribute, error)

	// Coercer resolves the coercion strategy for t alone. Strategies use it
	// to resolve element, key and value types recursively. It also returns
	// the name of the strategy that handled t.
	Coercer(t Type, opts Options) (c Coercer, strategy string, err error)
}
