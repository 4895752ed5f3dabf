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

// Coercer converts a raw input value into the representation required by
// a declared type.
type Coercer interface {
	// Coerce returns the converted value. On failure it returns a non-nil
	// error together with the best-effort value (the raw value when nothing
	// better is available), so lenient callers can keep going.
	Coerce(raw any) (any, error)
}

// CoercerFunc adapts a plain function to Coercer.
type CoercerFunc func(raw any) (any, error)

// Coerce calls f(raw).
func (f CoercerFunc) Coerce(raw any) (any, error) { return f(raw) }

// Tunable is implemented by coercers that accept type-specific options
// (the pass-through part of Options). Tune must not mutate the receiver.
type Tunable interface {
	Tune(extra map[string]any) (Coercer, error)
}

// Coercers is a registry of primitive coercers keyed by tag.
type Coercers interface {
	// Register associates tag with c. Re-registering an existing tag fails.
	Register(tag string, c Coercer) error
	// Lookup returns the coercer for tag if present.
	Lookup(tag string) (Coercer, bool)
	// Tags returns the registered tags in lexical order.
	Tags() []string
	// Count returns the number of registered tags.
	Count() int
}
