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
	"strings"
)

// WriterSuffix turns an attribute name into its writer method name.
const WriterSuffix = "="

// ErrNilValue is the cause of a CoercionError raised for a nil value on a
// strict, required attribute.
var ErrNilValue = errors.New("nil value for required attribute")

// Attribute is the immutable descriptor of one declared attribute.
// Descriptors are produced by a Resolver and never mutated afterwards.
type Attribute struct {
	// Name is unique within the owning Registry.
	Name string
	// Type is the declared type reference.
	Type Type
	// Coercer is the strategy resolved at declaration time.
	Coercer Coercer
	// Strategy names the strategy that produced Coercer.
	Strategy string

	Options
}

// WriterName returns the writer method name ("name=").
func (a *Attribute) WriterName() string { return a.Name + WriterSuffix }

// Convert runs the coercion strategy without applying the strictness
// policy. On failure it returns the best-effort value and a *CoercionError.
func (a *Attribute) Convert(raw any) (any, error) {
	if a.NullifyBlank {
		if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
			raw = nil
		}
	}
	if raw == nil {
		if a.Required && a.Strict {
			return nil, a.fail(nil, ErrNilValue)
		}
		return nil, nil
	}
	if a.Coercer == nil {
		return raw, nil
	}
	v, err := a.Coercer.Coerce(raw)
	if err != nil {
		return v, a.fail(raw, err)
	}
	return v, nil
}

// Apply converts raw and applies the strictness policy. Strict attributes
// return the *CoercionError as err. Lenient ones return the best-effort
// value and report the swallowed *CoercionError as absorbed.
func (a *Attribute) Apply(raw any) (v any, absorbed, err error) {
	v, cerr := a.Convert(raw)
	if cerr == nil {
		return v, nil, nil
	}
	if a.Strict {
		return nil, nil, cerr
	}
	return v, cerr, nil
}

// DefaultValue evaluates the default policy. ok is false when none is set.
func (a *Attribute) DefaultValue() (v any, ok bool) {
	if !a.Default.IsSet() {
		return nil, false
	}
	return a.Default.Evaluate(), true
}

func (a *Attribute) fail(raw any, err error) error {
	return &CoercionError{Attribute: a.Name, Type: a.Type.String(), Value: raw, Err: err}
}
