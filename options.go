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
	"dirpx.dev/attrs/apis"
)

// Option configures one attribute declaration.
type Option = apis.Option

// Writer sets the writer visibility.
func Writer(v apis.Visibility) Option {
	return func(o *apis.Options) { o.Writer = v }
}

// Reader sets the reader visibility.
func Reader(v apis.Visibility) Option {
	return func(o *apis.Options) { o.Reader = v }
}

// Default sets a static default value.
func Default(v any) Option {
	return func(o *apis.Options) { o.Default = apis.StaticDefault(v) }
}

// DefaultFunc sets a default producer, evaluated for every instance.
func DefaultFunc(f func() any) Option {
	return func(o *apis.Options) { o.Default = apis.ProducerDefault(f) }
}

// Strict makes coercion failures surface as errors.
func Strict(b bool) Option {
	return func(o *apis.Options) { o.Strict = b }
}

// Required controls whether strict attributes reject nil.
func Required(b bool) Option {
	return func(o *apis.Options) { o.Required = b }
}

// Coerce enables or disables coercion.
func Coerce(b bool) Option {
	return func(o *apis.Options) { o.Coerce = b }
}

// NullifyBlank turns blank strings into nil before coercion.
func NullifyBlank(b bool) Option {
	return func(o *apis.Options) { o.NullifyBlank = b }
}

// Lazy defers the default until the attribute is first read.
func Lazy(b bool) Option {
	return func(o *apis.Options) { o.Lazy = b }
}

// Set passes a type-specific option through to the coercion strategy,
// e.g. Set("format", "email") on a string attribute.
func Set(key string, value any) Option {
	return func(o *apis.Options) {
		if o.Extra == nil {
			o.Extra = make(map[string]any)
		}
		o.Extra[key] = value
	}
}
