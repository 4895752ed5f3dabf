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

import "maps"

// Visibility of a generated reader or writer.
type Visibility uint8

const (
	// Public accessors are callable from outside the class.
	Public Visibility = iota
	// Private accessors are only used by the class itself (constructor,
	// defaults).
	Private
)

// String returns "public" or "private".
func (v Visibility) String() string {
	if v == Private {
		return "private"
	}
	return "public"
}

// Default is an optional default-value policy: a static value or a
// zero-argument producer.
type Default struct {
	value    any
	producer func() any
	set      bool
}

// StaticDefault returns a Default that always yields v.
func StaticDefault(v any) Default {
	return Default{value: v, set: true}
}

// ProducerDefault returns a Default evaluating f on every use.
// A nil f yields an unset Default.
func ProducerDefault(f func() any) Default {
	if f == nil {
		return Default{}
	}
	return Default{producer: f, set: true}
}

// IsSet reports whether a default was configured.
func (d Default) IsSet() bool { return d.set }

// Evaluate returns the default value (nil when unset).
func (d Default) Evaluate() any {
	if d.producer != nil {
		return d.producer()
	}
	return d.value
}

// Options are the per-attribute behavioral settings.
type Options struct {
	// Writer is the visibility of the attribute writer.
	Writer Visibility
	// Reader is the visibility of the attribute reader.
	Reader Visibility
	// Default applies when no value is supplied at construction.
	Default Default
	// Strict makes coercion failures surface as errors.
	Strict bool
	// Required rejects nil values in strict mode.
	Required bool
	// Coerce disables coercion entirely when false.
	Coerce bool
	// NullifyBlank turns blank strings into nil before coercion.
	NullifyBlank bool
	// Lazy defers default evaluation to the first read.
	Lazy bool
	// Extra holds unrecognized, type-specific options passed through to
	// the coercion strategy.
	Extra map[string]any
}

// Option mutates Options during attribute declaration.
type Option func(*Options)

// NewOptions seeds Options from cfg and applies opts in order.
func NewOptions(cfg Config, opts ...Option) Options {
	o := Options{
		Strict:       cfg.Strict,
		Required:     cfg.Required,
		Coerce:       cfg.Coerce,
		NullifyBlank: cfg.NullifyBlank,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Clone returns a copy of o that does not share Extra.
func (o Options) Clone() Options {
	if o.Extra != nil {
		o.Extra = maps.Clone(o.Extra)
	}
	return o
}
