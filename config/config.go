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

package config

import (
	"log/slog"

	"dirpx.dev/attrs/apis"
)

const (
	// DefaultStrict represents the default for Strict.
	// Lenient attributes keep the best-effort value when coercion fails.
	DefaultStrict = false
	// DefaultRequired represents the default for Required.
	// Only consulted for strict attributes.
	DefaultRequired = true
	// DefaultCoerce represents the default for Coerce.
	DefaultCoerce = true
	// DefaultNullifyBlank represents the default for NullifyBlank.
	DefaultNullifyBlank = false
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.Logger == nil {
		cfg.Logger = discard
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Strict:       DefaultStrict,
		Required:     DefaultRequired,
		Coerce:       DefaultCoerce,
		NullifyBlank: DefaultNullifyBlank,
		MaxUnwrap:    DefaultMaxUnwrap,
		Logger:       discard,
	}
}

// discard is shared so that default configs stay comparable with ==.
var discard = slog.New(slog.DiscardHandler)

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithStrict sets the Strict option.
func WithStrict(strict bool) Option {
	return func(c *apis.Config) {
		c.Strict = strict
	}
}

// WithRequired sets the Required option.
func WithRequired(required bool) Option {
	return func(c *apis.Config) {
		c.Required = required
	}
}

// WithCoerce sets the Coerce option.
func WithCoerce(coerce bool) Option {
	return func(c *apis.Config) {
		c.Coerce = coerce
	}
}

// WithNullifyBlank sets the NullifyBlank option.
func WithNullifyBlank(nullify bool) Option {
	return func(c *apis.Config) {
		c.NullifyBlank = nullify
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithLogger sets the Logger option. A nil logger discards records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *apis.Config) {
		if logger == nil {
			logger = discard
		}
		c.Logger = logger
	}
}

// Logger returns cfg.Logger, or a discarding logger when unset.
func Logger(cfg apis.Config) *slog.Logger {
	if cfg.Logger == nil {
		return discard
	}
	return cfg.Logger
}
