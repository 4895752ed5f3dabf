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
	"sync"
	"sync/atomic"

	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/builder"
	"dirpx.dev/attrs/coerce"
	"dirpx.dev/attrs/config"
	"dirpx.dev/attrs/registry"
)

// init initializes the global defaults.
func init() {
	st.Store(defaultState())
}

var (
	// ErrNilCoercers is returned when a nil coercer registry is installed.
	ErrNilCoercers = errors.New("attrs: nil coercer registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("attrs: builder returned nil resolver")
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("attrs: builder returned nil registry")
)

// state is the read-mostly snapshot of process-wide defaults picked up by
// NewClass. Classes copy what they need at creation; later changes never
// reach existing classes, except for coercers registered into the shared
// coercer registry.
type state struct {
	cfg      apis.Config
	bld      apis.Builder
	coercers apis.Coercers
	catalog  *Catalog
}

var (
	// st holds the current snapshot.
	st atomic.Pointer[state]
	// buildMu serializes writers.
	buildMu sync.Mutex
)

func defaultState() *state {
	cs := registry.NewCoercers()
	if err := coerce.RegisterBuiltins(cs); err != nil {
		panic(err)
	}
	return &state{
		cfg:      config.DefaultConfig(),
		bld:      builder.New(),
		coercers: cs,
		catalog:  NewCatalog(),
	}
}

// Config returns the default configuration of new classes.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the default configuration of new classes.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: cfg, bld: old.bld, coercers: old.coercers, catalog: old.catalog})
}

// Builder returns the default builder of new classes.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the default builder of new classes. Nil is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, bld: b, coercers: old.coercers, catalog: old.catalog})
}

// Coercers returns the shared primitive coercer registry.
func Coercers() apis.Coercers {
	return st.Load().coercers
}

// RegisterCoercer adds a primitive coercer under tag to the shared registry.
// Classes resolve primitive tags at declaration time, so the coercer is
// available to every class declared afterwards.
func RegisterCoercer(tag string, c apis.Coercer) error {
	return st.Load().coercers.Register(tag, c)
}

// DefaultCatalog returns the catalog used by classes created without
// WithCatalog.
func DefaultCatalog() *Catalog {
	return st.Load().catalog
}

// SetAll explicitly sets all global defaults.
//
// Nil arguments leave the corresponding component unchanged.
func SetAll(cfg *apis.Config, bld apis.Builder, coercers apis.Coercers, catalog *Catalog) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	if coercers != nil {
		next.coercers = coercers
	}
	if catalog != nil {
		next.catalog = catalog
	}
	st.Store(&next)
}

// Reset restores the built-in defaults: default config and builder, a fresh
// coercer registry with the built-in coercers and an empty default catalog.
func Reset() {
	buildMu.Lock()
	defer buildMu.Unlock()

	st.Store(defaultState())
}
