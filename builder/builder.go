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

package builder

import (
	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/registry"
	"dirpx.dev/attrs/resolver"
	"dirpx.dev/attrs/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry. If a pre-existing
// registry is provided, its descriptors are copied into the new registry in
// their declaration order. Descriptors are immutable, so sharing them with
// the previous registry is safe.
func (b *builder) BuildRegistry(_ apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New()
	if preg != nil {
		for _, a := range preg.Entries() {
			_ = nreg.Add(a)
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver over the provided
// primitive coercers and catalog. Strategies are tried in this order:
// custom, identity, primitive, collection, embedded, reflect.
func (b *builder) BuildResolver(cfg apis.Config, coercers apis.Coercers, catalog apis.Catalog, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewCustomStrategy(),
		strategy.NewIdentityStrategy(),
		strategy.NewPrimitiveStrategy(coercers),
		strategy.NewCollectionStrategy(),
		strategy.NewEmbeddedStrategy(catalog),
		strategy.NewReflectStrategy(cfg),
	)
}
