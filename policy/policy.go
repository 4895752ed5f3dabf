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

// Package policy computes which writer methods mass assignment may invoke.
//
// The allowed set of a class is derived from its writer table: every public
// writer, minus a fixed denylist of operator and bulk-mutator names, plus an
// explicit exemption list. Results are cached per class and must be
// invalidated whenever the writer table changes.
package policy

import (
	"slices"
	"sort"

	gocache "github.com/patrickmn/go-cache"

	"dirpx.dev/attrs/apis"
)

// Denied writer names are never callable through mass assignment, whatever
// their visibility.
var Denied = []string{"==", "!=", "===", "[]=", "attributes="}

// Method is a writer method of a class.
type Method struct {
	Name       string
	Visibility apis.Visibility
}

// Source describes the writer table of a class.
// Implementations are read synchronously by Allowed and must not change
// while it runs.
type Source interface {
	// ID identifies the class in the cache.
	ID() string
	// WriterMethods lists every writer method ("name=") of the class.
	WriterMethods() []Method
	// Exemptions lists writers that stay allowed regardless of visibility.
	Exemptions() []string
}

// Set is an immutable set of allowed writer names.
type Set struct {
	names map[string]struct{}
}

// Has reports whether writer is allowed.
func (s Set) Has(writer string) bool {
	_, ok := s.names[writer]
	return ok
}

// Names returns the allowed writer names in lexical order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of allowed writers.
func (s Set) Len() int { return len(s.names) }

// Policy caches allowed-writer sets per class.
type Policy struct {
	cache *gocache.Cache
}

// New creates a Policy with an empty, non-expiring cache.
func New() *Policy {
	return &Policy{cache: gocache.New(gocache.NoExpiration, 0)}
}

// Allowed returns the allowed-writer set of src, computing and caching it on
// first use.
func (p *Policy) Allowed(src Source) Set {
	id := src.ID()
	if v, ok := p.cache.Get(id); ok {
		if s, ok := v.(Set); ok {
			return s
		}
	}
	s := Compute(src)
	p.cache.Set(id, s, gocache.NoExpiration)
	return s
}

// Invalidate drops the cached set of the class identified by id.
func (p *Policy) Invalidate(id string) {
	p.cache.Delete(id)
}

// Cached reports whether a set is cached for id.
func (p *Policy) Cached(id string) bool {
	_, ok := p.cache.Get(id)
	return ok
}

// Flush drops every cached set.
func (p *Policy) Flush() {
	p.cache.Flush()
}

// Compute derives the allowed-writer set of src without caching.
func Compute(src Source) Set {
	names := make(map[string]struct{})
	for _, m := range src.WriterMethods() {
		if m.Visibility == apis.Public {
			names[m.Name] = struct{}{}
		}
	}
	for _, n := range src.Exemptions() {
		names[n] = struct{}{}
	}
	for n := range names {
		if slices.Contains(Denied, n) {
			delete(names, n)
		}
	}
	return Set{names: names}
}
