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

package registry

import (
	"errors"
	"slices"
	"sync"

	"dirpx.dev/attrs/apis"
)

var (
	// ErrNilCoercer is returned when a nil coercer is provided.
	ErrNilCoercer = errors.New("attrs(registry): nil coercer provided")
	// ErrConflictingRegistration indicates an attempt to re-register a tag.
	ErrConflictingRegistration = errors.New("attrs(registry): conflicting coercer registration")
)

// NewCoercers constructs an empty primitive coercer registry.
func NewCoercers() apis.Coercers {
	return &coercers{}
}

// coercers is a Coercers implementation backed by sync.Map.
type coercers struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps tag to apis.Coercer.
	m sync.Map // map[string]apis.Coercer
	// count tracks the number of registered entries.
	count int
}

// Register associates tag with c. Tags are registered once.
func (r *coercers) Register(tag string, c apis.Coercer) error {
	// Validate inputs early.
	if tag == "" {
		return ErrEmptyName
	}
	if c == nil {
		return ErrNilCoercer
	}

	// Fast read path: conflict check without locking.
	if _, ok := r.m.Load(tag); ok {
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, ok := r.m.Load(tag); ok {
		return ErrConflictingRegistration
	}

	r.m.Store(tag, c)
	r.count++
	return nil
}

// Lookup returns the coercer for tag if present.
func (r *coercers) Lookup(tag string) (apis.Coercer, bool) {
	if v, ok := r.m.Load(tag); ok {
		return v.(apis.Coercer), true
	}
	return nil, false
}

// Tags returns the registered tags in lexical order.
func (r *coercers) Tags() []string {
	tags := make([]string, 0, r.Count())
	r.m.Range(func(key, _ any) bool {
		tags = append(tags, key.(string))
		return true
	})
	slices.Sort(tags)
	return tags
}

// Count returns the number of registered tags.
func (r *coercers) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
