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
	"iter"
	"slices"
	"sync"

	"dirpx.dev/attrs/apis"
)

var (
	// ErrNilAttribute is returned when a nil descriptor is provided.
	ErrNilAttribute = errors.New("attrs(registry): nil attribute provided")
	// ErrEmptyName is returned when a descriptor or tag has an empty name.
	ErrEmptyName = errors.New("attrs(registry): empty name provided")
)

// New constructs an empty, insertion-ordered attribute Registry.
func New() apis.Registry {
	return &attributeSet{index: make(map[string]int)}
}

// attributeSet is a Registry backed by a slice (order) and an index map.
type attributeSet struct {
	// mu guards attrs and index.
	mu sync.RWMutex
	// attrs holds descriptors in declaration order.
	attrs []*apis.Attribute
	// index maps attribute name to its position in attrs.
	index map[string]int
}

// Add stores attr; an existing name is overwritten in place.
func (s *attributeSet) Add(attr *apis.Attribute) error {
	if attr == nil {
		return ErrNilAttribute
	}
	if attr.Name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[attr.Name]; ok {
		s.attrs[i] = attr
		return nil
	}
	s.index[attr.Name] = len(s.attrs)
	s.attrs = append(s.attrs, attr)
	return nil
}

// Lookup returns the descriptor for name if present.
func (s *attributeSet) Lookup(name string) (*apis.Attribute, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.attrs[i], true
}

// Names returns attribute names in declaration order.
func (s *attributeSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		names[i] = a.Name
	}
	return names
}

// All iterates over a snapshot taken when iteration starts.
func (s *attributeSet) All() iter.Seq[*apis.Attribute] {
	return func(yield func(*apis.Attribute) bool) {
		for _, a := range s.Entries() {
			if !yield(a) {
				return
			}
		}
	}
}

// Entries returns a snapshot of the descriptors in declaration order.
func (s *attributeSet) Entries() []*apis.Attribute {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.attrs)
}

// Count returns the number of declared attributes.
func (s *attributeSet) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.attrs)
}

// Reset clears all declared attributes.
func (s *attributeSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = nil
	s.index = make(map[string]int)
}
