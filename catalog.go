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
	"fmt"
	"sort"
	"sync"

	"dirpx.dev/attrs/apis"
)

// Catalog is a named set of classes. It resolves named embedded references
// (types.Ref) for the classes declared through it.
type Catalog struct {
	mu      sync.RWMutex
	classes map[string]*Class
	opts    []ClassOption
}

var _ apis.Catalog = (*Catalog)(nil)

// NewCatalog creates an empty catalog. opts are applied to every class
// created with Define.
func NewCatalog(opts ...ClassOption) *Catalog {
	return &Catalog{classes: make(map[string]*Class), opts: opts}
}

// Define creates a class named name that resolves named references against
// the catalog, and adds it.
func (k *Catalog) Define(name string, opts ...ClassOption) (*Class, error) {
	all := make([]ClassOption, 0, len(k.opts)+len(opts)+1)
	all = append(all, k.opts...)
	all = append(all, opts...)
	all = append(all, WithCatalog(k))

	c := NewClass(name, all...)
	if err := k.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Add registers c under its name.
func (k *Catalog) Add(c *Class) error {
	if c == nil {
		return ErrNilClass
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.classes[c.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, c.name)
	}
	k.classes[c.name] = c
	return nil
}

// Lookup implements apis.Catalog.
func (k *Catalog) Lookup(name string) (apis.Model, bool) {
	c, ok := k.Class(name)
	if !ok {
		return nil, false
	}
	return c, true
}

// Class returns the class named name.
func (k *Catalog) Class(name string) (*Class, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	c, ok := k.classes[name]
	return c, ok
}

// Names returns the class names in lexical order.
func (k *Catalog) Names() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]string, 0, len(k.classes))
	for n := range k.classes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of classes.
func (k *Catalog) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.classes)
}
