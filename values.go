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
	"maps"
	"slices"
	"strings"

	"dirpx.dev/attrs/apis"
)

// ValueScope is the declaration scope of a Values block.
type ValueScope struct {
	c *Class
}

// Attribute declares an attribute. Unless Writer(apis.Public) is given, its
// writer is private.
func (s *ValueScope) Attribute(name string, t apis.Type, opts ...Option) error {
	_, err := s.c.Attribute(name, t, opts...)
	return err
}

// MustAttribute is like Attribute but panics on error.
func (s *ValueScope) MustAttribute(name string, t apis.Type, opts ...Option) *ValueScope {
	s.c.MustAttribute(name, t, opts...)
	return s
}

// AllowWriter exempts writers from value-object privacy. See Class.AllowWriter.
func (s *ValueScope) AllowWriter(names ...string) {
	s.c.AllowWriter(names...)
}

// AllowWriter exempts the writers of names from private visibility: Set
// accepts them and the policy lists them as allowed. Names may be given with
// or without the writer suffix.
func (c *Class) AllowWriter(names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range names {
		if n == "" {
			continue
		}
		if !strings.HasSuffix(n, apis.WriterSuffix) {
			n += apis.WriterSuffix
		}
		if !slices.Contains(c.exempt, n) {
			c.exempt = append(c.exempt, n)
		}
	}
	c.policy.Invalidate(c.id)
}

// Values switches c to value-object mode and runs block, if any, to declare
// its attributes.
//
// Activation makes every later declaration default to a private writer,
// makes the bulk mutator private and derives equality and hashing from the
// attribute values. Attributes declared before activation keep their
// visibility. Equality always reflects the attributes declared at comparison
// time.
//
// Values fails with ErrAlreadyValueObject if the mode is already active. If
// block fails, the class is restored to its state before the call.
func (c *Class) Values(block func(v *ValueScope) error) error {
	c.mu.Lock()
	if c.valueObject {
		c.mu.Unlock()
		return ErrAlreadyValueObject
	}
	snapshot := c.reg.Entries()
	writers := c.writers
	exempt := slices.Clone(c.exempt)
	massAssign := c.massAssign

	c.valueObject = true
	c.privateWriters = true
	c.massAssign = false
	c.writers = maps.Clone(writers)
	c.policy.Invalidate(c.id)
	c.mu.Unlock()

	if block == nil {
		c.log.Debug("value object activated")
		return nil
	}
	if err := block(&ValueScope{c: c}); err != nil {
		c.mu.Lock()
		c.reg.Reset()
		for _, a := range snapshot {
			_ = c.reg.Add(a)
		}
		c.writers = writers
		c.exempt = exempt
		c.massAssign = massAssign
		c.valueObject = false
		c.privateWriters = false
		c.policy.Invalidate(c.id)
		c.mu.Unlock()
		return err
	}

	c.log.Debug("value object activated", "attributes", c.reg.Count())
	return nil
}
