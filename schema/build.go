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

package schema

import (
	"fmt"

	"dirpx.dev/attrs"
	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/types"
)

// Build declares every class of d in a new catalog. opts apply to every
// root class (classes with extends inherit from their parent).
//
// Classes are declared parents first. Classes referenced by attribute types
// only need to exist, so self-referencing and mutually referencing classes
// are supported; a cycle through extends is an error.
func (d *Document) Build(opts ...attrs.ClassOption) (*attrs.Catalog, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	b := &build{
		cat:   attrs.NewCatalog(opts...),
		specs: make(map[string]*ClassSpec, len(d.Classes)),
		state: make(map[string]int, len(d.Classes)),
	}
	for i := range d.Classes {
		spec := &d.Classes[i]
		b.specs[spec.Name] = spec
		if spec.Extends != "" {
			continue
		}
		var copts []attrs.ClassOption
		if spec.MassAssignment != nil && !*spec.MassAssignment {
			copts = append(copts, attrs.WithoutMassAssignment())
		}
		if _, err := b.cat.Define(spec.Name, copts...); err != nil {
			return nil, err
		}
	}
	for _, spec := range d.Classes {
		if err := b.ensure(spec.Name); err != nil {
			return nil, err
		}
	}
	return b.cat, nil
}

const (
	pending = iota
	visiting
	done
)

type build struct {
	cat   *attrs.Catalog
	specs map[string]*ClassSpec
	state map[string]int
}

// ensure declares the class name and everything it depends on.
func (b *build) ensure(name string) error {
	switch b.state[name] {
	case done:
		return nil
	case visiting:
		return fmt.Errorf("%w: %s", ErrCycle, name)
	}
	b.state[name] = visiting
	spec := b.specs[name]

	if spec.Extends != "" {
		if err := b.ensure(spec.Extends); err != nil {
			return err
		}
		parent, _ := b.cat.Class(spec.Extends)
		if err := b.cat.Add(parent.Subclass(name)); err != nil {
			return err
		}
	}
	c, _ := b.cat.Class(name)

	decls := make([]decl, 0, len(spec.Attributes))
	for _, as := range spec.Attributes {
		d, err := b.decl(spec, as)
		if err != nil {
			return fmt.Errorf("class %s: attribute %s: %w", name, as.Name, err)
		}
		decls = append(decls, d)
	}

	declare := func() error {
		for _, d := range decls {
			if _, err := c.Attribute(d.name, d.typ, d.opts...); err != nil {
				return fmt.Errorf("class %s: attribute %s: %w", name, d.name, err)
			}
		}
		c.AllowWriter(spec.AllowWriters...)
		return nil
	}
	var err error
	if spec.ValueObject && !c.IsValueObject() {
		err = c.Values(func(*attrs.ValueScope) error { return declare() })
	} else {
		err = declare()
	}
	if err != nil {
		return err
	}

	b.state[name] = done
	return nil
}

type decl struct {
	name string
	typ  apis.Type
	opts []attrs.Option
}

// decl parses an attribute entry and makes sure referenced classes exist.
func (b *build) decl(cs *ClassSpec, as AttributeSpec) (decl, error) {
	expr := as.Type
	if expr == "" {
		expr = "any"
	}
	t, err := types.Parse(expr)
	if err != nil {
		return decl{}, err
	}
	for _, ref := range refs(t) {
		if _, ok := b.cat.Class(ref); ok {
			continue
		}
		if _, ok := b.specs[ref]; ok {
			if err := b.ensure(ref); err != nil {
				return decl{}, err
			}
		}
	}

	var opts []attrs.Option
	if cs.Strict != nil {
		opts = append(opts, attrs.Strict(*cs.Strict))
	}
	if as.Writer != "" {
		v, err := visibility(as.Writer)
		if err != nil {
			return decl{}, err
		}
		opts = append(opts, attrs.Writer(v))
	}
	if as.Reader != "" {
		v, err := visibility(as.Reader)
		if err != nil {
			return decl{}, err
		}
		opts = append(opts, attrs.Reader(v))
	}
	if as.Default != nil {
		opts = append(opts, attrs.Default(as.Default))
	}
	if as.Strict != nil {
		opts = append(opts, attrs.Strict(*as.Strict))
	}
	if as.Required != nil {
		opts = append(opts, attrs.Required(*as.Required))
	}
	if as.Coerce != nil {
		opts = append(opts, attrs.Coerce(*as.Coerce))
	}
	if as.NullifyBlank != nil {
		opts = append(opts, attrs.NullifyBlank(*as.NullifyBlank))
	}
	if as.Lazy {
		opts = append(opts, attrs.Lazy(true))
	}
	for k, v := range as.Options {
		opts = append(opts, attrs.Set(k, v))
	}
	return decl{name: as.Name, typ: t, opts: opts}, nil
}

// refs returns the class names referenced by t.
func refs(t apis.Type) []string {
	var out []string
	if t.Kind == apis.KindEmbedded && t.Ref != "" {
		out = append(out, t.Ref)
	}
	if t.Key != nil {
		out = append(out, refs(*t.Key)...)
	}
	if t.Elem != nil {
		out = append(out, refs(*t.Elem)...)
	}
	return out
}

func visibility(s string) (apis.Visibility, error) {
	switch s {
	case "public":
		return apis.Public, nil
	case "private":
		return apis.Private, nil
	}
	return apis.Public, fmt.Errorf("%w: %q", ErrInvalidVisibility, s)
}
