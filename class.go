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
	"iter"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/config"
	"dirpx.dev/attrs/policy"
)

// bulkWriter is the writer name of the mass-assignment mutator.
const bulkWriter = "attributes" + apis.WriterSuffix

// WriterFunc is a custom writer method defined with Class.DefineWriter.
type WriterFunc func(o *Object, v any) error

type customWriter struct {
	vis apis.Visibility
	fn  WriterFunc
}

// Class is an attribute-bearing structure: a registry of attribute
// descriptors plus the constructor, mass assignment and (optionally)
// value-object semantics derived from it.
//
// A Class is safe for concurrent use.
type Class struct {
	name    string
	id      string
	parent  *Class
	cfg     apis.Config
	log     *slog.Logger
	bld     apis.Builder
	res     apis.Resolver
	policy  *policy.Policy
	catalog apis.Catalog

	// mu guards everything below. The registry has its own lock; mu makes
	// declaration plus cache invalidation atomic.
	mu sync.RWMutex
	// reg holds the declared attributes.
	reg apis.Registry
	// writers holds custom writer methods keyed by attribute-style name.
	writers map[string]customWriter
	// exempt holds writers ("name=") allowed regardless of visibility.
	exempt []string
	// valueObject is set once value-object mode is active.
	valueObject bool
	// privateWriters makes declarations default to private writers.
	privateWriters bool
	// massAssign is false when the bulk mutator is private.
	massAssign bool
}

// ClassOption configures NewClass.
type ClassOption func(*classOptions)

type classOptions struct {
	cfg        *apis.Config
	cfgOpts    []config.Option
	bld        apis.Builder
	catalog    apis.Catalog
	massAssign bool
}

// WithConfig replaces the global default configuration. cfg is used as is:
// build it with config.NewConfig, since a zero apis.Config disables coercion.
// Configure adjusts the global configuration instead.
func WithConfig(cfg apis.Config) ClassOption {
	return func(o *classOptions) { o.cfg = &cfg }
}

// Configure applies opts on top of the global default configuration (or on
// top of the one given to WithConfig).
func Configure(opts ...config.Option) ClassOption {
	return func(o *classOptions) { o.cfgOpts = append(o.cfgOpts, opts...) }
}

// WithBuilder overrides the global default builder.
func WithBuilder(b apis.Builder) ClassOption {
	return func(o *classOptions) {
		if b != nil {
			o.bld = b
		}
	}
}

// WithCatalog sets the catalog used to resolve named embedded references.
func WithCatalog(c apis.Catalog) ClassOption {
	return func(o *classOptions) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithoutMassAssignment makes SetAttributes private.
func WithoutMassAssignment() ClassOption {
	return func(o *classOptions) { o.massAssign = false }
}

// NewClass creates an empty class named name using the global defaults
// unless overridden by opts.
func NewClass(name string, opts ...ClassOption) *Class {
	s := st.Load()
	o := classOptions{bld: s.bld, catalog: s.catalog, massAssign: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	cfg := s.cfg
	if o.cfg != nil {
		cfg = *o.cfg
	}
	for _, opt := range o.cfgOpts {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := &Class{
		name:       name,
		id:         uuid.NewString(),
		cfg:        cfg,
		bld:        o.bld,
		policy:     policy.New(),
		catalog:    o.catalog,
		writers:    make(map[string]customWriter),
		massAssign: o.massAssign,
	}
	c.log = config.Logger(cfg).With("class", name)
	c.reg = c.bld.BuildRegistry(cfg, nil, nil)
	c.res = c.bld.BuildResolver(cfg, s.coercers, c.catalog, nil)
	if c.reg == nil {
		panic(ErrNilRegistry)
	}
	if c.res == nil {
		panic(ErrNilResolver)
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// ID returns the unique class identifier.
func (c *Class) ID() string { return c.id }

// String returns the class name.
func (c *Class) String() string { return c.name }

// Parent returns the class c was derived from with Subclass, or nil.
func (c *Class) Parent() *Class { return c.parent }

// Attribute declares (or re-declares) the attribute name of type t.
// Declaration errors are returned immediately and leave the class unchanged.
func (c *Class) Attribute(name string, t apis.Type, opts ...Option) (*Class, error) {
	if err := validateName(name); err != nil {
		return c, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	all := make([]Option, 0, len(opts)+1)
	if c.privateWriters {
		all = append(all, Writer(apis.Private))
	}
	all = append(all, opts...)

	attr, err := c.res.Resolve(name, t, apis.NewOptions(c.cfg, all...))
	if err != nil {
		return c, err
	}
	if err := c.reg.Add(attr); err != nil {
		return c, err
	}
	delete(c.writers, name)
	c.policy.Invalidate(c.id)

	c.log.Debug("attribute declared",
		"attribute", name,
		"type", t.String(),
		"strategy", attr.Strategy,
		"writer", attr.Writer.String(),
	)
	return c, nil
}

// MustAttribute is like Attribute but panics on error.
func (c *Class) MustAttribute(name string, t apis.Type, opts ...Option) *Class {
	if _, err := c.Attribute(name, t, opts...); err != nil {
		panic(fmt.Errorf("%s.%s: %w", c.name, name, err))
	}
	return c
}

// Lookup returns the descriptor of the attribute name.
func (c *Class) Lookup(name string) (*apis.Attribute, bool) {
	return c.reg.Lookup(name)
}

// Names returns the attribute names in declaration order.
func (c *Class) Names() []string {
	return c.reg.Names()
}

// All iterates the attribute descriptors in declaration order.
func (c *Class) All() iter.Seq[*apis.Attribute] {
	return c.reg.All()
}

// Subclass derives a new class named name. The subclass starts with a copy of
// the attributes, custom writers and value-object state of c; declarations on
// either class never reach the other.
func (c *Class) Subclass(name string) *Class {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sub := &Class{
		name:           name,
		id:             uuid.NewString(),
		parent:         c,
		cfg:            c.cfg,
		log:            config.Logger(c.cfg).With("class", name),
		bld:            c.bld,
		res:            c.res,
		policy:         policy.New(),
		catalog:        c.catalog,
		writers:        maps.Clone(c.writers),
		exempt:         slices.Clone(c.exempt),
		valueObject:    c.valueObject,
		privateWriters: c.privateWriters,
		massAssign:     c.massAssign,
	}
	sub.reg = c.bld.BuildRegistry(c.cfg, c.reg, nil)
	if sub.reg == nil {
		panic(ErrNilRegistry)
	}
	return sub
}

// Include copies the attributes and custom writers of other into c, the way
// a module contributes its attributes to an including class. Attributes of c
// with the same names are overwritten.
func (c *Class) Include(other *Class) {
	if other == nil || other == c {
		return
	}

	other.mu.RLock()
	entries := other.reg.Entries()
	ws := maps.Clone(other.writers)
	other.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, a := range entries {
		_ = c.reg.Add(a)
		delete(c.writers, a.Name)
	}
	for n, w := range ws {
		if _, ok := c.reg.Lookup(n); !ok {
			c.writers[n] = w
		}
	}
	c.policy.Invalidate(c.id)
	c.log.Debug("class included", "included", other.name, "attributes", len(entries))
}

// DefineWriter defines a custom writer method "name=" that is not an
// attribute writer. Custom writers take part in the allowed-writer policy
// but mass assignment never calls them; use Object.Invoke.
func (c *Class) DefineWriter(name string, vis apis.Visibility, fn WriterFunc) error {
	if name == "" || fn == nil {
		return &apis.InvalidAttributeNameError{Name: name}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.reg.Lookup(name); ok {
		return fmt.Errorf("%w: %s%s", ErrWriterConflict, name, apis.WriterSuffix)
	}
	c.writers[name] = customWriter{vis: vis, fn: fn}
	c.policy.Invalidate(c.id)
	return nil
}

// IsValueObject reports whether value-object mode is active.
func (c *Class) IsValueObject() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.valueObject
}

// AllowedWriters returns the writer names mass assignment may invoke.
func (c *Class) AllowedWriters() []string {
	return c.allowed().Names()
}

func (c *Class) allowed() policy.Set {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.policy.Allowed(writerTable{c})
}

// IsInstance reports whether v is an object of c or of a subclass of c.
func (c *Class) IsInstance(v any) bool {
	o, ok := v.(*Object)
	if !ok || o == nil {
		return false
	}
	for k := o.class; k != nil; k = k.parent {
		if k == c {
			return true
		}
	}
	return false
}

// Build implements apis.Model.
func (c *Class) Build(values map[string]any) (apis.Instance, error) {
	o, err := c.New(values)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// coerce applies the strictness policy of a and logs absorbed failures.
func (c *Class) coerce(a *apis.Attribute, raw any) (any, error) {
	v, absorbed, err := a.Apply(raw)
	if err != nil {
		return nil, err
	}
	if absorbed != nil {
		c.log.Debug("coercion failed, keeping best-effort value", "attribute", a.Name, "error", absorbed)
	}
	return v, nil
}

// writerTable exposes the writer methods of a class to the policy. Callers
// must hold c.mu.
type writerTable struct {
	c *Class
}

func (w writerTable) ID() string { return w.c.id }

func (w writerTable) WriterMethods() []policy.Method {
	out := make([]policy.Method, 0, w.c.reg.Count()+len(w.c.writers)+1)
	for a := range w.c.reg.All() {
		out = append(out, policy.Method{Name: a.WriterName(), Visibility: a.Writer})
	}
	for n, cw := range w.c.writers {
		out = append(out, policy.Method{Name: n + apis.WriterSuffix, Visibility: cw.vis})
	}
	vis := apis.Public
	if !w.c.massAssign {
		vis = apis.Private
	}
	return append(out, policy.Method{Name: bulkWriter, Visibility: vis})
}

func (w writerTable) Exemptions() []string { return w.c.exempt }

var (
	_ apis.Model    = (*Class)(nil)
	_ policy.Source = writerTable{}
)
