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
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-viper/mapstructure/v2"

	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/strategy"
)

// Object is an instance of a Class. It holds one value per set attribute;
// unset attributes are absent.
type Object struct {
	class *Class

	mu     sync.RWMutex
	values map[string]any
}

var _ apis.Instance = (*Object)(nil)

// New constructs an object from values. Attributes are processed in
// declaration order: present values are coerced, absent ones receive their
// default (lazy defaults on first read) or stay unset. Unknown keys are
// ignored. The first strict coercion failure aborts construction.
func (c *Class) New(values map[string]any) (*Object, error) {
	out := make(map[string]any, len(values))
	for a := range c.reg.All() {
		raw, ok := values[a.Name]
		if !ok {
			if a.Lazy {
				continue
			}
			if raw, ok = a.DefaultValue(); !ok {
				continue
			}
		}
		v, err := c.coerce(a, raw)
		if err != nil {
			return nil, fmt.Errorf("new %s: %w", c.name, err)
		}
		out[a.Name] = v
	}
	return &Object{class: c, values: out}, nil
}

// MustNew is like New but panics on error.
func (c *Class) MustNew(values map[string]any) *Object {
	o, err := c.New(values)
	if err != nil {
		panic(err)
	}
	return o
}

// Class returns the class of o.
func (o *Object) Class() *Class { return o.class }

// Get returns the value of the attribute name. ok is false for unknown
// attributes, private readers and unset attributes. A lazy default is
// evaluated and stored on first read.
func (o *Object) Get(name string) (any, bool) {
	a, ok := o.class.reg.Lookup(name)
	if !ok || a.Reader == apis.Private {
		return nil, false
	}
	return o.get(a)
}

func (o *Object) get(a *apis.Attribute) (any, bool) {
	o.mu.RLock()
	v, ok := o.values[a.Name]
	o.mu.RUnlock()
	if ok {
		return v, true
	}
	if !a.Lazy {
		return nil, false
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if v, ok := o.values[a.Name]; ok {
		return v, true
	}
	def, ok := a.DefaultValue()
	if !ok {
		return nil, false
	}
	v, err := o.class.coerce(a, def)
	if err != nil {
		o.class.log.Debug("lazy default rejected", "attribute", a.Name, "error", err)
		return nil, false
	}
	o.values[a.Name] = v
	return v, true
}

// Set coerces v and writes it to the attribute name through its writer.
func (o *Object) Set(name string, v any) error {
	a, ok := o.class.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
	}
	if a.Writer == apis.Private && !o.class.exempted(a.WriterName()) {
		return fmt.Errorf("%w: %s", ErrPrivateWriter, a.WriterName())
	}
	cv, err := o.class.coerce(a, v)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.values[name] = cv
	o.mu.Unlock()
	return nil
}

// Invoke calls the writer method (e.g. "name=") with v: an attribute writer
// or a custom writer defined with Class.DefineWriter. Private writers are
// rejected unless exempted.
func (o *Object) Invoke(method string, v any) error {
	name, ok := strings.CutSuffix(method, apis.WriterSuffix)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoMethod, method)
	}
	if method == bulkWriter {
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s expects map[string]any, got %T", bulkWriter, v)
		}
		return o.SetAttributes(m)
	}
	if _, ok := o.class.reg.Lookup(name); ok {
		return o.Set(name, v)
	}

	c := o.class
	c.mu.RLock()
	w, ok := c.writers[name]
	exempt := slices.Contains(c.exempt, method)
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoMethod, method)
	}
	if w.vis == apis.Private && !exempt {
		return fmt.Errorf("%w: %s", ErrPrivateWriter, method)
	}
	return w.fn(o, v)
}

// SetAttributes mass-assigns values. A key is written only when its writer
// is in the class' allowed-writer set and the key is a declared attribute;
// every other key is skipped. Values are coerced in declaration order and
// the first strict failure aborts the call leaving o unchanged.
//
// SetAttributes fails with ErrPrivateMethod on value objects and classes
// created WithoutMassAssignment.
func (o *Object) SetAttributes(values map[string]any) error {
	c := o.class
	c.mu.RLock()
	private := !c.massAssign
	c.mu.RUnlock()
	if private {
		return fmt.Errorf("%w: %s", ErrPrivateMethod, bulkWriter)
	}

	allowed := c.allowed()
	staged := make(map[string]any, len(values))
	for a := range c.reg.All() {
		raw, ok := values[a.Name]
		if !ok {
			continue
		}
		if !allowed.Has(a.WriterName()) {
			c.log.Debug("mass assignment skipped key", "key", a.Name, "reason", "writer not allowed")
			continue
		}
		v, err := c.coerce(a, raw)
		if err != nil {
			return err
		}
		staged[a.Name] = v
	}
	for k := range values {
		if _, ok := c.reg.Lookup(k); !ok {
			c.log.Debug("mass assignment skipped key", "key", k, "reason", "unknown attribute")
		}
	}

	o.mu.Lock()
	maps.Copy(o.values, staged)
	o.mu.Unlock()
	return nil
}

// Attributes returns a snapshot of the set attributes with public readers.
func (o *Object) Attributes() map[string]any {
	if o == nil {
		return nil
	}
	out := make(map[string]any)
	for a := range o.class.reg.All() {
		if a.Reader == apis.Private {
			continue
		}
		if v, ok := o.get(a); ok {
			out[a.Name] = v
		}
	}
	return out
}

// state returns every set value, private readers included, in declaration
// order of the current registry.
func (o *Object) state() (names []string, values map[string]any) {
	values = make(map[string]any)
	for a := range o.class.reg.All() {
		names = append(names, a.Name)
		if v, ok := o.get(a); ok {
			values[a.Name] = v
		}
	}
	return names, values
}

// Equal reports whether o and other are equal. Objects of value-object
// classes are equal when they belong to the same class and every declared
// attribute has an equal value (or is unset in both). Other objects are
// only equal to themselves.
func (o *Object) Equal(other any) bool {
	p, ok := other.(*Object)
	if !ok || o == nil || p == nil {
		return false
	}
	if o == p {
		return true
	}
	if o.class != p.class || !o.class.IsValueObject() {
		return false
	}
	names, a := o.state()
	_, b := p.state()
	for _, n := range names {
		va, oka := a[n]
		vb, okb := b[n]
		if oka != okb || !valuesEqual(va, vb) {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equal.
func (o *Object) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(o.class.id)
	if !o.class.IsValueObject() {
		_, _ = fmt.Fprintf(d, "%p", o)
		return d.Sum64()
	}
	names, values := o.state()
	for _, n := range names {
		_, _ = d.WriteString(n)
		v, ok := values[n]
		if !ok {
			_, _ = d.WriteString("\x00unset")
			continue
		}
		hashInto(d, v)
	}
	return d.Sum64()
}

// Decode copies the attribute snapshot into target (a pointer to a struct
// or map) using the "attr" struct tag.
func (o *Object) Decode(target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          strategy.TagName,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(strategy.Plain(o.Attributes()))
}

var inspectConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Inspect returns a readable dump of the class name and attribute snapshot.
func (o *Object) Inspect() string {
	return o.class.name + " " + inspectConfig.Sdump(strategy.Plain(o.Attributes()))
}

// String returns a one-line representation of o.
func (o *Object) String() string {
	return fmt.Sprintf("#<%s %v>", o.class.name, strategy.Plain(o.Attributes()))
}

func (c *Class) exempted(writer string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Contains(c.exempt, writer)
}

func valuesEqual(a, b any) bool {
	switch x := a.(type) {
	case *Object:
		return x.Equal(b)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !valuesEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[any]any:
		y, ok := b.(map[any]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, ok := y[k]
			if !ok || !valuesEqual(v, w) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

var hashConfig = spew.ConfigState{
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func hashInto(d *xxhash.Digest, v any) {
	switch x := v.(type) {
	case nil:
		_, _ = d.WriteString("\x00nil")
	case *Object:
		_, _ = fmt.Fprintf(d, "\x00obj%d", x.Hash())
	case []any:
		_, _ = fmt.Fprintf(d, "\x00seq%d", len(x))
		for _, e := range x {
			hashInto(d, e)
		}
	case map[any]any:
		// Order independent: combine per-entry digests.
		var sum uint64
		for k, e := range x {
			ed := xxhash.New()
			hashInto(ed, k)
			hashInto(ed, e)
			sum += ed.Sum64()
		}
		_, _ = fmt.Fprintf(d, "\x00map%d:%d", len(x), sum)
	default:
		_, _ = fmt.Fprintf(d, "\x00%T:", v)
		_, _ = hashConfig.Fprint(d, v)
	}
}
