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

package strategy

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"dirpx.dev/attrs/apis"
)

// TagName is the struct tag consulted when Go structs are converted to or
// from attribute mappings.
const TagName = "attr"

// ErrNotMappable is returned when an embedded attribute receives a value
// that is neither an instance of the structure nor a compatible mapping.
var ErrNotMappable = errors.New("attrs(strategy): value is not a compatible mapping")

// NewEmbeddedStrategy creates an apis.Strategy for embedded structures.
// Named references (Type.Ref) are resolved against catalog at declaration
// time; catalog may be nil when only direct Model references are used.
func NewEmbeddedStrategy(catalog apis.Catalog) apis.Strategy {
	return &embeddedStrategy{catalog: catalog}
}

type embeddedStrategy struct {
	catalog apis.Catalog
}

// Ensure embeddedStrategy implements apis.Strategy.
var _ apis.Strategy = (*embeddedStrategy)(nil)

// Name returns "embedded".
func (*embeddedStrategy) Name() string { return "embedded" }

// TryBuild handles KindEmbedded.
func (s *embeddedStrategy) TryBuild(t apis.Type, _ apis.Options, _ apis.Resolver) (apis.Coercer, bool, error) {
	if t.Kind != apis.KindEmbedded {
		return nil, false, nil
	}
	model := t.Model
	if model == nil {
		if t.Ref == "" {
			return nil, true, apis.NewUnknownAttributeTypeError(t, "embedded type without model")
		}
		if s.catalog == nil {
			return nil, true, apis.NewUnknownAttributeTypeError(t, "no catalog to resolve named reference")
		}
		m, ok := s.catalog.Lookup(t.Ref)
		if !ok {
			return nil, true, apis.NewUnknownAttributeTypeError(t, "structure is not defined")
		}
		model = m
	}
	return embedded{model: model}, true, nil
}

// embedded passes instances through and builds new ones from mappings.
type embedded struct {
	model apis.Model
}

func (e embedded) Coerce(raw any) (any, error) {
	if e.model.IsInstance(raw) {
		return raw, nil
	}
	values, ok := ToMap(raw)
	if !ok {
		return raw, fmt.Errorf("%w: cannot build %s from %T", ErrNotMappable, e.model.Name(), raw)
	}
	inst, err := e.model.Build(values)
	if err != nil {
		return raw, fmt.Errorf("build %s: %w", e.model.Name(), err)
	}
	return inst, nil
}

// ToMap converts mapping-like values into an attribute-value mapping:
// map[string]any as-is, other maps with keys rendered by fmt, instances via
// their snapshot, and Go structs (or pointers to them) through mapstructure
// honoring the "attr" struct tag.
func ToMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return v, true
	case apis.Instance:
		return v.Attributes(), true
	}

	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		var out map[string]any
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:  &out,
			TagName: TagName,
		})
		if err != nil {
			return nil, false
		}
		if err := dec.Decode(rv.Interface()); err != nil {
			return nil, false
		}
		return out, true
	}
	return nil, false
}

// Plain converts a value produced by coercion into plain Go data: instances
// become map[string]any (recursively), sequences []any and mappings
// map[any]any with their contents converted as well.
func Plain(v any) any {
	switch x := v.(type) {
	case apis.Instance:
		attrs := x.Attributes()
		out := make(map[string]any, len(attrs))
		for k, val := range attrs {
			out[k] = Plain(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Plain(val)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(x))
		for k, val := range x {
			out[k] = Plain(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Plain(val)
		}
		return out
	}
	return v
}
