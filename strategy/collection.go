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
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"dirpx.dev/attrs/apis"
)

var (
	// ErrNotSequence is returned when a sequence attribute receives a non-slice value.
	ErrNotSequence = errors.New("attrs(strategy): value is not a sequence")
	// ErrNotMapping is returned when a mapping attribute receives a non-map value.
	ErrNotMapping = errors.New("attrs(strategy): value is not a mapping")
	// ErrUnhashableKey is returned when a coerced mapping key cannot be used as a key.
	ErrUnhashableKey = errors.New("attrs(strategy): coerced key is not hashable")
)

// NewCollectionStrategy creates an apis.Strategy for sequence-of-T and
// mapping-of-K-V types. Element types are resolved recursively through the
// Resolver when the attribute is declared.
func NewCollectionStrategy() apis.Strategy {
	return collectionStrategy{}
}

type collectionStrategy struct{}

// Ensure collectionStrategy implements apis.Strategy.
var _ apis.Strategy = collectionStrategy{}

// Name returns "collection".
func (collectionStrategy) Name() string { return "collection" }

// TryBuild handles KindSequence and KindMapping.
func (collectionStrategy) TryBuild(t apis.Type, opts apis.Options, res apis.Resolver) (apis.Coercer, bool, error) {
	switch t.Kind {
	case apis.KindSequence:
		if t.Elem == nil {
			return nil, true, apis.NewUnknownAttributeTypeError(t, "sequence without element type")
		}
		elem, _, err := res.Coercer(*t.Elem, elementOptions(opts))
		if err != nil {
			return nil, true, err
		}
		return sequence{elem: elem}, true, nil

	case apis.KindMapping:
		if t.Key == nil || t.Elem == nil {
			return nil, true, apis.NewUnknownAttributeTypeError(t, "mapping requires key and value types")
		}
		key, _, err := res.Coercer(*t.Key, elementOptions(opts))
		if err != nil {
			return nil, true, err
		}
		val, _, err := res.Coercer(*t.Elem, elementOptions(opts))
		if err != nil {
			return nil, true, err
		}
		return mapping{key: key, val: val}, true, nil
	}
	return nil, false, nil
}

// elementOptions drops the attribute-level policies that make no sense per element.
func elementOptions(opts apis.Options) apis.Options {
	opts.Default = apis.Default{}
	opts.Lazy = false
	return opts
}

// sequence coerces each element independently into a []any.
type sequence struct {
	elem apis.Coercer
}

func (s sequence) Coerce(raw any) (any, error) {
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return raw, fmt.Errorf("%w: %T", ErrNotSequence, raw)
	}
	out := make([]any, rv.Len())
	var first error
	for i := range rv.Len() {
		v, err := coerceElem(s.elem, rv.Index(i).Interface())
		if err != nil && first == nil {
			first = fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, first
}

// mapping coerces keys and values into a map[any]any. Raw keys are visited
// in a stable order so that colliding coerced keys resolve deterministically
// (last one wins).
type mapping struct {
	key, val apis.Coercer
}

func (m mapping) Coerce(raw any) (any, error) {
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return raw, fmt.Errorf("%w: %T", ErrNotMapping, raw)
	}
	keys := rv.MapKeys()
	slices.SortStableFunc(keys, func(a, b reflect.Value) int {
		return cmp.Or(
			strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface())),
			strings.Compare(fmt.Sprintf("%T", a.Interface()), fmt.Sprintf("%T", b.Interface())),
		)
	})

	out := make(map[any]any, len(keys))
	var first error
	for _, rk := range keys {
		rawKey := rk.Interface()
		k, err := coerceElem(m.key, rawKey)
		if err != nil && first == nil {
			first = fmt.Errorf("key %v: %w", rawKey, err)
		}
		if k != nil && !reflect.TypeOf(k).Comparable() {
			if first == nil {
				first = fmt.Errorf("key %v: %w", rawKey, ErrUnhashableKey)
			}
			k = rawKey
		}
		v, err := coerceElem(m.val, rv.MapIndex(rk).Interface())
		if err != nil && first == nil {
			first = fmt.Errorf("value for key %v: %w", rawKey, err)
		}
		out[k] = v
	}
	return out, first
}

// coerceElem keeps nil elements as nil.
func coerceElem(c apis.Coercer, raw any) (any, error) {
	if raw == nil || c == nil {
		return raw, nil
	}
	return c.Coerce(raw)
}
