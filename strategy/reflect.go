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
	"reflect"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"dirpx.dev/attrs/apis"
	uref "dirpx.dev/attrs/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that resolves Go types via
// reflection using utils/reflect.Normalize and memoization.
func NewReflectStrategy(cfg apis.Config) apis.Strategy {
	return reflectStrategy{cfg: cfg}
}

// reflectStrategy is the fallback for KindGo: scalars are routed to the
// primitive coercers, composite and named types are decoded into the exact
// Go type with mapstructure.
type reflectStrategy struct {
	cfg apis.Config
}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = reflectStrategy{}

// cacheKey ensures memoization respects all config knobs that affect normalization.
type cacheKey struct {
	t         reflect.Type
	maxUnwrap int16
}

// cacheVal is a memoized normalization result.
type cacheVal struct {
	t   apis.Type
	err error
}

// normCache caches normalized types by (type, config knobs).
var normCache sync.Map // key: cacheKey, val: cacheVal

// Name returns "reflect".
func (reflectStrategy) Name() string { return "reflect" }

// TryBuild handles KindGo.
func (s reflectStrategy) TryBuild(t apis.Type, opts apis.Options, res apis.Resolver) (apis.Coercer, bool, error) {
	if t.Kind != apis.KindGo {
		return nil, false, nil
	}
	if t.GoType == nil {
		return nil, true, apis.NewUnknownAttributeTypeError(t, "nil Go type")
	}

	norm, err := s.normalize(t.GoType)
	if err != nil {
		return nil, true, apis.NewUnknownAttributeTypeError(t, err.Error())
	}
	if norm.Kind != apis.KindGo {
		c, _, err := res.Coercer(norm, opts)
		return c, true, err
	}
	return decoder{typ: norm.GoType}, true, nil
}

// normalize resolves t with memoization.
func (s reflectStrategy) normalize(t reflect.Type) (apis.Type, error) {
	key := cacheKey{t: t, maxUnwrap: int16(s.cfg.MaxUnwrap)}
	if v, ok := normCache.Load(key); ok {
		cv := v.(cacheVal)
		return cv.t, cv.err
	}
	nt, err := uref.Normalize(t, s.cfg)
	normCache.Store(key, cacheVal{t: nt, err: err})
	return nt, err
}

// decoder decodes raw values into a fresh value of typ.
type decoder struct {
	typ reflect.Type
}

func (d decoder) Coerce(raw any) (any, error) {
	if reflect.TypeOf(raw) == d.typ {
		return raw, nil
	}
	if inst, ok := raw.(apis.Instance); ok {
		raw = Plain(inst)
	}
	ptr := reflect.New(d.typ)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           ptr.Interface(),
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return raw, err
	}
	if err := dec.Decode(raw); err != nil {
		return raw, err
	}
	return ptr.Elem().Interface(), nil
}
