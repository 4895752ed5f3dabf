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

package reflect_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/config"
	uref "dirpx.dev/attrs/utils/reflect"
)

// Local test types.
type A struct{}
type Celsius float64
type W[T any] struct{ V T }

func TestNormalize_Primitives(t *testing.T) {
	conf := config.DefaultConfig()

	cases := []struct {
		name string
		typ  reflect.Type
		tag  string
	}{
		{"int", reflect.TypeFor[int](), "integer"},
		{"ptr int", reflect.TypeFor[*int](), "integer"},
		{"string", reflect.TypeFor[string](), "string"},
		{"bool", reflect.TypeFor[bool](), "boolean"},
		{"float64", reflect.TypeFor[float64](), "float"},
		{"uint16", reflect.TypeFor[uint16](), "uint16"},
		{"time", reflect.TypeFor[time.Time](), "time"},
		{"ptr time", reflect.TypeFor[*time.Time](), "time"},
		{"duration", reflect.TypeFor[time.Duration](), "duration"},
		{"datetime", reflect.TypeFor[strfmt.DateTime](), "datetime"},
		{"date", reflect.TypeFor[strfmt.Date](), "date"},
		{"uuid", reflect.TypeFor[uuid.UUID](), "uuid"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, conf)
			if err != nil {
				t.Fatalf("Normalize(%v) returned error: %v", tc.typ, err)
			}
			if got.Kind != apis.KindPrimitive || got.Tag != tc.tag {
				t.Fatalf("Normalize(%v) = %v/%q, want primitive/%q", tc.typ, got.Kind, got.Tag, tc.tag)
			}
		})
	}
}

func TestNormalize_GoTypes(t *testing.T) {
	conf := config.DefaultConfig()

	cases := []struct {
		name string
		typ  reflect.Type
		want reflect.Type
	}{
		{"struct", reflect.TypeFor[A](), reflect.TypeFor[A]()},
		{"ptr struct", reflect.TypeFor[*A](), reflect.TypeFor[A]()},
		{"named basic", reflect.TypeFor[Celsius](), reflect.TypeFor[Celsius]()},
		{"slice", reflect.TypeFor[[]int](), reflect.TypeFor[[]int]()},
		{"array", reflect.TypeFor[[2]A](), reflect.TypeFor[[2]A]()},
		{"map", reflect.TypeFor[map[string]A](), reflect.TypeFor[map[string]A]()},
		{"generic", reflect.TypeFor[W[int]](), reflect.TypeFor[W[int]]()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, conf)
			if err != nil {
				t.Fatalf("Normalize(%v) returned error: %v", tc.typ, err)
			}
			if got.Kind != apis.KindGo || got.GoType != tc.want {
				t.Fatalf("Normalize(%v) = %v/%v, want go/%v", tc.typ, got.Kind, got.GoType, tc.want)
			}
		})
	}
}

func TestNormalize_Interface(t *testing.T) {
	got, err := uref.Normalize(reflect.TypeFor[any](), config.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != apis.KindAny {
		t.Fatalf("interface kind = %v, want any", got.Kind)
	}
}

func TestNormalize_Errors(t *testing.T) {
	conf := config.DefaultConfig()

	if _, err := uref.Normalize(nil, conf); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("nil type: got %v, want ErrReflectNilType", err)
	}
	for _, typ := range []reflect.Type{
		reflect.TypeFor[chan int](),
		reflect.TypeFor[func()](),
		reflect.TypeFor[complex128](),
	} {
		if _, err := uref.Normalize(typ, conf); !errors.Is(err, uref.ErrReflectUnsupported) {
			t.Fatalf("Normalize(%v): got %v, want ErrReflectUnsupported", typ, err)
		}
	}
}

func TestNormalize_MaxUnwrap(t *testing.T) {
	typ := reflect.TypeFor[***A]()

	shallow := config.NewConfig(config.WithMaxUnwrap(2))
	if _, err := uref.Normalize(typ, shallow); !errors.Is(err, uref.ErrReflectTooDeep) {
		t.Fatalf("got %v, want ErrReflectTooDeep", err)
	}

	deep := config.NewConfig(config.WithMaxUnwrap(3))
	got, err := uref.Normalize(typ, deep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.GoType != reflect.TypeFor[A]() {
		t.Fatalf("got %v, want A", got.GoType)
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	conf := config.DefaultConfig()
	typs := []reflect.Type{
		reflect.TypeFor[*A](),
		reflect.TypeFor[[]string](),
		reflect.TypeFor[*int](),
		reflect.TypeFor[map[string]int](),
	}

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range 500 {
				if _, err := uref.Normalize(typs[(w+i)%len(typs)], conf); err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}
