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

package reflect

import (
	"errors"
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTooDeep indicates that pointer unwrapping exceeded MaxUnwrap.
	ErrReflectTooDeep = errors.New("reflect: pointer nesting exceeds MaxUnwrap")
	// ErrReflectUnsupported indicates a kind that cannot hold attribute values
	// (chan, func, unsafe pointer, complex).
	ErrReflectUnsupported = errors.New("reflect: unsupported kind")
)

// wellKnown maps Go types with a dedicated primitive coercer to its tag.
var wellKnown = map[reflect.Type]string{
	reflect.TypeFor[time.Time]():       "time",
	reflect.TypeFor[time.Duration]():   "duration",
	reflect.TypeFor[strfmt.DateTime](): "datetime",
	reflect.TypeFor[strfmt.Date]():     "date",
	reflect.TypeFor[uuid.UUID]():       "uuid",
}

// kindTags maps predeclared basic kinds to primitive tags.
var kindTags = map[reflect.Kind]string{
	reflect.Bool:    "boolean",
	reflect.Int:     "integer",
	reflect.Int8:    "int8",
	reflect.Int16:   "int16",
	reflect.Int32:   "int32",
	reflect.Int64:   "int64",
	reflect.Uint:    "uint",
	reflect.Uint8:   "uint8",
	reflect.Uint16:  "uint16",
	reflect.Uint32:  "uint32",
	reflect.Uint64:  "uint64",
	reflect.Float32: "float32",
	reflect.Float64: "float",
	reflect.String:  "string",
}

// Normalize unwraps pointers according to config (MaxUnwrap) and maps the
// resulting Go type to an attribute type reference.
//
// Mapping policy:
//   - well-known types (time.Time, time.Duration, strfmt.DateTime,
//     strfmt.Date, uuid.UUID) -> their primitive tag;
//   - predeclared basic kinds (int, string, ...) -> primitive tag;
//   - interfaces -> KindAny;
//   - named basic types, slices, arrays, maps and structs -> KindGo
//     (decoded into the exact Go type);
//   - chan, func, unsafe pointer, complex -> ErrReflectUnsupported.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (apis.Type, error) {
	if t == nil {
		return apis.Type{}, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t.Kind() == reflect.Pointer; i++ {
		if i >= maxUnwrap {
			return apis.Type{}, ErrReflectTooDeep
		}
		t = t.Elem()
	}

	if tag, ok := wellKnown[t]; ok {
		return apis.Type{Kind: apis.KindPrimitive, Tag: tag}, nil
	}

	switch t.Kind() {
	case reflect.Interface:
		return apis.Type{}, nil
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return apis.Type{}, ErrReflectUnsupported
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return apis.Type{Kind: apis.KindGo, GoType: t}, nil
	}

	// Builtin (no package) basic kinds get a primitive; named ones keep their type.
	if tag, ok := kindTags[t.Kind()]; ok && t.PkgPath() == "" {
		return apis.Type{Kind: apis.KindPrimitive, Tag: tag}, nil
	}
	return apis.Type{Kind: apis.KindGo, GoType: t}, nil
}
