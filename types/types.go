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

// Package types provides constructors for attribute type references and a
// parser for the textual type-expression syntax used by schema documents.
package types

import (
	"reflect"

	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/coerce"
)

// Any is the absent/unspecified type: values are stored as-is.
func Any() apis.Type { return apis.Type{} }

// Primitive references the primitive coercer registered under tag.
func Primitive(tag string) apis.Type {
	return apis.Type{Kind: apis.KindPrimitive, Tag: tag}
}

// String coerces to string.
func String() apis.Type { return Primitive(coerce.TagString) }

// Integer coerces to int. Strings are read as base 10.
func Integer() apis.Type { return Primitive(coerce.TagInteger) }

// Float coerces to float64.
func Float() apis.Type { return Primitive(coerce.TagFloat) }

// Boolean coerces to bool.
func Boolean() apis.Type { return Primitive(coerce.TagBoolean) }

// Time coerces to time.Time. Zoneless strings are read as UTC.
func Time() apis.Type { return Primitive(coerce.TagTime) }

// Duration coerces to time.Duration.
func Duration() apis.Type { return Primitive(coerce.TagDuration) }

// DateTime coerces to strfmt.DateTime.
func DateTime() apis.Type { return Primitive(coerce.TagDateTime) }

// Date coerces to strfmt.Date.
func Date() apis.Type { return Primitive(coerce.TagDate) }

// UUID coerces to uuid.UUID.
func UUID() apis.Type { return Primitive(coerce.TagUUID) }

// ArrayOf is a sequence of elem.
func ArrayOf(elem apis.Type) apis.Type {
	return apis.Type{Kind: apis.KindSequence, Elem: &elem}
}

// HashOf is a mapping of key to val.
func HashOf(key, val apis.Type) apis.Type {
	return apis.Type{Kind: apis.KindMapping, Key: &key, Elem: &val}
}

// Embed references another attribute-bearing structure directly.
func Embed(m apis.Model) apis.Type {
	return apis.Type{Kind: apis.KindEmbedded, Model: m}
}

// Ref references an embedded structure by name, looked up in a catalog when
// the attribute is declared.
func Ref(name string) apis.Type {
	return apis.Type{Kind: apis.KindEmbedded, Ref: name}
}

// Custom is a type labelled tag that coerces with c.
func Custom(tag string, c apis.Coercer) apis.Type {
	return apis.Type{Kind: apis.KindCustom, Tag: tag, Coercer: c}
}

// GoType references a concrete Go type, decoded by reflection.
func GoType(t reflect.Type) apis.Type {
	return apis.Type{Kind: apis.KindGo, GoType: t}
}

// Of references the Go type T.
func Of[T any]() apis.Type {
	return GoType(reflect.TypeFor[T]())
}
