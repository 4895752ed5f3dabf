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

package apis

import (
	"reflect"
	"strings"
)

// Kind classifies a Type reference by shape.
type Kind uint8

const (
	// KindAny is an absent/unspecified type: values are stored as-is.
	KindAny Kind = iota
	// KindPrimitive is a scalar identified by a tag ("string", "integer", ...).
	KindPrimitive
	// KindSequence is an ordered sequence of Elem.
	KindSequence
	// KindMapping is a key-unique mapping of Key to Elem.
	KindMapping
	// KindEmbedded is another attribute-bearing structure (Model or Ref).
	KindEmbedded
	// KindGo is a concrete Go type decoded by reflection.
	KindGo
	// KindCustom carries its own Coercer.
	KindCustom
)

// String returns the lowercase name of k.
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindPrimitive:
		return "primitive"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindEmbedded:
		return "embedded"
	case KindGo:
		return "go"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Type is a reference to the declared type of an attribute.
// The zero value is KindAny.
type Type struct {
	// Kind selects which of the remaining fields are meaningful.
	Kind Kind
	// Tag names a primitive coercer (KindPrimitive) or labels a custom type.
	Tag string
	// Elem is the sequence element type or the mapping value type.
	Elem *Type
	// Key is the mapping key type.
	Key *Type
	// Model is the embedded structure (KindEmbedded).
	Model Model
	// Ref names an embedded structure to be looked up in a Catalog
	// when Model is nil.
	Ref string
	// GoType is the concrete Go type (KindGo).
	GoType reflect.Type
	// Coercer is used verbatim for KindCustom.
	Coercer Coercer
}

// String renders t in the type-expression syntax ("array<integer>",
// "hash<string,integer>", class names, "any").
func (t Type) String() string {
	switch t.Kind {
	case KindAny:
		return "any"
	case KindPrimitive, KindCustom:
		return t.Tag
	case KindSequence:
		return "array<" + optString(t.Elem) + ">"
	case KindMapping:
		return "hash<" + optString(t.Key) + "," + optString(t.Elem) + ">"
	case KindEmbedded:
		if t.Model != nil {
			return t.Model.Name()
		}
		return t.Ref
	case KindGo:
		if t.GoType == nil {
			return "<nil>"
		}
		return t.GoType.String()
	default:
		return "unknown"
	}
}

func optString(t *Type) string {
	if t == nil {
		return "?"
	}
	return strings.TrimSpace(t.String())
}
