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

package coerce

import (
	"fmt"
	"reflect"

	"github.com/go-openapi/strfmt"
	"github.com/spf13/cast"

	"dirpx.dev/attrs/apis"
)

// Formats are the strfmt string formats registered as primitive tags.
var Formats = []string{
	"email",
	"hostname",
	"uri",
	"ipv4",
	"ipv6",
	"cidr",
	"mac",
	"isbn",
	"creditcard",
	"hexcolor",
	"password",
}

// Format returns a coercer that validates a string against the named strfmt
// format and yields the strfmt value (strfmt.Email, strfmt.URI, ...).
func Format(name string) apis.Coercer {
	return apis.CoercerFunc(func(raw any) (any, error) {
		s, err := cast.ToStringE(raw)
		if err != nil {
			return raw, err
		}
		if !strfmt.Default.Validates(name, s) {
			return raw, fmt.Errorf("%q is not a valid %s", s, name)
		}
		v, err := strfmt.Default.Parse(name, s)
		if err != nil {
			return raw, err
		}
		// Parse allocates: *strfmt.Email, *strfmt.IPv4 and so on.
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() {
			return rv.Elem().Interface(), nil
		}
		return v, nil
	})
}
