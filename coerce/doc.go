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

// Package coerce provides the built-in primitive coercers registered under
// the tags "string", "integer", "float", "boolean", "time", "duration",
// "datetime", "date", "uuid", the sized numeric tags ("int8" ... "uint64",
// "float32") and the named string formats known to strfmt ("email", "uri",
// "hostname", "ipv4", ...).
//
// Conversions are delegated to spf13/cast; typed formats come from
// go-openapi/strfmt and google/uuid. Every coercer returns the raw value
// together with the error when conversion fails, which is what lenient
// attributes store.
package coerce
