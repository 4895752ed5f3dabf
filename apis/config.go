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

import "log/slog"

// Config carries class-wide defaults for attribute declarations.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Strict is the default strictness of declared attributes.
	Strict bool

	// Required is the default for rejecting nil values in strict mode.
	Required bool

	// Coerce enables coercion. When false, values are stored as-is.
	Coerce bool

	// NullifyBlank turns blank strings into nil before coercion.
	NullifyBlank bool

	// MaxUnwrap limits pointer unwrapping when Go types are normalized.
	// Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// Logger receives debug records for declarations, skipped
	// mass-assignment keys and absorbed coercion failures.
	Logger *slog.Logger
}
