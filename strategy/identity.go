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
	"dirpx.dev/attrs/apis"
)

// Identity stores raw values unchanged.
var Identity apis.Coercer = apis.CoercerFunc(func(raw any) (any, error) { return raw, nil })

// NewIdentityStrategy creates an apis.Strategy handling absent/unspecified types.
func NewIdentityStrategy() apis.Strategy {
	return identityStrategy{}
}

type identityStrategy struct{}

// Ensure identityStrategy implements apis.Strategy.
var _ apis.Strategy = identityStrategy{}

// Name returns "identity".
func (identityStrategy) Name() string { return "identity" }

// TryBuild handles KindAny.
func (identityStrategy) TryBuild(t apis.Type, _ apis.Options, _ apis.Resolver) (apis.Coercer, bool, error) {
	if t.Kind != apis.KindAny {
		return nil, false, nil
	}
	return Identity, true, nil
}
