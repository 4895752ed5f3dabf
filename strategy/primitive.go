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

// NewPrimitiveStrategy creates an apis.Strategy that uses an apis.Coercers registry.
func NewPrimitiveStrategy(coercers apis.Coercers) apis.Strategy {
	return &primitiveStrategy{coercers: coercers}
}

// primitiveStrategy consults a provided coercer registry by tag.
type primitiveStrategy struct {
	coercers apis.Coercers
}

// Ensure primitiveStrategy implements apis.Strategy.
var _ apis.Strategy = (*primitiveStrategy)(nil)

// Name returns "primitive".
func (*primitiveStrategy) Name() string { return "primitive" }

// TryBuild looks up t.Tag in the registry. Unknown tags fail here, at
// declaration time.
func (s *primitiveStrategy) TryBuild(t apis.Type, opts apis.Options, _ apis.Resolver) (apis.Coercer, bool, error) {
	if t.Kind != apis.KindPrimitive {
		return nil, false, nil
	}
	if t.Tag == "" {
		return nil, true, apis.NewUnknownAttributeTypeError(t, "empty primitive tag")
	}
	if s.coercers == nil {
		return nil, true, apis.NewUnknownAttributeTypeError(t, "no coercers configured")
	}
	c, ok := s.coercers.Lookup(t.Tag)
	if !ok {
		return nil, true, apis.NewUnknownAttributeTypeError(t, "no coercer registered for tag")
	}
	c, err := tune(t, c, opts)
	return c, true, err
}
