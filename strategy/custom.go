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

// NewCustomStrategy creates an apis.Strategy for types carrying their own Coercer.
func NewCustomStrategy() apis.Strategy {
	return &customStrategy{}
}

// customStrategy is a zero-cost fast path: a KindCustom type already knows
// how to coerce, so the chain stops here.
type customStrategy struct{}

// Ensure customStrategy implements apis.Strategy.
var _ apis.Strategy = (*customStrategy)(nil)

// Name returns "custom".
func (*customStrategy) Name() string { return "custom" }

// TryBuild returns t.Coercer, tuned with pass-through options when supported.
func (*customStrategy) TryBuild(t apis.Type, opts apis.Options, _ apis.Resolver) (apis.Coercer, bool, error) {
	if t.Kind != apis.KindCustom {
		return nil, false, nil
	}
	if t.Coercer == nil {
		return nil, true, apis.NewUnknownAttributeTypeError(t, "custom type without coercer")
	}
	c, err := tune(t, t.Coercer, opts)
	return c, true, err
}

// tune applies pass-through options to tunable coercers.
func tune(t apis.Type, c apis.Coercer, opts apis.Options) (apis.Coercer, error) {
	tn, ok := c.(apis.Tunable)
	if !ok || len(opts.Extra) == 0 {
		return c, nil
	}
	tuned, err := tn.Tune(opts.Extra)
	if err != nil {
		return nil, apis.NewUnknownAttributeTypeError(t, err.Error())
	}
	return tuned, nil
}
