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

package resolver

import (
	"dirpx.dev/attrs/apis"
)

// NameOption is the pass-through key that can never override the injected
// attribute name.
const NameOption = "name"

// identityName is reported as the strategy of attributes declared with
// coercion disabled.
const identityName = "identity"

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryBuild calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Resolve merges the injected name into opts, resolves the coercion strategy
// for t and returns the resulting descriptor.
func (r chain) Resolve(name string, t apis.Type, opts apis.Options) (*apis.Attribute, error) {
	opts = opts.Clone()
	delete(opts.Extra, NameOption)

	c, strat, err := r.Coercer(t, opts)
	if err != nil {
		return nil, err
	}
	if !opts.Coerce {
		c, strat = passthrough, identityName
	}
	return &apis.Attribute{
		Name:     name,
		Type:     t,
		Coercer:  c,
		Strategy: strat,
		Options:  opts,
	}, nil
}

// Coercer runs strategies in order until one handles t.
func (r chain) Coercer(t apis.Type, opts apis.Options) (apis.Coercer, string, error) {
	for _, s := range r.strats {
		c, ok, err := s.TryBuild(t, opts, r)
		if !ok {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return c, s.Name(), nil
	}
	return nil, "", apis.NewUnknownAttributeTypeError(t, "no strategy handles this type")
}

// passthrough stores raw values unchanged.
var passthrough = apis.CoercerFunc(func(raw any) (any, error) { return raw, nil })
