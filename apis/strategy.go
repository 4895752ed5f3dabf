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

// Strategy is a pluggable resolution step. A Resolver chains strategies in
// order; the first one that handles a type wins.
type Strategy interface {
	// Name identifies the strategy in descriptors and diagnostics.
	Name() string

	// TryBuild returns a Coercer for t. It returns handled=false to fall
	// through, or a non-nil error when t is its responsibility but cannot
	// be resolved.
	TryBuild(t Type, opts Options, res Resolver) (c Coercer, handled bool, err error)
}
