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

import "iter"

// Registry is the ordered, name-keyed collection of attribute descriptors
// owned by one class.
type Registry interface {
	// Add stores attr keyed by its name. Re-adding a name overwrites the
	// previous descriptor in place (last write wins, position kept).
	Add(attr *Attribute) error
	// Lookup returns the descriptor for name if present.
	Lookup(name string) (attr *Attribute, ok bool)
	// Names returns the attribute names in insertion order.
	Names() []string
	// All iterates descriptors in insertion order. The sequence is
	// restartable and reflects the registry at the time iteration starts.
	All() iter.Seq[*Attribute]
	// Entries returns a snapshot of the descriptors in insertion order.
	Entries() []*Attribute
	// Count returns the number of declared attributes.
	Count() int
	// Reset clears all declared attributes.
	Reset()
}
