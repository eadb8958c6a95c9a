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

import "google.golang.org/protobuf/reflect/protoreflect"

// Registry maps collection labels to Kinds.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register adds k under k.Label.
	// Implementations should be idempotent; conflicting re-registrations fail.
	Register(k *Kind) error
	// Lookup returns the Kind registered for a collection label.
	Lookup(label string) (*Kind, bool)
	// LookupMessage returns the Kind whose ObjectInfo has the given full name.
	LookupMessage(name protoreflect.FullName) (*Kind, bool)
	// Entries returns a snapshot sorted by label.
	Entries() []*Kind
	// Count returns the number of registered kinds.
	Count() int
	// Reset clears all registered kinds.
	Reset()
}
