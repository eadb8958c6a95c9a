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

package registry

import (
	"errors"
	"sort"
	"sync"

	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/apis"
)

var (
	// ErrNilKind is returned when a nil Kind is provided.
	ErrNilKind = errors.New("acp(registry): nil kind provided")
	// ErrEmptyLabel is returned when a Kind has no collection label.
	ErrEmptyLabel = errors.New("acp(registry): empty label provided")
	// ErrIncompleteKind is returned when a Kind carries no ObjectInfo descriptor.
	ErrIncompleteKind = errors.New("acp(registry): kind without ObjectInfo descriptor")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a label with a different kind.
	ErrConflictingRegistration = errors.New("acp(registry): conflicting kind registration")
)

// New constructs an empty Registry.
func New(_ apis.Config) apis.Registry {
	return &registry{}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// labels maps collection label to *apis.Kind.
	labels sync.Map // map[string]*apis.Kind
	// messages maps ObjectInfo full name to *apis.Kind.
	messages sync.Map // map[protoreflect.FullName]*apis.Kind
	// count tracks the number of registered entries.
	count int
}

// Register adds k under its label.
// It is idempotent for the same kind.
func (r *registry) Register(k *apis.Kind) error {
	// Validate inputs early.
	if k == nil {
		return ErrNilKind
	}
	if k.Label == "" {
		return ErrEmptyLabel
	}
	if k.ObjectInfo == nil {
		return ErrIncompleteKind
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.labels.Load(k.Label); ok {
		if sameKind(old.(*apis.Kind), k) {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.labels.Load(k.Label); ok {
		if sameKind(old.(*apis.Kind), k) {
			return nil
		}
		return ErrConflictingRegistration
	}
	if old, ok := r.messages.Load(k.ObjectInfo.FullName()); ok && old.(*apis.Kind).Label != k.Label {
		return ErrConflictingRegistration
	}

	r.labels.Store(k.Label, k)
	r.messages.Store(k.ObjectInfo.FullName(), k)
	r.count++
	return nil
}

// Lookup returns the kind registered under label.
func (r *registry) Lookup(label string) (*apis.Kind, bool) {
	if label == "" {
		return nil, false
	}
	if v, ok := r.labels.Load(label); ok {
		return v.(*apis.Kind), true
	}
	return nil, false
}

// LookupMessage returns the kind whose ObjectInfo message is name.
func (r *registry) LookupMessage(name protoreflect.FullName) (*apis.Kind, bool) {
	if v, ok := r.messages.Load(name); ok {
		return v.(*apis.Kind), true
	}
	return nil, false
}

// Entries returns a snapshot sorted by label.
func (r *registry) Entries() []*apis.Kind {
	entries := make([]*apis.Kind, 0, r.Count())
	r.labels.Range(func(_, value any) bool {
		entries = append(entries, value.(*apis.Kind))
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Label < entries[j].Label })
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels = sync.Map{}
	r.messages = sync.Map{}
	r.count = 0
}

// sameKind treats kinds compiled from the same protocol package as equal,
// so that a catalog compiled twice can be registered twice.
func sameKind(a, b *apis.Kind) bool {
	if a == b {
		return true
	}
	return a.Package == b.Package &&
		a.Name == b.Name &&
		a.ObjectInfo.FullName() == b.ObjectInfo.FullName()
}
