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

package tree

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/schema"
)

// Mapping is a child collection keyed by object id. Every call lists the
// collection on the server; nothing is cached.
type Mapping struct {
	server *Server
	kind   *apis.Kind
	path   string
}

// Item is one entry of a Mapping.
type Item struct {
	ID     string
	Object *Object
}

// NewMapping returns the collection cp of s.
func NewMapping(s *Server, cp string) (*Mapping, error) {
	k, err := s.Kind(cp)
	if err != nil {
		return nil, err
	}
	if err := s.supported(k); err != nil {
		return nil, err
	}
	return &Mapping{server: s, kind: k, path: cp}, nil
}

// Path returns the collection path.
func (m *Mapping) Path() string { return m.path }

// Kind returns the kind of the members.
func (m *Mapping) Kind() *apis.Kind { return m.kind }

func (m *Mapping) list(ctx context.Context) ([]protoreflect.Message, error) {
	stub, err := m.server.Stub(m.kind)
	if err != nil {
		return nil, err
	}
	infos, err := stub.List(ctx, m.path)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		id := schema.ReadInfo(info).ID
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateID, id, m.path)
		}
		seen[id] = struct{}{}
	}
	return infos, nil
}

func (m *Mapping) find(ctx context.Context, id string) (protoreflect.Message, error) {
	infos, err := m.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if schema.ReadInfo(info).ID == id {
			return info, nil
		}
	}
	return nil, fmt.Errorf("%w: no object with ID %q found in %s", ErrNotFound, id, m.path)
}

// Keys returns the ids in server order.
func (m *Mapping) Keys(ctx context.Context) ([]string, error) {
	infos, err := m.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = schema.ReadInfo(info).ID
	}
	return out, nil
}

// Values returns the objects in server order.
func (m *Mapping) Values(ctx context.Context) ([]*Object, error) {
	infos, err := m.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Object, len(infos))
	for i, info := range infos {
		out[i] = attach(m.server, m.kind, info)
	}
	return out, nil
}

// Items returns id and object pairs in server order.
func (m *Mapping) Items(ctx context.Context) ([]Item, error) {
	objs, err := m.Values(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Item, len(objs))
	for i, o := range objs {
		out[i] = Item{ID: o.ID(), Object: o}
	}
	return out, nil
}

// Get returns the object with the given id.
func (m *Mapping) Get(ctx context.Context, id string) (*Object, error) {
	info, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return attach(m.server, m.kind, info), nil
}

// Len returns the number of objects.
func (m *Mapping) Len(ctx context.Context) (int, error) {
	infos, err := m.list(ctx)
	return len(infos), err
}

// Contains reports whether an object with the given id exists.
func (m *Mapping) Contains(ctx context.Context, id string) (bool, error) {
	keys, err := m.Keys(ctx)
	if err != nil {
		return false, err
	}
	for _, k := range keys {
		if k == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *Mapping) mutable() error {
	if !m.kind.Creatable {
		return fmt.Errorf("%w: %s collection %s", ErrReadOnly, m.kind.Name, m.path)
	}
	return nil
}

// Create stores a new object named name. init may set properties before
// the object is stored.
func (m *Mapping) Create(ctx context.Context, name string, init ...func(*Object) error) (*Object, error) {
	if err := m.mutable(); err != nil {
		return nil, err
	}
	o := New(m.kind, name)
	for _, fn := range init {
		if err := fn(o); err != nil {
			return nil, err
		}
	}
	if err := o.StoreAt(ctx, m.server, m.path); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes the object with the given id.
func (m *Mapping) Delete(ctx context.Context, id string) error {
	if err := m.mutable(); err != nil {
		return err
	}
	info, err := m.find(ctx, id)
	if err != nil {
		return err
	}
	return attach(m.server, m.kind, info).Delete(ctx)
}

// Clear removes all objects.
func (m *Mapping) Clear(ctx context.Context) error {
	if err := m.mutable(); err != nil {
		return err
	}
	objs, err := m.Values(ctx)
	if err != nil {
		return err
	}
	for _, o := range objs {
		if err := o.Delete(ctx); err != nil {
			return err
		}
	}
	m.server.log.Debug("cleared", zap.String("collection", m.path), zap.Int("count", len(objs)))
	return nil
}

// Pop removes the object with the given id and returns an unstored clone
// of it.
func (m *Mapping) Pop(ctx context.Context, id string) (*Object, error) {
	if err := m.mutable(); err != nil {
		return nil, err
	}
	o, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c := o.Clone(false)
	if err := o.Delete(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
