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
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/linked"
	"dirpx.dev/acp/paths"
	"dirpx.dev/acp/schema"
)

// Object is a proxy of one tree object.
type Object struct {
	kind *apis.Kind

	mu     sync.RWMutex
	server *Server
	info   protoreflect.Message
}

// New returns an unstored object of kind k. An empty name is replaced by
// the default name of the kind.
func New(k *apis.Kind, name string) *Object {
	if name == "" {
		name = k.DefaultName
	}
	info := dynamicpb.NewMessage(k.ObjectInfo)
	schema.SetInfoName(info, name)
	return &Object{kind: k, info: info}
}

func attach(s *Server, k *apis.Kind, info protoreflect.Message) *Object {
	return &Object{kind: k, server: s, info: info}
}

func cloneMessage(m protoreflect.Message) protoreflect.Message {
	return proto.Clone(m.Interface()).ProtoReflect()
}

// Kind returns the kind of the object.
func (o *Object) Kind() *apis.Kind { return o.kind }

// Server returns the server of a stored object, or nil.
func (o *Object) Server() *Server {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.server
}

func (o *Object) basic() schema.BasicInfo {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return schema.ReadInfo(o.info)
}

// Name returns the last known name.
func (o *Object) Name() string { return o.basic().Name }

// ID returns the id, or "" for unstored objects.
func (o *Object) ID() string { return o.basic().ID }

// ResourcePath returns the resource path, or "" for unstored objects.
func (o *Object) ResourcePath() string { return o.basic().ResourcePath }

// Version returns the last known version.
func (o *Object) Version() string { return o.basic().Version }

// IsStored reports whether the object exists on a server.
func (o *Object) IsStored() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.server != nil && schema.ReadInfo(o.info).ResourcePath != ""
}

func (o *Object) bound() (*Server, string, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	rp := schema.ReadInfo(o.info).ResourcePath
	if o.server == nil || rp == "" {
		return nil, "", fmt.Errorf("%w: %s %q", ErrNotStored, o.kind.Name, schema.ReadInfo(o.info).Name)
	}
	return o.server, rp, nil
}

func (o *Object) set(s *Server, info protoreflect.Message) {
	o.mu.Lock()
	o.server, o.info = s, info
	o.mu.Unlock()
}

// Refresh fetches the current state of a stored object. It does nothing
// for unstored objects.
func (o *Object) Refresh(ctx context.Context) error {
	if !o.IsStored() {
		return nil
	}
	s, rp, err := o.bound()
	if err != nil {
		return err
	}
	stub, err := s.Stub(o.kind)
	if err != nil {
		return err
	}
	info, err := stub.Get(ctx, rp)
	if err != nil {
		return err
	}
	o.set(s, info)
	return nil
}

// Load returns a copy of the current ObjectInfo, refreshed first for
// stored objects.
func (o *Object) Load(ctx context.Context) (protoreflect.Message, error) {
	if err := o.Refresh(ctx); err != nil {
		return nil, err
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	return cloneMessage(o.info), nil
}

// Update applies fn to a copy of the current ObjectInfo. Stored objects
// are written back with Put only if fn changed something.
func (o *Object) Update(ctx context.Context, fn func(info protoreflect.Message) error) error {
	cur, err := o.Load(ctx)
	if err != nil {
		return err
	}
	next := cloneMessage(cur)
	if err := fn(next); err != nil {
		return err
	}
	if proto.Equal(cur.Interface(), next.Interface()) {
		return nil
	}
	if !o.IsStored() {
		o.mu.Lock()
		o.info = next
		o.mu.Unlock()
		return nil
	}
	if o.kind.ReadOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, o.kind.Name)
	}
	s, rp, err := o.bound()
	if err != nil {
		return err
	}
	if err := checkLinksWithin(o.kind, schema.Props(next), paths.Root(rp)); err != nil {
		return err
	}
	stub, err := s.Stub(o.kind)
	if err != nil {
		return err
	}
	reply, err := stub.Put(ctx, next)
	if err != nil {
		return err
	}
	o.set(s, reply)
	return nil
}

// SetName renames the object. The id of a stored object is kept.
func (o *Object) SetName(ctx context.Context, name string) error {
	return o.Update(ctx, func(info protoreflect.Message) error {
		schema.SetInfoName(info, name)
		return nil
	})
}

// Clone returns an unstored copy with the same name and properties. With
// unlink set, all links of the copy are removed so that it can be stored
// in another model.
func (o *Object) Clone(unlink bool) *Object {
	o.mu.RLock()
	name := schema.ReadInfo(o.info).Name
	props := schema.Props(cloneMessage(o.info))
	o.mu.RUnlock()

	c := New(o.kind, name)
	if unlink {
		linked.Unlink(props)
	}
	c.info.Set(o.kind.ObjectInfo.Fields().ByName(schema.FieldProperties), protoreflect.ValueOfMessage(props))
	return c
}

// Store creates the object under parent on the server of parent.
func (o *Object) Store(ctx context.Context, parent *Object) error {
	if parent == nil {
		return fmt.Errorf("%w: nil parent of %s", ErrNotStored, o.kind.Name)
	}
	s, prp, err := parent.bound()
	if err != nil {
		return fmt.Errorf("store %s: parent: %w", o.kind.Name, err)
	}
	if !parent.kind.HasChild(o.kind.Label) {
		return fmt.Errorf("%w: %s has no %q", ErrNoCollection, parent.kind.Name, o.kind.Label)
	}
	return o.StoreAt(ctx, s, paths.Join(prp, o.kind.Label))
}

// StoreAt creates the object in the collection cp of s. Links must stay
// within the model of cp.
func (o *Object) StoreAt(ctx context.Context, s *Server, cp string) error {
	if o.IsStored() {
		return fmt.Errorf("%w: %s", ErrAlreadyStored, o.ResourcePath())
	}
	if !o.kind.Creatable {
		return fmt.Errorf("%w: %s objects cannot be created", ErrReadOnly, o.kind.Name)
	}
	o.mu.RLock()
	name := schema.ReadInfo(o.info).Name
	props := schema.Props(cloneMessage(o.info))
	o.mu.RUnlock()

	if err := checkLinksWithin(o.kind, props, paths.Root(cp)); err != nil {
		return err
	}
	stub, err := s.Stub(o.kind)
	if err != nil {
		return err
	}
	info, err := stub.Create(ctx, cp, name, props)
	if err != nil {
		return err
	}
	o.set(s, info)
	s.log.Debug("stored", zap.String("kind", o.kind.Name), zap.String("path", schema.ReadInfo(info).ResourcePath))
	return nil
}

func checkLinksWithin(k *apis.Kind, props protoreflect.Message, root string) error {
	if root == "" {
		return nil
	}
	for _, p := range linked.Paths(props) {
		if paths.Root(p) != root {
			return fmt.Errorf("%w: %s links to %s, target model is %s", ErrForeignLink, k.Name, p, root)
		}
	}
	return nil
}

// Delete removes the object from the server. The proxy becomes an
// unstored object with the same name and properties.
func (o *Object) Delete(ctx context.Context) error {
	s, rp, err := o.bound()
	if err != nil {
		return err
	}
	stub, err := s.Stub(o.kind)
	if err != nil {
		return err
	}
	if err := stub.Delete(ctx, rp, o.Version()); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	schema.WriteInfo(o.info, schema.BasicInfo{Name: schema.ReadInfo(o.info).Name})
	o.server = nil
	return nil
}

// Parent returns the owning object, or nil for top-level objects.
func (o *Object) Parent(ctx context.Context) (*Object, error) {
	s, rp, err := o.bound()
	if err != nil {
		return nil, err
	}
	prp := paths.Parent(rp)
	if prp == "" {
		return nil, nil
	}
	return s.Get(ctx, prp)
}

// LinkedPaths returns the resource paths the object links to.
func (o *Object) LinkedPaths(ctx context.Context) ([]string, error) {
	info, err := o.Load(ctx)
	if err != nil {
		return nil, err
	}
	return linked.Paths(schema.Props(info)), nil
}

// LinkedObjects returns the objects the object links to.
func (o *Object) LinkedObjects(ctx context.Context) ([]*Object, error) {
	s, _, err := o.bound()
	if err != nil {
		return nil, err
	}
	ps, err := o.LinkedPaths(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Object, 0, len(ps))
	for _, p := range ps {
		obj, err := s.Get(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("linked object %s: %w", p, err)
		}
		out = append(out, obj)
	}
	return out, nil
}

// Collection returns the child collection label of a stored object.
func (o *Object) Collection(label string) (*Mapping, error) {
	s, rp, err := o.bound()
	if err != nil {
		return nil, err
	}
	if !o.kind.HasChild(label) {
		return nil, fmt.Errorf("%w: %s has no %q", ErrNoCollection, o.kind.Name, label)
	}
	return NewMapping(s, paths.Join(rp, label))
}

// Children returns the objects of all child collections, in the order of
// the collections of the kind. Collections of kinds the server does not
// support are skipped.
func (o *Object) Children(ctx context.Context) ([]*Object, error) {
	s, _, err := o.bound()
	if err != nil {
		return nil, err
	}
	labels := o.kind.Children
	results := make([][]*Object, len(labels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, label := range labels {
		m, err := o.Collection(label)
		if errors.Is(err, ErrUnsupported) || errors.Is(err, ErrUnknownKind) {
			continue
		}
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			vals, err := m.Values(gctx)
			results[i] = vals
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []*Object
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// Equal reports whether o and other are the same object: the same stored
// resource path on the same server, or the same unstored proxy.
func (o *Object) Equal(other *Object) bool {
	if o == other {
		return true
	}
	if o == nil || other == nil || o.kind != other.kind {
		return false
	}
	sa, pa, errA := o.bound()
	sb, pb, errB := other.bound()
	return errA == nil && errB == nil && sa == sb && pa == pb
}

func (o *Object) String() string {
	b := o.basic()
	if b.ResourcePath != "" {
		return fmt.Sprintf("%s(%q)", o.kind.Name, b.ResourcePath)
	}
	return fmt.Sprintf("%s(name=%q, unstored)", o.kind.Name, b.Name)
}

// MarshalJSON renders the last known ObjectInfo.
func (o *Object) MarshalJSON() ([]byte, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return protojson.Marshal(o.info.Interface())
}
