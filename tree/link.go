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
	"slices"

	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/paths"
	"dirpx.dev/acp/schema"
)

var (
	linkShape     = shape{kind: protoreflect.MessageKind, path: true}
	linkListShape = shape{kind: protoreflect.MessageKind, repeated: true, path: true}
)

// targetPath returns the resource path to store for target. labels limits
// the allowed collections; empty means any.
func targetPath(target *Object, labels []string) (string, error) {
	if target == nil {
		return "", nil
	}
	_, rp, err := target.bound()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnstoredLink, target)
	}
	if len(labels) > 0 && !slices.Contains(labels, paths.Label(rp)) {
		return "", fmt.Errorf("%w: %s, want one of %v", ErrWrongKind, target, labels)
	}
	return rp, nil
}

func resolveAll(ctx context.Context, o *Object, ps []string) ([]*Object, error) {
	s, _, err := o.bound()
	if err != nil {
		return nil, fmt.Errorf("cannot get linked objects: %w", err)
	}
	out := make([]*Object, len(ps))
	for i, p := range ps {
		if p == "" {
			continue
		}
		if out[i], err = s.Get(ctx, p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LinkField binds a resource path field to the linked object.
type LinkField struct {
	path   string
	since  string
	labels []string
}

// Link binds the resource path field at path. labels limits the
// collections of linked objects.
func Link(path string, labels ...string) LinkField {
	return LinkField{path: path, labels: labels}
}

// Since returns a copy of f that requires server version v or newer.
func (f LinkField) Since(v string) LinkField {
	f.since = v
	return f
}

// Path returns the linked resource path, or "" if unset.
func (f LinkField) Path(ctx context.Context, o *Object) (string, error) {
	m, fd, err := read(ctx, o, f.path, f.since, linkShape)
	if err != nil {
		return "", err
	}
	if !m.Has(fd) {
		return "", nil
	}
	return schema.PathValue(m.Get(fd).Message()), nil
}

// Get returns the linked object, or nil if unset.
func (f LinkField) Get(ctx context.Context, o *Object) (*Object, error) {
	if _, _, err := o.bound(); err != nil {
		return nil, fmt.Errorf("cannot get linked object: %w", err)
	}
	p, err := f.Path(ctx, o)
	if err != nil || p == "" {
		return nil, err
	}
	objs, err := resolveAll(ctx, o, []string{p})
	if err != nil {
		return nil, err
	}
	return objs[0], nil
}

// Set links target; nil removes the link.
func (f LinkField) Set(ctx context.Context, o *Object, target *Object) error {
	p, err := targetPath(target, f.labels)
	if err != nil {
		return err
	}
	return write(ctx, o, f.path, f.since, linkShape, func(m protoreflect.Message, fd protoreflect.FieldDescriptor) error {
		if p == "" {
			m.Clear(fd)
			return nil
		}
		schema.SetPathValue(m.Mutable(fd).Message(), p)
		return nil
	})
}

// LinkListField binds a repeated resource path field.
type LinkListField struct {
	path   string
	since  string
	labels []string
}

// LinkList binds the repeated resource path field at path.
func LinkList(path string, labels ...string) LinkListField {
	return LinkListField{path: path, labels: labels}
}

// Since returns a copy of f that requires server version v or newer.
func (f LinkListField) Since(v string) LinkListField {
	f.since = v
	return f
}

// Paths returns the linked resource paths in list order.
func (f LinkListField) Paths(ctx context.Context, o *Object) ([]string, error) {
	m, fd, err := read(ctx, o, f.path, f.since, linkListShape)
	if err != nil {
		return nil, err
	}
	l := m.Get(fd).List()
	out := make([]string, l.Len())
	for i := range out {
		out[i] = schema.PathValue(l.Get(i).Message())
	}
	return out, nil
}

// All returns the linked objects.
func (f LinkListField) All(ctx context.Context, o *Object) ([]*Object, error) {
	ps, err := f.Paths(ctx, o)
	if err != nil {
		return nil, err
	}
	return resolveAll(ctx, o, ps)
}

// Len returns the number of links.
func (f LinkListField) Len(ctx context.Context, o *Object) (int, error) {
	ps, err := f.Paths(ctx, o)
	return len(ps), err
}

// At returns the i-th linked object.
func (f LinkListField) At(ctx context.Context, o *Object, i int) (*Object, error) {
	ps, err := f.Paths(ctx, o)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(ps) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(ps))
	}
	objs, err := resolveAll(ctx, o, ps[i:i+1])
	if err != nil {
		return nil, err
	}
	return objs[0], nil
}

// Index returns the position of the first link to target.
func (f LinkListField) Index(ctx context.Context, o *Object, target *Object) (int, error) {
	if target == nil {
		return -1, fmt.Errorf("%w: nil target", ErrNotInList)
	}
	ps, err := f.Paths(ctx, o)
	if err != nil {
		return -1, err
	}
	if i := slices.Index(ps, target.ResourcePath()); i >= 0 && target.IsStored() {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %s", ErrNotInList, target)
}

// Set replaces all links.
func (f LinkListField) Set(ctx context.Context, o *Object, targets []*Object) error {
	ps := make([]string, len(targets))
	for i, t := range targets {
		p, err := targetPath(t, f.labels)
		if err != nil {
			return err
		}
		if p == "" {
			return fmt.Errorf("%w: nil element %d", ErrUnstoredLink, i)
		}
		ps[i] = p
	}
	return f.modify(ctx, o, func([]string) ([]string, error) { return ps, nil })
}

// Append links target at the end.
func (f LinkListField) Append(ctx context.Context, o *Object, target *Object) error {
	n, err := f.Len(ctx, o)
	if err != nil {
		return err
	}
	return f.Insert(ctx, o, n, target)
}

// Insert links target before position i.
func (f LinkListField) Insert(ctx context.Context, o *Object, i int, target *Object) error {
	p, err := targetPath(target, f.labels)
	if err != nil {
		return err
	}
	if p == "" {
		return fmt.Errorf("%w: nil target", ErrUnstoredLink)
	}
	return f.modify(ctx, o, func(ps []string) ([]string, error) {
		if i < 0 || i > len(ps) {
			return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(ps))
		}
		return slices.Insert(ps, i, p), nil
	})
}

// Remove drops the first link to target.
func (f LinkListField) Remove(ctx context.Context, o *Object, target *Object) error {
	if target == nil {
		return fmt.Errorf("%w: nil target", ErrNotInList)
	}
	rp := target.ResourcePath()
	return f.modify(ctx, o, func(ps []string) ([]string, error) {
		i := slices.Index(ps, rp)
		if rp == "" || i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotInList, target)
		}
		return slices.Delete(ps, i, i+1), nil
	})
}

func (f LinkListField) modify(ctx context.Context, o *Object, fn func([]string) ([]string, error)) error {
	return write(ctx, o, f.path, f.since, linkListShape, func(m protoreflect.Message, fd protoreflect.FieldDescriptor) error {
		l := m.Get(fd).List()
		cur := make([]string, l.Len())
		for i := range cur {
			cur[i] = schema.PathValue(l.Get(i).Message())
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}
		m.Clear(fd)
		if len(next) == 0 {
			return nil
		}
		ml := m.Mutable(fd).List()
		for _, p := range next {
			el := ml.NewElement()
			schema.SetPathValue(el.Message(), p)
			ml.Append(el)
		}
		return nil
	})
}
