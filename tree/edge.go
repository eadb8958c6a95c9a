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

	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/schema"
)

// EdgeListField binds a repeated helper message that carries a link plus
// edge values, e.g. a fabric with its angle inside a stackup. decode and
// encode convert between E and the helper message; the link itself is
// handled by the binding.
type EdgeListField[E any] struct {
	path   string
	since  string
	link   protoreflect.Name
	labels []string
	decode func(target *Object, m protoreflect.Message) E
	encode func(e E, m protoreflect.Message) *Object
}

// EdgeList binds the repeated message field at path whose elements link
// through their field link.
func EdgeList[E any](
	path, link string,
	decode func(target *Object, m protoreflect.Message) E,
	encode func(e E, m protoreflect.Message) *Object,
	labels ...string,
) EdgeListField[E] {
	return EdgeListField[E]{
		path:   path,
		link:   protoreflect.Name(link),
		labels: labels,
		decode: decode,
		encode: encode,
	}
}

var edgeShape = shape{kind: protoreflect.MessageKind, repeated: true}

// Since returns a copy of f that requires server version v or newer.
func (f EdgeListField[E]) Since(v string) EdgeListField[E] {
	f.since = v
	return f
}

// Get returns the edges with their linked objects resolved.
func (f EdgeListField[E]) Get(ctx context.Context, o *Object) ([]E, error) {
	m, fd, err := read(ctx, o, f.path, f.since, edgeShape)
	if err != nil {
		return nil, err
	}
	l := m.Get(fd).List()
	ps := make([]string, l.Len())
	for i := range ps {
		ps[i] = schema.PathField(l.Get(i).Message(), f.link)
	}
	targets := make([]*Object, len(ps))
	if len(ps) > 0 {
		if targets, err = resolveAll(ctx, o, ps); err != nil {
			return nil, err
		}
	}
	out := make([]E, len(ps))
	for i := range out {
		out[i] = f.decode(targets[i], l.Get(i).Message())
	}
	return out, nil
}

// Len returns the number of edges.
func (f EdgeListField[E]) Len(ctx context.Context, o *Object) (int, error) {
	m, fd, err := read(ctx, o, f.path, f.since, edgeShape)
	if err != nil {
		return 0, err
	}
	return m.Get(fd).List().Len(), nil
}

// Set replaces all edges.
func (f EdgeListField[E]) Set(ctx context.Context, o *Object, edges []E) error {
	return write(ctx, o, f.path, f.since, edgeShape, func(m protoreflect.Message, fd protoreflect.FieldDescriptor) error {
		m.Clear(fd)
		return f.appendAll(m, fd, edges)
	})
}

// Append adds an edge at the end.
func (f EdgeListField[E]) Append(ctx context.Context, o *Object, e E) error {
	return write(ctx, o, f.path, f.since, edgeShape, func(m protoreflect.Message, fd protoreflect.FieldDescriptor) error {
		return f.appendAll(m, fd, []E{e})
	})
}

func (f EdgeListField[E]) appendAll(m protoreflect.Message, fd protoreflect.FieldDescriptor, edges []E) error {
	if len(edges) == 0 {
		return nil
	}
	if fd.Message().Fields().ByName(f.link) == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, fd.Message().FullName(), f.link)
	}
	l := m.Mutable(fd).List()
	for _, e := range edges {
		el := l.NewElement()
		target := f.encode(e, el.Message())
		p, err := targetPath(target, f.labels)
		if err != nil {
			return err
		}
		if p != "" {
			schema.SetPathField(el.Message(), f.link, p)
		}
		l.Append(el)
	}
	return nil
}
