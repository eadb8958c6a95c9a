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
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/schema"
)

// fieldAt resolves a dotted field path such as "properties.thickness"
// below m. Intermediate fields must be singular messages; with mutable
// set they are populated on the way.
func fieldAt(m protoreflect.Message, path string, mutable bool) (protoreflect.Message, protoreflect.FieldDescriptor, error) {
	names := strings.Split(path, ".")
	for i, name := range names {
		fd := m.Descriptor().Fields().ByName(protoreflect.Name(name))
		if fd == nil {
			return nil, nil, fmt.Errorf("%w: %q in %s", ErrUnknownField, path, m.Descriptor().FullName())
		}
		if i == len(names)-1 {
			return m, fd, nil
		}
		if fd.Kind() != protoreflect.MessageKind || fd.IsList() || fd.IsMap() {
			return nil, nil, fmt.Errorf("%w: %q: %s is not a message", ErrUnknownField, path, name)
		}
		if mutable {
			m = m.Mutable(fd).Message()
		} else {
			m = m.Get(fd).Message()
		}
	}
	return nil, nil, fmt.Errorf("%w: empty path", ErrUnknownField)
}

type shape struct {
	kind     protoreflect.Kind
	repeated bool
	// path restricts message fields to resource path messages.
	path bool
}

func (sh shape) check(path string, fd protoreflect.FieldDescriptor) error {
	ok := fd.Kind() == sh.kind && fd.IsList() == sh.repeated && !fd.IsMap()
	if ok && sh.path {
		ok = schema.IsResourcePath(fd.Message())
	}
	if !ok {
		return fmt.Errorf("%w: %q has type %s", ErrUnknownField, path, fd.Kind())
	}
	return nil
}

// gate rejects access to a field the server of o is too old for.
// Unstored objects are not checked.
func gate(o *Object, path, since string) error {
	s := o.Server()
	if s == nil || s.Supports(since) {
		return nil
	}
	return fmt.Errorf("%w: %s.%s requires server version %s, server is %s",
		ErrUnsupported, o.kind.Name, path, since, s.version)
}

func read(ctx context.Context, o *Object, path, since string, sh shape) (protoreflect.Message, protoreflect.FieldDescriptor, error) {
	if err := gate(o, path, since); err != nil {
		return nil, nil, err
	}
	info, err := o.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	m, fd, err := fieldAt(info, path, false)
	if err != nil {
		return nil, nil, err
	}
	if err := sh.check(path, fd); err != nil {
		return nil, nil, err
	}
	return m, fd, nil
}

func write(ctx context.Context, o *Object, path, since string, sh shape, fn func(m protoreflect.Message, fd protoreflect.FieldDescriptor) error) error {
	if err := gate(o, path, since); err != nil {
		return err
	}
	return o.Update(ctx, func(info protoreflect.Message) error {
		m, fd, err := fieldAt(info, path, true)
		if err != nil {
			return err
		}
		if err := sh.check(path, fd); err != nil {
			return err
		}
		return fn(m, fd)
	})
}

// Scalar binds a singular scalar field.
type Scalar[T any] struct {
	path  string
	since string
	sh    shape
	from func(protoreflect.Value) T
	to   func(T) protoreflect.Value
}

// Path returns the dotted field path.
func (f Scalar[T]) Path() string { return f.path }

// Since returns a copy of f that requires server version v or newer.
func (f Scalar[T]) Since(v string) Scalar[T] {
	f.since = v
	return f
}

// Get reads the field.
func (f Scalar[T]) Get(ctx context.Context, o *Object) (T, error) {
	m, fd, err := read(ctx, o, f.path, f.since, f.sh)
	if err != nil {
		var zero T
		return zero, err
	}
	return f.from(m.Get(fd)), nil
}

// Set writes the field.
func (f Scalar[T]) Set(ctx context.Context, o *Object, v T) error {
	return write(ctx, o, f.path, f.since, f.sh, func(m protoreflect.Message, fd protoreflect.FieldDescriptor) error {
		m.Set(fd, f.to(v))
		return nil
	})
}

// Double binds a double field.
func Double(path string) Scalar[float64] {
	return Scalar[float64]{
		path: path,
		sh:   shape{kind: protoreflect.DoubleKind},
		from: protoreflect.Value.Float,
		to:   protoreflect.ValueOfFloat64,
	}
}

// Int32 binds an int32 field.
func Int32(path string) Scalar[int32] {
	return Scalar[int32]{
		path: path,
		sh:   shape{kind: protoreflect.Int32Kind},
		from: func(v protoreflect.Value) int32 { return int32(v.Int()) },
		to:   protoreflect.ValueOfInt32,
	}
}

// Bool binds a bool field.
func Bool(path string) Scalar[bool] {
	return Scalar[bool]{
		path: path,
		sh:   shape{kind: protoreflect.BoolKind},
		from: protoreflect.Value.Bool,
		to:   protoreflect.ValueOfBool,
	}
}

// String binds a string field.
func String(path string) Scalar[string] {
	return Scalar[string]{
		path: path,
		sh:   shape{kind: protoreflect.StringKind},
		from: protoreflect.Value.String,
		to:   protoreflect.ValueOfString,
	}
}

// Enum binds an enum field to a Go integer type.
func Enum[E ~int32](path string) Scalar[E] {
	return Scalar[E]{
		path: path,
		sh:   shape{kind: protoreflect.EnumKind},
		from: func(v protoreflect.Value) E { return E(v.Enum()) },
		to:   func(e E) protoreflect.Value { return protoreflect.ValueOfEnum(protoreflect.EnumNumber(e)) },
	}
}

// List binds a repeated scalar field.
type List[T any] struct {
	path  string
	since string
	sh    shape
	from func(protoreflect.Value) T
	to   func(T) protoreflect.Value
}

// Path returns the dotted field path.
func (f List[T]) Path() string { return f.path }

// Since returns a copy of f that requires server version v or newer.
func (f List[T]) Since(v string) List[T] {
	f.since = v
	return f
}

// Get reads the list.
func (f List[T]) Get(ctx context.Context, o *Object) ([]T, error) {
	m, fd, err := read(ctx, o, f.path, f.since, f.sh)
	if err != nil {
		return nil, err
	}
	l := m.Get(fd).List()
	out := make([]T, l.Len())
	for i := range out {
		out[i] = f.from(l.Get(i))
	}
	return out, nil
}

// Set replaces the list.
func (f List[T]) Set(ctx context.Context, o *Object, vs []T) error {
	return write(ctx, o, f.path, f.since, f.sh, func(m protoreflect.Message, fd protoreflect.FieldDescriptor) error {
		m.Clear(fd)
		if len(vs) == 0 {
			return nil
		}
		l := m.Mutable(fd).List()
		for _, v := range vs {
			l.Append(f.to(v))
		}
		return nil
	})
}

// Doubles binds a repeated double field.
func Doubles(path string) List[float64] {
	d := Double(path)
	return List[float64]{path: path, sh: shape{kind: protoreflect.DoubleKind, repeated: true}, from: d.from, to: d.to}
}

// Int32s binds a repeated int32 field.
func Int32s(path string) List[int32] {
	i := Int32(path)
	return List[int32]{path: path, sh: shape{kind: protoreflect.Int32Kind, repeated: true}, from: i.from, to: i.to}
}
