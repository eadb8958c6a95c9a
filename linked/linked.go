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

// Package linked finds and edits the links between tree objects held in
// protobuf messages.
//
// A link is any resource path or collection path message reachable from a
// properties message, through singular fields, repeated fields, and
// repeated helper messages (edges) alike.
package linked

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/schema"
)

// Field locates one path message inside a message tree.
type Field struct {
	// Parent is the message holding the path field.
	Parent protoreflect.Message
	// Desc is the path field of Parent.
	Desc protoreflect.FieldDescriptor
	// Index is the list index for repeated fields, or -1.
	Index int
}

// Message returns the path message.
func (f Field) Message() protoreflect.Message {
	if f.Index < 0 {
		return f.Parent.Mutable(f.Desc).Message()
	}
	return f.Parent.Mutable(f.Desc).List().Get(f.Index).Message()
}

// Value returns the path held by the field.
func (f Field) Value() string {
	if f.Index < 0 {
		return schema.PathValue(f.Parent.Get(f.Desc).Message())
	}
	return schema.PathValue(f.Parent.Get(f.Desc).List().Get(f.Index).Message())
}

// Set replaces the path held by the field.
func (f Field) Set(v string) {
	schema.SetPathValue(f.Message(), v)
}

// IsCollection reports whether the field holds a collection path.
func (f Field) IsCollection() bool {
	return schema.IsCollectionPath(f.Desc.Message())
}

// Fields returns every path field set in m, in field-number order,
// depth first.
func Fields(m protoreflect.Message) []Field {
	var out []Field
	walk(m, func(f Field) { out = append(out, f) })
	return out
}

// Paths returns the distinct non-empty resource paths linked from m, in
// first-seen order. Collection paths are not included.
func Paths(m protoreflect.Message) []string {
	seen := make(map[string]struct{})
	var out []string
	walk(m, func(f Field) {
		if f.IsCollection() {
			return
		}
		v := f.Value()
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	})
	return out
}

// HasLinks reports whether m links to any object or collection.
func HasLinks(m protoreflect.Message) bool {
	found := false
	walk(m, func(f Field) {
		if f.Value() != "" {
			found = true
		}
	})
	return found
}

// Unlink removes every link from m. Singular path fields and repeated
// path lists are cleared. Elements of repeated helper messages are kept
// with their path fields cleared, so edge values such as angles survive.
func Unlink(m protoreflect.Message) {
	fields := m.Descriptor().Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		if !isMessageField(fd) || !m.Has(fd) {
			continue
		}
		switch {
		case schema.IsPath(fd.Message()):
			m.Clear(fd)
		case fd.IsList():
			list := m.Mutable(fd).List()
			for j := 0; j < list.Len(); j++ {
				Unlink(list.Get(j).Message())
			}
		default:
			Unlink(m.Mutable(fd).Message())
		}
	}
}

// Rewrite replaces each non-empty path in m with fn(path). It stops at the
// first error; fields visited before the error keep their new value.
func Rewrite(m protoreflect.Message, fn func(string) (string, error)) error {
	for _, f := range Fields(m) {
		v := f.Value()
		if v == "" {
			continue
		}
		nv, err := fn(v)
		if err != nil {
			return err
		}
		if nv != v {
			f.Set(nv)
		}
	}
	return nil
}

func walk(m protoreflect.Message, fn func(Field)) {
	fields := m.Descriptor().Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		if !isMessageField(fd) || !m.Has(fd) {
			continue
		}
		path := schema.IsPath(fd.Message())
		if fd.IsList() {
			list := m.Get(fd).List()
			for j := 0; j < list.Len(); j++ {
				if path {
					fn(Field{Parent: m, Desc: fd, Index: j})
				} else {
					walk(list.Get(j).Message(), fn)
				}
			}
			continue
		}
		if path {
			fn(Field{Parent: m, Desc: fd, Index: -1})
			continue
		}
		walk(m.Get(fd).Message(), fn)
	}
}

func isMessageField(fd protoreflect.FieldDescriptor) bool {
	return (fd.Kind() == protoreflect.MessageKind || fd.Kind() == protoreflect.GroupKind) && !fd.IsMap()
}
