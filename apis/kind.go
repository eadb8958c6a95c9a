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

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Kind describes one type of tree object exposed by the server: its
// collection label, the protobuf messages exchanged for it, and where it
// may appear in the tree.
type Kind struct {
	// Label is the collection label used in resource paths (e.g. "fabrics").
	Label string
	// Name is the type name used for display (e.g. "Fabric").
	Name string
	// Package is the fully-qualified protobuf package of the kind's service.
	Package string

	// ObjectInfo is the message returned by Get/Put/Create.
	ObjectInfo protoreflect.MessageDescriptor
	// Properties is the message held in ObjectInfo.properties.
	Properties protoreflect.MessageDescriptor
	// CreateRequest is the request message of Create; nil if not creatable.
	CreateRequest protoreflect.MessageDescriptor
	// ListReply is the reply message of List.
	ListReply protoreflect.MessageDescriptor

	// Children lists the collection labels of child collections.
	Children []string
	// Creatable reports whether objects of this kind can be created and
	// deleted by the client.
	Creatable bool
	// ReadOnly reports whether the properties can be modified.
	ReadOnly bool
	// SupportedSince is the minimum server version (e.g. "24.2"), or "".
	SupportedSince string
	// DefaultName is the name given to new objects when none is passed.
	DefaultName string
}

// Service returns the fully-qualified gRPC service name of the kind.
func (k *Kind) Service() string {
	return k.Package + ".ObjectService"
}

// Method returns the full gRPC method name for the given method
// ("Get", "List", "Put", "Delete", "Create").
func (k *Kind) Method(name string) string {
	return "/" + k.Service() + "/" + name
}

// HasChild reports whether label is one of the kind's child collections.
func (k *Kind) HasChild(label string) bool {
	for _, c := range k.Children {
		if c == label {
			return true
		}
	}
	return false
}

// Kinded is implemented by values that know their own Kind.
type Kinded interface {
	Kind() *Kind
}
