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

// Package schema describes the protocol of the server as data and compiles
// it into protobuf descriptors at run time.
//
// Every kind of tree object is served by its own package
// "ansys.api.acp.v0.<pkg>" with the messages
//
//	Properties    { ... }
//	ObjectInfo    { base.BasicInfo info = 1; Properties properties = 2; }
//	CreateRequest { base.CollectionPath collection_path = 1; string name = 2; Properties properties = 3; }
//	ListReply     { repeated ObjectInfo objects = 1; }
//
// and the service ObjectService with the List, Get, Put, Create and Delete
// methods. Messages of compiled kinds are dynamicpb messages.
package schema

import (
	"google.golang.org/protobuf/types/descriptorpb"
)

// FieldType is the value type of a Field.
type FieldType int

const (
	TypeBool FieldType = iota + 1
	TypeInt32
	TypeInt64
	TypeDouble
	TypeString
	// TypeEnum refers to an Enum of the same Spec via Field.Ref.
	TypeEnum
	// TypeLink holds a resource path to another object.
	TypeLink
	// TypeCollectionLink holds a collection path.
	TypeCollectionLink
	// TypeMessage refers to a Message of the same Spec via Field.Ref.
	TypeMessage
)

// Field describes one field of a properties or helper message.
type Field struct {
	Name     string
	Number   int32
	Type     FieldType
	Repeated bool
	// Ref names the Message or Enum for TypeMessage and TypeEnum fields.
	Ref string
}

// Message describes a helper message of a kind, e.g. an edge carrying a
// link plus values.
type Message struct {
	Name   string
	Fields []Field
}

// Enum describes an enumeration. The first value is the zero value.
// Value names must be unique within the Spec.
type Enum struct {
	Name   string
	Values []string
}

// Spec describes one kind of tree object.
type Spec struct {
	// Label is the collection label (e.g. "fabrics").
	Label string
	// Name is the display type name (e.g. "Fabric").
	Name string
	// Package is the last segment of the protobuf package (e.g. "fabric").
	Package string

	Properties []Field
	Messages   []Message
	Enums      []Enum

	// Children are the collection labels owned by objects of this kind.
	Children []string

	Creatable      bool
	ReadOnly       bool
	SupportedSince string
	DefaultName    string
}

// Bool returns a bool field.
func Bool(name string, number int32) Field {
	return Field{Name: name, Number: number, Type: TypeBool}
}

// Int32 returns an int32 field.
func Int32(name string, number int32) Field {
	return Field{Name: name, Number: number, Type: TypeInt32}
}

// Int64 returns an int64 field.
func Int64(name string, number int32) Field {
	return Field{Name: name, Number: number, Type: TypeInt64}
}

// Double returns a double field.
func Double(name string, number int32) Field {
	return Field{Name: name, Number: number, Type: TypeDouble}
}

// String returns a string field.
func String(name string, number int32) Field {
	return Field{Name: name, Number: number, Type: TypeString}
}

// EnumOf returns a field of the enum ref.
func EnumOf(name string, number int32, ref string) Field {
	return Field{Name: name, Number: number, Type: TypeEnum, Ref: ref}
}

// Link returns a resource path field.
func Link(name string, number int32) Field {
	return Field{Name: name, Number: number, Type: TypeLink}
}

// CollectionLink returns a collection path field.
func CollectionLink(name string, number int32) Field {
	return Field{Name: name, Number: number, Type: TypeCollectionLink}
}

// MessageOf returns a field of the helper message ref.
func MessageOf(name string, number int32, ref string) Field {
	return Field{Name: name, Number: number, Type: TypeMessage, Ref: ref}
}

// Repeated marks f as a repeated field.
func Repeated(f Field) Field {
	f.Repeated = true
	return f
}

var scalarTypes = map[FieldType]descriptorpb.FieldDescriptorProto_Type{
	TypeBool:   descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	TypeInt32:  descriptorpb.FieldDescriptorProto_TYPE_INT32,
	TypeInt64:  descriptorpb.FieldDescriptorProto_TYPE_INT64,
	TypeDouble: descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
	TypeString: descriptorpb.FieldDescriptorProto_TYPE_STRING,
}
