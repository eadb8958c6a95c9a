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

package schema

import (
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	// PackagePrefix is the common prefix of all protocol packages.
	PackagePrefix = "ansys.api.acp.v0"
	// BasePackage holds the messages shared by all kinds.
	BasePackage = PackagePrefix + ".base"

	// ResourcePathName is the full name of the resource path message.
	ResourcePathName protoreflect.FullName = BasePackage + ".ResourcePath"
	// CollectionPathName is the full name of the collection path message.
	CollectionPathName protoreflect.FullName = BasePackage + ".CollectionPath"

	// ControlService serves server-wide information.
	ControlService = BasePackage + ".Control"
	// GetServerInfoMethod is the full method name of Control.GetServerInfo.
	GetServerInfoMethod = "/" + ControlService + "/GetServerInfo"

	basePath = "ansys/api/acp/v0/base.proto"
)

// Well-known field names.
const (
	FieldValue          = "value"
	FieldInfo           = "info"
	FieldProperties     = "properties"
	FieldName           = "name"
	FieldID             = "id"
	FieldResourcePath   = "resource_path"
	FieldCollectionPath = "collection_path"
	FieldVersion        = "version"
	FieldObjects        = "objects"
	FieldServerName     = "server_name"
)

// BaseDescriptors holds the descriptors of the shared base file.
type BaseDescriptors struct {
	File                 protoreflect.FileDescriptor
	ResourcePath         protoreflect.MessageDescriptor
	CollectionPath       protoreflect.MessageDescriptor
	BasicInfo            protoreflect.MessageDescriptor
	GetRequest           protoreflect.MessageDescriptor
	ListRequest          protoreflect.MessageDescriptor
	DeleteRequest        protoreflect.MessageDescriptor
	Empty                protoreflect.MessageDescriptor
	GetServerInfoRequest protoreflect.MessageDescriptor
	ServerInfo           protoreflect.MessageDescriptor
}

var base = sync.OnceValue(func() *BaseDescriptors {
	fd, err := protodesc.NewFile(baseFile(), new(protoregistry.Files))
	if err != nil {
		panic("acp(schema): invalid base file: " + err.Error())
	}
	msgs := fd.Messages()
	return &BaseDescriptors{
		File:                 fd,
		ResourcePath:         msgs.ByName("ResourcePath"),
		CollectionPath:       msgs.ByName("CollectionPath"),
		BasicInfo:            msgs.ByName("BasicInfo"),
		GetRequest:           msgs.ByName("GetRequest"),
		ListRequest:          msgs.ByName("ListRequest"),
		DeleteRequest:        msgs.ByName("DeleteRequest"),
		Empty:                msgs.ByName("Empty"),
		GetServerInfoRequest: msgs.ByName("GetServerInfoRequest"),
		ServerInfo:           msgs.ByName("ServerInfo"),
	}
})

// Base returns the descriptors of the shared base file.
func Base() *BaseDescriptors {
	return base()
}

func baseFile() *descriptorpb.FileDescriptorProto {
	rp := "." + string(ResourcePathName)
	cp := "." + string(CollectionPathName)
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(basePath),
		Package: proto.String(BasePackage),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			message("ResourcePath", scalarField(FieldValue, 1, descriptorpb.FieldDescriptorProto_TYPE_STRING)),
			message("CollectionPath", scalarField(FieldValue, 1, descriptorpb.FieldDescriptorProto_TYPE_STRING)),
			message("BasicInfo",
				scalarField(FieldName, 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalarField(FieldID, 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				messageField(FieldResourcePath, 3, rp),
				scalarField(FieldVersion, 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("GetRequest", messageField(FieldResourcePath, 1, rp)),
			message("ListRequest", messageField(FieldCollectionPath, 1, cp)),
			message("DeleteRequest",
				messageField(FieldResourcePath, 1, rp),
				scalarField(FieldVersion, 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("Empty"),
			message("GetServerInfoRequest"),
			message("ServerInfo",
				scalarField(FieldVersion, 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalarField(FieldServerName, 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("Control"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("GetServerInfo", "."+BasePackage+".GetServerInfoRequest", "."+BasePackage+".ServerInfo"),
			},
		}},
	}
}

// IsResourcePath reports whether md is the resource path message.
func IsResourcePath(md protoreflect.MessageDescriptor) bool {
	return md != nil && md.FullName() == ResourcePathName
}

// IsCollectionPath reports whether md is the collection path message.
func IsCollectionPath(md protoreflect.MessageDescriptor) bool {
	return md != nil && md.FullName() == CollectionPathName
}

// IsPath reports whether md is a resource or collection path message.
func IsPath(md protoreflect.MessageDescriptor) bool {
	return IsResourcePath(md) || IsCollectionPath(md)
}

// NewResourcePath returns a resource path message holding v.
func NewResourcePath(v string) protoreflect.Message {
	return newPath(Base().ResourcePath, v)
}

// NewCollectionPath returns a collection path message holding v.
func NewCollectionPath(v string) protoreflect.Message {
	return newPath(Base().CollectionPath, v)
}

func newPath(md protoreflect.MessageDescriptor, v string) protoreflect.Message {
	m := dynamicpb.NewMessage(md)
	m.Set(md.Fields().ByName(FieldValue), protoreflect.ValueOfString(v))
	return m
}

// PathValue returns the value of a resource or collection path message.
func PathValue(m protoreflect.Message) string {
	fd := m.Descriptor().Fields().ByName(FieldValue)
	if fd == nil {
		return ""
	}
	return m.Get(fd).String()
}

// SetPathValue sets the value of a resource or collection path message.
func SetPathValue(m protoreflect.Message, v string) {
	m.Set(m.Descriptor().Fields().ByName(FieldValue), protoreflect.ValueOfString(v))
}

// SetPathField stores a path message holding v in the field named name of m.
func SetPathField(m protoreflect.Message, name protoreflect.Name, v string) {
	fd := m.Descriptor().Fields().ByName(name)
	SetPathValue(m.Mutable(fd).Message(), v)
}

// PathField returns the value of the path message held in the field named
// name of m, or "" if the field is unset.
func PathField(m protoreflect.Message, name protoreflect.Name) string {
	fd := m.Descriptor().Fields().ByName(name)
	if fd == nil || !m.Has(fd) {
		return ""
	}
	return PathValue(m.Get(fd).Message())
}
