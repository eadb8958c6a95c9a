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
	"errors"
	"fmt"
	"sort"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"dirpx.dev/acp/apis"
)

var (
	// ErrInvalidSpec is returned when a Spec is incomplete or inconsistent.
	ErrInvalidSpec = errors.New("acp(schema): invalid spec")
	// ErrDuplicateLabel is returned when two specs share a label.
	ErrDuplicateLabel = errors.New("acp(schema): duplicate label")
)

// Catalog is a set of compiled kinds sharing one descriptor registry.
type Catalog struct {
	files   *protoregistry.Files
	kinds   []*apis.Kind
	byLabel map[string]*apis.Kind
}

// Compile turns specs into kinds. Kinds are returned in spec order.
func Compile(specs ...Spec) (*Catalog, error) {
	files := new(protoregistry.Files)
	if err := files.RegisterFile(Base().File); err != nil {
		return nil, fmt.Errorf("acp(schema): register base: %w", err)
	}
	c := &Catalog{files: files, byLabel: make(map[string]*apis.Kind, len(specs))}
	for _, s := range specs {
		if _, dup := c.byLabel[s.Label]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, s.Label)
		}
		k, err := compileKind(files, s)
		if err != nil {
			return nil, err
		}
		c.kinds = append(c.kinds, k)
		c.byLabel[k.Label] = k
	}
	return c, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(specs ...Spec) *Catalog {
	c, err := Compile(specs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Kinds returns the compiled kinds in spec order.
func (c *Catalog) Kinds() []*apis.Kind {
	out := make([]*apis.Kind, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// Kind returns the kind with the given collection label.
func (c *Catalog) Kind(label string) (*apis.Kind, bool) {
	k, ok := c.byLabel[label]
	return k, ok
}

// Files returns the descriptor registry of the catalog.
func (c *Catalog) Files() *protoregistry.Files {
	return c.files
}

// RegisterAll registers every kind of the catalog in reg.
func (c *Catalog) RegisterAll(reg apis.Registry) error {
	for _, k := range c.kinds {
		if err := reg.Register(k); err != nil {
			return fmt.Errorf("register %s: %w", k.Label, err)
		}
	}
	return nil
}

func compileKind(files *protoregistry.Files, s Spec) (*apis.Kind, error) {
	if s.Label == "" || s.Name == "" || s.Package == "" {
		return nil, fmt.Errorf("%w: label, name and package are required (%q)", ErrInvalidSpec, s.Label)
	}
	pkg := PackagePrefix + "." + s.Package
	local := func(name string) string { return "." + pkg + "." + name }

	refs := make(map[string]FieldType, len(s.Messages)+len(s.Enums))
	for _, m := range s.Messages {
		refs[m.Name] = TypeMessage
	}
	for _, e := range s.Enums {
		refs[e.Name] = TypeEnum
	}
	convert := func(owner string, fields []Field) ([]*descriptorpb.FieldDescriptorProto, error) {
		out := make([]*descriptorpb.FieldDescriptorProto, 0, len(fields))
		sorted := append([]Field(nil), fields...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })
		for _, f := range sorted {
			var fdp *descriptorpb.FieldDescriptorProto
			switch f.Type {
			case TypeLink:
				fdp = messageField(f.Name, f.Number, "."+string(ResourcePathName))
			case TypeCollectionLink:
				fdp = messageField(f.Name, f.Number, "."+string(CollectionPathName))
			case TypeMessage, TypeEnum:
				if refs[f.Ref] != f.Type {
					return nil, fmt.Errorf("%w: %s.%s refers to unknown %q", ErrInvalidSpec, owner, f.Name, f.Ref)
				}
				if f.Type == TypeMessage {
					fdp = messageField(f.Name, f.Number, local(f.Ref))
				} else {
					fdp = enumField(f.Name, f.Number, local(f.Ref))
				}
			default:
				t, ok := scalarTypes[f.Type]
				if !ok {
					return nil, fmt.Errorf("%w: %s.%s has no type", ErrInvalidSpec, owner, f.Name)
				}
				fdp = scalarField(f.Name, f.Number, t)
			}
			if f.Repeated {
				fdp.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
			}
			out = append(out, fdp)
		}
		return out, nil
	}

	fdp := &descriptorpb.FileDescriptorProto{
		Name:       proto.String("ansys/api/acp/v0/" + s.Package + ".proto"),
		Package:    proto.String(pkg),
		Syntax:     proto.String("proto3"),
		Dependency: []string{basePath},
	}
	for _, e := range s.Enums {
		if len(e.Values) == 0 {
			return nil, fmt.Errorf("%w: enum %s has no values", ErrInvalidSpec, e.Name)
		}
		ed := &descriptorpb.EnumDescriptorProto{Name: proto.String(e.Name)}
		for i, v := range e.Values {
			ed.Value = append(ed.Value, &descriptorpb.EnumValueDescriptorProto{
				Name:   proto.String(v),
				Number: proto.Int32(int32(i)),
			})
		}
		fdp.EnumType = append(fdp.EnumType, ed)
	}
	for _, m := range s.Messages {
		fields, err := convert(m.Name, m.Fields)
		if err != nil {
			return nil, err
		}
		fdp.MessageType = append(fdp.MessageType, message(m.Name, fields...))
	}
	props, err := convert("Properties", s.Properties)
	if err != nil {
		return nil, err
	}
	fdp.MessageType = append(fdp.MessageType,
		message("Properties", props...),
		message("ObjectInfo",
			messageField(FieldInfo, 1, "."+BasePackage+".BasicInfo"),
			messageField(FieldProperties, 2, local("Properties")),
		),
		message("ListReply",
			repeated(messageField(FieldObjects, 1, local("ObjectInfo"))),
		),
	)

	bp := "." + BasePackage + "."
	svc := &descriptorpb.ServiceDescriptorProto{
		Name: proto.String("ObjectService"),
		Method: []*descriptorpb.MethodDescriptorProto{
			method("List", bp+"ListRequest", local("ListReply")),
			method("Get", bp+"GetRequest", local("ObjectInfo")),
		},
	}
	if !s.ReadOnly {
		svc.Method = append(svc.Method, method("Put", local("ObjectInfo"), local("ObjectInfo")))
	}
	if s.Creatable {
		fdp.MessageType = append(fdp.MessageType, message("CreateRequest",
			messageField(FieldCollectionPath, 1, "."+string(CollectionPathName)),
			scalarField(FieldName, 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			messageField(FieldProperties, 3, local("Properties")),
		))
		svc.Method = append(svc.Method,
			method("Create", local("CreateRequest"), local("ObjectInfo")),
			method("Delete", bp+"DeleteRequest", bp+"Empty"),
		)
	}
	fdp.Service = []*descriptorpb.ServiceDescriptorProto{svc}

	fd, err := protodesc.NewFile(fdp, files)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpec, s.Label, err)
	}
	if err := files.RegisterFile(fd); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpec, s.Label, err)
	}

	msgs := fd.Messages()
	k := &apis.Kind{
		Label:          s.Label,
		Name:           s.Name,
		Package:        pkg,
		ObjectInfo:     msgs.ByName("ObjectInfo"),
		Properties:     msgs.ByName("Properties"),
		ListReply:      msgs.ByName("ListReply"),
		Children:       append([]string(nil), s.Children...),
		Creatable:      s.Creatable,
		ReadOnly:       s.ReadOnly,
		SupportedSince: s.SupportedSince,
		DefaultName:    s.DefaultName,
	}
	if s.Creatable {
		k.CreateRequest = msgs.ByName("CreateRequest")
	}
	return k, nil
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func scalarField(name string, number int32, t descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   t.Enum(),
	}
}

func messageField(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, number, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	f.TypeName = proto.String(typeName)
	return f
}

func enumField(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, number, descriptorpb.FieldDescriptorProto_TYPE_ENUM)
	f.TypeName = proto.String(typeName)
	return f
}

func repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func method(name, in, out string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(in),
		OutputType: proto.String(out),
	}
}
