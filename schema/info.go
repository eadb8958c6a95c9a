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
	"google.golang.org/protobuf/reflect/protoreflect"
)

// BasicInfo is the decoded info block of an ObjectInfo message.
type BasicInfo struct {
	Name         string
	ID           string
	ResourcePath string
	Version      string
}

// ReadInfo decodes the info block of an ObjectInfo message.
func ReadInfo(info protoreflect.Message) BasicInfo {
	fd := info.Descriptor().Fields().ByName(FieldInfo)
	if fd == nil || !info.Has(fd) {
		return BasicInfo{}
	}
	bi := info.Get(fd).Message()
	fields := bi.Descriptor().Fields()
	return BasicInfo{
		Name:         bi.Get(fields.ByName(FieldName)).String(),
		ID:           bi.Get(fields.ByName(FieldID)).String(),
		ResourcePath: PathField(bi, FieldResourcePath),
		Version:      bi.Get(fields.ByName(FieldVersion)).String(),
	}
}

// WriteInfo replaces the info block of an ObjectInfo message.
func WriteInfo(info protoreflect.Message, b BasicInfo) {
	bi := info.Mutable(info.Descriptor().Fields().ByName(FieldInfo)).Message()
	fields := bi.Descriptor().Fields()
	bi.Set(fields.ByName(FieldName), protoreflect.ValueOfString(b.Name))
	bi.Set(fields.ByName(FieldID), protoreflect.ValueOfString(b.ID))
	bi.Set(fields.ByName(FieldVersion), protoreflect.ValueOfString(b.Version))
	if b.ResourcePath == "" {
		bi.Clear(fields.ByName(FieldResourcePath))
		return
	}
	SetPathField(bi, FieldResourcePath, b.ResourcePath)
}

// SetInfoName sets only the name in the info block.
func SetInfoName(info protoreflect.Message, name string) {
	bi := info.Mutable(info.Descriptor().Fields().ByName(FieldInfo)).Message()
	bi.Set(bi.Descriptor().Fields().ByName(FieldName), protoreflect.ValueOfString(name))
}

// Props returns the mutable properties message of an ObjectInfo message.
func Props(info protoreflect.Message) protoreflect.Message {
	return info.Mutable(info.Descriptor().Fields().ByName(FieldProperties)).Message()
}
