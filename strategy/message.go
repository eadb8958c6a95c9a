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

package strategy

import (
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/apis"
)

// NewMessageStrategy creates an apis.Strategy that resolves protobuf
// messages of a kind (ObjectInfo, Properties, CreateRequest, ...) through
// their protocol package.
func NewMessageStrategy(reg apis.Registry) apis.Strategy {
	return &messageStrategy{reg: reg}
}

// messageStrategy is the fallback for raw messages received from the wire.
type messageStrategy struct {
	reg apis.Registry
	// infoNames caches message full name -> ObjectInfo full name.
	infoNames sync.Map
}

// Ensure messageStrategy implements apis.Strategy.
var _ apis.Strategy = (*messageStrategy)(nil)

// TryResolve handles protoreflect.Message and proto.Message values.
func (s *messageStrategy) TryResolve(v any, _ apis.Config) (*apis.Kind, bool) {
	if v == nil || s.reg == nil {
		return nil, false
	}
	var md protoreflect.MessageDescriptor
	switch m := v.(type) {
	case protoreflect.Message:
		md = m.Descriptor()
	case proto.Message:
		md = m.ProtoReflect().Descriptor()
	case protoreflect.MessageDescriptor:
		md = m
	default:
		return nil, false
	}
	return s.reg.LookupMessage(s.infoName(md))
}

// TryResolvePath always returns false: paths are handled by the path strategy.
func (*messageStrategy) TryResolvePath(_ string, _ apis.Config) (*apis.Kind, bool) {
	return nil, false
}

// infoName maps any message of a kind's package to that kind's ObjectInfo.
func (s *messageStrategy) infoName(md protoreflect.MessageDescriptor) protoreflect.FullName {
	if v, ok := s.infoNames.Load(md.FullName()); ok {
		return v.(protoreflect.FullName)
	}
	name := md.ParentFile().Package().Append("ObjectInfo")
	s.infoNames.Store(md.FullName(), name)
	return name
}
