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

package transport

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/schema"
)

// ServerInfo is the reply of Control.GetServerInfo.
type ServerInfo struct {
	Version    string
	ServerName string
}

// GetServerInfo queries the server version. Pass grpc.WaitForReady(true) to
// wait for the connection instead of failing fast.
func GetServerInfo(ctx context.Context, cc grpc.ClientConnInterface, opts ...grpc.CallOption) (ServerInfo, error) {
	b := schema.Base()
	reply := dynamicpb.NewMessage(b.ServerInfo)
	if err := cc.Invoke(ctx, schema.GetServerInfoMethod, dynamicpb.NewMessage(b.GetServerInfoRequest), reply, opts...); err != nil {
		return ServerInfo{}, WrapError(schema.GetServerInfoMethod, err)
	}
	fields := b.ServerInfo.Fields()
	return ServerInfo{
		Version:    reply.Get(fields.ByName(schema.FieldVersion)).String(),
		ServerName: reply.Get(fields.ByName(schema.FieldServerName)).String(),
	}, nil
}

// Factory hands out one stub per kind, all sharing a connection.
type Factory struct {
	cc    grpc.ClientConnInterface
	mu    sync.Mutex
	stubs map[*apis.Kind]apis.Stub
}

// NewFactory returns a stub factory for cc.
func NewFactory(cc grpc.ClientConnInterface) *Factory {
	return &Factory{cc: cc, stubs: make(map[*apis.Kind]apis.Stub)}
}

// Stub returns the object service stub of k.
func (f *Factory) Stub(k *apis.Kind) apis.Stub {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.stubs[k]; ok {
		return s
	}
	s := &objectStub{cc: f.cc, kind: k}
	f.stubs[k] = s
	return s
}

// objectStub calls the ObjectService of one kind.
type objectStub struct {
	cc   grpc.ClientConnInterface
	kind *apis.Kind
}

func (s *objectStub) invoke(ctx context.Context, name string, req, reply protoreflect.Message) error {
	method := s.kind.Method(name)
	return WrapError(method, s.cc.Invoke(ctx, method, req.Interface(), reply.Interface()))
}

func (s *objectStub) Get(ctx context.Context, rp string) (protoreflect.Message, error) {
	req := dynamicpb.NewMessage(schema.Base().GetRequest)
	schema.SetPathField(req, schema.FieldResourcePath, rp)
	reply := dynamicpb.NewMessage(s.kind.ObjectInfo)
	if err := s.invoke(ctx, "Get", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *objectStub) List(ctx context.Context, cp string) ([]protoreflect.Message, error) {
	req := dynamicpb.NewMessage(schema.Base().ListRequest)
	schema.SetPathField(req, schema.FieldCollectionPath, cp)
	reply := dynamicpb.NewMessage(s.kind.ListReply)
	if err := s.invoke(ctx, "List", req, reply); err != nil {
		return nil, err
	}
	list := reply.Get(s.kind.ListReply.Fields().ByName(schema.FieldObjects)).List()
	out := make([]protoreflect.Message, list.Len())
	for i := range out {
		out[i] = list.Get(i).Message()
	}
	return out, nil
}

func (s *objectStub) Put(ctx context.Context, info protoreflect.Message) (protoreflect.Message, error) {
	if s.kind.ReadOnly {
		return nil, fmt.Errorf("%w: %s.Put", ErrNotSupported, s.kind.Name)
	}
	reply := dynamicpb.NewMessage(s.kind.ObjectInfo)
	if err := s.invoke(ctx, "Put", info, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *objectStub) Delete(ctx context.Context, rp, version string) error {
	if !s.kind.Creatable {
		return fmt.Errorf("%w: %s.Delete", ErrNotSupported, s.kind.Name)
	}
	b := schema.Base()
	req := dynamicpb.NewMessage(b.DeleteRequest)
	schema.SetPathField(req, schema.FieldResourcePath, rp)
	req.Set(b.DeleteRequest.Fields().ByName(schema.FieldVersion), protoreflect.ValueOfString(version))
	return s.invoke(ctx, "Delete", req, dynamicpb.NewMessage(b.Empty))
}

func (s *objectStub) Create(ctx context.Context, cp, name string, props protoreflect.Message) (protoreflect.Message, error) {
	if !s.kind.Creatable {
		return nil, fmt.Errorf("%w: %s.Create", ErrNotSupported, s.kind.Name)
	}
	req := dynamicpb.NewMessage(s.kind.CreateRequest)
	fields := s.kind.CreateRequest.Fields()
	schema.SetPathField(req, schema.FieldCollectionPath, cp)
	req.Set(fields.ByName(schema.FieldName), protoreflect.ValueOfString(name))
	if props != nil {
		req.Set(fields.ByName(schema.FieldProperties), protoreflect.ValueOfMessage(props))
	}
	reply := dynamicpb.NewMessage(s.kind.ObjectInfo)
	if err := s.invoke(ctx, "Create", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}
