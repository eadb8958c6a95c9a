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

package acptest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"dirpx.dev/acp/acptest"
	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/paths"
	"dirpx.dev/acp/schema"
	"dirpx.dev/acp/transport"
)

type env struct {
	srv   *acptest.Server
	conn  *grpc.ClientConn
	stubs *transport.Factory
	kinds map[string]*apis.Kind
}

func start(t *testing.T, opts ...acptest.Option) *env {
	t.Helper()
	cat, err := schema.Compile(
		schema.Spec{
			Label:     "models",
			Name:      "Model",
			Package:   "acptest_model",
			Children:  []string{"items"},
			Creatable: true,
		},
		schema.Spec{
			Label:   "items",
			Name:    "Item",
			Package: "acptest_item",
			Properties: []schema.Field{
				schema.Link("ref", 1),
				schema.Double("value", 2),
			},
			Children:  []string{"parts"},
			Creatable: true,
		},
		schema.Spec{
			Label:      "parts",
			Name:       "Part",
			Package:    "acptest_part",
			Properties: []schema.Field{schema.Double("value", 1)},
			Creatable:  true,
		},
	)
	require.NoError(t, err)

	srv := acptest.Start(t, append([]acptest.Option{acptest.WithKinds(cat.Kinds()...)}, opts...)...)
	conn, err := srv.Dial()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	e := &env{srv: srv, conn: conn, stubs: transport.NewFactory(conn), kinds: map[string]*apis.Kind{}}
	for _, k := range cat.Kinds() {
		e.kinds[k.Label] = k
	}
	return e
}

func (e *env) stub(label string) apis.Stub {
	return e.stubs.Stub(e.kinds[label])
}

// create stores a new object; set may fill its properties.
func (e *env) create(t *testing.T, cp, name string, set func(props protoreflect.Message)) (schema.BasicInfo, error) {
	t.Helper()
	k := e.kinds[paths.Label(cp)]
	var props protoreflect.Message
	if set != nil {
		props = dynamicpb.NewMessage(k.Properties)
		set(props)
	}
	info, err := e.stub(k.Label).Create(context.Background(), cp, name, props)
	if err != nil {
		return schema.BasicInfo{}, err
	}
	return schema.ReadInfo(info), nil
}

func (e *env) mustCreate(t *testing.T, cp, name string, set func(props protoreflect.Message)) schema.BasicInfo {
	t.Helper()
	bi, err := e.create(t, cp, name, set)
	require.NoError(t, err)
	return bi
}

func link(rp string) func(protoreflect.Message) {
	return func(props protoreflect.Message) {
		schema.SetPathField(props, "ref", rp)
	}
}

func TestCreate_ModelIDs(t *testing.T) {
	e := start(t)
	m := e.mustCreate(t, "models", "", nil)

	assert.Equal(t, "Model", m.Name)
	_, err := uuid.Parse(m.ID)
	assert.NoError(t, err)
	assert.Equal(t, paths.Join("models", m.ID), m.ResourcePath)
	assert.NotEmpty(t, m.Version)
}

func TestCreate_UniqueIDs(t *testing.T) {
	e := start(t)
	items := paths.Join(e.mustCreate(t, "models", "m", nil).ResourcePath, "items")

	var ids, names []string
	for _, name := range []string{"Item", "Item", "Item.2", "Other", ""} {
		bi := e.mustCreate(t, items, name, nil)
		ids = append(ids, bi.ID)
		names = append(names, bi.Name)
	}
	assert.Equal(t, []string{"Item", "Item.2", "Item.3", "Other", "Item.4"}, ids)
	assert.Equal(t, []string{"Item", "Item", "Item.2", "Other", "Item"}, names)
}

func TestCreate_Rejects(t *testing.T) {
	e := start(t)
	m := e.mustCreate(t, "models", "m", nil).ResourcePath
	other := e.mustCreate(t, "models", "o", nil).ResourcePath
	foreign := e.mustCreate(t, paths.Join(other, "items"), "x", nil).ResourcePath

	tests := []struct {
		name string
		cp   string
		obj  string
		set  func(protoreflect.Message)
		want error
	}{
		{"missing parent", "models/nope/items", "a", nil, transport.ErrNotFound},
		{"slash in name", paths.Join(m, "items"), "a/b", nil, transport.ErrInvalidArgument},
		{"wrong collection", paths.Join(m, "parts"), "p", nil, transport.ErrInvalidArgument},
		{"missing link", paths.Join(m, "items"), "a", link(paths.Join(m, "items", "nope")), transport.ErrInvalidArgument},
		{"foreign link", paths.Join(m, "items"), "a", link(foreign), transport.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.create(t, tt.cp, tt.obj, tt.set)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestList_CreationOrder(t *testing.T) {
	e := start(t)
	items := paths.Join(e.mustCreate(t, "models", "m", nil).ResourcePath, "items")
	for _, name := range []string{"c", "a", "b"} {
		bi := e.mustCreate(t, items, name, nil)
		e.mustCreate(t, paths.Join(bi.ResourcePath, "parts"), "p", nil)
	}

	list, err := e.stub("items").List(context.Background(), items)
	require.NoError(t, err)
	var ids []string
	for _, info := range list {
		ids = append(ids, schema.ReadInfo(info).ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestPut_Versions(t *testing.T) {
	e := start(t)
	ctx := context.Background()
	items := paths.Join(e.mustCreate(t, "models", "m", nil).ResourcePath, "items")
	rp := e.mustCreate(t, items, "a", nil).ResourcePath
	stub := e.stub("items")

	info, err := stub.Get(ctx, rp)
	require.NoError(t, err)
	props := schema.Props(info)
	props.Set(props.Descriptor().Fields().ByName("value"), protoreflect.ValueOfFloat64(4))
	schema.SetInfoName(info, "renamed")

	next, err := stub.Put(ctx, info)
	require.NoError(t, err)
	got := schema.ReadInfo(next)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, "a", got.ID)
	assert.NotEqual(t, schema.ReadInfo(info).Version, got.Version)

	_, err = stub.Put(ctx, info)
	require.ErrorIs(t, err, transport.ErrFailedPrecondition)
	assert.Contains(t, err.Error(), "version mismatch")
}

func TestDelete_Cascades(t *testing.T) {
	e := start(t)
	ctx := context.Background()
	m := e.mustCreate(t, "models", "m", nil).ResourcePath
	item := e.mustCreate(t, paths.Join(m, "items"), "a", nil).ResourcePath
	part := e.mustCreate(t, paths.Join(item, "parts"), "p", nil).ResourcePath
	keep := e.mustCreate(t, paths.Join(m, "items"), "ab", nil).ResourcePath

	require.NoError(t, e.stub("items").Delete(ctx, item, ""))

	_, err := e.stub("parts").Get(ctx, part)
	assert.ErrorIs(t, err, transport.ErrNotFound)
	_, err = e.stub("items").Get(ctx, keep)
	assert.NoError(t, err)
}

func TestAutoChild(t *testing.T) {
	e := start(t, acptest.WithAutoChild("items", "parts", "Auto", func(props protoreflect.Message) {
		props.Set(props.Descriptor().Fields().ByName("value"), protoreflect.ValueOfFloat64(1.5))
	}))
	items := paths.Join(e.mustCreate(t, "models", "m", nil).ResourcePath, "items")
	item := e.mustCreate(t, items, "a", nil).ResourcePath

	list, err := e.stub("parts").List(context.Background(), paths.Join(item, "parts"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Auto", schema.ReadInfo(list[0]).Name)
	props := schema.Props(list[0])
	assert.Equal(t, 1.5, props.Get(props.Descriptor().Fields().ByName("value")).Float())
}

func TestValidator(t *testing.T) {
	e := start(t, acptest.WithValidator("items", func(info protoreflect.Message) error {
		props := schema.Props(info)
		if props.Get(props.Descriptor().Fields().ByName("value")).Float() < 0 {
			return errors.New("value must not be negative\nsee the manual")
		}
		return nil
	}))
	items := paths.Join(e.mustCreate(t, "models", "m", nil).ResourcePath, "items")

	_, err := e.create(t, items, "a", func(props protoreflect.Message) {
		props.Set(props.Descriptor().Fields().ByName("value"), protoreflect.ValueOfFloat64(-1))
	})
	require.ErrorIs(t, err, transport.ErrInvalidArgument)
	var rpcErr *transport.RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "value must not be negative", rpcErr.Details)
}

func TestCalls(t *testing.T) {
	e := start(t, acptest.WithVersion("24.1"))
	info, err := transport.GetServerInfo(context.Background(), e.conn)
	require.NoError(t, err)
	assert.Equal(t, "24.1", info.Version)

	e.mustCreate(t, "models", "m", nil)
	e.mustCreate(t, "models", "n", nil)
	assert.Equal(t, 2, e.srv.Calls(e.kinds["models"].Method("Create")))
	assert.Equal(t, 1, e.srv.Calls(schema.GetServerInfoMethod))
	assert.Zero(t, e.srv.Calls(e.kinds["items"].Method("Create")))
}

func TestNew_DefaultsToRegistry(t *testing.T) {
	srv, err := acptest.New()
	require.NoError(t, err)
	require.NoError(t, srv.Close())
	require.NoError(t, srv.Close())
	assert.Equal(t, acptest.Address, srv.Config().Address)
}
