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

package tree_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/acp/acptest"
	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/paths"
	"dirpx.dev/acp/schema"
	"dirpx.dev/acp/transport"
	"dirpx.dev/acp/tree"
)

// catalog compiles a small tree: models own things, materials and groups;
// groups own plies (only on newer servers) and derived objects that the
// client cannot create.
func catalog(t testing.TB) *schema.Catalog {
	t.Helper()
	cat, err := schema.Compile(
		schema.Spec{
			Label:       "models",
			Name:        "Model",
			Package:     "tmodel",
			Children:    []string{"materials", "things", "groups"},
			Creatable:   true,
			DefaultName: "Model",
		},
		schema.Spec{
			Label:       "materials",
			Name:        "Material",
			Package:     "tmaterial",
			Properties:  []schema.Field{schema.Double("density", 1)},
			Creatable:   true,
			DefaultName: "Material",
		},
		schema.Spec{
			Label:   "things",
			Name:    "Thing",
			Package: "tthing",
			Properties: []schema.Field{
				schema.Double("thickness", 1),
				schema.Int32("count", 2),
				schema.Bool("active", 3),
				schema.String("note", 4),
				schema.EnumOf("shape", 5, "Shape"),
				schema.Link("material", 6),
				schema.Repeated(schema.Link("materials", 7)),
				schema.Repeated(schema.MessageOf("edges", 8, "Edge")),
				schema.Repeated(schema.Double("values", 9)),
				schema.Repeated(schema.Int32("labels", 10)),
				schema.MessageOf("limits", 11, "Limits"),
			},
			Messages: []schema.Message{
				{Name: "Edge", Fields: []schema.Field{schema.Link("material", 1), schema.Double("angle", 2)}},
				{Name: "Limits", Fields: []schema.Field{schema.Double("lower", 1), schema.Double("upper", 2)}},
			},
			Enums:       []schema.Enum{{Name: "Shape", Values: []string{"SHAPE_FLAT", "SHAPE_ROUND"}}},
			Creatable:   true,
			DefaultName: "Thing",
		},
		schema.Spec{
			Label:     "groups",
			Name:      "Group",
			Package:   "tgroup",
			Children:  []string{"plies", "derived"},
			Creatable: true,
		},
		schema.Spec{
			Label:          "plies",
			Name:           "Ply",
			Package:        "tply",
			Properties:     []schema.Field{schema.Double("angle", 1)},
			Creatable:      true,
			SupportedSince: "26.1",
		},
		schema.Spec{
			Label:      "derived",
			Name:       "Derived",
			Package:    "tderived",
			Properties: []schema.Field{schema.Double("angle", 1)},
			ReadOnly:   true,
		},
	)
	require.NoError(t, err)
	return cat
}

type fixture struct {
	cat   *schema.Catalog
	srv   *acptest.Server
	ts    *tree.Server
	model *tree.Object
}

func (f *fixture) kind(label string) *apis.Kind {
	k, _ := f.cat.Kind(label)
	return k
}

func setup(t *testing.T, opts ...acptest.Option) *fixture {
	t.Helper()
	cat := catalog(t)
	srv := acptest.Start(t, append([]acptest.Option{acptest.WithKinds(cat.Kinds()...)}, opts...)...)
	conn, err := srv.Dial()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	f := &fixture{cat: cat, srv: srv}
	f.ts = tree.NewServer(transport.NewFactory(conn),
		tree.WithVersion(acptest.DefaultVersion),
		tree.WithResolver(f.resolve),
	)
	models, err := tree.NewMapping(f.ts, "models")
	require.NoError(t, err)
	f.model, err = models.Create(context.Background(), "m")
	require.NoError(t, err)
	return f
}

func (f *fixture) resolve(p string) *apis.Kind {
	k, _ := f.cat.Kind(paths.Label(p))
	return k
}

// create stores a new object named name in the collection label of parent.
func (f *fixture) create(t *testing.T, parent *tree.Object, label, name string) *tree.Object {
	t.Helper()
	o := tree.New(f.kind(label), name)
	require.NoError(t, o.Store(context.Background(), parent))
	return o
}

func (f *fixture) calls(k *apis.Kind, method string) int {
	return f.srv.Calls(k.Method(method))
}
