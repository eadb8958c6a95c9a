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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/tree"
)

type shape int32

const (
	flat shape = iota
	round
)

type edge struct {
	material *tree.Object
	angle    float64
}

var (
	count     = tree.Int32("properties.count")
	active    = tree.Bool("properties.active")
	note      = tree.String("properties.note")
	shapeOf   = tree.Enum[shape]("properties.shape")
	values    = tree.Doubles("properties.values")
	labels    = tree.Int32s("properties.labels")
	lower     = tree.Double("properties.limits.lower")
	materials = tree.LinkList("properties.materials", "materials")
	edges     = tree.EdgeList("properties.edges", "material",
		func(target *tree.Object, m protoreflect.Message) edge {
			return edge{material: target, angle: m.Get(m.Descriptor().Fields().ByName("angle")).Float()}
		},
		func(e edge, m protoreflect.Message) *tree.Object {
			m.Set(m.Descriptor().Fields().ByName("angle"), protoreflect.ValueOfFloat64(e.angle))
			return e.material
		},
		"materials",
	)
)

func TestScalars(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	o := f.create(t, f.model, "things", "t")

	require.NoError(t, count.Set(ctx, o, 3))
	require.NoError(t, active.Set(ctx, o, true))
	require.NoError(t, note.Set(ctx, o, "hello"))
	require.NoError(t, shapeOf.Set(ctx, o, round))
	require.NoError(t, lower.Set(ctx, o, -2.5))

	fresh, err := f.ts.Get(ctx, o.ResourcePath())
	require.NoError(t, err)

	n, err := count.Get(ctx, fresh)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	b, err := active.Get(ctx, fresh)
	require.NoError(t, err)
	assert.True(t, b)
	s, err := note.Get(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	sh, err := shapeOf.Get(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, round, sh)
	l, err := lower.Get(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, -2.5, l)

	assert.Equal(t, "properties.count", count.Path())
}

func TestScalars_WrongField(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	o := tree.New(f.kind("things"), "t")

	_, err := tree.Double("properties.missing").Get(ctx, o)
	assert.ErrorIs(t, err, tree.ErrUnknownField)
	// type mismatch
	_, err = tree.Double("properties.count").Get(ctx, o)
	assert.ErrorIs(t, err, tree.ErrUnknownField)
	_, err = tree.Double("properties.values").Get(ctx, o)
	assert.ErrorIs(t, err, tree.ErrUnknownField)
	// intermediate field is not a message
	assert.ErrorIs(t, tree.Double("properties.count.x").Set(ctx, o, 1), tree.ErrUnknownField)
}

func TestLists(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	o := f.create(t, f.model, "things", "t")

	require.NoError(t, values.Set(ctx, o, []float64{1, 2, 3}))
	require.NoError(t, labels.Set(ctx, o, []int32{7, 8}))

	vs, err := values.Get(ctx, o)
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{1, 2, 3}, vs); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	ls, err := labels.Get(ctx, o)
	require.NoError(t, err)
	if diff := cmp.Diff([]int32{7, 8}, ls); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, values.Set(ctx, o, nil))
	vs, err = values.Get(ctx, o)
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestLink(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	mat := f.create(t, f.model, "materials", "steel")
	other := f.create(t, f.model, "things", "other")
	o := f.create(t, f.model, "things", "t")

	got, err := material.Get(ctx, o)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, material.Set(ctx, o, mat))
	got, err = material.Get(ctx, o)
	require.NoError(t, err)
	assert.True(t, got.Equal(mat))

	assert.ErrorIs(t, material.Set(ctx, o, other), tree.ErrWrongKind)
	assert.ErrorIs(t, material.Set(ctx, o, tree.New(f.kind("materials"), "x")), tree.ErrUnstoredLink)

	require.NoError(t, material.Set(ctx, o, nil))
	p, err := material.Path(ctx, o)
	require.NoError(t, err)
	assert.Empty(t, p)

	// Get needs a server to resolve the link
	_, err = material.Get(ctx, o.Clone(false))
	assert.ErrorIs(t, err, tree.ErrNotStored)
}

func TestLinkList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.create(t, f.model, "materials", "a")
	b := f.create(t, f.model, "materials", "b")
	c := f.create(t, f.model, "materials", "c")
	o := f.create(t, f.model, "things", "t")

	require.NoError(t, materials.Set(ctx, o, []*tree.Object{a, b}))
	require.NoError(t, materials.Append(ctx, o, c))
	require.NoError(t, materials.Insert(ctx, o, 0, c))

	ps, err := materials.Paths(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ResourcePath(), a.ResourcePath(), b.ResourcePath(), c.ResourcePath()}, ps)

	n, err := materials.Len(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	at, err := materials.At(ctx, o, 1)
	require.NoError(t, err)
	assert.True(t, at.Equal(a))
	_, err = materials.At(ctx, o, 4)
	assert.ErrorIs(t, err, tree.ErrOutOfRange)

	i, err := materials.Index(ctx, o, b)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	require.NoError(t, materials.Remove(ctx, o, c))
	all, err := materials.All(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ResourcePath(), b.ResourcePath(), c.ResourcePath()}, pathsOf(all))

	assert.ErrorIs(t, materials.Insert(ctx, o, 9, a), tree.ErrOutOfRange)
	assert.ErrorIs(t, materials.Remove(ctx, o, o), tree.ErrNotInList)
	_, err = materials.Index(ctx, o, o)
	assert.ErrorIs(t, err, tree.ErrNotInList)
	assert.ErrorIs(t, materials.Remove(ctx, o, nil), tree.ErrNotInList)
	_, err = materials.Index(ctx, o, nil)
	assert.ErrorIs(t, err, tree.ErrNotInList)
	assert.ErrorIs(t, materials.Append(ctx, o, o), tree.ErrWrongKind)
	assert.ErrorIs(t, materials.Set(ctx, o, []*tree.Object{a, nil}), tree.ErrUnstoredLink)
}

func TestEdgeList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.create(t, f.model, "materials", "a")
	b := f.create(t, f.model, "materials", "b")
	o := f.create(t, f.model, "things", "t")

	require.NoError(t, edges.Set(ctx, o, []edge{{material: a, angle: 0}, {material: b, angle: 45}}))
	require.NoError(t, edges.Append(ctx, o, edge{material: a, angle: 90}))

	n, err := edges.Len(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := edges.Get(ctx, o)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].material.Equal(a))
	assert.True(t, got[1].material.Equal(b))
	assert.Equal(t, []float64{0, 45, 90}, []float64{got[0].angle, got[1].angle, got[2].angle})

	ps, err := o.LinkedPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ResourcePath(), b.ResourcePath()}, ps)

	assert.ErrorIs(t, edges.Append(ctx, o, edge{material: o}), tree.ErrWrongKind)

	// unlinking keeps the edges and their angles
	u := o.Clone(true)
	n, err = edges.Len(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	ps, err = u.LinkedPaths(ctx)
	require.NoError(t, err)
	assert.Empty(t, ps)
}
