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

package layup_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/acp"
	"dirpx.dev/acp/acptest"
	"dirpx.dev/acp/client"
	"dirpx.dev/acp/layup"
	"dirpx.dev/acp/transport"
	"dirpx.dev/acp/tree"
)

func connect(t *testing.T) (*client.Client, *layup.Model) {
	t.Helper()
	srv := acptest.Start(t,
		acptest.WithKinds(layup.Catalog().Kinds()...),
		acptest.WithAutoChild(layup.LabelLookUpTables1D, layup.LabelLookUpTable1DColumns, layup.LocationColumn, nil),
		acptest.WithAutoChild(layup.LabelLookUpTables3D, layup.LabelLookUpTable3DColumns, layup.LocationColumn, nil),
	)
	c, err := client.Connect(context.Background(), srv.Config(),
		client.WithTransport(transport.WithDialOptions(srv.DialOption())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	m, err := c.CreateModel(context.Background(), "")
	require.NoError(t, err)
	return c, m
}

func TestCatalog(t *testing.T) {
	labels := []string{
		layup.LabelModels, layup.LabelMaterials, layup.LabelFabrics, layup.LabelStackups,
		layup.LabelElementSets, layup.LabelEdgeSets, layup.LabelRosettes,
		layup.LabelLookUpTables1D, layup.LabelLookUpTable1DColumns,
		layup.LabelParallelSelectionRules, layup.LabelBooleanSelectionRules,
		layup.LabelOrientedSelectionSets, layup.LabelModelingGroups,
		layup.LabelModelingPlies, layup.LabelProductionPlies,
		layup.LabelLookUpTables3D, layup.LabelLookUpTable3DColumns,
		layup.LabelSolidModels,
	}
	require.Len(t, layup.Catalog().Kinds(), len(labels))

	for _, label := range labels {
		k := layup.Kind(label)
		assert.Equal(t, label, k.Label)
		assert.Same(t, k, acp.ResolvePath(fmt.Sprintf("models/m/%s/x", label)), label)
	}

	pp := layup.Kind(layup.LabelProductionPlies)
	assert.True(t, pp.ReadOnly)
	assert.False(t, pp.Creatable)

	model := layup.Kind(layup.LabelModels)
	assert.Equal(t, "ACP Model", model.DefaultName)
	assert.True(t, model.HasChild(layup.LabelModelingGroups))
	assert.False(t, model.HasChild(layup.LabelModelingPlies))
	assert.True(t, model.HasChild(layup.LabelSolidModels))
	assert.Equal(t, "25.1", layup.Kind(layup.LabelSolidModels).SupportedSince)

	assert.Panics(t, func() { layup.Kind("nope") })
}

func TestResolveWrappers(t *testing.T) {
	assert.Same(t, layup.Kind(layup.LabelFabrics), acp.Resolve(layup.NewFabric("f")))
	assert.Same(t, layup.Kind(layup.LabelRosettes), acp.Resolve(layup.NewRosette("r")))
}

func TestEnumString(t *testing.T) {
	tests := []struct {
		v    fmt.Stringer
		want string
	}{
		{layup.StatusUpToDate, "uptodate"},
		{layup.UnitSystemMPA, "mpa"},
		{layup.PlyTypeHoneycombCore, "honeycomb_core"},
		{layup.DropOffCustom, "custom"},
		{layup.CutOffCore, "core"},
		{layup.EvenSymmetry, "even_symmetry"},
		{layup.EdgeSetByNodes, "by_nodes"},
		{layup.MinimumDistanceSuperposed, "minimum_distance_superposed"},
		{layup.Remove, "remove"},
		{layup.ValueDirection, "direction"},
		{layup.Temperature, "temperature"},
		{layup.LinearMultivariate, "linear_multivariate"},
		{layup.ExtrusionSandwichWise, "sandwich_wise"},
		{layup.SurfaceNormal, "surface_normal"},
		{layup.PlyType(99), "Unknown(99)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
}

func TestModel_Properties(t *testing.T) {
	ctx := context.Background()
	_, m := connect(t)

	assert.Equal(t, "ACP Model", m.Name())
	require.NoError(t, m.SetUnitSystem(ctx, layup.UnitSystemSI))
	require.NoError(t, m.SetAngleTolerance(ctx, 1.5))

	us, err := m.UnitSystem(ctx)
	require.NoError(t, err)
	assert.Equal(t, layup.UnitSystemSI, us)
	tol, err := m.AngleTolerance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.5, tol)
}

func TestMaterial(t *testing.T) {
	ctx := context.Background()
	_, m := connect(t)

	ec := layup.EngineeringConstants{E1: 1e11, E2: 1e10, E3: 1e10, G12: 5e9, G23: 4e9, G31: 5e9, Nu12: 0.3, Nu13: 0.3, Nu23: 0.4}
	mat, err := m.CreateMaterial(ctx, "CFRP", func(mat *layup.Material) error {
		if err := mat.SetPlyType(ctx, layup.PlyTypeRegular); err != nil {
			return err
		}
		return mat.SetEngineeringConstants(ctx, ec)
	})
	require.NoError(t, err)

	got, err := mat.EngineeringConstants(ctx)
	require.NoError(t, err)
	assert.Equal(t, ec, got)
	pt, err := mat.PlyType(ctx)
	require.NoError(t, err)
	assert.Equal(t, layup.PlyTypeRegular, pt)

	ec.Nu23 = 0.45
	require.NoError(t, mat.SetEngineeringConstants(ctx, ec))
	materials, err := m.Materials()
	require.NoError(t, err)
	fresh, err := materials.Get(ctx, "CFRP")
	require.NoError(t, err)
	got, err = fresh.EngineeringConstants(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.45, got.Nu23)
}

func TestStackup_Fabrics(t *testing.T) {
	ctx := context.Background()
	_, m := connect(t)
	f1, err := m.CreateFabric(ctx, "UD")
	require.NoError(t, err)
	f2, err := m.CreateFabric(ctx, "Woven")
	require.NoError(t, err)

	st, err := m.CreateStackup(ctx, "Stackup", func(s *layup.Stackup) error {
		return s.SetFabrics(ctx, []layup.FabricWithAngle{{Fabric: f1, Angle: 0}, {Fabric: f2, Angle: 45}})
	})
	require.NoError(t, err)
	require.NoError(t, st.AddFabric(ctx, f1, -45))

	layers, err := st.Fabrics(ctx)
	require.NoError(t, err)
	require.Len(t, layers, 3)
	var got []string
	for _, l := range layers {
		got = append(got, fmt.Sprintf("%s@%g", l.Fabric.ID(), l.Angle))
	}
	assert.Equal(t, []string{"UD@0", "Woven@45", "UD@-45"}, got)

	paths, err := st.LinkedPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{f1.ResourcePath(), f2.ResourcePath()}, paths)

	// unstored fabrics cannot be linked
	other := layup.NewFabric("detached")
	assert.ErrorIs(t, st.AddFabric(ctx, other, 90), tree.ErrUnstoredLink)
}

func TestSelectionRules(t *testing.T) {
	ctx := context.Background()
	_, m := connect(t)

	par, err := m.CreateParallelSelectionRule(ctx, "Parallel", func(r *layup.ParallelSelectionRule) error {
		if err := r.SetDirection(ctx, layup.Vector{1, 0, 0}); err != nil {
			return err
		}
		return r.SetUpperLimit(ctx, 10)
	})
	require.NoError(t, err)
	dir, err := par.Direction(ctx)
	require.NoError(t, err)
	assert.Equal(t, layup.Vector{1, 0, 0}, dir)

	boolRule, err := m.CreateBooleanSelectionRule(ctx, "Boolean", func(r *layup.BooleanSelectionRule) error {
		return r.AddSelectionRule(ctx, layup.LinkedSelectionRule{Rule: par, OperationType: layup.Remove, Parameter1: 2})
	})
	require.NoError(t, err)

	rules, err := boolRule.SelectionRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, layup.Remove, rules[0].OperationType)
	assert.Equal(t, 2.0, rules[0].Parameter1)
	rule, ok := rules[0].Rule.(*layup.ParallelSelectionRule)
	require.True(t, ok)
	assert.Equal(t, par.ResourcePath(), rule.ResourcePath())

	oss, err := m.CreateOrientedSelectionSet(ctx, "OSS", func(s *layup.OrientedSelectionSet) error {
		return s.SetSelectionRules(ctx, par, boolRule)
	})
	require.NoError(t, err)
	objs, err := oss.SelectionRules(ctx)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	_, isBool := layup.AsSelectionRule(objs[1]).(*layup.BooleanSelectionRule)
	assert.True(t, isBool)
}

func TestOrientedSelectionSet(t *testing.T) {
	ctx := context.Background()
	_, m := connect(t)
	es, err := m.CreateElementSet(ctx, "All", func(e *layup.ElementSet) error {
		return e.SetElementLabels(ctx, []int32{1, 2, 3})
	})
	require.NoError(t, err)
	ro, err := m.CreateRosette(ctx, "Rosette")
	require.NoError(t, err)

	oss, err := m.CreateOrientedSelectionSet(ctx, "OSS", func(s *layup.OrientedSelectionSet) error {
		if err := s.SetElementSets(ctx, es); err != nil {
			return err
		}
		if err := s.SetRosetteSelectionMethod(ctx, layup.MinimumDistance); err != nil {
			return err
		}
		return s.AddRosette(ctx, ro)
	})
	require.NoError(t, err)

	sets, err := oss.ElementSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	labels, err := sets[0].ElementLabels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, labels)

	rosettes, err := oss.Rosettes(ctx)
	require.NoError(t, err)
	require.Len(t, rosettes, 1)
	assert.Equal(t, ro.ResourcePath(), rosettes[0].ResourcePath())

	require.NoError(t, oss.RemoveElementSet(ctx, es))
	sets, err = oss.ElementSets(ctx)
	require.NoError(t, err)
	assert.Empty(t, sets)
	assert.ErrorIs(t, oss.RemoveElementSet(ctx, es), tree.ErrNotInList)
}

func TestNewRosette(t *testing.T) {
	ctx := context.Background()
	r := layup.NewRosette("Global")
	dir1, err := r.Dir1(ctx)
	require.NoError(t, err)
	dir2, err := r.Dir2(ctx)
	require.NoError(t, err)
	assert.Equal(t, layup.Vector{1, 0, 0}, dir1)
	assert.Equal(t, layup.Vector{0, 1, 0}, dir2)

	_, m := connect(t)
	rosettes, err := m.Rosettes()
	require.NoError(t, err)
	require.NoError(t, r.Store(ctx, m.Object))
	got, err := rosettes.Get(ctx, "Global")
	require.NoError(t, err)
	dir2, err = got.Dir2(ctx)
	require.NoError(t, err)
	assert.Equal(t, layup.Vector{0, 1, 0}, dir2)
}

func TestModelingPly(t *testing.T) {
	ctx := context.Background()
	_, m := connect(t)
	fab, err := m.CreateFabric(ctx, "UD")
	require.NoError(t, err)
	st, err := m.CreateStackup(ctx, "Stackup")
	require.NoError(t, err)
	oss, err := m.CreateOrientedSelectionSet(ctx, "OSS")
	require.NoError(t, err)
	group, err := m.CreateModelingGroup(ctx, "Group")
	require.NoError(t, err)

	ply, err := group.CreateModelingPly(ctx, "Ply", func(p *layup.ModelingPly) error {
		if err := p.SetPlyMaterial(ctx, fab); err != nil {
			return err
		}
		if err := p.SetNumberOfLayers(ctx, 2); err != nil {
			return err
		}
		return p.AddOrientedSelectionSet(ctx, oss)
	})
	require.NoError(t, err)

	pm, err := ply.PlyMaterial(ctx)
	require.NoError(t, err)
	require.IsType(t, &layup.Fabric{}, pm)
	assert.Equal(t, fab.ResourcePath(), pm.(*layup.Fabric).ResourcePath())

	require.NoError(t, ply.SetPlyMaterial(ctx, st))
	pm, err = ply.PlyMaterial(ctx)
	require.NoError(t, err)
	require.IsType(t, &layup.Stackup{}, pm)

	require.NoError(t, ply.SetPlyMaterial(ctx, nil))
	pm, err = ply.PlyMaterial(ctx)
	require.NoError(t, err)
	assert.Nil(t, pm)

	n, err := ply.NumberOfLayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), n)
	sets, err := ply.OrientedSelectionSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "OSS", sets[0].ID())

	pp, err := ply.ProductionPlies()
	require.NoError(t, err)
	_, err = pp.Create(ctx, "p")
	assert.ErrorIs(t, err, tree.ErrReadOnly)
}

func TestLookUpTable(t *testing.T) {
	ctx := context.Background()
	_, m := connect(t)
	table, err := m.CreateLookUpTable1D(ctx, "LUT")
	require.NoError(t, err)

	loc, err := table.Location(ctx)
	require.NoError(t, err)
	assert.Equal(t, layup.LocationColumn, loc.Name())

	col, err := table.CreateColumn(ctx, "Angle", func(c *layup.LookUpTable1DColumn) error {
		if err := c.SetValueType(ctx, layup.ValueDirection); err != nil {
			return err
		}
		return c.SetData(ctx, []float64{1, 0, 0, 0, 1, 0})
	})
	require.NoError(t, err)
	vt, err := col.ValueType(ctx)
	require.NoError(t, err)
	assert.Equal(t, layup.ValueDirection, vt)
	assert.ErrorIs(t, col.SetValueType(ctx, layup.ValueScalar), tree.ErrReadOnly)

	cols, err := table.Columns()
	require.NoError(t, err)
	keys, err := cols.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{layup.LocationColumn, "Angle"}, keys)
}

func TestLookUpTable3D(t *testing.T) {
	ctx := context.Background()
	_, m := connect(t)

	unstored := layup.NewLookUpTable3D("LUT")
	radius, err := unstored.UseDefaultSearchRadius(ctx)
	require.NoError(t, err)
	assert.True(t, radius)

	table, err := m.CreateLookUpTable3D(ctx, "LUT", func(lt *layup.LookUpTable3D) error {
		return lt.SetInterpolationAlgorithm(ctx, layup.LinearMultivariate)
	})
	require.NoError(t, err)
	alg, err := table.InterpolationAlgorithm(ctx)
	require.NoError(t, err)
	assert.Equal(t, layup.LinearMultivariate, alg)
	neighbors, err := table.MinNeighbors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), neighbors)

	loc, err := table.Location(ctx)
	require.NoError(t, err)
	require.NoError(t, loc.SetData(ctx, []float64{0, 0, 0, 1, 1, 1}))
	col, err := table.CreateColumn(ctx, "Thickness", func(c *layup.LookUpTable3DColumn) error {
		return c.SetData(ctx, []float64{0.1, 0.2})
	})
	require.NoError(t, err)

	group, err := m.CreateModelingGroup(ctx, "Group")
	require.NoError(t, err)
	ply, err := group.CreateModelingPly(ctx, "Ply", func(p *layup.ModelingPly) error {
		return p.SetThicknessField(ctx, col)
	})
	require.NoError(t, err)
	field, err := ply.ThicknessField(ctx)
	require.NoError(t, err)
	require.IsType(t, &layup.LookUpTable3DColumn{}, field)
	assert.Equal(t, col.ResourcePath(), field.ResourcePath())
	data, err := field.Data(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, data)

	require.NoError(t, ply.SetThicknessField(ctx, nil))
	field, err = ply.ThicknessField(ctx)
	require.NoError(t, err)
	assert.Nil(t, field)
}

func TestSolidModel(t *testing.T) {
	ctx := context.Background()
	_, m := connect(t)
	mat, err := m.CreateMaterial(ctx, "Core")
	require.NoError(t, err)
	es, err := m.CreateElementSet(ctx, "All")
	require.NoError(t, err)
	oss, err := m.CreateOrientedSelectionSet(ctx, "OSS")
	require.NoError(t, err)

	sm, err := m.CreateSolidModel(ctx, "", func(s *layup.SolidModel) error {
		if err := s.SetElementSets(ctx, es, oss); err != nil {
			return err
		}
		if err := s.SetExtrusionMethod(ctx, layup.ExtrusionSpecifyThickness); err != nil {
			return err
		}
		return s.SetDropOffMaterial(ctx, mat)
	})
	require.NoError(t, err)
	assert.Equal(t, "SolidModel", sm.Name())

	active, err := sm.Active(ctx)
	require.NoError(t, err)
	assert.True(t, active)
	limit, err := sm.WarpingLimit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.4, limit)
	method, err := sm.ExtrusionMethod(ctx)
	require.NoError(t, err)
	assert.Equal(t, layup.ExtrusionSpecifyThickness, method)

	sets, err := sm.ElementSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.IsType(t, &layup.ElementSet{}, sets[0])
	assert.IsType(t, &layup.OrientedSelectionSet{}, sets[1])

	dropOff, err := sm.DropOffMaterial(ctx)
	require.NoError(t, err)
	assert.Equal(t, mat.ResourcePath(), dropOff.ResourcePath())
	cutOff, err := sm.CutOffMaterial(ctx)
	require.NoError(t, err)
	assert.Nil(t, cutOff)

	want := layup.DropOffSettings{DisableOnTop: true, ConnectButtJoinedPlies: true}
	require.NoError(t, sm.SetDropOffSettings(ctx, want))
	got, err := sm.DropOffSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Error(t, sm.SetElementSets(ctx, layup.AsElementSet(mat.Object)))
}

func TestSolidModel_RequiresNewerServer(t *testing.T) {
	ctx := context.Background()
	srv := acptest.Start(t, acptest.WithKinds(layup.Catalog().Kinds()...), acptest.WithVersion("24.2"))
	c, err := client.Connect(ctx, srv.Config(),
		client.WithTransport(transport.WithDialOptions(srv.DialOption())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	m, err := c.CreateModel(ctx, "")
	require.NoError(t, err)
	_, err = m.CreateSolidModel(ctx, "")
	assert.ErrorIs(t, err, tree.ErrUnsupported)
	_, err = m.CreateMaterial(ctx, "Steel")
	require.NoError(t, err)
}
