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

package layup

import (
	"context"

	"dirpx.dev/acp/tree"
)

// Model is the root of a layup tree.
type Model struct{ *tree.Object }

// AsModel wraps o.
func AsModel(o *tree.Object) *Model { return &Model{o} }

func (m *Model) object() *tree.Object {
	if m == nil {
		return nil
	}
	return m.Object
}

var (
	modelUseNodalThicknesses   = tree.Bool("properties.use_nodal_thicknesses")
	modelDrapingOffset         = tree.Bool("properties.draping_offset_correction")
	modelAngleTolerance        = tree.Double("properties.angle_tolerance")
	modelRelThicknessTolerance = tree.Double("properties.relative_thickness_tolerance")
	modelMinPlyThickness       = tree.Double("properties.minimum_analysis_ply_thickness")
	modelUnitSystem            = tree.Enum[UnitSystem]("properties.unit_system")
)

func (m *Model) UseNodalThicknesses(ctx context.Context) (bool, error) {
	return modelUseNodalThicknesses.Get(ctx, m.Object)
}

func (m *Model) SetUseNodalThicknesses(ctx context.Context, v bool) error {
	return modelUseNodalThicknesses.Set(ctx, m.Object, v)
}

func (m *Model) DrapingOffsetCorrection(ctx context.Context) (bool, error) {
	return modelDrapingOffset.Get(ctx, m.Object)
}

func (m *Model) SetDrapingOffsetCorrection(ctx context.Context, v bool) error {
	return modelDrapingOffset.Set(ctx, m.Object, v)
}

// AngleTolerance is the tolerance in degrees used to compare ply angles.
func (m *Model) AngleTolerance(ctx context.Context) (float64, error) {
	return modelAngleTolerance.Get(ctx, m.Object)
}

func (m *Model) SetAngleTolerance(ctx context.Context, v float64) error {
	return modelAngleTolerance.Set(ctx, m.Object, v)
}

func (m *Model) RelativeThicknessTolerance(ctx context.Context) (float64, error) {
	return modelRelThicknessTolerance.Get(ctx, m.Object)
}

func (m *Model) SetRelativeThicknessTolerance(ctx context.Context, v float64) error {
	return modelRelThicknessTolerance.Set(ctx, m.Object, v)
}

func (m *Model) MinimumAnalysisPlyThickness(ctx context.Context) (float64, error) {
	return modelMinPlyThickness.Get(ctx, m.Object)
}

func (m *Model) SetMinimumAnalysisPlyThickness(ctx context.Context, v float64) error {
	return modelMinPlyThickness.Set(ctx, m.Object, v)
}

func (m *Model) UnitSystem(ctx context.Context) (UnitSystem, error) {
	return modelUnitSystem.Get(ctx, m.Object)
}

func (m *Model) SetUnitSystem(ctx context.Context, v UnitSystem) error {
	return modelUnitSystem.Set(ctx, m.Object, v)
}

func (m *Model) Materials() (Collection[*Material], error) {
	return collection(m.Object, LabelMaterials, AsMaterial)
}

func (m *Model) CreateMaterial(ctx context.Context, name string, init ...func(*Material) error) (*Material, error) {
	return create(ctx, m.Object, LabelMaterials, name, AsMaterial, init)
}

func (m *Model) Fabrics() (Collection[*Fabric], error) {
	return collection(m.Object, LabelFabrics, AsFabric)
}

func (m *Model) CreateFabric(ctx context.Context, name string, init ...func(*Fabric) error) (*Fabric, error) {
	return create(ctx, m.Object, LabelFabrics, name, AsFabric, init)
}

func (m *Model) Stackups() (Collection[*Stackup], error) {
	return collection(m.Object, LabelStackups, AsStackup)
}

func (m *Model) CreateStackup(ctx context.Context, name string, init ...func(*Stackup) error) (*Stackup, error) {
	return create(ctx, m.Object, LabelStackups, name, AsStackup, init)
}

func (m *Model) ElementSets() (Collection[*ElementSet], error) {
	return collection(m.Object, LabelElementSets, AsElementSet)
}

func (m *Model) CreateElementSet(ctx context.Context, name string, init ...func(*ElementSet) error) (*ElementSet, error) {
	return create(ctx, m.Object, LabelElementSets, name, AsElementSet, init)
}

func (m *Model) EdgeSets() (Collection[*EdgeSet], error) {
	return collection(m.Object, LabelEdgeSets, AsEdgeSet)
}

func (m *Model) CreateEdgeSet(ctx context.Context, name string, init ...func(*EdgeSet) error) (*EdgeSet, error) {
	return create(ctx, m.Object, LabelEdgeSets, name, AsEdgeSet, init)
}

func (m *Model) Rosettes() (Collection[*Rosette], error) {
	return collection(m.Object, LabelRosettes, AsRosette)
}

func (m *Model) CreateRosette(ctx context.Context, name string, init ...func(*Rosette) error) (*Rosette, error) {
	return create(ctx, m.Object, LabelRosettes, name, AsRosette, init)
}

func (m *Model) LookUpTables1D() (Collection[*LookUpTable1D], error) {
	return collection(m.Object, LabelLookUpTables1D, AsLookUpTable1D)
}

func (m *Model) CreateLookUpTable1D(ctx context.Context, name string, init ...func(*LookUpTable1D) error) (*LookUpTable1D, error) {
	return create(ctx, m.Object, LabelLookUpTables1D, name, AsLookUpTable1D, init)
}

func (m *Model) LookUpTables3D() (Collection[*LookUpTable3D], error) {
	return collection(m.Object, LabelLookUpTables3D, AsLookUpTable3D)
}

// CreateLookUpTable3D applies the defaults of NewLookUpTable3D before init.
func (m *Model) CreateLookUpTable3D(ctx context.Context, name string, init ...func(*LookUpTable3D) error) (*LookUpTable3D, error) {
	return create(ctx, m.Object, LabelLookUpTables3D, name, AsLookUpTable3D,
		append([]func(*LookUpTable3D) error{lookUpTable3DDefaults}, init...))
}

func (m *Model) ParallelSelectionRules() (Collection[*ParallelSelectionRule], error) {
	return collection(m.Object, LabelParallelSelectionRules, AsParallelSelectionRule)
}

func (m *Model) CreateParallelSelectionRule(ctx context.Context, name string, init ...func(*ParallelSelectionRule) error) (*ParallelSelectionRule, error) {
	return create(ctx, m.Object, LabelParallelSelectionRules, name, AsParallelSelectionRule, init)
}

func (m *Model) BooleanSelectionRules() (Collection[*BooleanSelectionRule], error) {
	return collection(m.Object, LabelBooleanSelectionRules, AsBooleanSelectionRule)
}

func (m *Model) CreateBooleanSelectionRule(ctx context.Context, name string, init ...func(*BooleanSelectionRule) error) (*BooleanSelectionRule, error) {
	return create(ctx, m.Object, LabelBooleanSelectionRules, name, AsBooleanSelectionRule, init)
}

func (m *Model) OrientedSelectionSets() (Collection[*OrientedSelectionSet], error) {
	return collection(m.Object, LabelOrientedSelectionSets, AsOrientedSelectionSet)
}

func (m *Model) CreateOrientedSelectionSet(ctx context.Context, name string, init ...func(*OrientedSelectionSet) error) (*OrientedSelectionSet, error) {
	return create(ctx, m.Object, LabelOrientedSelectionSets, name, AsOrientedSelectionSet, init)
}

func (m *Model) ModelingGroups() (Collection[*ModelingGroup], error) {
	return collection(m.Object, LabelModelingGroups, AsModelingGroup)
}

func (m *Model) CreateModelingGroup(ctx context.Context, name string) (*ModelingGroup, error) {
	return create[*ModelingGroup](ctx, m.Object, LabelModelingGroups, name, AsModelingGroup, nil)
}

func (m *Model) SolidModels() (Collection[*SolidModel], error) {
	return collection(m.Object, LabelSolidModels, AsSolidModel)
}

// CreateSolidModel applies the defaults of NewSolidModel before init.
func (m *Model) CreateSolidModel(ctx context.Context, name string, init ...func(*SolidModel) error) (*SolidModel, error) {
	return create(ctx, m.Object, LabelSolidModels, name, AsSolidModel,
		append([]func(*SolidModel) error{solidModelDefaults}, init...))
}

// Models returns the top-level collection of models of s.
func Models(s *tree.Server) (Collection[*Model], error) {
	m, err := tree.NewMapping(s, LabelModels)
	if err != nil {
		return Collection[*Model]{}, err
	}
	return Collection[*Model]{Mapping: m, wrap: AsModel}, nil
}
