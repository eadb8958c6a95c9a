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
	"fmt"

	"dirpx.dev/acp/tree"
)

// ModelingGroup groups modeling plies.
type ModelingGroup struct{ *tree.Object }

// AsModelingGroup wraps o.
func AsModelingGroup(o *tree.Object) *ModelingGroup { return &ModelingGroup{o} }

func (g *ModelingGroup) object() *tree.Object {
	if g == nil {
		return nil
	}
	return g.Object
}

func (g *ModelingGroup) ModelingPlies() (Collection[*ModelingPly], error) {
	return collection(g.Object, LabelModelingPlies, AsModelingPly)
}

func (g *ModelingGroup) CreateModelingPly(ctx context.Context, name string, init ...func(*ModelingPly) error) (*ModelingPly, error) {
	return create(ctx, g.Object, LabelModelingPlies, name, AsModelingPly, init)
}

// PlyMaterial is the material of a modeling ply: a *Fabric or a *Stackup.
type PlyMaterial interface {
	plyMaterial() *tree.Object
}

func (f *Fabric) plyMaterial() *tree.Object  { return f.object() }
func (s *Stackup) plyMaterial() *tree.Object { return s.object() }

// ModelingPly places a ply material on the elements of oriented selection
// sets.
type ModelingPly struct{ *tree.Object }

// AsModelingPly wraps o.
func AsModelingPly(o *tree.Object) *ModelingPly { return &ModelingPly{o} }

func (p *ModelingPly) object() *tree.Object {
	if p == nil {
		return nil
	}
	return p.Object
}

var (
	plyStatus         = tree.Enum[Status]("properties.status")
	plyMaterial       = tree.Link("properties.ply_material", LabelFabrics, LabelStackups)
	plyOSS            = tree.LinkList("properties.oriented_selection_sets", LabelOrientedSelectionSets)
	plyAngle          = tree.Double("properties.ply_angle")
	plyLayers         = tree.Int32("properties.number_of_layers")
	plyActive         = tree.Bool("properties.active")
	plyGlobalNr       = tree.Int32("properties.global_ply_nr")
	plySelectionRules = linkedSelectionRules("properties.selection_rules")
	plyThicknessField = tree.Link("properties.thickness_field", LabelLookUpTable1DColumns, LabelLookUpTable3DColumns)
	plyDrapingAngle1  = tree.Link("properties.draping_angle_1_field", LabelLookUpTable1DColumns, LabelLookUpTable3DColumns)
)

func (p *ModelingPly) Status(ctx context.Context) (Status, error) {
	return plyStatus.Get(ctx, p.Object)
}

// PlyMaterial returns the linked *Fabric or *Stackup, or nil.
func (p *ModelingPly) PlyMaterial(ctx context.Context) (PlyMaterial, error) {
	o, err := plyMaterial.Get(ctx, p.Object)
	if err != nil || o == nil {
		return nil, err
	}
	switch o.Kind().Label {
	case LabelFabrics:
		return AsFabric(o), nil
	case LabelStackups:
		return AsStackup(o), nil
	}
	return nil, fmt.Errorf("%w: ply material %s", tree.ErrWrongKind, o)
}

func (p *ModelingPly) SetPlyMaterial(ctx context.Context, m PlyMaterial) error {
	var o *tree.Object
	if m != nil {
		o = m.plyMaterial()
	}
	return plyMaterial.Set(ctx, p.Object, o)
}

func (p *ModelingPly) OrientedSelectionSets(ctx context.Context) ([]*OrientedSelectionSet, error) {
	objs, err := plyOSS.All(ctx, p.Object)
	return linkedAll(objs, err, AsOrientedSelectionSet)
}

func (p *ModelingPly) SetOrientedSelectionSets(ctx context.Context, sets ...*OrientedSelectionSet) error {
	return plyOSS.Set(ctx, p.Object, objects(sets))
}

func (p *ModelingPly) AddOrientedSelectionSet(ctx context.Context, s *OrientedSelectionSet) error {
	return plyOSS.Append(ctx, p.Object, s.object())
}

func (p *ModelingPly) PlyAngle(ctx context.Context) (float64, error) {
	return plyAngle.Get(ctx, p.Object)
}

func (p *ModelingPly) SetPlyAngle(ctx context.Context, v float64) error {
	return plyAngle.Set(ctx, p.Object, v)
}

func (p *ModelingPly) NumberOfLayers(ctx context.Context) (int32, error) {
	return plyLayers.Get(ctx, p.Object)
}

func (p *ModelingPly) SetNumberOfLayers(ctx context.Context, v int32) error {
	return plyLayers.Set(ctx, p.Object, v)
}

func (p *ModelingPly) Active(ctx context.Context) (bool, error) {
	return plyActive.Get(ctx, p.Object)
}

func (p *ModelingPly) SetActive(ctx context.Context, v bool) error {
	return plyActive.Set(ctx, p.Object, v)
}

func (p *ModelingPly) GlobalPlyNr(ctx context.Context) (int32, error) {
	return plyGlobalNr.Get(ctx, p.Object)
}

func (p *ModelingPly) SetGlobalPlyNr(ctx context.Context, v int32) error {
	return plyGlobalNr.Set(ctx, p.Object, v)
}

func (p *ModelingPly) SelectionRules(ctx context.Context) ([]LinkedSelectionRule, error) {
	return plySelectionRules.Get(ctx, p.Object)
}

func (p *ModelingPly) SetSelectionRules(ctx context.Context, rules []LinkedSelectionRule) error {
	return plySelectionRules.Set(ctx, p.Object, rules)
}

func (p *ModelingPly) AddSelectionRule(ctx context.Context, rule LinkedSelectionRule) error {
	return plySelectionRules.Append(ctx, p.Object, rule)
}

// ThicknessField is a look-up table column scaling the ply thickness.
// It returns a *LookUpTable1DColumn, a *LookUpTable3DColumn or nil.
func (p *ModelingPly) ThicknessField(ctx context.Context) (LookUpTableColumn, error) {
	return asColumn(plyThicknessField.Get(ctx, p.Object))
}

func (p *ModelingPly) SetThicknessField(ctx context.Context, c LookUpTableColumn) error {
	return plyThicknessField.Set(ctx, p.Object, columnObject(c))
}

func (p *ModelingPly) DrapingAngle1Field(ctx context.Context) (LookUpTableColumn, error) {
	return asColumn(plyDrapingAngle1.Get(ctx, p.Object))
}

func (p *ModelingPly) SetDrapingAngle1Field(ctx context.Context, c LookUpTableColumn) error {
	return plyDrapingAngle1.Set(ctx, p.Object, columnObject(c))
}

// ProductionPlies lists the plies the server derives from p.
func (p *ModelingPly) ProductionPlies() (Collection[*ProductionPly], error) {
	return collection(p.Object, LabelProductionPlies, AsProductionPly)
}

// ProductionPly is a read-only ply derived by the server.
type ProductionPly struct{ *tree.Object }

// AsProductionPly wraps o.
func AsProductionPly(o *tree.Object) *ProductionPly { return &ProductionPly{o} }

var (
	productionStatus    = tree.Enum[Status]("properties.status")
	productionMaterial  = tree.Link("properties.material")
	productionAngle     = tree.Double("properties.angle")
	productionThickness = tree.Double("properties.thickness")
)

func (p *ProductionPly) Status(ctx context.Context) (Status, error) {
	return productionStatus.Get(ctx, p.Object)
}

// Material returns the fabric the production ply is made of.
func (p *ProductionPly) Material(ctx context.Context) (*tree.Object, error) {
	return productionMaterial.Get(ctx, p.Object)
}

func (p *ProductionPly) Angle(ctx context.Context) (float64, error) {
	return productionAngle.Get(ctx, p.Object)
}

func (p *ProductionPly) Thickness(ctx context.Context) (float64, error) {
	return productionThickness.Get(ctx, p.Object)
}
