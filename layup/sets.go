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

// ElementSet is a set of shell elements of the mesh.
type ElementSet struct{ *tree.Object }

// NewElementSet returns an unstored element set.
func NewElementSet(name string) *ElementSet {
	return AsElementSet(tree.New(Kind(LabelElementSets), name))
}

// AsElementSet wraps o.
func AsElementSet(o *tree.Object) *ElementSet { return &ElementSet{o} }

func (e *ElementSet) object() *tree.Object {
	if e == nil {
		return nil
	}
	return e.Object
}

var (
	elementSetStatus       = tree.Enum[Status]("properties.status")
	elementSetLocked       = tree.Bool("properties.locked")
	elementSetMiddleOffset = tree.Bool("properties.middle_offset")
	elementSetLabels       = tree.Int32s("properties.element_labels")
)

func (e *ElementSet) Status(ctx context.Context) (Status, error) {
	return elementSetStatus.Get(ctx, e.Object)
}

func (e *ElementSet) Locked(ctx context.Context) (bool, error) {
	return elementSetLocked.Get(ctx, e.Object)
}

func (e *ElementSet) MiddleOffset(ctx context.Context) (bool, error) {
	return elementSetMiddleOffset.Get(ctx, e.Object)
}

func (e *ElementSet) SetMiddleOffset(ctx context.Context, v bool) error {
	return elementSetMiddleOffset.Set(ctx, e.Object, v)
}

func (e *ElementSet) ElementLabels(ctx context.Context) ([]int32, error) {
	return elementSetLabels.Get(ctx, e.Object)
}

func (e *ElementSet) SetElementLabels(ctx context.Context, v []int32) error {
	return elementSetLabels.Set(ctx, e.Object, v)
}

// EdgeSet is a set of element edges, defined by nodes or by the boundary
// of an element set.
type EdgeSet struct{ *tree.Object }

// AsEdgeSet wraps o.
func AsEdgeSet(o *tree.Object) *EdgeSet { return &EdgeSet{o} }

func (e *EdgeSet) object() *tree.Object {
	if e == nil {
		return nil
	}
	return e.Object
}

var (
	edgeSetStatus     = tree.Enum[Status]("properties.status")
	edgeSetType       = tree.Enum[EdgeSetType]("properties.edge_set_type")
	edgeSetNodes      = tree.Int32s("properties.defining_node_labels")
	edgeSetElementSet = tree.Link("properties.element_set", LabelElementSets)
	edgeSetLimitAngle = tree.Double("properties.limit_angle")
	edgeSetOrigin     = tree.Doubles("properties.origin")
)

func (e *EdgeSet) Status(ctx context.Context) (Status, error) {
	return edgeSetStatus.Get(ctx, e.Object)
}

func (e *EdgeSet) EdgeSetType(ctx context.Context) (EdgeSetType, error) {
	return edgeSetType.Get(ctx, e.Object)
}

func (e *EdgeSet) SetEdgeSetType(ctx context.Context, v EdgeSetType) error {
	return edgeSetType.Set(ctx, e.Object, v)
}

func (e *EdgeSet) DefiningNodeLabels(ctx context.Context) ([]int32, error) {
	return edgeSetNodes.Get(ctx, e.Object)
}

func (e *EdgeSet) SetDefiningNodeLabels(ctx context.Context, v []int32) error {
	return edgeSetNodes.Set(ctx, e.Object, v)
}

// ElementSet is the element set whose boundary defines the edges when the
// type is EdgeSetByReference.
func (e *EdgeSet) ElementSet(ctx context.Context) (*ElementSet, error) {
	o, err := edgeSetElementSet.Get(ctx, e.Object)
	return linkedAs(o, err, AsElementSet)
}

func (e *EdgeSet) SetElementSet(ctx context.Context, es *ElementSet) error {
	return edgeSetElementSet.Set(ctx, e.Object, es.object())
}

func (e *EdgeSet) LimitAngle(ctx context.Context) (float64, error) {
	return edgeSetLimitAngle.Get(ctx, e.Object)
}

func (e *EdgeSet) SetLimitAngle(ctx context.Context, v float64) error {
	return edgeSetLimitAngle.Set(ctx, e.Object, v)
}

func (e *EdgeSet) Origin(ctx context.Context) (Vector, error) {
	return vector(edgeSetOrigin.Get(ctx, e.Object))
}

func (e *EdgeSet) SetOrigin(ctx context.Context, v Vector) error {
	return edgeSetOrigin.Set(ctx, e.Object, v[:])
}

// Rosette is a local coordinate system used to orient plies.
type Rosette struct{ *tree.Object }

// NewRosette returns an unstored rosette with the global axes.
func NewRosette(name string) *Rosette {
	r := AsRosette(tree.New(Kind(LabelRosettes), name))
	// Local updates of unstored objects cannot fail.
	_ = rosetteDir1.Set(context.Background(), r.Object, []float64{1, 0, 0})
	_ = rosetteDir2.Set(context.Background(), r.Object, []float64{0, 1, 0})
	_ = rosetteOrigin.Set(context.Background(), r.Object, []float64{0, 0, 0})
	return r
}

// AsRosette wraps o.
func AsRosette(o *tree.Object) *Rosette { return &Rosette{o} }

func (r *Rosette) object() *tree.Object {
	if r == nil {
		return nil
	}
	return r.Object
}

var (
	rosetteStatus = tree.Enum[Status]("properties.status")
	rosetteOrigin = tree.Doubles("properties.origin")
	rosetteDir1   = tree.Doubles("properties.dir1")
	rosetteDir2   = tree.Doubles("properties.dir2")
)

func (r *Rosette) Status(ctx context.Context) (Status, error) {
	return rosetteStatus.Get(ctx, r.Object)
}

func (r *Rosette) Origin(ctx context.Context) (Vector, error) {
	return vector(rosetteOrigin.Get(ctx, r.Object))
}

func (r *Rosette) SetOrigin(ctx context.Context, v Vector) error {
	return rosetteOrigin.Set(ctx, r.Object, v[:])
}

func (r *Rosette) Dir1(ctx context.Context) (Vector, error) {
	return vector(rosetteDir1.Get(ctx, r.Object))
}

func (r *Rosette) SetDir1(ctx context.Context, v Vector) error {
	return rosetteDir1.Set(ctx, r.Object, v[:])
}

func (r *Rosette) Dir2(ctx context.Context) (Vector, error) {
	return vector(rosetteDir2.Get(ctx, r.Object))
}

func (r *Rosette) SetDir2(ctx context.Context, v Vector) error {
	return rosetteDir2.Set(ctx, r.Object, v[:])
}

// OrientedSelectionSet assigns orientation and rosettes to the elements of
// its element sets.
type OrientedSelectionSet struct{ *tree.Object }

// AsOrientedSelectionSet wraps o.
func AsOrientedSelectionSet(o *tree.Object) *OrientedSelectionSet {
	return &OrientedSelectionSet{o}
}

func (s *OrientedSelectionSet) object() *tree.Object {
	if s == nil {
		return nil
	}
	return s.Object
}

var (
	ossStatus               = tree.Enum[Status]("properties.status")
	ossElementSets          = tree.LinkList("properties.element_sets", LabelElementSets)
	ossOrientationPoint     = tree.Doubles("properties.orientation_point")
	ossOrientationDirection = tree.Doubles("properties.orientation_direction")
	ossRosettes             = tree.LinkList("properties.rosettes", LabelRosettes)
	ossRosetteSelection     = tree.Enum[RosetteSelectionMethod]("properties.rosette_selection_method")
	ossDraping              = tree.Bool("properties.draping")
	ossRotationAngle        = tree.Double("properties.rotation_angle")
	ossSelectionRules       = tree.LinkList("properties.selection_rules",
		LabelParallelSelectionRules, LabelBooleanSelectionRules)
)

func (s *OrientedSelectionSet) Status(ctx context.Context) (Status, error) {
	return ossStatus.Get(ctx, s.Object)
}

func (s *OrientedSelectionSet) ElementSets(ctx context.Context) ([]*ElementSet, error) {
	objs, err := ossElementSets.All(ctx, s.Object)
	return linkedAll(objs, err, AsElementSet)
}

func (s *OrientedSelectionSet) SetElementSets(ctx context.Context, es ...*ElementSet) error {
	return ossElementSets.Set(ctx, s.Object, objects(es))
}

func (s *OrientedSelectionSet) AddElementSet(ctx context.Context, es *ElementSet) error {
	return ossElementSets.Append(ctx, s.Object, es.object())
}

func (s *OrientedSelectionSet) RemoveElementSet(ctx context.Context, es *ElementSet) error {
	return ossElementSets.Remove(ctx, s.Object, es.object())
}

func (s *OrientedSelectionSet) OrientationPoint(ctx context.Context) (Vector, error) {
	return vector(ossOrientationPoint.Get(ctx, s.Object))
}

func (s *OrientedSelectionSet) SetOrientationPoint(ctx context.Context, v Vector) error {
	return ossOrientationPoint.Set(ctx, s.Object, v[:])
}

func (s *OrientedSelectionSet) OrientationDirection(ctx context.Context) (Vector, error) {
	return vector(ossOrientationDirection.Get(ctx, s.Object))
}

func (s *OrientedSelectionSet) SetOrientationDirection(ctx context.Context, v Vector) error {
	return ossOrientationDirection.Set(ctx, s.Object, v[:])
}

func (s *OrientedSelectionSet) Rosettes(ctx context.Context) ([]*Rosette, error) {
	objs, err := ossRosettes.All(ctx, s.Object)
	return linkedAll(objs, err, AsRosette)
}

func (s *OrientedSelectionSet) SetRosettes(ctx context.Context, rs ...*Rosette) error {
	return ossRosettes.Set(ctx, s.Object, objects(rs))
}

func (s *OrientedSelectionSet) AddRosette(ctx context.Context, r *Rosette) error {
	return ossRosettes.Append(ctx, s.Object, r.object())
}

func (s *OrientedSelectionSet) RosetteSelectionMethod(ctx context.Context) (RosetteSelectionMethod, error) {
	return ossRosetteSelection.Get(ctx, s.Object)
}

func (s *OrientedSelectionSet) SetRosetteSelectionMethod(ctx context.Context, v RosetteSelectionMethod) error {
	return ossRosetteSelection.Set(ctx, s.Object, v)
}

func (s *OrientedSelectionSet) Draping(ctx context.Context) (bool, error) {
	return ossDraping.Get(ctx, s.Object)
}

func (s *OrientedSelectionSet) SetDraping(ctx context.Context, v bool) error {
	return ossDraping.Set(ctx, s.Object, v)
}

func (s *OrientedSelectionSet) RotationAngle(ctx context.Context) (float64, error) {
	return ossRotationAngle.Get(ctx, s.Object)
}

func (s *OrientedSelectionSet) SetRotationAngle(ctx context.Context, v float64) error {
	return ossRotationAngle.Set(ctx, s.Object, v)
}

// SelectionRules returns the linked rules as generic objects, since they
// may be of several kinds.
func (s *OrientedSelectionSet) SelectionRules(ctx context.Context) ([]*tree.Object, error) {
	return ossSelectionRules.All(ctx, s.Object)
}

func (s *OrientedSelectionSet) SetSelectionRules(ctx context.Context, rules ...SelectionRule) error {
	return ossSelectionRules.Set(ctx, s.Object, ruleObjects(rules))
}

func (s *OrientedSelectionSet) AddSelectionRule(ctx context.Context, rule SelectionRule) error {
	return ossSelectionRules.Append(ctx, s.Object, ruleObject(rule))
}
