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

	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/schema"
	"dirpx.dev/acp/tree"
)

// ElementalSet is an *ElementSet or an *OrientedSelectionSet bounding the
// extent of a solid model.
type ElementalSet interface {
	elementalSet() *tree.Object
}

func (e *ElementSet) elementalSet() *tree.Object           { return e.object() }
func (s *OrientedSelectionSet) elementalSet() *tree.Object { return s.object() }

// SolidModel extrudes the layup of its element sets into layered solid
// elements.
type SolidModel struct{ *tree.Object }

// NewSolidModel returns an unstored, active solid model that extrudes
// analysis ply wise along the shell normal and deletes bad elements.
func NewSolidModel(name string) *SolidModel {
	s := AsSolidModel(tree.New(Kind(LabelSolidModels), name))
	// Local updates of unstored objects cannot fail.
	_ = solidModelDefaults(s)
	return s
}

func solidModelDefaults(s *SolidModel) error {
	ctx := context.Background()
	if err := solidActive.Set(ctx, s.Object, true); err != nil {
		return err
	}
	if err := solidMaxElementThickness.Set(ctx, s.Object, 1); err != nil {
		return err
	}
	if err := solidDeleteBadElements.Set(ctx, s.Object, true); err != nil {
		return err
	}
	return solidWarpingLimit.Set(ctx, s.Object, 0.4)
}

// AsSolidModel wraps o.
func AsSolidModel(o *tree.Object) *SolidModel { return &SolidModel{o} }

func (s *SolidModel) object() *tree.Object {
	if s == nil {
		return nil
	}
	return s.Object
}

var (
	solidStatus              = tree.Enum[Status]("properties.status")
	solidLocked              = tree.Bool("properties.locked")
	solidActive              = tree.Bool("properties.active")
	solidElementSets         = tree.LinkList("properties.element_sets", LabelElementSets, LabelOrientedSelectionSets)
	solidExtrusionMethod     = tree.Enum[ExtrusionMethod]("properties.extrusion_method")
	solidMaxElementThickness = tree.Double("properties.max_element_thickness")
	solidPlyGroupPointers    = tree.LinkList("properties.ply_group_pointers", LabelModelingPlies)
	solidOffsetDirection     = tree.Enum[OffsetDirection]("properties.offset_direction")
	solidSkipWithoutPlies    = tree.Bool("properties.skip_elements_without_plies")
	solidDropOffMaterial     = tree.Link("properties.drop_off_material", LabelMaterials)
	solidCutOffMaterial      = tree.Link("properties.cut_off_material", LabelMaterials)
	solidDeleteBadElements   = tree.Bool("properties.delete_bad_elements")
	solidWarpingLimit        = tree.Double("properties.warping_limit")
	solidMinimumVolume       = tree.Double("properties.minimum_volume")
)

func (s *SolidModel) Status(ctx context.Context) (Status, error) {
	return solidStatus.Get(ctx, s.Object)
}

func (s *SolidModel) Locked(ctx context.Context) (bool, error) {
	return solidLocked.Get(ctx, s.Object)
}

// Active solid models are computed and used in the analysis.
func (s *SolidModel) Active(ctx context.Context) (bool, error) {
	return solidActive.Get(ctx, s.Object)
}

func (s *SolidModel) SetActive(ctx context.Context, v bool) error {
	return solidActive.Set(ctx, s.Object, v)
}

// ElementSets returns the *ElementSet and *OrientedSelectionSet objects
// bounding the solid model.
func (s *SolidModel) ElementSets(ctx context.Context) ([]ElementalSet, error) {
	objs, err := solidElementSets.All(ctx, s.Object)
	if err != nil {
		return nil, err
	}
	out := make([]ElementalSet, len(objs))
	for i, o := range objs {
		switch o.Kind().Label {
		case LabelElementSets:
			out[i] = AsElementSet(o)
		case LabelOrientedSelectionSets:
			out[i] = AsOrientedSelectionSet(o)
		default:
			return nil, fmt.Errorf("%w: element set %s", tree.ErrWrongKind, o)
		}
	}
	return out, nil
}

func (s *SolidModel) SetElementSets(ctx context.Context, sets ...ElementalSet) error {
	objs := make([]*tree.Object, len(sets))
	for i, e := range sets {
		if e != nil {
			objs[i] = e.elementalSet()
		}
	}
	return solidElementSets.Set(ctx, s.Object, objs)
}

func (s *SolidModel) ExtrusionMethod(ctx context.Context) (ExtrusionMethod, error) {
	return solidExtrusionMethod.Get(ctx, s.Object)
}

func (s *SolidModel) SetExtrusionMethod(ctx context.Context, v ExtrusionMethod) error {
	return solidExtrusionMethod.Set(ctx, s.Object, v)
}

// MaxElementThickness is used by the thickness, material and sandwich
// wise extrusion methods.
func (s *SolidModel) MaxElementThickness(ctx context.Context) (float64, error) {
	return solidMaxElementThickness.Get(ctx, s.Object)
}

func (s *SolidModel) SetMaxElementThickness(ctx context.Context, v float64) error {
	return solidMaxElementThickness.Set(ctx, s.Object, v)
}

// PlyGroupPointers are the modeling plies starting a new element with
// ExtrusionUserDefined.
func (s *SolidModel) PlyGroupPointers(ctx context.Context) ([]*ModelingPly, error) {
	objs, err := solidPlyGroupPointers.All(ctx, s.Object)
	return linkedAll(objs, err, AsModelingPly)
}

func (s *SolidModel) SetPlyGroupPointers(ctx context.Context, plies ...*ModelingPly) error {
	return solidPlyGroupPointers.Set(ctx, s.Object, objects(plies))
}

func (s *SolidModel) OffsetDirection(ctx context.Context) (OffsetDirection, error) {
	return solidOffsetDirection.Get(ctx, s.Object)
}

func (s *SolidModel) SetOffsetDirection(ctx context.Context, v OffsetDirection) error {
	return solidOffsetDirection.Set(ctx, s.Object, v)
}

func (s *SolidModel) SkipElementsWithoutPlies(ctx context.Context) (bool, error) {
	return solidSkipWithoutPlies.Get(ctx, s.Object)
}

func (s *SolidModel) SetSkipElementsWithoutPlies(ctx context.Context, v bool) error {
	return solidSkipWithoutPlies.Set(ctx, s.Object, v)
}

func (s *SolidModel) DropOffMaterial(ctx context.Context) (*Material, error) {
	o, err := solidDropOffMaterial.Get(ctx, s.Object)
	return linkedAs(o, err, AsMaterial)
}

func (s *SolidModel) SetDropOffMaterial(ctx context.Context, m *Material) error {
	return solidDropOffMaterial.Set(ctx, s.Object, m.object())
}

func (s *SolidModel) CutOffMaterial(ctx context.Context) (*Material, error) {
	o, err := solidCutOffMaterial.Get(ctx, s.Object)
	return linkedAs(o, err, AsMaterial)
}

func (s *SolidModel) SetCutOffMaterial(ctx context.Context, m *Material) error {
	return solidCutOffMaterial.Set(ctx, s.Object, m.object())
}

func (s *SolidModel) DeleteBadElements(ctx context.Context) (bool, error) {
	return solidDeleteBadElements.Get(ctx, s.Object)
}

func (s *SolidModel) SetDeleteBadElements(ctx context.Context, v bool) error {
	return solidDeleteBadElements.Set(ctx, s.Object, v)
}

func (s *SolidModel) WarpingLimit(ctx context.Context) (float64, error) {
	return solidWarpingLimit.Get(ctx, s.Object)
}

func (s *SolidModel) SetWarpingLimit(ctx context.Context, v float64) error {
	return solidWarpingLimit.Set(ctx, s.Object, v)
}

// MinimumVolume removes solid elements with a volume at or below it.
func (s *SolidModel) MinimumVolume(ctx context.Context) (float64, error) {
	return solidMinimumVolume.Get(ctx, s.Object)
}

func (s *SolidModel) SetMinimumVolume(ctx context.Context, v float64) error {
	return solidMinimumVolume.Set(ctx, s.Object, v)
}

// DropOffSettings controls drop-off elements of the extrusion.
type DropOffSettings struct {
	DisableOnBottom        bool
	DisableOnTop           bool
	ConnectButtJoinedPlies bool
}

func (d *DropOffSettings) fields() []*bool {
	return []*bool{&d.DisableOnBottom, &d.DisableOnTop, &d.ConnectButtJoinedPlies}
}

var dropOffNames = []protoreflect.Name{
	"disable_drop_offs_on_bottom", "disable_drop_offs_on_top", "connect_butt_joined_plies",
}

func (s *SolidModel) DropOffSettings(ctx context.Context) (DropOffSettings, error) {
	var d DropOffSettings
	info, err := s.Load(ctx)
	if err != nil {
		return d, err
	}
	props := schema.Props(info)
	dm := props.Get(props.Descriptor().Fields().ByName("drop_off_settings")).Message()
	for i, p := range d.fields() {
		*p = dm.Get(dm.Descriptor().Fields().ByName(dropOffNames[i])).Bool()
	}
	return d, nil
}

// SetDropOffSettings writes all settings with a single update.
func (s *SolidModel) SetDropOffSettings(ctx context.Context, d DropOffSettings) error {
	return s.Update(ctx, func(info protoreflect.Message) error {
		props := schema.Props(info)
		dm := props.Mutable(props.Descriptor().Fields().ByName("drop_off_settings")).Message()
		for i, p := range d.fields() {
			dm.Set(dm.Descriptor().Fields().ByName(dropOffNames[i]), protoreflect.ValueOfBool(*p))
		}
		return nil
	})
}
