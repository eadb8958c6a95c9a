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

	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/tree"
)

// Stackup is a sequence of fabrics with their orientation.
type Stackup struct{ *tree.Object }

// NewStackup returns an unstored stackup.
func NewStackup(name string) *Stackup { return AsStackup(tree.New(Kind(LabelStackups), name)) }

// AsStackup wraps o.
func AsStackup(o *tree.Object) *Stackup { return &Stackup{o} }

func (s *Stackup) object() *tree.Object {
	if s == nil {
		return nil
	}
	return s.Object
}

// FabricWithAngle is one layer of a stackup.
type FabricWithAngle struct {
	Fabric *Fabric
	Angle  float64
}

var (
	stackupStatus          = tree.Enum[Status]("properties.status")
	stackupThickness       = tree.Double("properties.thickness")
	stackupAreaPrice       = tree.Double("properties.area_price")
	stackupSymmetry        = tree.Enum[SymmetryType]("properties.symmetry")
	stackupTopdown         = tree.Bool("properties.topdown")
	stackupDropOffMaterial = tree.Link("properties.drop_off_material", LabelMaterials)
	stackupCutOffMaterial  = tree.Link("properties.cut_off_material", LabelMaterials)

	stackupFabrics = tree.EdgeList("properties.fabrics", "fabric",
		func(target *tree.Object, m protoreflect.Message) FabricWithAngle {
			e := FabricWithAngle{Angle: m.Get(m.Descriptor().Fields().ByName("angle")).Float()}
			if target != nil {
				e.Fabric = AsFabric(target)
			}
			return e
		},
		func(e FabricWithAngle, m protoreflect.Message) *tree.Object {
			m.Set(m.Descriptor().Fields().ByName("angle"), protoreflect.ValueOfFloat64(e.Angle))
			return e.Fabric.object()
		},
		LabelFabrics,
	)
)

func (s *Stackup) Status(ctx context.Context) (Status, error) {
	return stackupStatus.Get(ctx, s.Object)
}

// Thickness is computed by the server from the fabrics.
func (s *Stackup) Thickness(ctx context.Context) (float64, error) {
	return stackupThickness.Get(ctx, s.Object)
}

func (s *Stackup) AreaPrice(ctx context.Context) (float64, error) {
	return stackupAreaPrice.Get(ctx, s.Object)
}

func (s *Stackup) SetAreaPrice(ctx context.Context, v float64) error {
	return stackupAreaPrice.Set(ctx, s.Object, v)
}

func (s *Stackup) Symmetry(ctx context.Context) (SymmetryType, error) {
	return stackupSymmetry.Get(ctx, s.Object)
}

func (s *Stackup) SetSymmetry(ctx context.Context, v SymmetryType) error {
	return stackupSymmetry.Set(ctx, s.Object, v)
}

func (s *Stackup) Topdown(ctx context.Context) (bool, error) {
	return stackupTopdown.Get(ctx, s.Object)
}

func (s *Stackup) SetTopdown(ctx context.Context, v bool) error {
	return stackupTopdown.Set(ctx, s.Object, v)
}

func (s *Stackup) DropOffMaterial(ctx context.Context) (*Material, error) {
	o, err := stackupDropOffMaterial.Get(ctx, s.Object)
	return linkedAs(o, err, AsMaterial)
}

func (s *Stackup) SetDropOffMaterial(ctx context.Context, m *Material) error {
	return stackupDropOffMaterial.Set(ctx, s.Object, m.object())
}

func (s *Stackup) CutOffMaterial(ctx context.Context) (*Material, error) {
	o, err := stackupCutOffMaterial.Get(ctx, s.Object)
	return linkedAs(o, err, AsMaterial)
}

func (s *Stackup) SetCutOffMaterial(ctx context.Context, m *Material) error {
	return stackupCutOffMaterial.Set(ctx, s.Object, m.object())
}

// Fabrics returns the layers from bottom to top.
func (s *Stackup) Fabrics(ctx context.Context) ([]FabricWithAngle, error) {
	return stackupFabrics.Get(ctx, s.Object)
}

func (s *Stackup) SetFabrics(ctx context.Context, fs []FabricWithAngle) error {
	return stackupFabrics.Set(ctx, s.Object, fs)
}

// AddFabric appends a layer.
func (s *Stackup) AddFabric(ctx context.Context, f *Fabric, angle float64) error {
	return stackupFabrics.Append(ctx, s.Object, FabricWithAngle{Fabric: f, Angle: angle})
}
