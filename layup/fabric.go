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

// Fabric is a layer of a single material with a constant thickness.
type Fabric struct{ *tree.Object }

// NewFabric returns an unstored fabric.
func NewFabric(name string) *Fabric { return AsFabric(tree.New(Kind(LabelFabrics), name)) }

// AsFabric wraps o.
func AsFabric(o *tree.Object) *Fabric { return &Fabric{o} }

func (f *Fabric) object() *tree.Object {
	if f == nil {
		return nil
	}
	return f.Object
}

var (
	fabricStatus             = tree.Enum[Status]("properties.status")
	fabricMaterial           = tree.Link("properties.material", LabelMaterials)
	fabricThickness          = tree.Double("properties.thickness")
	fabricAreaPrice          = tree.Double("properties.area_price")
	fabricAreaWeight         = tree.Double("properties.area_weight")
	fabricIgnorePost         = tree.Bool("properties.ignore_for_postprocessing")
	fabricDropOffHandling    = tree.Enum[DropOffMaterialHandling]("properties.drop_off_material_handling")
	fabricDropOffMaterial    = tree.Link("properties.drop_off_material", LabelMaterials)
	fabricCutOffHandling     = tree.Enum[CutOffMaterialHandling]("properties.cut_off_material_handling")
	fabricCutOffMaterial     = tree.Link("properties.cut_off_material", LabelMaterials)
	fabricDrapingCoefficient = tree.Double("properties.draping_ud_coefficient")
)

func (f *Fabric) Status(ctx context.Context) (Status, error) {
	return fabricStatus.Get(ctx, f.Object)
}

// Material returns the linked material, or nil if none is set.
func (f *Fabric) Material(ctx context.Context) (*Material, error) {
	o, err := fabricMaterial.Get(ctx, f.Object)
	return linkedAs(o, err, AsMaterial)
}

// SetMaterial links m; nil clears the link.
func (f *Fabric) SetMaterial(ctx context.Context, m *Material) error {
	return fabricMaterial.Set(ctx, f.Object, m.object())
}

func (f *Fabric) Thickness(ctx context.Context) (float64, error) {
	return fabricThickness.Get(ctx, f.Object)
}

func (f *Fabric) SetThickness(ctx context.Context, v float64) error {
	return fabricThickness.Set(ctx, f.Object, v)
}

func (f *Fabric) AreaPrice(ctx context.Context) (float64, error) {
	return fabricAreaPrice.Get(ctx, f.Object)
}

func (f *Fabric) SetAreaPrice(ctx context.Context, v float64) error {
	return fabricAreaPrice.Set(ctx, f.Object, v)
}

// AreaWeight is computed by the server.
func (f *Fabric) AreaWeight(ctx context.Context) (float64, error) {
	return fabricAreaWeight.Get(ctx, f.Object)
}

func (f *Fabric) IgnoreForPostprocessing(ctx context.Context) (bool, error) {
	return fabricIgnorePost.Get(ctx, f.Object)
}

func (f *Fabric) SetIgnoreForPostprocessing(ctx context.Context, v bool) error {
	return fabricIgnorePost.Set(ctx, f.Object, v)
}

func (f *Fabric) DropOffMaterialHandling(ctx context.Context) (DropOffMaterialHandling, error) {
	return fabricDropOffHandling.Get(ctx, f.Object)
}

func (f *Fabric) SetDropOffMaterialHandling(ctx context.Context, v DropOffMaterialHandling) error {
	return fabricDropOffHandling.Set(ctx, f.Object, v)
}

// DropOffMaterial is used when the handling is DropOffCustom.
func (f *Fabric) DropOffMaterial(ctx context.Context) (*Material, error) {
	o, err := fabricDropOffMaterial.Get(ctx, f.Object)
	return linkedAs(o, err, AsMaterial)
}

func (f *Fabric) SetDropOffMaterial(ctx context.Context, m *Material) error {
	return fabricDropOffMaterial.Set(ctx, f.Object, m.object())
}

func (f *Fabric) CutOffMaterialHandling(ctx context.Context) (CutOffMaterialHandling, error) {
	return fabricCutOffHandling.Get(ctx, f.Object)
}

func (f *Fabric) SetCutOffMaterialHandling(ctx context.Context, v CutOffMaterialHandling) error {
	return fabricCutOffHandling.Set(ctx, f.Object, v)
}

// CutOffMaterial is used when the handling is CutOffCustom.
func (f *Fabric) CutOffMaterial(ctx context.Context) (*Material, error) {
	o, err := fabricCutOffMaterial.Get(ctx, f.Object)
	return linkedAs(o, err, AsMaterial)
}

func (f *Fabric) SetCutOffMaterial(ctx context.Context, m *Material) error {
	return fabricCutOffMaterial.Set(ctx, f.Object, m.object())
}

func (f *Fabric) DrapingUDCoefficient(ctx context.Context) (float64, error) {
	return fabricDrapingCoefficient.Get(ctx, f.Object)
}

func (f *Fabric) SetDrapingUDCoefficient(ctx context.Context, v float64) error {
	return fabricDrapingCoefficient.Set(ctx, f.Object, v)
}
