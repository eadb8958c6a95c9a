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

	"dirpx.dev/acp/schema"
	"dirpx.dev/acp/tree"
)

// Material holds the material properties used by fabrics and stackups.
type Material struct{ *tree.Object }

// NewMaterial returns an unstored material.
func NewMaterial(name string) *Material { return AsMaterial(tree.New(Kind(LabelMaterials), name)) }

// AsMaterial wraps o.
func AsMaterial(o *tree.Object) *Material { return &Material{o} }

func (m *Material) object() *tree.Object {
	if m == nil {
		return nil
	}
	return m.Object
}

// EngineeringConstants are the orthotropic elastic constants of a
// material.
type EngineeringConstants struct {
	E1, E2, E3       float64
	G12, G23, G31    float64
	Nu12, Nu13, Nu23 float64
}

var engNames = [...]protoreflect.Name{"e1", "e2", "e3", "g12", "g23", "g31", "nu12", "nu13", "nu23"}

var (
	materialStatus  = tree.Enum[Status]("properties.status")
	materialLocked  = tree.Bool("properties.locked")
	materialExtID   = tree.String("properties.ext_id")
	materialPlyType = tree.Enum[PlyType]("properties.ply_type")
	materialDensity = tree.Double("properties.density")
)

func (m *Material) Status(ctx context.Context) (Status, error) {
	return materialStatus.Get(ctx, m.Object)
}

// Locked reports whether the material is owned by an external source.
func (m *Material) Locked(ctx context.Context) (bool, error) {
	return materialLocked.Get(ctx, m.Object)
}

func (m *Material) ExtID(ctx context.Context) (string, error) {
	return materialExtID.Get(ctx, m.Object)
}

func (m *Material) PlyType(ctx context.Context) (PlyType, error) {
	return materialPlyType.Get(ctx, m.Object)
}

func (m *Material) SetPlyType(ctx context.Context, v PlyType) error {
	return materialPlyType.Set(ctx, m.Object, v)
}

func (m *Material) Density(ctx context.Context) (float64, error) {
	return materialDensity.Get(ctx, m.Object)
}

func (m *Material) SetDensity(ctx context.Context, v float64) error {
	return materialDensity.Set(ctx, m.Object, v)
}

func (e *EngineeringConstants) fields() [9]*float64 {
	return [9]*float64{&e.E1, &e.E2, &e.E3, &e.G12, &e.G23, &e.G31, &e.Nu12, &e.Nu13, &e.Nu23}
}

func (m *Material) EngineeringConstants(ctx context.Context) (EngineeringConstants, error) {
	var ec EngineeringConstants
	info, err := m.Load(ctx)
	if err != nil {
		return ec, err
	}
	props := schema.Props(info)
	em := props.Get(props.Descriptor().Fields().ByName("engineering_constants")).Message()
	for i, p := range ec.fields() {
		*p = em.Get(em.Descriptor().Fields().ByName(engNames[i])).Float()
	}
	return ec, nil
}

// SetEngineeringConstants writes all constants with a single update.
func (m *Material) SetEngineeringConstants(ctx context.Context, ec EngineeringConstants) error {
	return m.Update(ctx, func(info protoreflect.Message) error {
		props := schema.Props(info)
		em := props.Mutable(props.Descriptor().Fields().ByName("engineering_constants")).Message()
		for i, p := range ec.fields() {
			em.Set(em.Descriptor().Fields().ByName(engNames[i]), protoreflect.ValueOfFloat64(*p))
		}
		return nil
	})
}
