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

package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"dirpx.dev/acp/schema"
)

func fabricSpec() schema.Spec {
	return schema.Spec{
		Label:   "fabrics",
		Name:    "Fabric",
		Package: "fabric",
		Enums: []schema.Enum{
			{Name: "CutOffMaterialHandling", Values: []string{"COMPUTED", "CUSTOM"}},
		},
		Messages: []schema.Message{{
			Name:   "Edge",
			Fields: []schema.Field{schema.Link("target", 1), schema.Double("angle", 2)},
		}},
		Properties: []schema.Field{
			schema.Double("thickness", 2),
			schema.Link("material", 1),
			schema.EnumOf("cut_off_material_handling", 3, "CutOffMaterialHandling"),
			schema.Repeated(schema.MessageOf("edges", 4, "Edge")),
		},
		Creatable:   true,
		DefaultName: "Fabric",
	}
}

func TestCompile_Kind(t *testing.T) {
	cat, err := schema.Compile(fabricSpec())
	require.NoError(t, err)

	k, ok := cat.Kind("fabrics")
	require.True(t, ok)
	require.Equal(t, "ansys.api.acp.v0.fabric", k.Package)
	require.Equal(t, "/ansys.api.acp.v0.fabric.ObjectService/Get", k.Method("Get"))
	require.NotNil(t, k.CreateRequest)
	require.Equal(t, protoreflect.FullName("ansys.api.acp.v0.fabric.ObjectInfo"), k.ObjectInfo.FullName())

	// Fields are laid out by number.
	props := k.Properties.Fields()
	require.Equal(t, protoreflect.Name("material"), props.Get(0).Name())
	require.True(t, schema.IsResourcePath(props.ByName("material").Message()))
	require.True(t, props.ByName("edges").IsList())
	require.Equal(t, protoreflect.EnumKind, props.ByName("cut_off_material_handling").Kind())

	svc := k.ObjectInfo.ParentFile().Services().ByName("ObjectService")
	require.NotNil(t, svc)
	require.Equal(t, 5, svc.Methods().Len())
}

func TestCompile_ReadOnlyServiceHasNoWrites(t *testing.T) {
	cat, err := schema.Compile(schema.Spec{
		Label: "production_plies", Name: "ProductionPly", Package: "production_ply",
		Properties: []schema.Field{schema.Link("material", 1)},
		ReadOnly:   true,
	})
	require.NoError(t, err)
	k, _ := cat.Kind("production_plies")
	require.Nil(t, k.CreateRequest)
	svc := k.ObjectInfo.ParentFile().Services().ByName("ObjectService")
	require.Nil(t, svc.Methods().ByName("Put"))
	require.Nil(t, svc.Methods().ByName("Create"))
}

func TestCompile_Errors(t *testing.T) {
	_, err := schema.Compile(fabricSpec(), fabricSpec())
	require.True(t, errors.Is(err, schema.ErrDuplicateLabel), "got %v", err)

	bad := fabricSpec()
	bad.Properties = append(bad.Properties, schema.MessageOf("nope", 9, "Missing"))
	_, err = schema.Compile(bad)
	require.True(t, errors.Is(err, schema.ErrInvalidSpec), "got %v", err)

	_, err = schema.Compile(schema.Spec{Label: "x"})
	require.True(t, errors.Is(err, schema.ErrInvalidSpec), "got %v", err)

	noValues := fabricSpec()
	noValues.Enums = append(noValues.Enums, schema.Enum{Name: "Empty"})
	_, err = schema.Compile(noValues)
	require.True(t, errors.Is(err, schema.ErrInvalidSpec), "got %v", err)
}

func TestInfoRoundTrip(t *testing.T) {
	cat := schema.MustCompile(fabricSpec())
	k, _ := cat.Kind("fabrics")
	info := dynamicpb.NewMessage(k.ObjectInfo)

	want := schema.BasicInfo{Name: "Fabric", ID: "Fabric.1", ResourcePath: "models/m/fabrics/Fabric.1", Version: "v1"}
	schema.WriteInfo(info, want)
	require.Equal(t, want, schema.ReadInfo(info))

	schema.SetInfoName(info, "Renamed")
	require.Equal(t, "Renamed", schema.ReadInfo(info).Name)

	schema.WriteInfo(info, schema.BasicInfo{Name: "Fabric"})
	require.Equal(t, "", schema.ReadInfo(info).ResourcePath)
}

func TestPathMessages(t *testing.T) {
	rp := schema.NewResourcePath("models/m")
	require.True(t, schema.IsResourcePath(rp.Descriptor()))
	require.Equal(t, "models/m", schema.PathValue(rp))

	cp := schema.NewCollectionPath("models/m/fabrics")
	require.True(t, schema.IsCollectionPath(cp.Descriptor()))
	require.True(t, schema.IsPath(cp.Descriptor()))
	require.False(t, schema.IsPath(schema.Base().BasicInfo))
}
