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
	"fmt"
	"strings"

	"dirpx.dev/acp/schema"
)

// enumDef ties the protocol names of an enum to the names returned by the
// String methods of its Go type. Go values equal protocol numbers.
type enumDef struct {
	proto  string
	prefix string
	names  []string
}

func (d enumDef) schema() schema.Enum {
	vs := make([]string, len(d.names))
	for i, n := range d.names {
		vs[i] = d.prefix + strings.ToUpper(n)
	}
	return schema.Enum{Name: d.proto, Values: vs}
}

func (d enumDef) name(v int32) string {
	if v >= 0 && int(v) < len(d.names) {
		return d.names[v]
	}
	return fmt.Sprintf("Unknown(%d)", v)
}

// Status reports whether the server has updated an object after changes.
type Status int32

const (
	StatusNotUpToDate Status = iota
	StatusUpToDate
)

var statusEnum = enumDef{proto: "StatusType", prefix: "STATUS_", names: []string{"notuptodate", "uptodate"}}

func (s Status) String() string { return statusEnum.name(int32(s)) }

// UnitSystem is the unit system of a model.
type UnitSystem int32

const (
	UnitSystemUndefined UnitSystem = iota
	UnitSystemSI
	UnitSystemMKS
	UnitSystemUMKS
	UnitSystemCGS
	UnitSystemMPA
	UnitSystemBFT
	UnitSystemBIN
)

var unitSystemEnum = enumDef{
	proto:  "UnitSystemType",
	prefix: "UNIT_SYSTEM_",
	names:  []string{"undefined", "si", "mks", "umks", "cgs", "mpa", "bft", "bin"},
}

func (u UnitSystem) String() string { return unitSystemEnum.name(int32(u)) }

// PlyType classifies a material.
type PlyType int32

const (
	PlyTypeUndefined PlyType = iota
	PlyTypeRegular
	PlyTypeWoven
	PlyTypeOrthotropicHomogeneousCore
	PlyTypeIsotropicHomogeneousCore
	PlyTypeHoneycombCore
	PlyTypeIsotropic
	PlyTypeAdhesive
)

var plyTypeEnum = enumDef{
	proto:  "PlyType",
	prefix: "PLY_TYPE_",
	names: []string{
		"undefined", "regular", "woven", "orthotropic_homogeneous_core",
		"isotropic_homogeneous_core", "honeycomb_core", "isotropic", "adhesive",
	},
}

func (p PlyType) String() string { return plyTypeEnum.name(int32(p)) }

// DropOffMaterialHandling selects the material used in drop-off regions.
type DropOffMaterialHandling int32

const (
	DropOffGlobal DropOffMaterialHandling = iota
	DropOffCustom
)

var dropOffEnum = enumDef{proto: "DropOffMaterialHandling", prefix: "DROP_OFF_", names: []string{"global", "custom"}}

func (d DropOffMaterialHandling) String() string { return dropOffEnum.name(int32(d)) }

// CutOffMaterialHandling selects the material used in cut-off regions.
type CutOffMaterialHandling int32

const (
	CutOffComputed CutOffMaterialHandling = iota
	CutOffCore
	CutOffCustom
)

var cutOffEnum = enumDef{proto: "CutOffMaterialHandling", prefix: "CUT_OFF_", names: []string{"computed", "core", "custom"}}

func (c CutOffMaterialHandling) String() string { return cutOffEnum.name(int32(c)) }

// SymmetryType is the symmetry of a stackup.
type SymmetryType int32

const (
	NoSymmetry SymmetryType = iota
	OddSymmetry
	EvenSymmetry
)

var symmetryEnum = enumDef{proto: "SymmetryType", prefix: "SYMMETRY_", names: []string{"no_symmetry", "odd_symmetry", "even_symmetry"}}

func (s SymmetryType) String() string { return symmetryEnum.name(int32(s)) }

// EdgeSetType selects how an edge set is defined.
type EdgeSetType int32

const (
	EdgeSetByReference EdgeSetType = iota
	EdgeSetByNodes
)

var edgeSetTypeEnum = enumDef{proto: "EdgeSetType", prefix: "EDGE_SET_", names: []string{"by_reference", "by_nodes"}}

func (e EdgeSetType) String() string { return edgeSetTypeEnum.name(int32(e)) }

// RosetteSelectionMethod selects the rosette of an oriented selection set
// when more than one is assigned.
type RosetteSelectionMethod int32

const (
	MinimumAngle RosetteSelectionMethod = iota
	MaximumAngle
	MinimumDistance
	MinimumDistanceSuperposed
	AngleSuperposed
)

var rosetteSelectionEnum = enumDef{
	proto:  "RosetteSelectionMethod",
	prefix: "ROSETTE_",
	names: []string{
		"minimum_angle", "maximum_angle", "minimum_distance",
		"minimum_distance_superposed", "angle_superposed",
	},
}

func (r RosetteSelectionMethod) String() string { return rosetteSelectionEnum.name(int32(r)) }

// BooleanOperationType combines a linked selection rule with the
// preceding rules.
type BooleanOperationType int32

const (
	Intersect BooleanOperationType = iota
	Add
	Remove
)

var booleanOperationEnum = enumDef{proto: "BooleanOperationType", prefix: "OPERATION_", names: []string{"intersect", "add", "remove"}}

func (b BooleanOperationType) String() string { return booleanOperationEnum.name(int32(b)) }

// ValueType is the shape of the values of a look-up table column.
type ValueType int32

const (
	ValueScalar ValueType = iota
	ValueDirection
)

var valueTypeEnum = enumDef{proto: "ValueType", prefix: "VALUE_TYPE_", names: []string{"scalar", "direction"}}

func (v ValueType) String() string { return valueTypeEnum.name(int32(v)) }

// PhysicalDimension is the dimension of the values of a look-up table
// column.
type PhysicalDimension int32

const (
	Dimensionless PhysicalDimension = iota
	Time
	Length
	Area
	Volume
	Mass
	Density
	Angle
	Temperature
)

var dimensionEnum = enumDef{
	proto:  "DimensionType",
	prefix: "DIMENSION_",
	names: []string{
		"dimensionless", "time", "length", "area", "volume",
		"mass", "density", "angle", "temperature",
	},
}

func (p PhysicalDimension) String() string { return dimensionEnum.name(int32(p)) }

// InterpolationAlgorithm selects how a 3D look-up table interpolates
// between its points.
type InterpolationAlgorithm int32

const (
	WeightedNearestNeighbor InterpolationAlgorithm = iota
	LinearMultivariate
)

var interpolationEnum = enumDef{
	proto:  "InterpolationAlgorithm",
	prefix: "INTERPOLATION_",
	names:  []string{"weighted_nearest_neighbor", "linear_multivariate"},
}

func (a InterpolationAlgorithm) String() string { return interpolationEnum.name(int32(a)) }

// ExtrusionMethod selects how plies are bundled into the layered solid
// elements of a solid model.
type ExtrusionMethod int32

const (
	ExtrusionAnalysisPlyWise ExtrusionMethod = iota
	ExtrusionMonolithic
	ExtrusionMaterialWise
	ExtrusionProductionPlyWise
	ExtrusionSandwichWise
	ExtrusionSpecifyThickness
	ExtrusionUserDefined
)

var extrusionEnum = enumDef{
	proto:  "ExtrusionMethod",
	prefix: "EXTRUSION_",
	names: []string{
		"analysis_ply_wise", "monolithic", "material_wise", "production_ply_wise",
		"sandwich_wise", "specify_thickness", "user_defined",
	},
}

func (e ExtrusionMethod) String() string { return extrusionEnum.name(int32(e)) }

// OffsetDirection is the extrusion direction of a solid model.
type OffsetDirection int32

const (
	ShellNormal OffsetDirection = iota
	SurfaceNormal
)

var offsetDirectionEnum = enumDef{proto: "OffsetDirectionType", prefix: "OFFSET_", names: []string{"shell_normal", "surface_normal"}}

func (o OffsetDirection) String() string { return offsetDirectionEnum.name(int32(o)) }
