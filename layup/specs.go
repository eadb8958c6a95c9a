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
	"dirpx.dev/acp/schema"
)

const (
	supportedSince   = "24.2"
	solidModelsSince = "25.1"
)

// Helper messages shared by several kinds.
const (
	msgEngineeringConstants = "EngineeringConstants"
	msgFabricWithAngle      = "FabricWithAngle"
	msgLinkedSelectionRule  = "LinkedSelectionRule"
	msgDropOffSettings      = "DropOffSettings"
)

func lookUpTableColumn(label, name, pkg string) schema.Spec {
	return schema.Spec{
		Label:   label,
		Name:    name,
		Package: pkg,
		Properties: []schema.Field{
			schema.EnumOf("value_type", 1, valueTypeEnum.proto),
			schema.EnumOf("dimension_type", 2, dimensionEnum.proto),
			schema.Repeated(schema.Double("data", 3)),
		},
		Enums:          []schema.Enum{valueTypeEnum.schema(), dimensionEnum.schema()},
		Creatable:      true,
		SupportedSince: supportedSince,
		DefaultName:    name,
	}
}

func status() schema.Field { return schema.EnumOf("status", 1, statusEnum.proto) }

var linkedSelectionRule = schema.Message{
	Name: msgLinkedSelectionRule,
	Fields: []schema.Field{
		schema.Link("selection_rule", 1),
		schema.EnumOf("operation_type", 2, booleanOperationEnum.proto),
		schema.Bool("template_rule", 3),
		schema.Double("parameter_1", 4),
		schema.Double("parameter_2", 5),
	},
}

func specs() []schema.Spec {
	return []schema.Spec{
		{
			Label:   LabelModels,
			Name:    "Model",
			Package: "model",
			Properties: []schema.Field{
				schema.Bool("use_nodal_thicknesses", 1),
				schema.Bool("draping_offset_correction", 2),
				schema.Double("angle_tolerance", 3),
				schema.Double("relative_thickness_tolerance", 4),
				schema.Double("minimum_analysis_ply_thickness", 5),
				schema.EnumOf("unit_system", 6, unitSystemEnum.proto),
			},
			Enums: []schema.Enum{unitSystemEnum.schema()},
			Children: []string{
				LabelMaterials, LabelFabrics, LabelStackups,
				LabelElementSets, LabelEdgeSets, LabelRosettes,
				LabelLookUpTables1D, LabelLookUpTables3D,
				LabelParallelSelectionRules, LabelBooleanSelectionRules,
				LabelOrientedSelectionSets, LabelModelingGroups,
				LabelSolidModels,
			},
			Creatable:   true,
			DefaultName: "ACP Model",
		},
		{
			Label:   LabelMaterials,
			Name:    "Material",
			Package: "material",
			Properties: []schema.Field{
				status(),
				schema.Bool("locked", 2),
				schema.String("ext_id", 3),
				schema.EnumOf("ply_type", 4, plyTypeEnum.proto),
				schema.Double("density", 5),
				schema.MessageOf("engineering_constants", 6, msgEngineeringConstants),
			},
			Messages: []schema.Message{{
				Name: msgEngineeringConstants,
				Fields: []schema.Field{
					schema.Double("e1", 1), schema.Double("e2", 2), schema.Double("e3", 3),
					schema.Double("g12", 4), schema.Double("g23", 5), schema.Double("g31", 6),
					schema.Double("nu12", 7), schema.Double("nu13", 8), schema.Double("nu23", 9),
				},
			}},
			Enums:          []schema.Enum{statusEnum.schema(), plyTypeEnum.schema()},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "Material",
		},
		{
			Label:   LabelFabrics,
			Name:    "Fabric",
			Package: "fabric",
			Properties: []schema.Field{
				status(),
				schema.Link("material", 2),
				schema.Double("thickness", 3),
				schema.Double("area_price", 4),
				schema.Double("area_weight", 5),
				schema.Bool("ignore_for_postprocessing", 6),
				schema.EnumOf("drop_off_material_handling", 7, dropOffEnum.proto),
				schema.Link("drop_off_material", 8),
				schema.EnumOf("cut_off_material_handling", 9, cutOffEnum.proto),
				schema.Link("cut_off_material", 10),
				schema.Double("draping_ud_coefficient", 11),
			},
			Enums:          []schema.Enum{statusEnum.schema(), dropOffEnum.schema(), cutOffEnum.schema()},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "Fabric",
		},
		{
			Label:   LabelStackups,
			Name:    "Stackup",
			Package: "stackup",
			Properties: []schema.Field{
				status(),
				schema.Bool("locked", 2),
				schema.Double("thickness", 3),
				schema.Double("area_weight", 4),
				schema.Double("area_price", 5),
				schema.EnumOf("symmetry", 6, symmetryEnum.proto),
				schema.Bool("topdown", 7),
				schema.Repeated(schema.MessageOf("fabrics", 8, msgFabricWithAngle)),
				schema.Link("drop_off_material", 9),
				schema.Link("cut_off_material", 10),
			},
			Messages: []schema.Message{{
				Name: msgFabricWithAngle,
				Fields: []schema.Field{
					schema.Link("fabric", 1),
					schema.Double("angle", 2),
				},
			}},
			Enums:          []schema.Enum{statusEnum.schema(), symmetryEnum.schema()},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "Stackup",
		},
		{
			Label:   LabelElementSets,
			Name:    "ElementSet",
			Package: "element_set",
			Properties: []schema.Field{
				status(),
				schema.Bool("locked", 2),
				schema.Bool("middle_offset", 3),
				schema.Repeated(schema.Int32("element_labels", 4)),
			},
			Enums:          []schema.Enum{statusEnum.schema()},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "ElementSet",
		},
		{
			Label:   LabelEdgeSets,
			Name:    "EdgeSet",
			Package: "edge_set",
			Properties: []schema.Field{
				status(),
				schema.Bool("locked", 2),
				schema.EnumOf("edge_set_type", 3, edgeSetTypeEnum.proto),
				schema.Repeated(schema.Int32("defining_node_labels", 4)),
				schema.Link("element_set", 5),
				schema.Double("limit_angle", 6),
				schema.Repeated(schema.Double("origin", 7)),
			},
			Enums:          []schema.Enum{statusEnum.schema(), edgeSetTypeEnum.schema()},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "EdgeSet",
		},
		{
			Label:   LabelRosettes,
			Name:    "Rosette",
			Package: "rosette",
			Properties: []schema.Field{
				status(),
				schema.Bool("locked", 2),
				schema.Repeated(schema.Double("origin", 3)),
				schema.Repeated(schema.Double("dir1", 4)),
				schema.Repeated(schema.Double("dir2", 5)),
			},
			Enums:       []schema.Enum{statusEnum.schema()},
			Creatable:   true,
			DefaultName: "Rosette",
		},
		{
			Label:   LabelLookUpTables1D,
			Name:    "LookUpTable1D",
			Package: "lookup_table_1d",
			Properties: []schema.Field{
				status(),
				schema.Repeated(schema.Double("origin", 2)),
				schema.Repeated(schema.Double("direction", 3)),
			},
			Enums:          []schema.Enum{statusEnum.schema()},
			Children:       []string{LabelLookUpTable1DColumns},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "LookUpTable1D",
		},
		lookUpTableColumn(LabelLookUpTable1DColumns, "LookUpTable1DColumn", "lookup_table_1d_column"),
		{
			Label:   LabelLookUpTables3D,
			Name:    "LookUpTable3D",
			Package: "lookup_table_3d",
			Properties: []schema.Field{
				status(),
				schema.EnumOf("interpolation_algorithm", 2, interpolationEnum.proto),
				schema.Bool("use_default_search_radius", 3),
				schema.Double("search_radius", 4),
				schema.Int32("num_min_neighbors", 5),
			},
			Enums:          []schema.Enum{statusEnum.schema(), interpolationEnum.schema()},
			Children:       []string{LabelLookUpTable3DColumns},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "LookUpTable3D",
		},
		lookUpTableColumn(LabelLookUpTable3DColumns, "LookUpTable3DColumn", "lookup_table_3d_column"),
		{
			Label:   LabelParallelSelectionRules,
			Name:    "ParallelSelectionRule",
			Package: "parallel_selection_rule",
			Properties: []schema.Field{
				status(),
				schema.Bool("use_global_coordinate_system", 2),
				schema.Link("rosette", 3),
				schema.Repeated(schema.Double("origin", 4)),
				schema.Repeated(schema.Double("direction", 5)),
				schema.Double("lower_limit", 6),
				schema.Double("upper_limit", 7),
				schema.Bool("relative_rule_type", 8),
				schema.Bool("include_rule_type", 9),
			},
			Enums:          []schema.Enum{statusEnum.schema()},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "ParallelSelectionRule",
		},
		{
			Label:   LabelBooleanSelectionRules,
			Name:    "BooleanSelectionRule",
			Package: "boolean_selection_rule",
			Properties: []schema.Field{
				status(),
				schema.Repeated(schema.MessageOf("selection_rules", 2, msgLinkedSelectionRule)),
				schema.Bool("include_rule_type", 3),
			},
			Messages:       []schema.Message{linkedSelectionRule},
			Enums:          []schema.Enum{statusEnum.schema(), booleanOperationEnum.schema()},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "BooleanSelectionRule",
		},
		{
			Label:   LabelOrientedSelectionSets,
			Name:    "OrientedSelectionSet",
			Package: "oriented_selection_set",
			Properties: []schema.Field{
				status(),
				schema.Repeated(schema.Link("element_sets", 2)),
				schema.Repeated(schema.Double("orientation_point", 3)),
				schema.Repeated(schema.Double("orientation_direction", 4)),
				schema.Repeated(schema.Link("rosettes", 5)),
				schema.EnumOf("rosette_selection_method", 6, rosetteSelectionEnum.proto),
				schema.Bool("draping", 7),
				schema.Double("rotation_angle", 8),
				schema.Repeated(schema.Link("selection_rules", 9)),
			},
			Enums:          []schema.Enum{statusEnum.schema(), rosetteSelectionEnum.schema()},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "OrientedSelectionSet",
		},
		{
			Label:       LabelModelingGroups,
			Name:        "ModelingGroup",
			Package:     "modeling_group",
			Children:    []string{LabelModelingPlies},
			Creatable:   true,
			DefaultName: "ModelingGroup",
		},
		{
			Label:   LabelModelingPlies,
			Name:    "ModelingPly",
			Package: "modeling_ply",
			Properties: []schema.Field{
				status(),
				schema.Link("ply_material", 2),
				schema.Repeated(schema.Link("oriented_selection_sets", 3)),
				schema.Double("ply_angle", 4),
				schema.Int32("number_of_layers", 5),
				schema.Bool("active", 6),
				schema.Int32("global_ply_nr", 7),
				schema.Repeated(schema.MessageOf("selection_rules", 8, msgLinkedSelectionRule)),
				schema.Link("thickness_field", 9),
				schema.Link("draping_angle_1_field", 10),
			},
			Messages:       []schema.Message{linkedSelectionRule},
			Enums:          []schema.Enum{statusEnum.schema(), booleanOperationEnum.schema()},
			Children:       []string{LabelProductionPlies},
			Creatable:      true,
			SupportedSince: supportedSince,
			DefaultName:    "ModelingPly",
		},
		{
			Label:   LabelProductionPlies,
			Name:    "ProductionPly",
			Package: "production_ply",
			Properties: []schema.Field{
				status(),
				schema.Link("material", 2),
				schema.Double("angle", 3),
				schema.Double("thickness", 4),
			},
			Enums:          []schema.Enum{statusEnum.schema()},
			ReadOnly:       true,
			SupportedSince: supportedSince,
		},
		{
			Label:   LabelSolidModels,
			Name:    "SolidModel",
			Package: "solid_model",
			Properties: []schema.Field{
				status(),
				schema.Bool("locked", 2),
				schema.Bool("active", 3),
				schema.Repeated(schema.Link("element_sets", 4)),
				schema.EnumOf("extrusion_method", 5, extrusionEnum.proto),
				schema.Double("max_element_thickness", 6),
				schema.Repeated(schema.Link("ply_group_pointers", 7)),
				schema.EnumOf("offset_direction", 8, offsetDirectionEnum.proto),
				schema.Bool("skip_elements_without_plies", 9),
				schema.Link("drop_off_material", 10),
				schema.Link("cut_off_material", 11),
				schema.Bool("delete_bad_elements", 12),
				schema.Double("warping_limit", 13),
				schema.Double("minimum_volume", 14),
				schema.MessageOf("drop_off_settings", 15, msgDropOffSettings),
			},
			Messages: []schema.Message{{
				Name: msgDropOffSettings,
				Fields: []schema.Field{
					schema.Bool("disable_drop_offs_on_bottom", 1),
					schema.Bool("disable_drop_offs_on_top", 2),
					schema.Bool("connect_butt_joined_plies", 3),
				},
			}},
			Enums:          []schema.Enum{statusEnum.schema(), extrusionEnum.schema(), offsetDirectionEnum.schema()},
			Creatable:      true,
			SupportedSince: solidModelsSince,
			DefaultName:    "SolidModel",
		},
	}
}
