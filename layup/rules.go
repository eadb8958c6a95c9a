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

// SelectionRule is implemented by the selection rule kinds.
type SelectionRule interface {
	selectionRule() *tree.Object
}

func ruleObject(r SelectionRule) *tree.Object {
	if r == nil {
		return nil
	}
	return r.selectionRule()
}

func ruleObjects(rs []SelectionRule) []*tree.Object {
	out := make([]*tree.Object, len(rs))
	for i, r := range rs {
		out[i] = ruleObject(r)
	}
	return out
}

// AsSelectionRule wraps o in the proxy matching its kind, or returns nil
// if o is not a selection rule.
func AsSelectionRule(o *tree.Object) SelectionRule {
	if o == nil {
		return nil
	}
	switch o.Kind().Label {
	case LabelParallelSelectionRules:
		return AsParallelSelectionRule(o)
	case LabelBooleanSelectionRules:
		return AsBooleanSelectionRule(o)
	}
	return nil
}

var selectionRuleLabels = []string{LabelParallelSelectionRules, LabelBooleanSelectionRules}

// LinkedSelectionRule combines a selection rule with an operation.
type LinkedSelectionRule struct {
	Rule          SelectionRule
	OperationType BooleanOperationType
	TemplateRule  bool
	Parameter1    float64
	Parameter2    float64
}

func linkedSelectionRules(path string) tree.EdgeListField[LinkedSelectionRule] {
	return tree.EdgeList(path, "selection_rule",
		func(target *tree.Object, m protoreflect.Message) LinkedSelectionRule {
			fs := m.Descriptor().Fields()
			return LinkedSelectionRule{
				Rule:          AsSelectionRule(target),
				OperationType: BooleanOperationType(m.Get(fs.ByName("operation_type")).Enum()),
				TemplateRule:  m.Get(fs.ByName("template_rule")).Bool(),
				Parameter1:    m.Get(fs.ByName("parameter_1")).Float(),
				Parameter2:    m.Get(fs.ByName("parameter_2")).Float(),
			}
		},
		func(e LinkedSelectionRule, m protoreflect.Message) *tree.Object {
			fs := m.Descriptor().Fields()
			m.Set(fs.ByName("operation_type"), protoreflect.ValueOfEnum(protoreflect.EnumNumber(e.OperationType)))
			m.Set(fs.ByName("template_rule"), protoreflect.ValueOfBool(e.TemplateRule))
			m.Set(fs.ByName("parameter_1"), protoreflect.ValueOfFloat64(e.Parameter1))
			m.Set(fs.ByName("parameter_2"), protoreflect.ValueOfFloat64(e.Parameter2))
			return ruleObject(e.Rule)
		},
		selectionRuleLabels...,
	)
}

// ParallelSelectionRule selects the elements between two planes.
type ParallelSelectionRule struct{ *tree.Object }

// AsParallelSelectionRule wraps o.
func AsParallelSelectionRule(o *tree.Object) *ParallelSelectionRule {
	return &ParallelSelectionRule{o}
}

func (r *ParallelSelectionRule) selectionRule() *tree.Object {
	if r == nil {
		return nil
	}
	return r.Object
}

var (
	parallelStatus      = tree.Enum[Status]("properties.status")
	parallelUseGlobal   = tree.Bool("properties.use_global_coordinate_system")
	parallelRosette     = tree.Link("properties.rosette", LabelRosettes)
	parallelOrigin      = tree.Doubles("properties.origin")
	parallelDirection   = tree.Doubles("properties.direction")
	parallelLowerLimit  = tree.Double("properties.lower_limit")
	parallelUpperLimit  = tree.Double("properties.upper_limit")
	parallelRelative    = tree.Bool("properties.relative_rule_type")
	parallelIncludeRule = tree.Bool("properties.include_rule_type")
)

var (
	booleanStatus      = tree.Enum[Status]("properties.status")
	booleanRules       = linkedSelectionRules("properties.selection_rules")
	booleanIncludeRule = tree.Bool("properties.include_rule_type")
)

func (r *ParallelSelectionRule) Status(ctx context.Context) (Status, error) {
	return parallelStatus.Get(ctx, r.Object)
}

func (r *ParallelSelectionRule) UseGlobalCoordinateSystem(ctx context.Context) (bool, error) {
	return parallelUseGlobal.Get(ctx, r.Object)
}

func (r *ParallelSelectionRule) SetUseGlobalCoordinateSystem(ctx context.Context, v bool) error {
	return parallelUseGlobal.Set(ctx, r.Object, v)
}

// Rosette is only used when the global coordinate system is not.
func (r *ParallelSelectionRule) Rosette(ctx context.Context) (*Rosette, error) {
	o, err := parallelRosette.Get(ctx, r.Object)
	return linkedAs(o, err, AsRosette)
}

func (r *ParallelSelectionRule) SetRosette(ctx context.Context, ro *Rosette) error {
	return parallelRosette.Set(ctx, r.Object, ro.object())
}

func (r *ParallelSelectionRule) Origin(ctx context.Context) (Vector, error) {
	return vector(parallelOrigin.Get(ctx, r.Object))
}

func (r *ParallelSelectionRule) SetOrigin(ctx context.Context, v Vector) error {
	return parallelOrigin.Set(ctx, r.Object, v[:])
}

func (r *ParallelSelectionRule) Direction(ctx context.Context) (Vector, error) {
	return vector(parallelDirection.Get(ctx, r.Object))
}

func (r *ParallelSelectionRule) SetDirection(ctx context.Context, v Vector) error {
	return parallelDirection.Set(ctx, r.Object, v[:])
}

func (r *ParallelSelectionRule) LowerLimit(ctx context.Context) (float64, error) {
	return parallelLowerLimit.Get(ctx, r.Object)
}

func (r *ParallelSelectionRule) SetLowerLimit(ctx context.Context, v float64) error {
	return parallelLowerLimit.Set(ctx, r.Object, v)
}

func (r *ParallelSelectionRule) UpperLimit(ctx context.Context) (float64, error) {
	return parallelUpperLimit.Get(ctx, r.Object)
}

func (r *ParallelSelectionRule) SetUpperLimit(ctx context.Context, v float64) error {
	return parallelUpperLimit.Set(ctx, r.Object, v)
}

func (r *ParallelSelectionRule) RelativeRuleType(ctx context.Context) (bool, error) {
	return parallelRelative.Get(ctx, r.Object)
}

func (r *ParallelSelectionRule) SetRelativeRuleType(ctx context.Context, v bool) error {
	return parallelRelative.Set(ctx, r.Object, v)
}

func (r *ParallelSelectionRule) IncludeRuleType(ctx context.Context) (bool, error) {
	return parallelIncludeRule.Get(ctx, r.Object)
}

func (r *ParallelSelectionRule) SetIncludeRuleType(ctx context.Context, v bool) error {
	return parallelIncludeRule.Set(ctx, r.Object, v)
}

// BooleanSelectionRule combines other selection rules.
type BooleanSelectionRule struct{ *tree.Object }

// AsBooleanSelectionRule wraps o.
func AsBooleanSelectionRule(o *tree.Object) *BooleanSelectionRule {
	return &BooleanSelectionRule{o}
}

func (r *BooleanSelectionRule) selectionRule() *tree.Object {
	if r == nil {
		return nil
	}
	return r.Object
}

func (r *BooleanSelectionRule) Status(ctx context.Context) (Status, error) {
	return booleanStatus.Get(ctx, r.Object)
}

func (r *BooleanSelectionRule) SelectionRules(ctx context.Context) ([]LinkedSelectionRule, error) {
	return booleanRules.Get(ctx, r.Object)
}

func (r *BooleanSelectionRule) SetSelectionRules(ctx context.Context, rules []LinkedSelectionRule) error {
	return booleanRules.Set(ctx, r.Object, rules)
}

func (r *BooleanSelectionRule) AddSelectionRule(ctx context.Context, rule LinkedSelectionRule) error {
	return booleanRules.Append(ctx, r.Object, rule)
}

func (r *BooleanSelectionRule) IncludeRuleType(ctx context.Context) (bool, error) {
	return booleanIncludeRule.Get(ctx, r.Object)
}

func (r *BooleanSelectionRule) SetIncludeRuleType(ctx context.Context, v bool) error {
	return booleanIncludeRule.Set(ctx, r.Object, v)
}
