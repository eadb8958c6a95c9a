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

// Package layup provides typed proxies for the composite layup objects of
// an ACP model: materials, fabrics, stackups, element and edge sets,
// rosettes, look-up tables, selection rules, oriented selection sets,
// modeling plies and solid models.
//
// Importing the package registers every kind with the global registry of
// package acp. Each proxy embeds a *tree.Object, so generic operations
// (Clone, Store, Delete, Children) are available on all of them:
//
//	model, err := client.CreateModel(ctx, "plate")
//	steel, err := model.CreateMaterial(ctx, "Steel")
//	fabric, err := model.CreateFabric(ctx, "UD", func(f *layup.Fabric) error {
//	    return f.SetMaterial(ctx, steel)
//	})
package layup

import (
	"context"
	"fmt"

	"dirpx.dev/acp"
	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/schema"
	"dirpx.dev/acp/tree"
)

// Collection labels.
const (
	LabelModels                 = "models"
	LabelMaterials              = "materials"
	LabelFabrics                = "fabrics"
	LabelStackups               = "stackups"
	LabelElementSets            = "element_sets"
	LabelEdgeSets               = "edge_sets"
	LabelRosettes               = "rosettes"
	LabelLookUpTables1D         = "lookup_tables_1d"
	LabelLookUpTable1DColumns   = "lookup_table_1d_columns"
	LabelLookUpTables3D         = "lookup_tables_3d"
	LabelLookUpTable3DColumns   = "lookup_table_3d_columns"
	LabelParallelSelectionRules = "parallel_selection_rules"
	LabelBooleanSelectionRules  = "boolean_selection_rules"
	LabelOrientedSelectionSets  = "oriented_selection_sets"
	LabelModelingGroups         = "modeling_groups"
	LabelModelingPlies          = "modeling_plies"
	LabelProductionPlies        = "production_plies"
	LabelSolidModels            = "solid_models"
)

var catalog = schema.MustCompile(specs()...)

func init() {
	if err := acp.RegisterCatalog(catalog); err != nil {
		panic(fmt.Sprintf("layup: register kinds: %v", err))
	}
}

// Catalog returns the compiled kinds of the package.
func Catalog() *schema.Catalog { return catalog }

// Kind returns the kind registered for label. It panics for labels not
// defined by this package.
func Kind(label string) *apis.Kind {
	k, ok := catalog.Kind(label)
	if !ok {
		panic("layup: unknown label " + label)
	}
	return k
}

// Collection is a typed view of a child collection.
type Collection[T any] struct {
	*tree.Mapping
	wrap func(*tree.Object) T
}

func collection[T any](o *tree.Object, label string, wrap func(*tree.Object) T) (Collection[T], error) {
	m, err := o.Collection(label)
	if err != nil {
		return Collection[T]{}, err
	}
	return Collection[T]{Mapping: m, wrap: wrap}, nil
}

// Get returns the object with the given id.
func (c Collection[T]) Get(ctx context.Context, id string) (T, error) {
	o, err := c.Mapping.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.wrap(o), nil
}

// Values returns all objects in server order.
func (c Collection[T]) Values(ctx context.Context) ([]T, error) {
	objs, err := c.Mapping.Values(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(objs))
	for i, o := range objs {
		out[i] = c.wrap(o)
	}
	return out, nil
}

// Create stores a new object. init runs on the unstored object, so
// property setters do not issue remote calls.
func (c Collection[T]) Create(ctx context.Context, name string, init ...func(T) error) (T, error) {
	o, err := c.Mapping.Create(ctx, name, func(o *tree.Object) error {
		w := c.wrap(o)
		for _, fn := range init {
			if err := fn(w); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return c.wrap(o), nil
}

func create[T any](ctx context.Context, parent *tree.Object, label, name string, wrap func(*tree.Object) T, init []func(T) error) (T, error) {
	c, err := collection(parent, label, wrap)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Create(ctx, name, init...)
}

// Vector is a point or direction in model coordinates.
type Vector [3]float64

func vector(vs []float64, err error) (Vector, error) {
	var v Vector
	if err != nil {
		return v, err
	}
	if len(vs) != 0 && len(vs) != len(v) {
		return v, fmt.Errorf("layup: expected %d components, got %d", len(v), len(vs))
	}
	copy(v[:], vs)
	return v, nil
}

func linkedAs[T any](o *tree.Object, err error, wrap func(*tree.Object) T) (T, error) {
	var zero T
	if err != nil || o == nil {
		return zero, err
	}
	return wrap(o), nil
}

func linkedAll[T any](objs []*tree.Object, err error, wrap func(*tree.Object) T) ([]T, error) {
	if err != nil {
		return nil, err
	}
	out := make([]T, len(objs))
	for i, o := range objs {
		out[i] = wrap(o)
	}
	return out, nil
}

func objects[T interface{ object() *tree.Object }](ts []T) []*tree.Object {
	out := make([]*tree.Object, len(ts))
	for i, t := range ts {
		out[i] = t.object()
	}
	return out
}
