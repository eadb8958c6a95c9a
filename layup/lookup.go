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
	"errors"
	"fmt"

	"dirpx.dev/acp/recursive"
	"dirpx.dev/acp/tree"
)

// LocationColumn is the name of the column the server creates with every
// look-up table. It holds the positions of the table rows.
const LocationColumn = "Location"

// columnLabels maps table collections to their column collections.
var columnLabels = map[string]string{
	LabelLookUpTables1D: LabelLookUpTable1DColumns,
	LabelLookUpTables3D: LabelLookUpTable3DColumns,
}

func init() {
	for table, columns := range columnLabels {
		recursive.RegisterHook(columns, recursive.Hook{Skip: isLocationColumn})
		recursive.RegisterHook(table, recursive.Hook{AfterStore: copyLocation})
	}
}

// LookUpTableColumn is a column of a LookUpTable1D or a LookUpTable3D.
type LookUpTableColumn interface {
	ResourcePath() string
	Data(ctx context.Context) ([]float64, error)
	object() *tree.Object
}

func asColumn(o *tree.Object, err error) (LookUpTableColumn, error) {
	if err != nil || o == nil {
		return nil, err
	}
	switch o.Kind().Label {
	case LabelLookUpTable1DColumns:
		return AsLookUpTable1DColumn(o), nil
	case LabelLookUpTable3DColumns:
		return AsLookUpTable3DColumn(o), nil
	}
	return nil, fmt.Errorf("%w: look-up table column %s", tree.ErrWrongKind, o)
}

func columnObject(c LookUpTableColumn) *tree.Object {
	if c == nil {
		return nil
	}
	return c.object()
}

var (
	lutStatus    = tree.Enum[Status]("properties.status")
	lutOrigin    = tree.Doubles("properties.origin")
	lutDirection = tree.Doubles("properties.direction")
)

// LookUpTable1D maps positions along a line to column values.
type LookUpTable1D struct{ *tree.Object }

// AsLookUpTable1D wraps o.
func AsLookUpTable1D(o *tree.Object) *LookUpTable1D { return &LookUpTable1D{o} }

func (t *LookUpTable1D) object() *tree.Object {
	if t == nil {
		return nil
	}
	return t.Object
}

func (t *LookUpTable1D) Status(ctx context.Context) (Status, error) {
	return lutStatus.Get(ctx, t.Object)
}

func (t *LookUpTable1D) Origin(ctx context.Context) (Vector, error) {
	return vector(lutOrigin.Get(ctx, t.Object))
}

func (t *LookUpTable1D) SetOrigin(ctx context.Context, v Vector) error {
	return lutOrigin.Set(ctx, t.Object, v[:])
}

func (t *LookUpTable1D) Direction(ctx context.Context) (Vector, error) {
	return vector(lutDirection.Get(ctx, t.Object))
}

func (t *LookUpTable1D) SetDirection(ctx context.Context, v Vector) error {
	return lutDirection.Set(ctx, t.Object, v[:])
}

func (t *LookUpTable1D) Columns() (Collection[*LookUpTable1DColumn], error) {
	return collection(t.Object, LabelLookUpTable1DColumns, AsLookUpTable1DColumn)
}

func (t *LookUpTable1D) CreateColumn(ctx context.Context, name string, init ...func(*LookUpTable1DColumn) error) (*LookUpTable1DColumn, error) {
	return create(ctx, t.Object, LabelLookUpTable1DColumns, name, AsLookUpTable1DColumn, init)
}

// Location returns the location column of the table.
func (t *LookUpTable1D) Location(ctx context.Context) (*LookUpTable1DColumn, error) {
	o, err := locationOf(ctx, t.Object)
	if err != nil {
		return nil, err
	}
	return AsLookUpTable1DColumn(o), nil
}

var (
	lut3DInterpolation = tree.Enum[InterpolationAlgorithm]("properties.interpolation_algorithm")
	lut3DDefaultRadius = tree.Bool("properties.use_default_search_radius")
	lut3DSearchRadius  = tree.Double("properties.search_radius")
	lut3DMinNeighbors  = tree.Int32("properties.num_min_neighbors")
)

// LookUpTable3D maps points in space to column values. Its location
// column holds three coordinates per row.
type LookUpTable3D struct{ *tree.Object }

// NewLookUpTable3D returns an unstored table that estimates its search
// radius and interpolates from at least one neighbor.
func NewLookUpTable3D(name string) *LookUpTable3D {
	t := AsLookUpTable3D(tree.New(Kind(LabelLookUpTables3D), name))
	// Local updates of unstored objects cannot fail.
	_ = lookUpTable3DDefaults(t)
	return t
}

func lookUpTable3DDefaults(t *LookUpTable3D) error {
	if err := lut3DDefaultRadius.Set(context.Background(), t.Object, true); err != nil {
		return err
	}
	return lut3DMinNeighbors.Set(context.Background(), t.Object, 1)
}

// AsLookUpTable3D wraps o.
func AsLookUpTable3D(o *tree.Object) *LookUpTable3D { return &LookUpTable3D{o} }

func (t *LookUpTable3D) object() *tree.Object {
	if t == nil {
		return nil
	}
	return t.Object
}

func (t *LookUpTable3D) Status(ctx context.Context) (Status, error) {
	return lutStatus.Get(ctx, t.Object)
}

func (t *LookUpTable3D) InterpolationAlgorithm(ctx context.Context) (InterpolationAlgorithm, error) {
	return lut3DInterpolation.Get(ctx, t.Object)
}

func (t *LookUpTable3D) SetInterpolationAlgorithm(ctx context.Context, v InterpolationAlgorithm) error {
	return lut3DInterpolation.Set(ctx, t.Object, v)
}

// UseDefaultSearchRadius reports whether the server estimates the search
// radius of the weighted nearest neighbor interpolation.
func (t *LookUpTable3D) UseDefaultSearchRadius(ctx context.Context) (bool, error) {
	return lut3DDefaultRadius.Get(ctx, t.Object)
}

func (t *LookUpTable3D) SetUseDefaultSearchRadius(ctx context.Context, v bool) error {
	return lut3DDefaultRadius.Set(ctx, t.Object, v)
}

func (t *LookUpTable3D) SearchRadius(ctx context.Context) (float64, error) {
	return lut3DSearchRadius.Get(ctx, t.Object)
}

func (t *LookUpTable3D) SetSearchRadius(ctx context.Context, v float64) error {
	return lut3DSearchRadius.Set(ctx, t.Object, v)
}

func (t *LookUpTable3D) MinNeighbors(ctx context.Context) (int32, error) {
	return lut3DMinNeighbors.Get(ctx, t.Object)
}

func (t *LookUpTable3D) SetMinNeighbors(ctx context.Context, v int32) error {
	return lut3DMinNeighbors.Set(ctx, t.Object, v)
}

func (t *LookUpTable3D) Columns() (Collection[*LookUpTable3DColumn], error) {
	return collection(t.Object, LabelLookUpTable3DColumns, AsLookUpTable3DColumn)
}

func (t *LookUpTable3D) CreateColumn(ctx context.Context, name string, init ...func(*LookUpTable3DColumn) error) (*LookUpTable3DColumn, error) {
	return create(ctx, t.Object, LabelLookUpTable3DColumns, name, AsLookUpTable3DColumn, init)
}

// Location returns the location column of the table.
func (t *LookUpTable3D) Location(ctx context.Context) (*LookUpTable3DColumn, error) {
	o, err := locationOf(ctx, t.Object)
	if err != nil {
		return nil, err
	}
	return AsLookUpTable3DColumn(o), nil
}

func locationOf(ctx context.Context, table *tree.Object) (*tree.Object, error) {
	label, ok := columnLabels[table.Kind().Label]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a look-up table", tree.ErrWrongKind, table)
	}
	cols, err := table.Collection(label)
	if err != nil {
		return nil, err
	}
	objs, err := cols.Values(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range objs {
		if o.Name() == LocationColumn {
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s column in %s", tree.ErrNotFound, LocationColumn, table)
}

var (
	columnValueType = tree.Enum[ValueType]("properties.value_type")
	columnDimension = tree.Enum[PhysicalDimension]("properties.dimension_type")
	columnData      = tree.Doubles("properties.data")
)

// column holds what 1D and 3D columns have in common.
type column struct{ *tree.Object }

// ValueType can only be set before the column is stored.
func (c column) ValueType(ctx context.Context) (ValueType, error) {
	return columnValueType.Get(ctx, c.Object)
}

// SetValueType fails with tree.ErrReadOnly on stored columns.
func (c column) SetValueType(ctx context.Context, v ValueType) error {
	if c.IsStored() {
		return fmt.Errorf("%w: value type of stored column %s", tree.ErrReadOnly, c.Object)
	}
	return columnValueType.Set(ctx, c.Object, v)
}

func (c column) PhysicalDimension(ctx context.Context) (PhysicalDimension, error) {
	return columnDimension.Get(ctx, c.Object)
}

func (c column) SetPhysicalDimension(ctx context.Context, v PhysicalDimension) error {
	return columnDimension.Set(ctx, c.Object, v)
}

// Data returns the values row by row; direction columns and the location
// column of a 3D table hold three values per row.
func (c column) Data(ctx context.Context) ([]float64, error) {
	return columnData.Get(ctx, c.Object)
}

func (c column) SetData(ctx context.Context, v []float64) error {
	return columnData.Set(ctx, c.Object, v)
}

// LookUpTable1DColumn holds one value per row of its table.
type LookUpTable1DColumn struct{ column }

// AsLookUpTable1DColumn wraps o.
func AsLookUpTable1DColumn(o *tree.Object) *LookUpTable1DColumn {
	return &LookUpTable1DColumn{column{o}}
}

func (c *LookUpTable1DColumn) object() *tree.Object {
	if c == nil {
		return nil
	}
	return c.Object
}

// LookUpTable3DColumn holds one value per point of its table.
type LookUpTable3DColumn struct{ column }

// AsLookUpTable3DColumn wraps o.
func AsLookUpTable3DColumn(o *tree.Object) *LookUpTable3DColumn {
	return &LookUpTable3DColumn{column{o}}
}

func (c *LookUpTable3DColumn) object() *tree.Object {
	if c == nil {
		return nil
	}
	return c.Object
}

func isLocationColumn(src *tree.Object) bool {
	return src.Name() == LocationColumn
}

// copyLocation transfers the data of the skipped location column of src
// to the one the server created for dst.
func copyLocation(ctx context.Context, src, dst *tree.Object, replaced map[string]*tree.Object) error {
	from, err := locationOf(ctx, src)
	if err != nil {
		if errors.Is(err, tree.ErrNotFound) {
			return nil
		}
		return err
	}
	to, err := locationOf(ctx, dst)
	if err != nil {
		if errors.Is(err, tree.ErrNotFound) {
			return nil
		}
		return err
	}
	data, err := columnData.Get(ctx, from)
	if err != nil {
		return err
	}
	if err := columnData.Set(ctx, to, data); err != nil {
		return err
	}
	dim, err := columnDimension.Get(ctx, from)
	if err != nil {
		return err
	}
	if err := columnDimension.Set(ctx, to, dim); err != nil {
		return err
	}
	replaced[from.ResourcePath()] = to
	return nil
}
