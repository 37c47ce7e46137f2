package marshal

import (
	"fmt"
	"reflect"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/handle"
)

// View is the native description of a host array: its element kind, its
// dimensionality and one independently allocated row per first-dimension
// element. A 1-D view has exactly one row.
type View struct {
	rows []reflect.Value
	Kind ElemKind
	Dims int
}

// NewView returns a zeroed 1-D view of length n.
func NewView(kind ElemKind, n int) (*View, error) {
	if err := checkNew(kind, n); err != nil {
		return nil, err
	}
	return &View{Kind: kind, Dims: 1, rows: []reflect.Value{makeRow(kind, n)}}, nil
}

// NewView2D returns a zeroed 2-D view with the given row lengths.
func NewView2D(kind ElemKind, rowLens ...int) (*View, error) {
	v := &View{Kind: kind, Dims: 2, rows: make([]reflect.Value, len(rowLens))}
	for i, n := range rowLens {
		if err := checkNew(kind, n); err != nil {
			return nil, err
		}
		v.rows[i] = makeRow(kind, n)
	}
	return v, nil
}

func checkNew(kind ElemKind, n int) error {
	if kind == KindInvalid || kind > KindObject {
		return errors.New(errors.PhaseMarshal, errors.KindInvalidInput).
			Value(kind).
			Detail("invalid element kind %d", kind).
			Build()
	}
	if n < 0 {
		return errors.New(errors.PhaseMarshal, errors.KindInvalidInput).
			Value(n).
			Detail("negative array size %d", n).
			Build()
	}
	return nil
}

func makeRow(kind ElemKind, n int) reflect.Value {
	return reflect.MakeSlice(reflect.SliceOf(kind.nativeType()), n, n)
}

// Len returns the number of rows of a 2-D view or the length of a 1-D view.
func (v *View) Len() int {
	if v.Dims == 1 {
		return v.rows[0].Len()
	}
	return len(v.rows)
}

// Rows returns the number of rows; a 1-D view has one.
func (v *View) Rows() int { return len(v.rows) }

// RowLen returns the length of row i.
func (v *View) RowLen(i int) (int, error) {
	r, err := v.row(i)
	if err != nil {
		return 0, err
	}
	return r.Len(), nil
}

func (v *View) row(i int) (reflect.Value, error) {
	if i < 0 || i >= len(v.rows) {
		return reflect.Value{}, errors.OutOfBounds(errors.PhaseMarshal, []string{"row"}, i, len(v.rows))
	}
	return v.rows[i], nil
}

// Get returns element col of row. Reference elements are returned as
// handle.Handle. For 1-D views row must be 0.
func (v *View) Get(row, col int) (any, error) {
	r, err := v.row(row)
	if err != nil {
		return nil, err
	}
	if col < 0 || col >= r.Len() {
		return nil, errors.OutOfBounds(errors.PhaseMarshal, []string{rowPath(row)}, col, r.Len())
	}
	return r.Index(col).Interface(), nil
}

// Set stores val at col of row. val must have the exact native element
// type.
func (v *View) Set(row, col int, val any) error {
	r, err := v.row(row)
	if err != nil {
		return err
	}
	if col < 0 || col >= r.Len() {
		return errors.OutOfBounds(errors.PhaseMarshal, []string{rowPath(row)}, col, r.Len())
	}
	rv := reflect.ValueOf(val)
	if !rv.IsValid() || rv.Type() != r.Type().Elem() {
		return errors.TypeMismatch(errors.PhaseMarshal, []string{rowPath(row)}, typeName(val), r.Type().Elem().String())
	}
	r.Index(col).Set(rv)
	return nil
}

// Region returns a copy of n elements of row starting at start.
func (v *View) Region(row, start, n int) (any, error) {
	r, err := v.row(row)
	if err != nil {
		return nil, err
	}
	if start < 0 || n < 0 || start+n > r.Len() {
		return nil, errors.RangeOutOfBounds(errors.PhaseMarshal, []string{rowPath(row)}, start, start+n, r.Len())
	}
	return cloneRow(r.Slice(start, start+n)).Interface(), nil
}

// SetRegion copies values into row starting at start. values must be a
// slice of the native element type.
func (v *View) SetRegion(row, start int, values any) error {
	r, err := v.row(row)
	if err != nil {
		return err
	}
	src := reflect.ValueOf(values)
	if !src.IsValid() || src.Type() != r.Type() {
		return errors.TypeMismatch(errors.PhaseMarshal, []string{rowPath(row)}, typeName(values), r.Type().String())
	}
	if start < 0 || start+src.Len() > r.Len() {
		return errors.RangeOutOfBounds(errors.PhaseMarshal, []string{rowPath(row)}, start, start+src.Len(), r.Len())
	}
	reflect.Copy(r.Slice(start, start+src.Len()), src)
	return nil
}

// Handles returns every element handle of a reference view.
func (v *View) Handles() []handle.Handle {
	if !v.Kind.IsReference() {
		return nil
	}
	var hs []handle.Handle
	for _, r := range v.rows {
		hs = append(hs, r.Interface().([]handle.Handle)...)
	}
	return hs
}

// Release releases every element handle of a reference view in t and
// clears them to the null handle.
func (v *View) Release(t *handle.Table) {
	if !v.Kind.IsReference() {
		return
	}
	for _, r := range v.rows {
		hs := r.Interface().([]handle.Handle)
		for i, h := range hs {
			t.Release(h)
			hs[i] = handle.Null
		}
	}
}

func (v *View) String() string {
	return fmt.Sprintf("View(%s, rows=%d)", hostName(v.Kind, v.Dims), len(v.rows))
}

// Elements returns row i as a typed slice sharing storage with the view.
func Elements[T any](v *View, i int) ([]T, error) {
	r, err := v.row(i)
	if err != nil {
		return nil, err
	}
	s, ok := r.Interface().([]T)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseMarshal, []string{rowPath(i)}, reflect.TypeFor[[]T]().String(), r.Type().String())
	}
	return s, nil
}

func rowPath(i int) string { return fmt.Sprintf("row[%d]", i) }

func cloneRow(r reflect.Value) reflect.Value {
	return reflect.AppendSlice(reflect.MakeSlice(r.Type(), 0, r.Len()), r)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
