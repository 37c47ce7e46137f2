package bridge

import (
	"reflect"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/handle"
	"github.com/wippyai/hostbridge/marshal"
)

// ReleaseMode selects what ReleaseArrayElements does with a view.
type ReleaseMode uint8

const (
	// ReleaseCopyBack writes the view back and releases its element handles.
	ReleaseCopyBack ReleaseMode = iota
	// ReleaseCommit writes the view back and keeps it usable.
	ReleaseCommit
	// ReleaseAbort discards the view without writing back.
	ReleaseAbort
)

// NewArray creates a zeroed 1-D host array of n elements.
func (e *Env) NewArray(kind marshal.ElemKind, n int) handle.Handle {
	if e.pending != nil {
		return handle.Null
	}
	if kind == marshal.KindInvalid || kind > marshal.KindObject || n < 0 {
		e.ThrowError(errors.New(errors.PhaseBridge, errors.KindInvalidInput).
			Value(n).
			Detail("new %s array of size %d", kind, n).
			Build())
		return handle.Null
	}
	array := reflect.MakeSlice(reflect.SliceOf(kind.HostType()), n, n)
	return e.register(TypeArray, array.Interface())
}

// NewArray2D creates a zeroed 2-D host array with the given row lengths.
func (e *Env) NewArray2D(kind marshal.ElemKind, rowLens ...int) handle.Handle {
	if e.pending != nil {
		return handle.Null
	}
	if kind == marshal.KindInvalid || kind > marshal.KindObject {
		e.ThrowError(errors.InvalidInput(errors.PhaseBridge, "invalid element kind"))
		return handle.Null
	}
	rowType := reflect.SliceOf(kind.HostType())
	array := reflect.MakeSlice(reflect.SliceOf(rowType), len(rowLens), len(rowLens))
	for i, n := range rowLens {
		if n < 0 {
			e.ThrowError(errors.New(errors.PhaseBridge, errors.KindInvalidInput).
				Path("row", "size").
				Value(n).
				Detail("row %d has negative size %d", i, n).
				Build())
			return handle.Null
		}
		array.Index(i).Set(reflect.MakeSlice(rowType, n, n))
	}
	return e.register(TypeArray, array.Interface())
}

// ArrayLength returns the first-dimension length of the array named by h.
func (e *Env) ArrayLength(h handle.Handle) int {
	if e.pending != nil {
		return 0
	}
	v, err := e.bridge.table.Resolve(h)
	if err != nil {
		e.ThrowError(err)
		return 0
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		e.ThrowError(errors.TypeMismatch(errors.PhaseBridge, []string{h.String()}, typeName(v), "array"))
		return 0
	}
	if rv.IsNil() {
		return 0
	}
	return rv.Len()
}

// GetArrayElements copies the array named by h into a native view.
func (e *Env) GetArrayElements(h handle.Handle) *marshal.View {
	if e.pending != nil {
		return nil
	}
	array, err := e.bridge.table.Resolve(h)
	if err != nil {
		e.ThrowError(err)
		return nil
	}
	v, err := marshal.ToNative(e.bridge.table, array)
	if err != nil {
		e.ThrowError(err)
		return nil
	}
	return v
}

// ReleaseArrayElements ends the use of a view obtained from
// GetArrayElements. The view is written back for ReleaseCopyBack and
// ReleaseCommit, but never while an exception is pending. Element handles are
// freed for every mode except ReleaseCommit.
func (e *Env) ReleaseArrayElements(h handle.Handle, v *marshal.View, mode ReleaseMode) {
	if v == nil {
		return
	}
	if mode != ReleaseAbort && e.pending == nil {
		array, err := e.bridge.table.Resolve(h)
		if err != nil {
			e.ThrowError(err)
		} else if err := marshal.CopyInto(e.bridge.table, v, array); err != nil {
			e.ThrowError(err)
		}
	}
	if mode != ReleaseCommit {
		v.Release(e.bridge.table)
	}
}

// GetArrayRegion returns a copy of n elements of the 1-D array h starting
// at start. For String and Object arrays the region holds live handles owned
// by the caller; the handles of the other elements are released.
func (e *Env) GetArrayRegion(h handle.Handle, start, n int) any {
	v := e.GetArrayElements(h)
	if v == nil {
		return nil
	}
	if v.Dims != 1 {
		v.Release(e.bridge.table)
		e.ThrowError(errors.TypeMismatch(errors.PhaseBridge, []string{h.String()}, v.String(), "1-D array"))
		return nil
	}
	region, err := v.Region(0, start, n)
	if err != nil {
		v.Release(e.bridge.table)
		e.ThrowError(err)
		return nil
	}
	for i, eh := range v.Handles() {
		if i < start || i >= start+n {
			e.bridge.table.Release(eh)
		}
	}
	return region
}

// SetArrayRegion copies values into the primitive 1-D array h starting at
// start. values must be a slice of the array's element type.
func (e *Env) SetArrayRegion(h handle.Handle, start int, values any) {
	if e.pending != nil {
		return
	}
	array, err := e.bridge.table.Resolve(h)
	if err != nil {
		e.ThrowError(err)
		return
	}
	dst := reflect.ValueOf(array)
	src := reflect.ValueOf(values)
	if dst.Kind() != reflect.Slice || !src.IsValid() || src.Type() != dst.Type() {
		e.ThrowError(errors.TypeMismatch(errors.PhaseBridge, []string{h.String()}, typeName(values), typeName(array)))
		return
	}
	if start < 0 || start+src.Len() > dst.Len() {
		e.ThrowError(errors.RangeOutOfBounds(errors.PhaseBridge, []string{h.String()}, start, start+src.Len(), dst.Len()))
		return
	}
	reflect.Copy(dst.Slice(start, start+src.Len()), src)
}

// GetArrayField marshals the array field name of the object h. A missing
// field raises ResourceNotFound.
func (e *Env) GetArrayField(obj handle.Handle, name string) *marshal.View {
	if e.pending != nil {
		return nil
	}
	o, err := e.bridge.table.Resolve(obj)
	if err != nil {
		e.ThrowError(err)
		return nil
	}
	v, err := marshal.GetArrayField(e.bridge.table, o, name)
	if err != nil {
		e.ThrowError(err)
		return nil
	}
	return v
}

// SetArrayField replaces the array field name of the object h with a
// host array built from v.
func (e *Env) SetArrayField(obj handle.Handle, name string, v *marshal.View) {
	if e.pending != nil {
		return
	}
	o, err := e.bridge.table.Resolve(obj)
	if err != nil {
		e.ThrowError(err)
		return
	}
	if err := marshal.SetArrayField(e.bridge.table, o, name, v); err != nil {
		e.ThrowError(err)
	}
}
