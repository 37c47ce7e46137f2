package marshal

import (
	"reflect"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/handle"
)

// ToNative copies a host array into a new View. Primitive elements are
// copied; reference elements are registered in t, with nil Object elements
// kept as the null handle. A nil array or a nil row fails with a
// null_element error.
func ToNative(t *handle.Table, array any) (*View, error) {
	rv := reflect.ValueOf(array)
	kind, dims := classify(rv)
	if kind == KindInvalid {
		return nil, errors.TypeMismatch(errors.PhaseMarshal, nil, typeName(array), "host array")
	}
	if rv.IsNil() {
		return nil, errors.New(errors.PhaseMarshal, errors.KindNullElement).
			GoType(typeName(array)).
			Detail("array is null").
			Build()
	}
	if kind.IsReference() && t == nil {
		return nil, errors.InvalidInput(errors.PhaseMarshal, "reference array needs a handle table")
	}
	if kind.IsReference() && t.Closed() {
		return nil, errors.New(errors.PhaseMarshal, errors.KindClosed).
			Detail("handle table closed").
			Build()
	}

	v := &View{Kind: kind, Dims: dims}
	if dims == 1 {
		v.rows = []reflect.Value{nativeRow(t, kind, rv)}
		return v, nil
	}

	v.rows = make([]reflect.Value, rv.Len())
	for i := range v.rows {
		row := rv.Index(i)
		if row.IsNil() {
			v.rows = v.rows[:i]
			v.Release(t)
			return nil, errors.NullElement(errors.PhaseMarshal, []string{hostName(kind, 2)}, i)
		}
		v.rows[i] = nativeRow(t, kind, row)
	}
	return v, nil
}

// classify returns the element kind and dimensionality of a host array
// value, or KindInvalid.
func classify(rv reflect.Value) (ElemKind, int) {
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return KindInvalid, 0
	}
	elem := rv.Type().Elem()
	if k := kindOf(elem); k != KindInvalid {
		return k, 1
	}
	if elem.Kind() == reflect.Slice {
		if k := kindOf(elem.Elem()); k != KindInvalid {
			return k, 2
		}
	}
	return KindInvalid, 0
}

func nativeRow(t *handle.Table, kind ElemKind, row reflect.Value) reflect.Value {
	if !kind.IsReference() {
		return cloneRow(row)
	}
	hs := make([]handle.Handle, row.Len())
	for i := range hs {
		e := row.Index(i)
		if kind == KindObject && e.IsNil() {
			continue
		}
		hs[i] = t.Register(e.Interface())
	}
	return reflect.ValueOf(hs)
}

// ToHost allocates a new host array holding the view's elements. Reference
// elements are resolved through t. A null handle in a String array fails
// with a null_element error; in an Object array it becomes nil.
func ToHost(t *handle.Table, v *View) (any, error) {
	if v == nil {
		return nil, errors.InvalidInput(errors.PhaseMarshal, "nil view")
	}
	rowType := reflect.SliceOf(v.Kind.HostType())

	if v.Dims == 1 {
		row, err := hostRow(t, v.Kind, rowType, v.rows[0], 0)
		if err != nil {
			return nil, err
		}
		return row.Interface(), nil
	}

	out := reflect.MakeSlice(reflect.SliceOf(rowType), len(v.rows), len(v.rows))
	for i, r := range v.rows {
		row, err := hostRow(t, v.Kind, rowType, r, i)
		if err != nil {
			return nil, err
		}
		out.Index(i).Set(row)
	}
	return out.Interface(), nil
}

func hostRow(t *handle.Table, kind ElemKind, rowType reflect.Type, r reflect.Value, rowIdx int) (reflect.Value, error) {
	if !kind.IsReference() {
		return cloneRow(r), nil
	}
	if t == nil {
		return reflect.Value{}, errors.InvalidInput(errors.PhaseMarshal, "reference array needs a handle table")
	}

	hs := r.Interface().([]handle.Handle)
	out := reflect.MakeSlice(rowType, len(hs), len(hs))
	for i, h := range hs {
		if h.IsNull() {
			if kind == KindString {
				return reflect.Value{}, errors.NullElement(errors.PhaseMarshal, []string{rowPath(rowIdx)}, i)
			}
			continue
		}
		val, err := t.Resolve(h)
		if err != nil {
			return reflect.Value{}, err
		}
		if kind == KindString {
			s, ok := val.(string)
			if !ok {
				return reflect.Value{}, errors.TypeMismatch(errors.PhaseMarshal, []string{rowPath(rowIdx)}, typeName(val), "String")
			}
			out.Index(i).SetString(s)
			continue
		}
		if val != nil {
			out.Index(i).Set(reflect.ValueOf(val))
		}
	}
	return out, nil
}

// CopyInto writes the view's elements back into the existing host array
// dst, which must have the view's kind, dimensionality and row lengths.
// Rows are copied in place, so holders of dst observe the new values.
func CopyInto(t *handle.Table, v *View, dst any) error {
	array, err := ToHost(t, v)
	if err != nil {
		return err
	}
	src := reflect.ValueOf(array)
	dv := reflect.ValueOf(dst)
	if !dv.IsValid() || dv.Type() != src.Type() {
		return errors.TypeMismatch(errors.PhaseMarshal, nil, typeName(dst), src.Type().String())
	}
	if dv.IsNil() {
		return errors.New(errors.PhaseMarshal, errors.KindNullElement).
			GoType(typeName(dst)).
			Detail("array is null").
			Build()
	}
	if dv.Len() != src.Len() {
		return errors.OutOfBounds(errors.PhaseMarshal, []string{hostName(v.Kind, v.Dims)}, src.Len(), dv.Len())
	}
	if v.Dims == 1 {
		reflect.Copy(dv, src)
		return nil
	}
	for i := 0; i < src.Len(); i++ {
		d, s := dv.Index(i), src.Index(i)
		if d.IsNil() {
			return errors.NullElement(errors.PhaseMarshal, []string{hostName(v.Kind, 2)}, i)
		}
		if d.Len() != s.Len() {
			return errors.OutOfBounds(errors.PhaseMarshal, []string{rowPath(i)}, s.Len(), d.Len())
		}
	}
	for i := 0; i < src.Len(); i++ {
		reflect.Copy(dv.Index(i), src.Index(i))
	}
	return nil
}
