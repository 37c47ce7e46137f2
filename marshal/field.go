package marshal

import (
	"reflect"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/handle"
)

// GetArrayField marshals the array held in the exported field name of obj,
// which must be a struct or a pointer to one.
func GetArrayField(t *handle.Table, obj any, name string) (*View, error) {
	f, err := arrayField(obj, name, false)
	if err != nil {
		return nil, err
	}
	return ToNative(t, f.Interface())
}

// SetArrayField replaces the array in field name of the struct obj points
// to with a host array built from v.
func SetArrayField(t *handle.Table, obj any, name string, v *View) error {
	f, err := arrayField(obj, name, true)
	if err != nil {
		return err
	}
	array, err := ToHost(t, v)
	if err != nil {
		return err
	}
	av := reflect.ValueOf(array)
	if av.Type() != f.Type() {
		return errors.TypeMismatch(errors.PhaseMarshal, []string{name}, av.Type().String(), f.Type().String())
	}
	f.Set(av)
	return nil
}

func arrayField(obj any, name string, settable bool) (reflect.Value, error) {
	rv := reflect.ValueOf(obj)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, errors.New(errors.PhaseMarshal, errors.KindNullElement).
				Path(name).
				Detail("object is null").
				Build()
		}
		rv = rv.Elem()
	} else if settable {
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseMarshal, []string{name}, typeName(obj), "pointer to struct")
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseMarshal, []string{name}, typeName(obj), "struct")
	}

	sf, ok := rv.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, errors.NotFound(errors.PhaseMarshal, []string{rv.Type().String()}, "field "+name)
	}
	f := rv.FieldByIndex(sf.Index)
	if kind, _ := classify(reflect.Zero(f.Type())); kind == KindInvalid {
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseMarshal, []string{name}, f.Type().String(), "host array")
	}
	return f, nil
}
