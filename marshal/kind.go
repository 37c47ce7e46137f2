// Package marshal copies host arrays between their host representation and
// a native View.
//
// Host arrays are Go slices of the host element types:
//
//	boolean  []bool       long    []int64
//	byte     []int8       float   []float32
//	char     []uint16     double  []float64
//	short    []int16      String  []string
//	int      []int32      Object  []any
//
// and their [][]T forms for two dimensions. A nil slice is a null array and
// a nil row is a null row. Every row of a 2-D array is copied into its own
// allocation, so jagged shapes and zero-length rows round-trip exactly.
// Reference elements are registered in a handle.Table and the view holds
// their handles.
package marshal

import (
	"reflect"

	"github.com/wippyai/hostbridge/handle"
)

// ElemKind is the element type tag of an array.
type ElemKind uint8

const (
	KindInvalid ElemKind = iota
	KindBoolean
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindObject
)

var kindInfo = [...]struct {
	name string
	typ  reflect.Type
}{
	KindInvalid: {"invalid", nil},
	KindBoolean: {"boolean", reflect.TypeFor[bool]()},
	KindByte:    {"byte", reflect.TypeFor[int8]()},
	KindChar:    {"char", reflect.TypeFor[uint16]()},
	KindShort:   {"short", reflect.TypeFor[int16]()},
	KindInt:     {"int", reflect.TypeFor[int32]()},
	KindLong:    {"long", reflect.TypeFor[int64]()},
	KindFloat:   {"float", reflect.TypeFor[float32]()},
	KindDouble:  {"double", reflect.TypeFor[float64]()},
	KindString:  {"String", reflect.TypeFor[string]()},
	KindObject:  {"Object", reflect.TypeFor[any]()},
}

var handleType = reflect.TypeFor[handle.Handle]()

func (k ElemKind) String() string {
	if int(k) < len(kindInfo) {
		return kindInfo[k].name
	}
	return "invalid"
}

// IsReference reports whether elements are held as handles.
func (k ElemKind) IsReference() bool {
	return k == KindString || k == KindObject
}

// HostType returns the Go element type of the host array.
func (k ElemKind) HostType() reflect.Type {
	if int(k) < len(kindInfo) {
		return kindInfo[k].typ
	}
	return nil
}

// nativeType is the element type stored in a view row.
func (k ElemKind) nativeType() reflect.Type {
	if k.IsReference() {
		return handleType
	}
	return k.HostType()
}

func kindOf(t reflect.Type) ElemKind {
	for k := KindBoolean; k <= KindObject; k++ {
		if kindInfo[k].typ == t {
			return k
		}
	}
	return KindInvalid
}

// hostName renders an array type the way the host names it, e.g. int[][].
func hostName(k ElemKind, dims int) string {
	s := k.String()
	for i := 0; i < dims; i++ {
		s += "[]"
	}
	return s
}
