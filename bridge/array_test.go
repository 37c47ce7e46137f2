package bridge

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/hostbridge/handle"
	"github.com/wippyai/hostbridge/marshal"
)

func TestArray_NewAndRegion(t *testing.T) {
	env := New().NewEnv()
	h := env.NewArray(marshal.KindInt, 4)
	if n := env.ArrayLength(h); n != 4 {
		t.Fatalf("ArrayLength = %d, want 4", n)
	}

	env.SetArrayRegion(h, 1, []int32{7, 8})
	got := env.GetArrayRegion(h, 0, 4)
	if diff := cmp.Diff([]int32{0, 7, 8, 0}, got); diff != "" {
		t.Fatalf("region mismatch (-want +got):\n%s", diff)
	}
	if env.ExceptionCheck() {
		t.Fatalf("unexpected exception %v", env.ExceptionOccurred())
	}

	env.SetArrayRegion(h, 3, []int32{1, 2})
	if ex := env.ExceptionOccurred(); ex == nil || ex.Kind != KindGeneric {
		t.Fatalf("overflowing SetArrayRegion raised %+v", ex)
	}

	env.ExceptionClear()
	env.SetArrayRegion(h, 0, []int64{1})
	if ex := env.ExceptionOccurred(); ex == nil || ex.Kind != KindGeneric {
		t.Fatalf("mistyped SetArrayRegion raised %+v", ex)
	}
}

func TestArray_StringRegionHandlesLive(t *testing.T) {
	b := New()
	env := b.NewEnv()
	arr := env.NewRef([]string{"a", "b", "c"})

	region, ok := env.GetArrayRegion(arr, 1, 2).([]handle.Handle)
	if !ok || env.ExceptionCheck() {
		t.Fatalf("GetArrayRegion = %T, exception %v", region, env.ExceptionOccurred())
	}
	var got []string
	for _, h := range region {
		v, err := b.Table().Resolve(h)
		if err != nil {
			t.Fatalf("region handle %s: %v", h, err)
		}
		got = append(got, v.(string))
	}
	if diff := cmp.Diff([]string{"b", "c"}, got); diff != "" {
		t.Fatalf("region mismatch (-want +got):\n%s", diff)
	}
	if n := b.Table().Len(); n != 3 {
		t.Fatalf("live handles = %d, want the array and two elements", n)
	}

	for _, h := range region {
		env.DeleteRef(h)
	}
	env.GetArrayRegion(arr, 2, 5)
	if !env.ExceptionCheck() {
		t.Fatal("out of range region raised nothing")
	}
	if n := b.Table().Len(); n != 1 {
		t.Fatalf("live handles = %d, want only the array", n)
	}
}

func TestArray_InvalidNew(t *testing.T) {
	env := New().NewEnv()
	if h := env.NewArray(marshal.KindDouble, -1); !h.IsNull() {
		t.Fatalf("NewArray(-1) = %s", h)
	}
	env.ExceptionClear()
	if h := env.NewArray2D(marshal.KindInt, 2, -3); !h.IsNull() {
		t.Fatalf("NewArray2D with negative row = %s", h)
	}
	if !env.ExceptionCheck() {
		t.Fatal("no exception for negative row size")
	}
}

func TestArray_ElementsCopyBack(t *testing.T) {
	tests := []struct {
		mode ReleaseMode
		want []float64
	}{
		{ReleaseCopyBack, []float64{0, 2.5, 0}},
		{ReleaseCommit, []float64{0, 2.5, 0}},
		{ReleaseAbort, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		env := New().NewEnv()
		h := env.NewArray(marshal.KindDouble, 3)
		v := env.GetArrayElements(h)
		if err := v.Set(0, 1, 2.5); err != nil {
			t.Fatalf("mode %d: Set: %v", tt.mode, err)
		}
		env.ReleaseArrayElements(h, v, tt.mode)

		if diff := cmp.Diff(tt.want, env.GetArrayRegion(h, 0, 3)); diff != "" {
			t.Fatalf("mode %d: mismatch (-want +got):\n%s", tt.mode, diff)
		}
	}
}

func TestArray_StringElements(t *testing.T) {
	b := New()
	env := b.NewEnv()
	host := []string{"a", "b"}
	h := env.NewRef(host)

	v := env.GetArrayElements(h)
	if b.Table().Len() != 3 {
		t.Fatalf("Len = %d, want array plus two strings", b.Table().Len())
	}
	hs, err := marshal.Elements[handle.Handle](v, 0)
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	env.DeleteRef(hs[0])
	hs[0] = env.NewRef("z")
	env.ReleaseArrayElements(h, v, ReleaseCopyBack)

	if diff := cmp.Diff([]string{"z", "b"}, host); diff != "" {
		t.Fatalf("host mismatch (-want +got):\n%s", diff)
	}
	if b.Table().Len() != 1 {
		t.Fatalf("Len after release = %d, want 1", b.Table().Len())
	}
}

func TestArray_2D(t *testing.T) {
	env := New().NewEnv()
	h := env.NewArray2D(marshal.KindLong, 1, 2)
	if n := env.ArrayLength(h); n != 2 {
		t.Fatalf("ArrayLength = %d, want 2", n)
	}
	v := env.GetArrayElements(h)
	row, err := marshal.Elements[int64](v, 1)
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	row[1] = 9
	env.ReleaseArrayElements(h, v, ReleaseCopyBack)

	host, err := env.Resolve(h)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff([][]int64{{0}, {0, 9}}, host); diff != "" {
		t.Fatalf("host mismatch (-want +got):\n%s", diff)
	}

	env.GetArrayRegion(h, 0, 1)
	if !env.ExceptionCheck() {
		t.Fatal("GetArrayRegion on 2-D array did not raise")
	}
}

type sample struct {
	Values []int32
	Name   string
}

func TestArray_Field(t *testing.T) {
	sig := Signature{Name: "field", Throws: []Kind{KindResourceNotFound}}
	obj := &sample{Values: []int32{1, 2, 3}}

	b := New()
	res := Invoke(b, sig, func(env *Env) []int32 {
		h := env.NewRef(obj)
		v := env.GetArrayField(h, "Values")
		if v == nil {
			return nil
		}
		if err := v.Set(0, 2, int32(30)); err != nil {
			env.ThrowError(err)
			return nil
		}
		env.SetArrayField(h, "Values", v)
		r, _ := marshal.Elements[int32](v, 0)
		return r
	})
	if _, err := res.Get(); err != nil {
		t.Fatalf("call raised %v", err)
	}
	if diff := cmp.Diff([]int32{1, 2, 30}, obj.Values); diff != "" {
		t.Fatalf("field mismatch (-want +got):\n%s", diff)
	}

	ex := Run(b, sig, func(env *Env) {
		env.GetArrayField(env.NewRef(obj), "Missing")
	})
	if ex == nil || ex.Kind != KindResourceNotFound {
		t.Fatalf("missing field raised %+v, want ResourceNotFound", ex)
	}

	ex = Run(b, sig, func(env *Env) {
		env.GetArrayField(env.NewRef(obj), "Name")
	})
	if ex == nil || ex.Kind != KindGeneric {
		t.Fatalf("non-array field raised %+v, want Generic", ex)
	}
}
