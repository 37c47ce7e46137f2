package bridge

import (
	"testing"

	"github.com/wippyai/hostbridge/handle"
)

func TestText_BuilderOps(t *testing.T) {
	env := New().NewEnv()
	h := env.NewStringBuilder()

	if c := env.Capacity(h); c != 16 {
		t.Fatalf("Capacity = %d, want 16", c)
	}

	env.Append(env.AppendInt(env.Append(h, "n="), 42), ";")
	env.AppendBool(h, true)
	env.AppendChar(h, ' ')
	env.AppendLong(h, -7)
	env.AppendDouble(h, 1.5)
	if got := env.ToString(h); got != "n=42;true -71.5" {
		t.Fatalf("ToString = %q", got)
	}

	env.Insert(h, 0, "[")
	env.InsertInt(h, 1, 9)
	if got := env.Substring(h, 0, 4); got != "[9n=" {
		t.Fatalf("Substring = %q", got)
	}
	if i := env.IndexOf(h, "true"); i != 7 {
		t.Fatalf("IndexOf = %d, want 7", i)
	}
	if i := env.IndexOf(h, "missing"); i != -1 {
		t.Fatalf("IndexOf missing = %d", i)
	}

	env.Delete(h, 0, 2)
	env.Replace(h, 0, 4, "x")
	if got := env.ToString(h); got != "x;true -71.5" {
		t.Fatalf("after Delete/Replace = %q", got)
	}
	env.DeleteCharAt(h, 1)
	env.SetCharAt(h, 0, 'X')
	if c := env.CharAt(h, 0); c != 'X' {
		t.Fatalf("CharAt = %q", rune(c))
	}
	env.SetLength(h, 5)
	if got := env.ToString(h); got != "Xtrue" {
		t.Fatalf("after SetLength = %q", got)
	}
	if env.ExceptionCheck() {
		t.Fatalf("unexpected exception %v", env.ExceptionOccurred())
	}
}

func TestText_CapacityFromString(t *testing.T) {
	env := New().NewEnv()
	h := env.NewStringBufferString("Hello")
	if c := env.Capacity(h); c != 21 {
		t.Fatalf("Capacity = %d, want 21", c)
	}
	env.TrimToSize(h)
	if c := env.Capacity(h); c != 5 {
		t.Fatalf("Capacity after trim = %d, want 5", c)
	}
	env.EnsureCapacity(h, 6)
	if c := env.Capacity(h); c != 12 {
		t.Fatalf("Capacity after EnsureCapacity = %d, want 12", c)
	}
}

func TestText_NegativeCapacity(t *testing.T) {
	env := New().NewEnv()
	if h := env.NewStringBuilderCapacity(-1); !h.IsNull() {
		t.Fatalf("handle = %s, want null", h)
	}
	if ex := env.ExceptionOccurred(); ex == nil || ex.Kind != KindGeneric {
		t.Fatalf("raised %+v, want Generic", ex)
	}
}

func TestText_ReverseSurrogates(t *testing.T) {
	env := New().NewEnv()
	h := env.NewStringBufferString("a😀b")
	if n := env.Length(h); n != 4 {
		t.Fatalf("Length = %d, want 4", n)
	}
	env.Reverse(h)
	if got := env.ToString(h); got != "b😀a" {
		t.Fatalf("Reverse = %q", got)
	}
	if r := env.CodePointAt(h, 1); r != '😀' {
		t.Fatalf("CodePointAt = %U", r)
	}
}

func TestText_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		op   func(env *Env, h handle.Handle)
	}{
		{"CharAt", func(env *Env, h handle.Handle) { env.CharAt(h, 3) }},
		{"SetCharAt", func(env *Env, h handle.Handle) { env.SetCharAt(h, -1, 'x') }},
		{"Insert", func(env *Env, h handle.Handle) { env.Insert(h, 4, "x") }},
		{"Delete", func(env *Env, h handle.Handle) { env.Delete(h, 2, 1) }},
		{"DeleteCharAt", func(env *Env, h handle.Handle) { env.DeleteCharAt(h, 3) }},
		{"Substring", func(env *Env, h handle.Handle) { env.Substring(h, 1, 9) }},
		{"SetLength", func(env *Env, h handle.Handle) { env.SetLength(h, -1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := New().NewEnv()
			h := env.NewStringBuilderString("abc")
			tt.op(env, h)
			ex := env.ExceptionOccurred()
			if ex == nil || ex.Kind != KindGeneric {
				t.Fatalf("raised %+v, want Generic", ex)
			}
			env.ExceptionClear()
			if got := env.ToString(h); got != "abc" {
				t.Fatalf("contents changed to %q", got)
			}
		})
	}
}

func TestText_AppendText(t *testing.T) {
	env := New().NewEnv()
	dst := env.NewStringBuilderString("x")
	src := env.NewStringBufferString("yz")
	env.AppendText(dst, src)
	env.AppendText(dst, dst)
	if got := env.ToString(dst); got != "xyzxyz" {
		t.Fatalf("AppendText = %q", got)
	}
}

func TestText_LastIndexOf(t *testing.T) {
	env := New().NewEnv()
	h := env.NewStringBuilderString("abcabc")
	if i := env.LastIndexOf(h, "bc"); i != 4 {
		t.Fatalf("LastIndexOf = %d, want 4", i)
	}
	if i := env.LastIndexOfFrom(h, "bc", 3); i != 1 {
		t.Fatalf("LastIndexOfFrom = %d, want 1", i)
	}
	if i := env.IndexOfFrom(h, "a", 1); i != 3 {
		t.Fatalf("IndexOfFrom = %d, want 3", i)
	}
}
