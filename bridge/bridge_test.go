package bridge

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/handle"
)

func TestVersion(t *testing.T) {
	if Version() != "1.0.8" {
		t.Fatalf("Version() = %q", Version())
	}
}

func TestInvoke_Value(t *testing.T) {
	b := New()
	res := Invoke(b, Signature{Name: "concat"}, func(env *Env) string {
		h := env.NewStringBuilderString("Hello")
		env.Append(h, ", World")
		defer env.DeleteRef(h)
		return env.ToString(h)
	})

	got, err := res.Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != "Hello, World" {
		t.Fatalf("value = %q", got)
	}
	if b.Table().Len() != 0 {
		t.Fatalf("leaked %d handles", b.Table().Len())
	}
}

func TestInvoke_DeclaredKinds(t *testing.T) {
	tests := []struct {
		name   string
		throws []Kind
		raise  Kind
		want   Kind
	}{
		{"declared", []Kind{KindIO}, KindIO, KindIO},
		{"undeclared", nil, KindIO, KindGeneric},
		{"other declared", []Kind{KindMalformedText}, KindResourceNotFound, KindGeneric},
		{"generic always", nil, KindGeneric, KindGeneric},
		{"unknown kind", []Kind{KindIO}, Kind(99), KindGeneric},
	}

	b := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Invoke(b, Signature{Name: tt.name, Throws: tt.throws}, func(env *Env) int {
				env.Throw(tt.raise, "failed")
				return 7
			})
			if res.Ok() {
				t.Fatal("call returned normally")
			}
			if res.Value != 0 {
				t.Fatalf("Value = %d, want zero", res.Value)
			}
			if res.Raised.Kind != tt.want {
				t.Fatalf("kind = %s, want %s", res.Raised.Kind, tt.want)
			}
			if res.Raised.Message != "failed" {
				t.Fatalf("message = %q", res.Raised.Message)
			}
		})
	}
}

func TestInvoke_Panic(t *testing.T) {
	res := Invoke(New(), Signature{Name: "boom"}, func(env *Env) int {
		panic("boom")
	})
	if res.Ok() || res.Raised.Kind != KindGeneric || res.Raised.Message != "boom" {
		t.Fatalf("Raised = %+v, want Generic boom", res.Raised)
	}
}

func TestInvoke_PanicKeepsPending(t *testing.T) {
	sig := Signature{Name: "read", Throws: []Kind{KindIO}}
	res := Invoke(New(), sig, func(env *Env) int {
		env.Throw(KindIO, "first")
		panic("later")
	})
	if res.Raised == nil || res.Raised.Kind != KindIO || res.Raised.Message != "first" {
		t.Fatalf("Raised = %+v, want IO first", res.Raised)
	}
}

func TestRun(t *testing.T) {
	b := New()
	if ex := Run(b, Signature{Name: "noop"}, func(env *Env) {}); ex != nil {
		t.Fatalf("Run raised %v", ex)
	}
	ex := Run(b, Signature{Name: "fail"}, func(env *Env) { env.Throw(KindGeneric, "x") })
	if ex == nil || ex.Kind != KindGeneric {
		t.Fatalf("Run raised %+v", ex)
	}
}

func TestBridge_Close(t *testing.T) {
	b := New()
	env := b.NewEnv()
	env.NewStringBuilder()
	env.NewStringWriter()

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if b.Table().Len() != 0 {
		t.Fatalf("Len after Close = %d", b.Table().Len())
	}

	res := Invoke(b, Signature{Name: "late"}, func(env *Env) bool { return true })
	if res.Ok() || res.Raised.Kind != KindGeneric {
		t.Fatalf("Invoke on closed bridge = %+v", res)
	}
}

func TestBridge_SharedTable(t *testing.T) {
	table := handle.NewTable()
	b := New(WithTable(table))
	h := b.NewEnv().NewRef("kept")
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if v, err := table.Resolve(h); err != nil || v != "kept" {
		t.Fatalf("shared table lost its handle: %v, %v", v, err)
	}
}

func TestSingleton(t *testing.T) {
	t.Cleanup(func() { _ = Teardown() })

	if _, err := Default(); !errors.Is(err, errors.ErrClosed) {
		t.Fatalf("Default before Init error = %v", err)
	}

	b, err := Init()
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := Init(); !errors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("second Init error = %v", err)
	}

	got, err := Default()
	if err != nil || got != b {
		t.Fatalf("Default = %p, %v; want %p", got, err, b)
	}

	if err := Teardown(); err != nil {
		t.Fatalf("Teardown: %v", err)
	}
	if !b.Closed() {
		t.Fatal("bridge not closed by Teardown")
	}
	if _, err := Default(); err == nil {
		t.Fatal("Default after Teardown succeeded")
	}
	if err := Teardown(); err != nil {
		t.Fatalf("second Teardown: %v", err)
	}
}

func TestInvoke_ConcurrentExceptionIsolation(t *testing.T) {
	const (
		workers    = 8
		iterations = 1000
	)
	kinds := []Kind{KindIO, KindMalformedText, KindResourceNotFound, KindUnsupportedEncoding}
	sig := Signature{Name: "stress", Throws: kinds}
	b := New()

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < iterations; i++ {
				kind := kinds[(w+i)%len(kinds)]
				msg := fmt.Sprintf("w%d-%d", w, i)

				res := Invoke(b, sig, func(env *Env) int {
					env.Throw(kind, msg)
					return i
				})
				if res.Raised == nil {
					return fmt.Errorf("worker %d iteration %d: no exception", w, i)
				}
				if res.Raised.Kind != kind || res.Raised.Message != msg {
					return fmt.Errorf("worker %d iteration %d: got %s %q, want %s %q",
						w, i, res.Raised.Kind, res.Raised.Message, kind, msg)
				}

				clean := Invoke(b, sig, func(env *Env) string {
					if env.ExceptionCheck() {
						return "leaked"
					}
					h := env.NewStringBuilderString(msg)
					defer env.DeleteRef(h)
					return env.ToString(h)
				})
				if got, err := clean.Get(); err != nil || got != msg {
					return fmt.Errorf("worker %d iteration %d: clean call = %q, %v", w, i, got, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	stats := b.Stats()
	if stats.Calls != 2*workers*iterations {
		t.Fatalf("Calls = %d, want %d", stats.Calls, 2*workers*iterations)
	}
	if stats.Raised != workers*iterations {
		t.Fatalf("Raised = %d, want %d", stats.Raised, workers*iterations)
	}
	if stats.Live != 0 {
		t.Fatalf("Live = %d, want 0", stats.Live)
	}
}
