package wasmhost

import (
	"context"
	"strings"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/hostbridge/bridge"
)

// memoryModule is a guest that only exports one page of memory.
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

type guest struct {
	t    *testing.T
	host *Host
	mod  api.Module
}

func newHost(t *testing.T) (*Host, wazero.Runtime) {
	t.Helper()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = r.Close(ctx) })

	h := New(bridge.New(), DefaultOptions())
	if _, err := h.Instantiate(ctx, r); err != nil {
		t.Fatalf("Instantiate host: %v", err)
	}
	return h, r
}

func newGuest(t *testing.T, h *Host, r wazero.Runtime, name string) *guest {
	t.Helper()
	ctx := context.Background()
	mod, err := r.InstantiateWithConfig(ctx, memoryModule, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		t.Fatalf("Instantiate guest: %v", err)
	}
	return &guest{t: t, host: h, mod: mod}
}

func (g *guest) call(name string, args ...uint64) uint64 {
	g.t.Helper()
	f, ok := g.host.funcs[name]
	if !ok {
		g.t.Fatalf("no host function %s", name)
	}
	stack := make([]uint64, max(len(f.params), len(f.results)))
	copy(stack, args)
	f.fn(context.Background(), g.mod, stack)
	if len(f.results) == 0 {
		return 0
	}
	return stack[0]
}

func (g *guest) put(off uint32, s string) (uint64, uint64) {
	g.t.Helper()
	if !g.mod.Memory().WriteString(off, s) {
		g.t.Fatalf("write %q at %d failed", s, off)
	}
	return uint64(off), uint64(len(s))
}

func (g *guest) get(off, n uint32) string {
	g.t.Helper()
	b, ok := g.mod.Memory().Read(off, n)
	if !ok {
		g.t.Fatalf("read [%d, %d) failed", off, off+n)
	}
	return string(b)
}

func (g *guest) noException() {
	g.t.Helper()
	if kind := g.call("exception_check"); kind != 0 {
		n := g.call("exception_message", 4096, 256)
		g.t.Fatalf("unexpected exception %d: %s", kind, g.get(4096, uint32(n)))
	}
}

func TestHost_Exports(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	h := New(bridge.New(), Options{})
	if h.Namespace() != ModuleName {
		t.Fatalf("Namespace = %q", h.Namespace())
	}
	mod, err := h.Instantiate(ctx, r)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	defs := mod.ExportedFunctionDefinitions()
	if len(defs) != len(h.funcs) {
		t.Fatalf("host module exports %d functions, want %d", len(defs), len(h.funcs))
	}
	for _, name := range []string{"sb_new", "reader_read", "writer_to_string", "format", "exception_check"} {
		def, ok := defs[name]
		if !ok {
			t.Fatalf("host module does not export %s", name)
		}
		if got, want := len(def.ParamTypes()), len(h.funcs[name].params); got != want {
			t.Fatalf("%s takes %d params, want %d", name, got, want)
		}
	}

	g := newGuest(t, h, r, "guest")
	if g.call("sb_new") == 0 {
		t.Fatal("sb_new returned the null handle")
	}
	g.noException()
}

func TestHost_StringBuilder(t *testing.T) {
	h, r := newHost(t)
	g := newGuest(t, h, r, "guest")

	sb := g.call("sb_new_string", toArgs(g.put(0, "Hello"))...)
	if sb == 0 {
		t.Fatal("sb_new_string returned the null handle")
	}
	ptr, n := g.put(16, ", World")
	if got := g.call("sb_append", sb, ptr, n); got != sb {
		t.Fatalf("sb_append returned %#x, want %#x", got, sb)
	}
	if got := api.DecodeI32(g.call("sb_length", sb)); got != 12 {
		t.Fatalf("sb_length = %d, want 12", got)
	}
	ptr, n = g.put(32, "World")
	if got := api.DecodeI32(g.call("sb_index_of", sb, ptr, n)); got != 7 {
		t.Fatalf("sb_index_of = %d, want 7", got)
	}

	size := g.call("sb_to_string", sb, 100, 64)
	if got := g.get(100, uint32(size)); got != "Hello, World" {
		t.Fatalf("sb_to_string = %q", got)
	}
	if size := g.call("sb_to_string", sb, 200, 5); size != 12 {
		t.Fatalf("truncated sb_to_string = %d, want full length 12", size)
	}
	if got := g.get(200, 5); got != "Hello" {
		t.Fatalf("truncated contents = %q", got)
	}

	g.call("sb_append_int", sb, api.EncodeI32(-5))
	ptr, n = g.put(48, ">")
	g.call("sb_insert", sb, 0, ptr, n)
	g.call("sb_reverse", sb)
	size = g.call("sb_to_string", sb, 100, 64)
	if got := g.get(100, uint32(size)); got != "5-dlroW ,olleH>" {
		t.Fatalf("after insert and reverse = %q", got)
	}
	g.noException()

	g.call("handle_release", sb)
	if n := h.Bridge().Table().Len(); n != 0 {
		t.Fatalf("live handles after release = %d", n)
	}
}

func TestHost_Reader(t *testing.T) {
	h, r := newHost(t)
	g := newGuest(t, h, r, "guest")

	rd := g.call("reader_new", toArgs(g.put(0, "abc"))...)
	if got := g.call("reader_read", rd); got != 'a' {
		t.Fatalf("reader_read = %d", got)
	}
	g.call("reader_mark", rd, 8)
	if got := g.call("reader_skip", rd, 1); got != 1 {
		t.Fatalf("reader_skip = %d", got)
	}
	g.call("reader_reset", rd)
	if got := g.call("reader_read", rd); got != 'b' {
		t.Fatalf("reader_read after reset = %d", got)
	}
	if g.call("reader_ready", rd) != 1 {
		t.Fatal("reader_ready = false with one unit left")
	}
	g.call("reader_read", rd)
	if got := api.DecodeI32(g.call("reader_read", rd)); got != -1 {
		t.Fatalf("reader_read at end = %d, want -1", got)
	}
	g.noException()

	g.call("reader_close", rd)
	g.call("reader_read", rd)
	if kind := g.call("exception_check"); kind != uint64(bridge.KindIO) {
		t.Fatalf("exception_check = %d, want IO", kind)
	}
	n := g.call("exception_message", 100, 256)
	if msg := g.get(100, uint32(n)); !strings.HasPrefix(msg, "java/io/IOException: ") {
		t.Fatalf("exception_message = %q", msg)
	}

	if h := g.call("sb_new"); h != 0 {
		t.Fatalf("sb_new with pending exception = %#x", h)
	}
	g.call("exception_clear")
	g.noException()
}

func TestHost_WriterAndFormat(t *testing.T) {
	h, r := newHost(t)
	g := newGuest(t, h, r, "guest")

	w := g.call("writer_new")
	ptr, n := g.put(0, "log:")
	g.call("writer_write", w, ptr, n)

	args := g.call("args_new")
	ptr, n = g.put(16, "x")
	g.call("args_string", args, ptr, n)
	g.call("args_int", args, api.EncodeI32(42))
	g.call("args_double", args, api.EncodeF64(1.5))
	g.call("args_bool", args, 1)
	g.call("args_long", args, api.EncodeI64(-3))

	fptr, flen := g.put(32, "%s=%05d %.2f %b %d")
	size := g.call("format", fptr, flen, args, 128, 64)
	if got := g.get(128, uint32(size)); got != "x=00042 1.50 true -3" {
		t.Fatalf("format = %q", got)
	}

	ptr, n = g.put(16, " done")
	g.call("writer_write", w, ptr, n)
	size = g.call("writer_to_string", w, 128, 64)
	if got := g.get(128, uint32(size)); got != "log: done" {
		t.Fatalf("writer_to_string = %q", got)
	}
	g.noException()

	fptr, flen = g.put(32, "%d %d %d %d %d %d")
	if size := g.call("format", fptr, flen, args, 128, 64); size != 0 {
		t.Fatalf("failing format returned %d", size)
	}
	if kind := g.call("exception_check"); kind != uint64(bridge.KindGeneric) {
		t.Fatalf("exception_check = %d, want Generic", kind)
	}
}

func TestHost_MemoryOutOfRange(t *testing.T) {
	h, r := newHost(t)
	g := newGuest(t, h, r, "guest")

	if sb := g.call("sb_new_string", 70000, 4); sb != 0 {
		t.Fatalf("sb_new_string out of range = %#x", sb)
	}
	if kind := g.call("exception_check"); kind != uint64(bridge.KindGeneric) {
		t.Fatalf("exception_check = %d, want Generic", kind)
	}
}

func TestHost_GuestIsolation(t *testing.T) {
	h, r := newHost(t)
	a := newGuest(t, h, r, "a")
	b := newGuest(t, h, r, "b")

	a.call("reader_read", 0)
	if a.call("exception_check") == 0 {
		t.Fatal("guest a has no exception after a null handle read")
	}
	b.noException()
	if h.Guests() != 2 {
		t.Fatalf("Guests = %d, want 2", h.Guests())
	}

	h.Forget(a.mod)
	a.noException()
}

func toArgs(ptr, n uint64) []uint64 { return []uint64{ptr, n} }

func TestHost_ClosedGuestsDropped(t *testing.T) {
	ctx := context.Background()
	h, r := newHost(t)
	a := newGuest(t, h, r, "a")
	b := newGuest(t, h, r, "b")
	a.call("sb_new")
	b.call("sb_new")
	if n := h.Guests(); n != 2 {
		t.Fatalf("Guests = %d, want 2", n)
	}

	if err := a.mod.Close(ctx); err != nil {
		t.Fatalf("close guest: %v", err)
	}
	if n := h.Guests(); n != 1 {
		t.Fatalf("Guests after close = %d, want 1", n)
	}

	c := newGuest(t, h, r, "c")
	c.call("sb_new")
	if n := h.Guests(); n != 2 {
		t.Fatalf("Guests = %d, want 2", n)
	}
}
