package wasmhost

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/hostbridge/bridge"
)

// readString reads a UTF-8 string from guest memory, raising Generic on
// an out of range access.
func (h *Host) readString(env *bridge.Env, mod api.Module, ptr, n uint32) (string, bool) {
	if env.ExceptionCheck() {
		return "", false
	}
	if h.opts.MaxString > 0 && n > h.opts.MaxString {
		env.Throwf(bridge.KindGeneric, "string of %d bytes exceeds limit %d", int64(n), int64(h.opts.MaxString))
		return "", false
	}
	mem := mod.Memory()
	if mem == nil {
		env.Throw(bridge.KindGeneric, "guest exports no memory")
		return "", false
	}
	b, ok := mem.Read(ptr, n)
	if !ok {
		env.Throwf(bridge.KindGeneric, "memory read [%d, %d) out of range", int64(ptr), int64(ptr)+int64(n))
		return "", false
	}
	return string(b), true
}

// writeString copies at most limit bytes of s to guest memory at ptr and
// returns the full byte length of s.
func (h *Host) writeString(env *bridge.Env, mod api.Module, ptr, limit uint32, s string) uint32 {
	n := uint32(len(s))
	if limit == 0 {
		return n
	}
	out := s
	if uint32(len(out)) > limit {
		out = out[:limit]
	}
	mem := mod.Memory()
	if mem == nil || !mem.WriteString(ptr, out) {
		env.Throwf(bridge.KindGeneric, "memory write [%d, %d) out of range", int64(ptr), int64(ptr)+int64(len(out)))
		return 0
	}
	return n
}
