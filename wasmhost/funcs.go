package wasmhost

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/hostbridge/bridge"
	"github.com/wippyai/hostbridge/format"
	"github.com/wippyai/hostbridge/handle"
)

const (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
	f64 = api.ValueTypeF64
)

type hostFunc struct {
	fn      api.GoModuleFunc
	params  []api.ValueType
	results []api.ValueType
}

func vals(ts ...api.ValueType) []api.ValueType { return ts }

// op wraps an operation with the caller's Env. A Go panic is raised as
// Generic in the guest's Env instead of trapping.
func (h *Host) op(name string, params []api.ValueType, results []api.ValueType, fn func(env *bridge.Env, mod api.Module, stack []uint64)) hostFunc {
	return hostFunc{
		params:  params,
		results: results,
		fn: func(_ context.Context, mod api.Module, stack []uint64) {
			env := h.Env(mod)
			defer func() {
				if r := recover(); r != nil {
					h.log.Error("panic in host function", zap.String("func", name), zap.Any("panic", r))
					env.Throw(bridge.KindGeneric, fmt.Sprint(r))
					for i := range results {
						stack[i] = 0
					}
				}
			}()
			fn(env, mod, stack)
		},
	}
}

func u32(v uint64) uint32 { return api.DecodeU32(v) }

func boolVal(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func (h *Host) functions() map[string]hostFunc {
	fs := map[string]hostFunc{}
	def := func(name string, params, results []api.ValueType, fn func(env *bridge.Env, mod api.Module, stack []uint64)) {
		fs[name] = h.op(name, params, results, fn)
	}

	def("handle_release", vals(i64), nil, func(env *bridge.Env, _ api.Module, stack []uint64) {
		env.DeleteRef(handle.Handle(stack[0]))
	})

	// string builders
	def("sb_new", nil, vals(i64), func(env *bridge.Env, _ api.Module, stack []uint64) {
		stack[0] = uint64(env.NewStringBuilder())
	})
	def("sb_new_string", vals(i32, i32), vals(i64), func(env *bridge.Env, mod api.Module, stack []uint64) {
		s, ok := h.readString(env, mod, u32(stack[0]), u32(stack[1]))
		if !ok {
			stack[0] = 0
			return
		}
		stack[0] = uint64(env.NewStringBuilderString(s))
	})
	def("sb_append", vals(i64, i32, i32), vals(i64), func(env *bridge.Env, mod api.Module, stack []uint64) {
		sb := handle.Handle(stack[0])
		s, ok := h.readString(env, mod, u32(stack[1]), u32(stack[2]))
		if !ok {
			stack[0] = 0
			return
		}
		stack[0] = uint64(env.Append(sb, s))
	})
	def("sb_append_int", vals(i64, i32), vals(i64), func(env *bridge.Env, _ api.Module, stack []uint64) {
		stack[0] = uint64(env.AppendInt(handle.Handle(stack[0]), api.DecodeI32(stack[1])))
	})
	def("sb_insert", vals(i64, i32, i32, i32), vals(i64), func(env *bridge.Env, mod api.Module, stack []uint64) {
		sb, off := handle.Handle(stack[0]), int(api.DecodeI32(stack[1]))
		s, ok := h.readString(env, mod, u32(stack[2]), u32(stack[3]))
		if !ok {
			stack[0] = 0
			return
		}
		stack[0] = uint64(env.Insert(sb, off, s))
	})
	def("sb_index_of", vals(i64, i32, i32), vals(i32), func(env *bridge.Env, mod api.Module, stack []uint64) {
		sb := handle.Handle(stack[0])
		s, ok := h.readString(env, mod, u32(stack[1]), u32(stack[2]))
		if !ok {
			stack[0] = api.EncodeI32(-1)
			return
		}
		stack[0] = api.EncodeI32(int32(env.IndexOf(sb, s)))
	})
	def("sb_reverse", vals(i64), vals(i64), func(env *bridge.Env, _ api.Module, stack []uint64) {
		stack[0] = uint64(env.Reverse(handle.Handle(stack[0])))
	})
	def("sb_length", vals(i64), vals(i32), func(env *bridge.Env, _ api.Module, stack []uint64) {
		stack[0] = api.EncodeI32(int32(env.Length(handle.Handle(stack[0]))))
	})
	def("sb_to_string", vals(i64, i32, i32), vals(i32), func(env *bridge.Env, mod api.Module, stack []uint64) {
		s := env.ToString(handle.Handle(stack[0]))
		if env.ExceptionCheck() {
			stack[0] = 0
			return
		}
		stack[0] = api.EncodeU32(h.writeString(env, mod, u32(stack[1]), u32(stack[2]), s))
	})

	// readers
	def("reader_new", vals(i32, i32), vals(i64), func(env *bridge.Env, mod api.Module, stack []uint64) {
		s, ok := h.readString(env, mod, u32(stack[0]), u32(stack[1]))
		if !ok {
			stack[0] = 0
			return
		}
		stack[0] = uint64(env.NewStringReader(s))
	})
	def("reader_read", vals(i64), vals(i32), func(env *bridge.Env, _ api.Module, stack []uint64) {
		stack[0] = api.EncodeI32(int32(env.ReaderRead(handle.Handle(stack[0]))))
	})
	def("reader_skip", vals(i64, i64), vals(i64), func(env *bridge.Env, _ api.Module, stack []uint64) {
		stack[0] = api.EncodeI64(env.ReaderSkip(handle.Handle(stack[0]), int64(stack[1])))
	})
	def("reader_ready", vals(i64), vals(i32), func(env *bridge.Env, _ api.Module, stack []uint64) {
		stack[0] = boolVal(env.ReaderReady(handle.Handle(stack[0])))
	})
	def("reader_mark", vals(i64, i32), nil, func(env *bridge.Env, _ api.Module, stack []uint64) {
		env.ReaderMark(handle.Handle(stack[0]), int(api.DecodeI32(stack[1])))
	})
	def("reader_reset", vals(i64), nil, func(env *bridge.Env, _ api.Module, stack []uint64) {
		env.ReaderReset(handle.Handle(stack[0]))
	})
	def("reader_close", vals(i64), nil, func(env *bridge.Env, _ api.Module, stack []uint64) {
		env.ReaderClose(handle.Handle(stack[0]))
	})

	// writers
	def("writer_new", nil, vals(i64), func(env *bridge.Env, _ api.Module, stack []uint64) {
		stack[0] = uint64(env.NewStringWriter())
	})
	def("writer_write", vals(i64, i32, i32), nil, func(env *bridge.Env, mod api.Module, stack []uint64) {
		if s, ok := h.readString(env, mod, u32(stack[1]), u32(stack[2])); ok {
			env.WriterWrite(handle.Handle(stack[0]), s)
		}
	})
	def("writer_to_string", vals(i64, i32, i32), vals(i32), func(env *bridge.Env, mod api.Module, stack []uint64) {
		s := env.ToString(handle.Handle(stack[0]))
		if env.ExceptionCheck() {
			stack[0] = 0
			return
		}
		stack[0] = api.EncodeU32(h.writeString(env, mod, u32(stack[1]), u32(stack[2]), s))
	})

	// format arguments
	def("args_new", nil, vals(i64), func(env *bridge.Env, _ api.Module, stack []uint64) {
		stack[0] = uint64(env.NewArgList())
	})
	def("args_int", vals(i64, i32), nil, func(env *bridge.Env, _ api.Module, stack []uint64) {
		env.ArgsAppend(handle.Handle(stack[0]), format.Int(api.DecodeI32(stack[1])))
	})
	def("args_long", vals(i64, i64), nil, func(env *bridge.Env, _ api.Module, stack []uint64) {
		env.ArgsAppend(handle.Handle(stack[0]), format.Long(int64(stack[1])))
	})
	def("args_double", vals(i64, f64), nil, func(env *bridge.Env, _ api.Module, stack []uint64) {
		env.ArgsAppend(handle.Handle(stack[0]), format.Double(api.DecodeF64(stack[1])))
	})
	def("args_bool", vals(i64, i32), nil, func(env *bridge.Env, _ api.Module, stack []uint64) {
		env.ArgsAppend(handle.Handle(stack[0]), format.Bool(api.DecodeI32(stack[1]) != 0))
	})
	def("args_string", vals(i64, i32, i32), nil, func(env *bridge.Env, mod api.Module, stack []uint64) {
		if s, ok := h.readString(env, mod, u32(stack[1]), u32(stack[2])); ok {
			env.ArgsAppend(handle.Handle(stack[0]), format.String(s))
		}
	})
	def("format", vals(i32, i32, i64, i32, i32), vals(i32), func(env *bridge.Env, mod api.Module, stack []uint64) {
		f, ok := h.readString(env, mod, u32(stack[0]), u32(stack[1]))
		if !ok {
			stack[0] = 0
			return
		}
		s := env.SprintfArgs(f, handle.Handle(stack[2]))
		if env.ExceptionCheck() {
			stack[0] = 0
			return
		}
		stack[0] = api.EncodeU32(h.writeString(env, mod, u32(stack[3]), u32(stack[4]), s))
	})

	// exceptions
	def("exception_check", nil, vals(i32), func(env *bridge.Env, _ api.Module, stack []uint64) {
		if ex := env.ExceptionOccurred(); ex != nil {
			stack[0] = uint64(ex.Kind)
			return
		}
		stack[0] = 0
	})
	def("exception_message", vals(i32, i32), vals(i32), func(env *bridge.Env, mod api.Module, stack []uint64) {
		ex := env.ExceptionOccurred()
		if ex == nil {
			stack[0] = 0
			return
		}
		stack[0] = api.EncodeU32(h.writeString(env, mod, u32(stack[0]), u32(stack[1]), ex.Error()))
	})
	def("exception_clear", nil, nil, func(env *bridge.Env, _ api.Module, _ []uint64) {
		env.ExceptionClear()
	})

	return fs
}
