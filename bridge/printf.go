package bridge

import (
	"github.com/wippyai/hostbridge/format"
	"github.com/wippyai/hostbridge/handle"
	"github.com/wippyai/hostbridge/textbuf"
)

// Sprintf renders format with values. A handle.Handle value is resolved
// and formatted as the object it names; every other value is classified
// by format.Of. A format error raises Generic.
func (e *Env) Sprintf(fmt string, values ...any) string {
	if e.pending != nil {
		return ""
	}
	args := make([]format.Arg, len(values))
	for i, v := range values {
		h, ok := v.(handle.Handle)
		if !ok {
			args[i] = format.Of(v)
			continue
		}
		if h.IsNull() {
			args[i] = format.Null()
			continue
		}
		obj, err := e.bridge.table.Resolve(h)
		if err != nil {
			e.ThrowError(err)
			return ""
		}
		args[i] = argOf(obj)
	}
	return e.render(fmt, args)
}

// argOf classifies a resolved host object. Text objects format as their
// current contents.
func argOf(obj any) format.Arg {
	if t, ok := obj.(textbuf.Text); ok {
		return format.String(t.String())
	}
	return format.Of(obj)
}

func (e *Env) render(fmt string, args []format.Arg) string {
	spec, err := format.Parse(fmt)
	if err != nil {
		e.ThrowError(err)
		return ""
	}
	s, err := spec.Render(args)
	if err != nil {
		e.ThrowError(err)
		return ""
	}
	return s
}

// NewArgList creates an empty argument list.
func (e *Env) NewArgList() handle.Handle {
	return e.register(TypeArgList, format.NewArgList())
}

// ArgList returns the argument list named by h.
func (e *Env) ArgList(h handle.Handle) *format.ArgList {
	l, _ := lookup[*format.ArgList](e, h)
	return l
}

// ArgsAppend appends a to the list h and returns h.
func (e *Env) ArgsAppend(h handle.Handle, a format.Arg) handle.Handle {
	l, ok := lookup[*format.ArgList](e, h)
	if !ok {
		return handle.Null
	}
	l.Append(a)
	return h
}

// SprintfArgs renders format with the argument list h.
func (e *Env) SprintfArgs(fmt string, h handle.Handle) string {
	l, ok := lookup[*format.ArgList](e, h)
	if !ok {
		return ""
	}
	return e.render(fmt, l.Args())
}
