package handle

import (
	"fmt"
	"runtime"
	"weak"
)

type weakRef interface {
	get() any
}

type weakPtr[T any] struct {
	p weak.Pointer[T]
}

func (w weakPtr[T]) get() any {
	if v := w.p.Value(); v != nil {
		return v
	}
	return nil
}

// RegisterWeak registers p without keeping it alive. When p is collected its
// slot is released and the handle stops resolving.
func RegisterWeak[T any](t *Table, p *T) Handle {
	if p == nil {
		return Null
	}
	h := t.insert(0, nil, weakPtr[T]{p: weak.Make(p)})
	if h.IsNull() {
		return Null
	}
	runtime.AddCleanup(p, func(h Handle) { t.Release(h) }, h)
	return h
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
