package bridge

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/format"
	"github.com/wippyai/hostbridge/handle"
)

// Env is the per-call view of the bridge and holds the calling thread's
// pending exception. An Env must not be used by more than one goroutine.
type Env struct {
	bridge  *Bridge
	pending *Exception
	sig     *Signature
}

// Bridge returns the bridge the Env belongs to.
func (e *Env) Bridge() *Bridge { return e.bridge }

// Throw raises an exception of kind k. If an exception is already pending
// the first one is kept. Inside Invoke a checked kind the signature does
// not declare is raised as Generic.
func (e *Env) Throw(k Kind, msg string) {
	if e.pending != nil {
		e.bridge.log.Debug("exception already pending, dropping new one",
			zap.Stringer("pending", e.pending.Kind),
			zap.Stringer("dropped", k),
			zap.String("message", msg))
		return
	}
	if _, ok := kindNames[k]; !ok {
		k = KindGeneric
	}
	if e.sig != nil && !e.sig.Declares(k) {
		e.bridge.log.Debug("undeclared exception kind raised as generic",
			zap.String("call", e.sig.Name),
			zap.Stringer("kind", k))
		k = KindGeneric
	}
	e.pending = &Exception{Kind: k, Message: msg}
	e.bridge.raised.Add(1)
}

// Throwf raises an exception with a message rendered by the format engine.
// If the format itself fails, the raw format string is used.
func (e *Env) Throwf(k Kind, fmt string, args ...any) {
	msg, err := format.Sprintf(fmt, args...)
	if err != nil {
		e.bridge.log.Debug("exception message format failed", zap.String("format", fmt), zap.Error(err))
		msg = fmt
	}
	e.Throw(k, msg)
}

// ThrowError raises err as the exception kind KindForError maps it to.
func (e *Env) ThrowError(err error) {
	if err == nil {
		return
	}
	var ex *Exception
	if errors.As(err, &ex) {
		e.Throw(ex.Kind, ex.Message)
		return
	}
	e.Throw(KindForError(err), err.Error())
}

// ExceptionCheck reports whether an exception is pending.
func (e *Env) ExceptionCheck() bool { return e.pending != nil }

// ExceptionOccurred returns the pending exception, or nil.
func (e *Env) ExceptionOccurred() *Exception { return e.pending }

// ExceptionClear drops the pending exception.
func (e *Env) ExceptionClear() { e.pending = nil }

// Err returns the pending exception as an error, or nil.
func (e *Env) Err() error {
	if e.pending == nil {
		return nil
	}
	return e.pending
}

func (e *Env) pendingErr() error {
	return errors.New(errors.PhaseBridge, errors.KindPendingException).
		Cause(e.pending).
		Detail("host access with a pending %s", e.pending.Kind.HostType()).
		Build()
}

// Resolve returns the host object named by h. It fails while an exception
// is pending.
func (e *Env) Resolve(h handle.Handle) (any, error) {
	if e.pending != nil {
		return nil, e.pendingErr()
	}
	return e.bridge.table.Resolve(h)
}

// NewRef registers v and returns its handle. It returns the null handle
// while an exception is pending.
func (e *Env) NewRef(v any) handle.Handle {
	return e.register(TypeObject, v)
}

// DeleteRef releases h. Releasing an unknown handle is a no-op.
func (e *Env) DeleteRef(h handle.Handle) {
	e.bridge.table.Release(h)
}

func (e *Env) register(typeID uint32, v any) handle.Handle {
	if e.pending != nil {
		return handle.Null
	}
	h := e.bridge.table.RegisterTyped(typeID, v)
	if h.IsNull() {
		e.Throw(KindGeneric, "bridge is closed")
	}
	return h
}

// lookup resolves h and asserts it to T, raising on failure.
func lookup[T any](e *Env, h handle.Handle) (T, bool) {
	var zero T
	if e.pending != nil {
		return zero, false
	}
	v, err := handle.ResolveAs[T](e.bridge.table, h)
	if err != nil {
		e.ThrowError(err)
		return zero, false
	}
	return v, true
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
