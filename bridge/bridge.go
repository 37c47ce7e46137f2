package bridge

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/handle"
)

// Type IDs tag handles with the kind of host object they name.
const (
	TypeObject uint32 = iota + 1
	TypeStringBuilder
	TypeStringBuffer
	TypeStringReader
	TypeStringWriter
	TypeArray
	TypeArgList
)

const version = "1.0.8"

// Version returns the bridge library version.
func Version() string { return version }

// Bridge owns the handle table shared by every call.
type Bridge struct {
	table     *handle.Table
	log       *zap.Logger
	ownsTable bool
	closed    atomic.Bool
	calls     atomic.Uint64
	raised    atomic.Uint64
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger. The package logger is used otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}

// WithTable makes the bridge use an existing handle table. Close does not
// close a table supplied this way.
func WithTable(t *handle.Table) Option {
	return func(b *Bridge) {
		if t != nil {
			b.table = t
			b.ownsTable = false
		}
	}
}

// New creates a bridge with its own handle table.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		table:     handle.NewTable(),
		log:       Logger(),
		ownsTable: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewEnv returns a fresh Env with no pending exception and no signature.
func (b *Bridge) NewEnv() *Env {
	return &Env{bridge: b}
}

// Table returns the bridge's handle table.
func (b *Bridge) Table() *handle.Table { return b.table }

// Logger returns the bridge's logger.
func (b *Bridge) Logger() *zap.Logger { return b.log }

// Closed reports whether Close has been called.
func (b *Bridge) Closed() bool { return b.closed.Load() }

// Close releases every live handle of an owned table. It is idempotent.
func (b *Bridge) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	live := b.table.Len()
	var err error
	if b.ownsTable {
		err = b.table.Close()
	}
	b.log.Debug("bridge closed", zap.Int("live_handles", live))
	return err
}

// Stats is a snapshot of bridge counters.
type Stats struct {
	Calls  uint64
	Raised uint64
	Live   int
}

// Stats returns the current counters.
func (b *Bridge) Stats() Stats {
	return Stats{
		Calls:  b.calls.Load(),
		Raised: b.raised.Load(),
		Live:   b.table.Len(),
	}
}

var (
	defaultMu     sync.RWMutex
	defaultBridge *Bridge
)

// Init creates the process bridge. It fails if one is already live.
func Init(opts ...Option) (*Bridge, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBridge != nil {
		return nil, errors.InvalidInput(errors.PhaseBridge, "bridge already initialized")
	}
	defaultBridge = New(opts...)
	defaultBridge.log.Debug("bridge initialized", zap.String("version", version))
	return defaultBridge, nil
}

// Default returns the process bridge created by Init.
func Default() (*Bridge, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultBridge == nil {
		return nil, errors.New(errors.PhaseBridge, errors.KindClosed).
			Detail("bridge not initialized").
			Build()
	}
	return defaultBridge, nil
}

// Teardown closes the process bridge. A later Init starts a new one.
func Teardown() error {
	defaultMu.Lock()
	b := defaultBridge
	defaultBridge = nil
	defaultMu.Unlock()
	if b == nil {
		return nil
	}
	return b.Close()
}

// Result is the outcome of an invoked call: either a value or the
// exception the call raised.
type Result[T any] struct {
	Value  T
	Raised *Exception
}

// Ok reports whether the call returned normally.
func (r Result[T]) Ok() bool { return r.Raised == nil }

// Get returns the value, or the raised exception as an error.
func (r Result[T]) Get() (T, error) {
	if r.Raised != nil {
		var zero T
		return zero, r.Raised
	}
	return r.Value, nil
}

// Invoke runs fn as the entry point described by sig with a fresh Env.
// A panic inside fn is raised as Generic. When fn leaves an exception
// pending the result carries it and Value is the zero value.
func Invoke[T any](b *Bridge, sig Signature, fn func(env *Env) T) (res Result[T]) {
	env := &Env{bridge: b, sig: &sig}
	b.calls.Add(1)

	if b.closed.Load() {
		env.Throw(KindGeneric, "bridge is closed")
		res.Raised = env.pending
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic in bridge call",
				zap.String("call", sig.Name),
				zap.Any("panic", r),
				zap.Stack("stack"))
			env.Throw(KindGeneric, fmt.Sprint(r))
			res = Result[T]{Raised: env.pending}
		}
	}()

	v := fn(env)
	if env.pending != nil {
		return Result[T]{Raised: env.pending}
	}
	return Result[T]{Value: v}
}

// Run is Invoke for calls without a return value. It returns the raised
// exception, or nil.
func Run(b *Bridge, sig Signature, fn func(env *Env)) *Exception {
	return Invoke(b, sig, func(env *Env) struct{} {
		fn(env)
		return struct{}{}
	}).Raised
}
