package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates which bridge component detected the error
type Phase string

const (
	PhaseHandle  Phase = "handle"  // handle table
	PhaseMarshal Phase = "marshal" // array marshalling
	PhaseBuffer  Phase = "buffer"  // text buffers
	PhaseStream  Phase = "stream"  // text readers and writers
	PhaseFormat  Phase = "format"  // format parsing and rendering
	PhaseBridge  Phase = "bridge"  // call boundary
	PhaseCodec   Phase = "codec"   // charset conversion
	PhaseHost    Phase = "host"    // guest host module
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidHandle       Kind = "invalid_handle"
	KindNullElement         Kind = "null_element"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindStreamClosed        Kind = "stream_closed"
	KindMarkNotSet          Kind = "mark_not_set"
	KindInvalidatedMark     Kind = "invalidated_mark"
	KindFormatFlagConflict  Kind = "format_flag_conflict"
	KindFormatTypeMismatch  Kind = "format_type_mismatch"
	KindFormatArgCount      Kind = "format_argument_count"
	KindFormatSyntax        Kind = "format_syntax"
	KindTypeMismatch        Kind = "type_mismatch"
	KindInvalidInput        Kind = "invalid_input"
	KindInvalidUTF8         Kind = "invalid_utf8"
	KindUnsupportedEncoding Kind = "unsupported_encoding"
	KindNotFound            Kind = "not_found"
	KindPendingException    Kind = "pending_exception"
	KindClosed              Kind = "closed"
)

// Phase-independent sentinels. errors.Is(err, ErrX) matches any phase.
var (
	ErrInvalidHandle       = &Error{Kind: KindInvalidHandle}
	ErrNullElement         = &Error{Kind: KindNullElement}
	ErrIndexOutOfRange     = &Error{Kind: KindOutOfBounds}
	ErrStreamClosed        = &Error{Kind: KindStreamClosed}
	ErrMarkNotSet          = &Error{Kind: KindMarkNotSet}
	ErrInvalidatedMark     = &Error{Kind: KindInvalidatedMark}
	ErrFormatFlagConflict  = &Error{Kind: KindFormatFlagConflict}
	ErrFormatTypeMismatch  = &Error{Kind: KindFormatTypeMismatch}
	ErrFormatArgCount      = &Error{Kind: KindFormatArgCount}
	ErrFormatSyntax        = &Error{Kind: KindFormatSyntax}
	ErrTypeMismatch        = &Error{Kind: KindTypeMismatch}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrInvalidUTF8         = &Error{Kind: KindInvalidUTF8}
	ErrUnsupportedEncoding = &Error{Kind: KindUnsupportedEncoding}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrPendingException    = &Error{Kind: KindPendingException}
	ErrClosed              = &Error{Kind: KindClosed}
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	HostType string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.HostType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.HostType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", host type ")
			b.WriteString(e.HostType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("host type ")
			b.WriteString(e.HostType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.HostType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && e.Phase != t.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the offending path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// HostType sets the host type or conversion name
func (b *Builder) HostType(t string) *Builder {
	b.err.HostType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidHandle creates an invalid handle error
func InvalidHandle(phase Phase, handle uint64, reason string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("handle %#x is %s", handle, reason),
		Value:  handle,
	}
}

// NullElement creates a null element error
func NullElement(phase Phase, path []string, index int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullElement,
		Path:   path,
		Detail: fmt.Sprintf("element %d is null", index),
		Value:  index,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// RangeOutOfBounds creates an out of bounds error for a [start, end) range
func RangeOutOfBounds(phase Phase, path []string, start, end, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("range [%d, %d) out of bounds (length %d)", start, end, length),
		Value:  start,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, hostType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		HostType: hostType,
	}
}

// InvalidUTF8 creates a malformed text error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not found error
func NotFound(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Path:   path,
		Detail: fmt.Sprintf("%s not found", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Is is errors.Is, re-exported so callers need a single import.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is errors.As, re-exported so callers need a single import.
func As(err error, target any) bool { return errors.As(err, target) }
