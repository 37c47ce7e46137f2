// Package errors provides structured error types for the host bridge.
//
// Errors are categorized by Phase (which bridge component detected the failure)
// and Kind (which contract was violated). The Error type carries the offending
// path, the Go and host type names, the offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseFormat, errors.KindFormatTypeMismatch).
//		Path("directive[2]").
//		GoType("string").
//		HostType("d").
//		Detail("integer conversion applied to a string").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidHandle(errors.PhaseHandle, h, "released")
//	err := errors.OutOfBounds(errors.PhaseBuffer, path, 10, 5)
//
// Every kind has a phase-independent sentinel, so callers can branch on the
// violated contract without caring which component reported it:
//
//	if errors.Is(err, errors.ErrMarkNotSet) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
