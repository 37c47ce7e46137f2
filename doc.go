// Package hostbridge connects native callers to a managed host object
// model: handles to host objects, array marshalling, UTF-16 text buffers and
// streams, a host-compatible formatter and a per-call exception slot.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	hostbridge/
//	├── handle/          Sharded generational handle table
//	├── marshal/         Host array <-> native view conversion
//	├── textbuf/         Growable UTF-16 text (builder and synchronized buffer)
//	├── textstream/      Character reader and writer over text
//	├── format/          Printf-style formatter with host semantics
//	├── textcodec/       Charset conversion and modified UTF-8
//	├── bridge/          Call boundary: Env, exceptions, handle-based operations
//	├── wasmhost/        The bridge as a wazero host module for wasm guests
//	├── errors/          Structured error types for debugging
//	└── cmd/xjni/        Command line front end
//
// # Quick Start
//
// Run a call against the process bridge:
//
//	b, err := bridge.Init()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bridge.Teardown()
//
//	sig := bridge.Signature{Name: "greet"}
//	s, err := bridge.Invoke(b, sig, func(env *bridge.Env) string {
//	    sb := env.NewStringBuilderString("Hello")
//	    defer env.DeleteRef(sb)
//	    env.Append(sb, ", World")
//	    return env.Sprintf("%s! (%d units)", sb, env.Length(sb))
//	}).Get()
//	fmt.Println(s) // "Hello, World! (12 units)"
//
// # Text Model
//
// Host text is a sequence of UTF-16 code units. Lengths, offsets and
// indexes are counted in code units, so a character outside the Basic
// Multilingual Plane occupies two positions. Go strings cross the boundary
// as UTF-8 and are converted on entry and exit.
//
// # Exceptions
//
// Failures inside a call raise an exception into the call's Env instead of
// returning errors. Once an exception is pending, every further host access
// in that call is refused, and the exception surfaces in the Result of
// Invoke. See package bridge for the exception kinds and their mapping from
// structured errors.
package hostbridge
