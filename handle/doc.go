// Package handle provides the process-wide handle table that names host
// objects for foreign code.
//
// Foreign code never holds a Go pointer. It holds a Handle, an opaque 64-bit
// token made of a slot index and a generation counter. Every crossing back
// into the bridge resolves the token through the table, which is the single
// place where stale or released references are detected.
//
// # Handle Table
//
//	table := handle.NewTable()
//
//	// Register a value, get a handle
//	h := table.Register(sb)
//
//	// Resolve it later; stale or released handles fail with ErrInvalidHandle
//	v, err := table.Resolve(h)
//
//	// Release is idempotent
//	table.Release(h)
//	table.Release(h)
//
// # Generations
//
// A slot is reused after release, but its generation is bumped, so a handle
// kept past its release never resolves to the slot's next occupant:
//
//	h1 := table.Register("a")
//	table.Release(h1)
//	h2 := table.Register("b") // may reuse h1's slot
//	_, err := table.Resolve(h1) // invalid_handle: released or stale
//
// # Typed Handles
//
// Each registration may carry a type ID, and ResolveTyped rejects handles
// that name a different kind of object:
//
//	h := table.RegisterTyped(TypeReader, r)
//	v, err := table.ResolveTyped(h, TypeWriter) // type_mismatch
//
// # Weak Registration
//
// RegisterWeak holds only a weak reference. Once the object is collected the
// slot is released by a runtime cleanup and the handle stops resolving.
//
// # Concurrency
//
// The table is split into shards, each guarded by its own lock, and new
// registrations are spread across shards round-robin. All operations are safe
// for concurrent use.
package handle
