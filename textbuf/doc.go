// Package textbuf implements the host's mutable text buffers.
//
// Text is stored as UTF-16 code units so that lengths, offsets and search
// positions agree with the host runtime. Two variants share one data model:
//
//   - Builder has no synchronization; sharing one across goroutines is a race
//     the caller accepts.
//   - Buffer serializes every call with a mutex, so concurrent mutations are
//     totally ordered and each call is atomic. Locked runs a compound
//     operation under the same lock.
//
// Capacity follows the host policy: a new buffer holds 16 units, a buffer
// created from a string holds its length plus 16, and growth takes
// old*2+2 or the required size, whichever is larger.
//
// Operations that the host reports as index failures return errors of kind
// out_of_bounds; IndexOf and LastIndexOf return NotFound when there is no
// match.
package textbuf
