// Package wasmhost exposes the bridge to WebAssembly guests as the wazero
// host module "xjni".
//
// Guests pass strings as (ptr, len) pairs of UTF-8 in their exported
// memory and receive strings by passing a (buf, cap) pair: the host writes
// at most cap bytes and returns the full length, so a guest can retry with
// a larger buffer. Handles travel as i64.
//
// Each guest module instance gets its own bridge.Env, so an exception one
// guest raises is only visible to that guest through exception_check and
// exception_message.
package wasmhost
