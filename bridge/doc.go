// Package bridge is the call boundary between native callers and host
// objects.
//
// A Bridge owns the process-wide handle table. Each call gets its own Env,
// the pending-exception slot of the calling thread. Operations on an Env
// resolve handles, act on host objects and report failure by raising an
// Exception into that slot. Once an exception is pending, every further
// host access through the Env fails and operations return zero values, so
// a call that raised returns without touching host objects again.
//
// Envs are never shared: Invoke creates a fresh one per call, which keeps an
// exception raised for one goroutine from surfacing in another.
//
// Lifecycle of the process singleton:
//
//	b, err := bridge.Init(bridge.WithLogger(log))
//	...
//	res := bridge.Invoke(b, sig, func(env *bridge.Env) string { ... })
//	...
//	bridge.Teardown()
package bridge
