// Package pool implements reusable-array object pools: one Worker per
// goroutine in the thread pool, each owning its own Mat pool (one
// free-list per matrix.Shape), EV-row pool, and sampled-World scratch
// pool, so hot-path option evaluation never allocates. Pools are never
// shared between goroutines; sharing one across threads is a caller bug,
// not a case this package guards against -- document the contract, do not
// pay for a runtime check on every hot-path call.
//
// Every Rent must be balanced by a Release; a rented Mat/row that is never
// released simply leaks (no different from forgetting to return a buffer
// to a sync.Pool) and is not detected at runtime.
package pool
