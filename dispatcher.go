package asyncstate

import "sync"

// SafeDispatcher wraps a state-mutation function with a liveness check so
// that dispatches issued after the owning scope is torn down become silent
// no-ops. It decouples the lifetime of asynchronous callbacks from the
// lifetime of the state they mutate: a callback that fires late is dropped
// instead of writing into a destroyed owner.
//
// A SafeDispatcher is alive from construction until Close. All methods are
// safe for concurrent use.
type SafeDispatcher[T any] struct {
	mu    sync.RWMutex
	alive bool
	fn    func(T)
}

// NewSafeDispatcher returns a live dispatcher forwarding to fn.
// Panics if fn is nil, following the fail-fast pattern for misconfiguration.
func NewSafeDispatcher[T any](fn func(T)) *SafeDispatcher[T] {
	if fn == nil {
		panic("asyncstate: NewSafeDispatcher called with nil function")
	}
	return &SafeDispatcher[T]{alive: true, fn: fn}
}

// Dispatch forwards v to the wrapped function while the dispatcher is alive.
// After Close the value is dropped without side effects. The return value
// reports whether the dispatch was delivered.
//
// The liveness check and the forwarded call happen under a shared read lock,
// so a concurrent Close waits for in-flight dispatches to finish; once Close
// returns, the wrapped function is guaranteed not to be invoked again.
func (d *SafeDispatcher[T]) Dispatch(v T) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.alive {
		return false
	}

	d.fn(v)
	return true
}

// Close detaches the dispatcher from the wrapped function. It is idempotent
// and safe to call from any goroutine; every teardown path may call it and
// only the first call performs the transition.
func (d *SafeDispatcher[T]) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.alive = false
	return nil
}

// Alive reports whether dispatches are still being forwarded.
func (d *SafeDispatcher[T]) Alive() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.alive
}
