package asyncstate

import (
	"context"
	"log/slog"
	"sync"
)

// Factory produces the future for one run of an operation. Returning nil
// means there is nothing to do (for example, no valid input yet) and the
// machine state is left untouched.
type Factory[T any] func() *Future[T]

// Machine tracks the lifecycle of a single asynchronous operation as a
// tagged-union Snapshot: idle until the first run, pending while a future is
// in flight, then resolved or rejected once it settles.
//
// All state mutation funnels through an internal reducer guarded by a
// SafeDispatcher, so results settling after Close are dropped rather than
// mutating a torn-down machine.
//
// Overlapping runs are intentionally not de-duplicated or cancelled: each
// settling future dispatches its own result and the last write wins. Callers
// that need stricter ordering must serialize their runs.
type Machine[T any] struct {
	mu       sync.Mutex
	snap     Snapshot[T]
	watchers map[*watcher[T]]struct{}
	buffer   int
	log      *slog.Logger
	closed   bool

	disp *SafeDispatcher[action[T]]
}

// Option configures a Machine during construction.
type Option[T any] func(*Machine[T])

// WithLogger attaches a logger for Debug-level transition logging.
// A nil logger is ignored.
func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(m *Machine[T]) {
		if log != nil {
			m.log = log
		}
	}
}

// WithInitial seeds the machine with already-resolved data, skipping the
// idle state. Useful when a cached value is available at construction time.
func WithInitial[T any](data T) Option[T] {
	return func(m *Machine[T]) {
		m.snap = Snapshot[T]{Status: StatusResolved, Data: data}
	}
}

// WithBuffer sets the channel buffer depth handed out by Watch.
// Values below 1 are raised to 1 to keep deliveries non-blocking.
func WithBuffer[T any](n int) Option[T] {
	return func(m *Machine[T]) {
		m.buffer = max(n, 1)
	}
}

// New creates an idle Machine.
func New[T any](opts ...Option[T]) *Machine[T] {
	m := &Machine[T]{
		snap:     Snapshot[T]{Status: StatusIdle},
		watchers: make(map[*watcher[T]]struct{}),
		buffer:   1,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.disp = NewSafeDispatcher(m.apply)

	return m
}

// Snapshot returns the current state. The returned value is a copy and stays
// valid after further transitions.
func (m *Machine[T]) Snapshot() Snapshot[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Run starts the operation produced by f. A nil factory, or a factory that
// yields no future, is a no-op. Otherwise the machine transitions to pending
// immediately; when the future settles, the result is dispatched through the
// liveness guard as resolved or rejected.
//
// Run returns without waiting for the future. It never blocks on the
// operation itself.
func (m *Machine[T]) Run(f Factory[T]) {
	if f == nil {
		return
	}

	fut := f()
	if fut == nil {
		return
	}

	m.disp.Dispatch(action[T]{kind: actionStarted})

	go func() {
		data, err := fut.Await()
		if err != nil {
			m.disp.Dispatch(action[T]{kind: actionRejected, err: err})
			return
		}
		m.disp.Dispatch(action[T]{kind: actionResolved, data: data})
	}()
}

// Reset returns the machine to the idle state, the recovery path after a
// rejection has been presented to the user. Futures still in flight are not
// cancelled and may overwrite the idle state when they settle.
func (m *Machine[T]) Reset() {
	m.disp.Dispatch(action[T]{kind: actionReset})
}

// Watch subscribes to state changes. Each transition is delivered to the
// returned channel non-blocking: if the subscriber falls behind, snapshots
// are dropped in favor of newer ones. The channel is closed when ctx is
// cancelled or the machine is closed; on a closed machine Watch returns an
// already-closed channel.
func (m *Machine[T]) Watch(ctx context.Context) <-chan Snapshot[T] {
	m.mu.Lock()

	if m.closed {
		m.mu.Unlock()
		w := newWatcher[T](m.buffer)
		w.close()
		return w.ch
	}

	w := newWatcher[T](m.buffer)
	m.watchers[w] = struct{}{}
	m.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			m.unwatch(w)
		}()
	}

	return w.ch
}

// Close tears the machine down: the liveness flag flips exactly once, watcher
// channels are closed, and any future settling afterwards is dropped by the
// dispatcher instead of mutating state. Close is idempotent and does not
// wait for in-flight operations; their work keeps running, only their results
// are suppressed.
func (m *Machine[T]) Close() error {
	// Detach first so no dispatch can slip in between the flag flip and the
	// watcher shutdown. Close on the dispatcher waits for in-flight applies.
	_ = m.disp.Close()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true

	watchers := m.watchers
	m.watchers = make(map[*watcher[T]]struct{})
	m.mu.Unlock()

	for w := range watchers {
		w.close()
	}

	return nil
}

// apply is the single mutation point behind the SafeDispatcher.
func (m *Machine[T]) apply(a action[T]) {
	m.mu.Lock()

	prev := m.snap
	next := reduce(prev, a)
	m.snap = next

	watchers := make([]*watcher[T], 0, len(m.watchers))
	for w := range m.watchers {
		watchers = append(watchers, w)
	}

	m.mu.Unlock()

	if m.log != nil {
		m.log.Debug("state transition",
			slog.String("action", a.kind.String()),
			slog.String("from", string(prev.Status)),
			slog.String("to", string(next.Status)),
		)
	}

	for _, w := range watchers {
		w.send(next)
	}
}

func (m *Machine[T]) unwatch(w *watcher[T]) {
	m.mu.Lock()
	delete(m.watchers, w)
	m.mu.Unlock()

	w.close()
}
