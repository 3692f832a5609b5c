package asyncstate

import "sync"

// watcher is a single Watch subscription: a buffered channel that drops
// snapshots instead of blocking the machine when the consumer falls behind.
type watcher[T any] struct {
	mu     sync.Mutex
	ch     chan Snapshot[T]
	closed bool
}

func newWatcher[T any](buffer int) *watcher[T] {
	return &watcher[T]{ch: make(chan Snapshot[T], buffer)}
}

func (w *watcher[T]) send(s Snapshot[T]) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}

	select {
	case w.ch <- s:
		return true
	default:
		// Slow consumer: newer snapshots supersede the one being dropped.
		return false
	}
}

func (w *watcher[T]) close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.closed {
		w.closed = true
		close(w.ch)
	}
}
