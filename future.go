package asyncstate

import "context"

// Future represents the eventual result of an asynchronous operation.
// A Future settles exactly once, either with a value or with an error.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

// Go executes fn in its own goroutine and immediately returns a Future that
// settles when fn returns. A non-nil error settles the Future as rejected.
//
// If ctx is already cancelled when Go is called, fn is never invoked and the
// Future settles with the context error.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents doing work nobody can observe when the context
		// is pre-cancelled.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.result, f.err = fn(ctx)
	}()

	return f
}

// Resolve returns an already-settled Future carrying v.
func Resolve[T any](v T) *Future[T] {
	f := &Future[T]{result: v, done: make(chan struct{})}
	close(f.done)
	return f
}

// Reject returns an already-settled Future carrying err.
func Reject[T any](err error) *Future[T] {
	f := &Future[T]{err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// Await blocks until the Future settles and returns its result and error.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// Done returns a channel that is closed when the Future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the Future has settled, without blocking.
func (f *Future[T]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
