package asyncstate

import "fmt"

// actionKind enumerates the internal state transitions a Machine can apply.
type actionKind uint8

const (
	actionStarted actionKind = iota
	actionResolved
	actionRejected
	actionReset
)

func (k actionKind) String() string {
	switch k {
	case actionStarted:
		return "started"
	case actionResolved:
		return "resolved"
	case actionRejected:
		return "rejected"
	case actionReset:
		return "reset"
	default:
		return fmt.Sprintf("actionKind(%d)", uint8(k))
	}
}

type action[T any] struct {
	kind actionKind
	data T
	err  error
}

// reduce computes the next snapshot for an action. An unrecognized action
// kind is a programming error, not a recoverable condition, so it panics and
// leaves the current state untouched.
func reduce[T any](_ Snapshot[T], a action[T]) Snapshot[T] {
	switch a.kind {
	case actionStarted:
		return Snapshot[T]{Status: StatusPending}
	case actionResolved:
		return Snapshot[T]{Status: StatusResolved, Data: a.data}
	case actionRejected:
		return Snapshot[T]{Status: StatusRejected, Err: a.err}
	case actionReset:
		return Snapshot[T]{Status: StatusIdle}
	default:
		panic(fmt.Sprintf("asyncstate: unknown action kind %q", a.kind))
	}
}
