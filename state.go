package asyncstate

// Status identifies which variant of the asynchronous lifecycle a Snapshot
// currently holds.
type Status string

const (
	// StatusIdle means no operation has been started yet.
	StatusIdle Status = "idle"
	// StatusPending means an operation has been started and has not settled.
	StatusPending Status = "pending"
	// StatusResolved means the last settled operation succeeded.
	StatusResolved Status = "resolved"
	// StatusRejected means the last settled operation failed.
	StatusRejected Status = "rejected"
)

// Snapshot is an immutable view of an asynchronous operation's state.
//
// Exactly one variant is active at a time: Data carries a meaningful value
// only when Status is StatusResolved, and Err is non-nil only when Status is
// StatusRejected.
type Snapshot[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Idle reports whether no operation has been started.
func (s Snapshot[T]) Idle() bool { return s.Status == StatusIdle }

// Pending reports whether an operation is in flight.
func (s Snapshot[T]) Pending() bool { return s.Status == StatusPending }

// Resolved reports whether the last operation succeeded.
func (s Snapshot[T]) Resolved() bool { return s.Status == StatusResolved }

// Rejected reports whether the last operation failed.
func (s Snapshot[T]) Rejected() bool { return s.Status == StatusRejected }
