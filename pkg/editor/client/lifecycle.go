package client

import "github.com/google/uuid"

// Phase is the externally observable state of one network operation.
type Phase int

const (
	// PhaseIdle means the operation has never been invoked.
	PhaseIdle Phase = iota
	// PhasePending means a request is in flight.
	PhasePending
	// PhaseSucceeded means the last invocation completed with a value.
	PhaseSucceeded
	// PhaseFailed means the last invocation completed with an error.
	PhaseFailed
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Lifecycle is a tagged variant tracking one network operation:
// Idle | Pending | Succeeded(T) | Failed(error). The UI shell keeps one
// Lifecycle value per operation to drive its loading indicators and
// message banners; because it is a single value, "is a request in
// flight" and "what was the last result" can never disagree.
//
// Lifecycle has value semantics. Each invocation starts a fresh
// lifecycle via Begin; invocations are independent and are neither
// queued nor de-duplicated.
type Lifecycle[T any] struct {
	phase     Phase
	value     T
	err       error
	attemptID string
}

// Begin returns a pending lifecycle with a fresh attempt ID for
// correlating logs and traces.
func Begin[T any]() Lifecycle[T] {
	return Lifecycle[T]{
		phase:     PhasePending,
		attemptID: uuid.NewString(),
	}
}

// Succeed returns the terminal succeeded state carrying the result.
func (l Lifecycle[T]) Succeed(v T) Lifecycle[T] {
	l.phase = PhaseSucceeded
	l.value = v
	l.err = nil
	return l
}

// Fail returns the terminal failed state carrying the error.
func (l Lifecycle[T]) Fail(err error) Lifecycle[T] {
	l.phase = PhaseFailed
	var zero T
	l.value = zero
	l.err = err
	return l
}

// Phase returns the variant tag.
func (l Lifecycle[T]) Phase() Phase {
	return l.phase
}

// Pending reports whether a request is in flight.
func (l Lifecycle[T]) Pending() bool {
	return l.phase == PhasePending
}

// Value returns the result and whether the lifecycle succeeded.
func (l Lifecycle[T]) Value() (T, bool) {
	if l.phase != PhaseSucceeded {
		var zero T
		return zero, false
	}
	return l.value, true
}

// Err returns the failure, or nil outside the failed state.
func (l Lifecycle[T]) Err() error {
	if l.phase != PhaseFailed {
		return nil
	}
	return l.err
}

// AttemptID returns the attempt correlation ID, or "" before Begin.
func (l Lifecycle[T]) AttemptID() string {
	return l.attemptID
}
