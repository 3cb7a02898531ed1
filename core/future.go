package core

import "runtime"

// PollResult is the outcome of advancing a Future by one step.
type PollResult int

const (
	// Pending means the computation cannot make progress yet.
	// The Waker passed to Poll will be invoked when it can.
	Pending PollResult = iota

	// Ready means the computation has run to completion.
	Ready
)

// Future is a suspendable computation with no result value.
//
// Poll advances the computation by exactly one step. If it returns Pending,
// the computation must arrange for the supplied Waker (or an equivalent one
// from a later poll) to be invoked once it can make progress again; otherwise
// it is never polled again. If it returns Ready, it must never be polled
// again; doing so is a contract violation, not a recoverable condition.
//
// Poll is only ever called from a single goroutine (the executor's run loop,
// or the caller of BlockOn), so implementations do not need to make Poll
// itself safe for concurrent use. Anything shared with a background waker,
// like the stored handle in a delay, still needs synchronization.
type Future interface {
	Poll(w Waker) PollResult
}

// FutureFunc adapts a plain function to the Future interface.
type FutureFunc func(w Waker) PollResult

// Poll calls f(w).
func (f FutureFunc) Poll(w Waker) PollResult { return f(w) }

// Do returns a Future that calls f and completes.
func Do(f func()) Future {
	return FutureFunc(func(Waker) PollResult {
		f()
		return Ready
	})
}

// Never returns a Future that never completes and never wakes.
// A task polling it suspends forever; useful in tests and as a placeholder.
func Never() Future {
	return FutureFunc(func(Waker) PollResult { return Pending })
}

type chainFuture struct {
	steps []Future
	index int
}

// Chain returns a Future that works through steps in order.
//
// Each poll resumes the current step. When a step reports Ready, the chain
// immediately advances and polls the next step within the same call, so a
// sequence of already-elapsed delays resolves in a single poll.
func Chain(steps ...Future) Future {
	return &chainFuture{steps: steps}
}

func (c *chainFuture) Poll(w Waker) PollResult {
	for c.index < len(c.steps) {
		if c.steps[c.index].Poll(w) == Pending {
			return Pending
		}
		c.steps[c.index] = nil // release the completed step
		c.index++
	}
	return Ready
}

// BlockOn drives f to completion on the calling goroutine.
//
// It polls with a no-op Waker and yields between polls, so wake-ups are not
// needed for progress. This mirrors the run loop's busy/yield discipline and
// is intended for tests, examples and program edges, not for code running on
// an Executor.
func BlockOn(f Future) {
	var w Waker
	for f.Poll(w) == Pending {
		runtime.Gosched()
	}
}
