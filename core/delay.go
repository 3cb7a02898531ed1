package core

import (
	"sync"
	"time"
)

// delayFuture becomes ready only after a wall-clock deadline.
//
// On the first poll that finds the deadline still in the future, it stores
// the supplied Waker and spawns exactly one timer goroutine that sleeps out
// the deadline and then invokes the stored handle. The mutex guards the
// stored waker against the timer goroutine reading it while a later poll
// replaces it.
type delayFuture struct {
	mu        sync.Mutex
	deadline  time.Time
	waker     Waker
	armed     bool
	completed bool
}

// Delay returns a Future that suspends until d has elapsed, without blocking
// the executor goroutine. Each pending delay costs one timer goroutine; that
// trade is deliberate at this design's scale.
func Delay(d time.Duration) Future {
	return &delayFuture{deadline: time.Now().Add(d)}
}

func (f *delayFuture) Poll(w Waker) PollResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.completed {
		panic("coopexec: delay polled after completion")
	}

	// A deadline that has already passed resolves on this poll. On the first
	// poll this skips the timer goroutine entirely.
	if !time.Now().Before(f.deadline) {
		f.completed = true
		return Ready
	}

	if !f.armed {
		f.waker = w
		f.armed = true
		go f.timer()
	} else if !f.waker.WillWake(w) {
		// The run loop handed us a non-equivalent handle; the timer must
		// wake the task this delay currently belongs to.
		f.waker = w
	}

	return Pending
}

// timer sleeps out the deadline and invokes the stored wake handle. If the
// executor has stopped by then, the wake is dropped by the closed queue.
func (f *delayFuture) timer() {
	if d := time.Until(f.deadline); d > 0 {
		time.Sleep(d)
	}

	f.mu.Lock()
	w := f.waker
	f.mu.Unlock()

	w.Wake()
}
