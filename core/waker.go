package core

// A Waker is the resumption capability handed to Future.Poll.
//
// Invoking Wake re-enqueues the bound task onto its executor's ready queue so
// the run loop polls it again. Wakers are plain values: copying one is the
// "clone" operation, and every copy wakes the same task. They may be invoked
// from any goroutine (timer goroutines, connection acceptors, anything), any
// number of times, before or after the task completes.
//
// The zero Waker is valid and wakes nothing; BlockOn uses it.
type Waker struct {
	task *Task
}

// Wake re-enqueues the bound task for another poll.
//
// Waking a task that has already completed is a no-op. Waking a task whose
// executor has stopped is silently dropped. A wake that races completion may
// still enqueue the task; the run loop drops completed tasks without polling
// them, so the race is harmless.
func (w Waker) Wake() {
	if w.task == nil {
		return
	}
	w.task.schedule()
}

// WillWake reports whether other would wake the same task as w.
// Delays use this to avoid re-storing an equivalent handle on every poll.
func (w Waker) WillWake(other Waker) bool {
	return w.task == other.task
}
