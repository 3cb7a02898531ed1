package core

import (
	"sync"
	"sync/atomic"
)

// Task wraps a Future into a schedulable unit.
//
// A task is shared between the ready queue, the run loop and any outstanding
// Wakers; the pointer is the shared handle and the garbage collector provides
// the last-holder-destroys semantics. The mutex guarantees at most one poll
// is in flight at any instant, even if a defensive caller polls off-loop.
type Task struct {
	mu        sync.Mutex // guards future; at most one poll in flight
	future    Future
	completed atomic.Bool
	ready     *readyQueue
	active    *activeCounter
}

// spawnTask wraps f in a new task and immediately enqueues it.
// The caller (Executor.Spawn) has already incremented the active counter.
func spawnTask(f Future, ready *readyQueue, active *activeCounter) *Task {
	t := &Task{future: f, ready: ready, active: active}
	ready.Push(t)
	return t
}

// poll advances the wrapped future by exactly one step.
//
// Polling a completed task is a fatal programming error: it means the run
// loop's contract was broken, so this panics rather than returning an error.
// On Ready the completion flag is set and the active counter is decremented,
// exactly once. On Pending the task takes no scheduling action of its own;
// re-enqueueing happens only through the Waker handed to the future.
// Unconditionally re-enqueueing pending tasks would spin the run loop until
// the wake fires, defeating the point of suspending.
func (t *Task) poll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.completed.Load() {
		panic("coopexec: task polled after completion")
	}

	if t.future.Poll(Waker{task: t}) == Ready {
		t.completed.Store(true)
		t.future = nil // the task may outlive the computation via late wakes
		t.active.dec()
	}
}

func (t *Task) isCompleted() bool {
	return t.completed.Load()
}

// schedule re-enqueues the task; called by Waker.Wake from any goroutine.
// Completed tasks are not enqueued. If completion races this check the push
// still happens, and the run loop discards the completed task on pop.
func (t *Task) schedule() {
	if t.completed.Load() {
		return
	}
	t.ready.Push(t)
}
