package core

import "sync"

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // don't compact if capacity is less than this
	compactShrinkFactor = 4  // trigger compaction when len < cap/4
)

// readyQueue is the unbounded multi-producer/single-consumer FIFO of tasks
// eligible for polling. Any goroutine may push (spawns, wakes from timer
// goroutines); only the run-loop goroutine pops.
type readyQueue struct {
	mu     sync.Mutex
	tasks  []*Task
	closed bool
}

func newReadyQueue() *readyQueue {
	return &readyQueue{tasks: make([]*Task, 0, defaultQueueCap)}
}

// Push appends t. Once the queue is closed the push is silently dropped:
// this is how wake attempts from timer goroutines that outlive the executor
// degrade gracefully.
func (q *readyQueue) Push(t *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.tasks = append(q.tasks, t)
}

// TryPop removes and returns the oldest task without blocking.
func (q *readyQueue) TryPop() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return nil, false
	}

	t := q.tasks[0]
	// Zero out the element in the underlying array to prevent memory leak
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	q.maybeCompactLocked()

	return t, true
}

// Close marks the queue as permanently done: subsequent pushes are dropped
// and, once drained, the run loop exits. Idempotent.
func (q *readyQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

func (q *readyQueue) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *readyQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func (q *readyQueue) maybeCompactLocked() {
	n := len(q.tasks)
	c := cap(q.tasks)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.tasks = make([]*Task, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]*Task, n, newCap)
	copy(newSlice, q.tasks)
	q.tasks = newSlice
}
