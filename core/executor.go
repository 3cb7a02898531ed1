package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// activeCounter tracks tasks spawned but not yet completed.
// Incremented by Spawn, decremented exactly once when a task completes.
type activeCounter struct {
	mu sync.Mutex
	n  int
}

func (c *activeCounter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *activeCounter) dec() {
	c.mu.Lock()
	c.n--
	c.mu.Unlock()
}

func (c *activeCounter) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// ExecutorStats is a point-in-time snapshot of executor state,
// consumed by observability adapters.
type ExecutorStats struct {
	// Active is the number of tasks spawned but not yet completed.
	Active int

	// Queued is the current depth of the ready queue.
	Queued int

	// Stopped reports whether Stop has been requested.
	Stopped bool
}

// Executor runs suspendable computations to completion on a single
// run-loop goroutine, without a goroutine-per-task model.
//
// Tasks may be spawned from any goroutine, before or during Run. The run
// loop pops ready tasks and polls them; a pending task suspends and is
// re-enqueued later by its Waker (commonly from a delay's timer goroutine).
// Stop may be called from any goroutine to terminate the loop.
type Executor struct {
	ready    *readyQueue
	stop     chan struct{}
	stopOnce sync.Once
	active   *activeCounter
	running  atomic.Bool
	logger   Logger
	metrics  Metrics
}

// Option configures an Executor at construction time.
type Option func(*Executor)

// WithLogger sets the executor's logger. Nil is ignored.
func WithLogger(logger Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics sets the executor's metrics sink. Nil is ignored.
func WithMetrics(metrics Metrics) Option {
	return func(e *Executor) {
		if metrics != nil {
			e.metrics = metrics
		}
	}
}

// New creates an Executor with an empty ready queue, an unsignaled stop
// channel and an active-task counter at zero.
func New(opts ...Option) *Executor {
	e := &Executor{
		ready:   newReadyQueue(),
		stop:    make(chan struct{}),
		active:  &activeCounter{},
		logger:  NewDefaultLogger(),
		metrics: NewNoOpMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Spawn wraps f in a task and enqueues it for execution.
// Safe to call from any goroutine, before or during Run.
func (e *Executor) Spawn(f Future) {
	e.active.inc()
	spawnTask(f, e.ready, e.active)

	e.metrics.RecordTaskSpawned()
	e.metrics.RecordActiveTasks(e.active.value())
	e.metrics.RecordQueueDepth(e.ready.Len())
}

// Run executes the run loop on the calling goroutine until Stop is observed
// or the ready queue is closed and drained. Intended to be invoked on its
// own dedicated goroutine.
//
// The loop never blocks: when the queue is empty it yields the processor and
// retries. Each Executor supports exactly one Run call for its lifetime; a
// second call panics.
func (e *Executor) Run() {
	if !e.running.CompareAndSwap(false, true) {
		panic("coopexec: Run called twice on the same executor")
	}

	for {
		select {
		case <-e.stop:
			e.logger.Info("executor stopped",
				F("reason", "stop requested"),
				F("active", e.active.value()))
			return
		default:
		}

		task, ok := e.ready.TryPop()
		if !ok {
			if e.ready.IsClosed() {
				e.logger.Info("executor stopped", F("reason", "queue closed"))
				return
			}
			runtime.Gosched()
			continue
		}

		// A wake can race completion or arrive after it. Dropping the stale
		// entry here keeps poll's completed-task panic for real defects only.
		if task.isCompleted() {
			continue
		}

		start := time.Now()
		task.poll()
		completed := task.isCompleted()

		e.metrics.RecordPoll(completed, time.Since(start))
		if completed {
			e.metrics.RecordTaskCompleted()
			e.metrics.RecordActiveTasks(e.active.value())
		}
		e.metrics.RecordQueueDepth(e.ready.Len())
	}
}

// Stop requests run-loop termination. Idempotent, safe from any goroutine,
// and safe before Run has started: the next Run call observes the signal and
// returns immediately. Stop also closes the ready queue, so wake attempts
// from timer goroutines that fire after shutdown are silently dropped.
//
// Stop does not cancel in-flight computations or their timer goroutines;
// those run out on their own and their wakes go nowhere.
func (e *Executor) Stop() {
	e.stopOnce.Do(func() {
		close(e.stop)
		e.ready.Close()
	})
}

// ActiveTasks returns the number of tasks spawned but not yet completed.
func (e *Executor) ActiveTasks() int {
	return e.active.value()
}

// QueuedTasks returns the current ready-queue depth.
func (e *Executor) QueuedTasks() int {
	return e.ready.Len()
}

// Stats returns a snapshot of executor state.
func (e *Executor) Stats() ExecutorStats {
	return ExecutorStats{
		Active:  e.active.value(),
		Queued:  e.ready.Len(),
		Stopped: e.ready.IsClosed(),
	}
}

// WaitIdle blocks until every spawned task has completed, or ctx is done.
//
// Note: tasks spawned after WaitIdle returns are not waited for, and a task
// that never resolves (or an executor that is not running) keeps WaitIdle
// blocked until ctx cancels it.
func (e *Executor) WaitIdle(ctx context.Context) error {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for {
		if e.active.value() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
