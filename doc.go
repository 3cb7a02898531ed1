// Package coopexec provides a minimal cooperative task executor: suspendable
// computations (Futures) run to completion on a single run-loop goroutine,
// without a goroutine-per-task model.
//
// The design is the classic poll/wake protocol. A spawned Future is wrapped
// in a task and pushed onto a multi-producer/single-consumer ready queue.
// The run loop pops tasks and polls them; a poll either completes the task or
// suspends it, in which case the Waker handed to the poll re-enqueues the
// task later, typically from a delay's timer goroutine, or from any other
// goroutine that decides the task can make progress again.
//
// # Quick Start
//
// Initialize the global executor at application startup:
//
//	coopexec.InitGlobalExecutor()
//	defer coopexec.ShutdownGlobalExecutor()
//
// Spawn computations from any goroutine:
//
//	coopexec.Spawn(coopexec.Chain(
//		coopexec.Delay(100*time.Millisecond),
//		coopexec.Do(func() {
//			// runs on the executor goroutine after 100ms
//		}),
//	))
//
// Or manage an executor directly:
//
//	executor := coopexec.NewExecutor()
//	go executor.Run()
//	executor.Spawn(work)
//	// ...
//	executor.Stop()
//
// # Key Concepts
//
// Future: a suspendable computation advanced one step at a time by Poll.
// Pending means "not yet; wake me via the Waker"; Ready means done.
//
// Waker: a cloneable capability that re-enqueues its task. Safe to invoke
// from any goroutine, any number of times, even after the task completed.
//
// Executor: owns the ready queue, the stop signal and the active-task
// counter. Exactly one goroutine consumes the queue; producers are unbounded.
//
// Delay: the timer-based suspension primitive. Each pending delay costs one
// timer goroutine; this is a deliberate simplicity trade, not a timer wheel.
//
// # Scheduling Model
//
// All polls happen on the run-loop goroutine, so computations never race
// each other and need no locks of their own. If one computation blocks, no
// other computation runs: the best practice is not to block, and to suspend
// via Delay (or a custom Future) instead.
//
// Tasks are polled in roughly FIFO order, but completion order across tasks
// is not guaranteed to match spawn order or deadline order.
//
// # Shutdown
//
// Stop is idempotent, callable from any goroutine, and does not cancel
// in-flight computations: their timer goroutines run out on their own and
// their wake attempts are dropped by the closed queue.
package coopexec
