package coopexec

import (
	"sync"

	"github.com/coopexec/go-coop-executor/core"
)

// Re-export commonly used types from core package for convenience.
// This allows users to import only the coopexec package for most use cases.

// Future is a suspendable computation advanced one step per poll
type Future = core.Future

// FutureFunc adapts a plain function to the Future interface
type FutureFunc = core.FutureFunc

// Waker re-enqueues its task when invoked; safe from any goroutine
type Waker = core.Waker

// PollResult is the outcome of advancing a Future by one step
type PollResult = core.PollResult

// Executor runs spawned Futures on a single run-loop goroutine
type Executor = core.Executor

// ExecutorStats is a point-in-time snapshot of executor state
type ExecutorStats = core.ExecutorStats

// Option configures an Executor at construction time
type Option = core.Option

// Logger is the structured logging interface used by the executor
type Logger = core.Logger

// Field is a key-value pair attached to a log message
type Field = core.Field

// Metrics receives executor instrumentation callbacks
type Metrics = core.Metrics

// Poll result constants
const (
	Pending = core.Pending
	Ready   = core.Ready
)

// Convenience re-exports
var (
	NewExecutor = core.New
	WithLogger  = core.WithLogger
	WithMetrics = core.WithMetrics

	Delay   = core.Delay
	Chain   = core.Chain
	Do      = core.Do
	Never   = core.Never
	BlockOn = core.BlockOn

	F = core.F
)

// =============================================================================
// Global Executor Helper (Singleton)
// =============================================================================

var (
	globalExecutor *core.Executor
	globalDone     chan struct{}
	globalMu       sync.Mutex
)

// InitGlobalExecutor initializes the global executor and starts its run loop
// on a dedicated goroutine. Subsequent calls are no-ops until shutdown.
func InitGlobalExecutor(opts ...core.Option) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalExecutor != nil {
		return // Already initialized
	}

	executor := core.New(opts...)
	done := make(chan struct{})
	go func() {
		defer close(done)
		executor.Run()
	}()

	globalExecutor = executor
	globalDone = done
}

// GetGlobalExecutor returns the global executor instance.
// It panics if InitGlobalExecutor has not been called.
func GetGlobalExecutor() *core.Executor {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalExecutor == nil {
		panic("GlobalExecutor not initialized. Call InitGlobalExecutor() first.")
	}
	return globalExecutor
}

// ShutdownGlobalExecutor stops the global executor and waits for its run
// loop to return. In-flight computations are not cancelled; late wakes from
// their timer goroutines are dropped.
func ShutdownGlobalExecutor() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalExecutor == nil {
		return
	}

	globalExecutor.Stop()
	<-globalDone
	globalExecutor = nil
	globalDone = nil
}

// Spawn enqueues f on the global executor.
// This is the recommended entry point for most callers.
func Spawn(f core.Future) {
	GetGlobalExecutor().Spawn(f)
}
