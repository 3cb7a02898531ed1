package core

import "time"

// Metrics receives executor instrumentation callbacks.
// Implementations must be safe for concurrent use: spawns can happen on any
// goroutine while the run loop records polls.
type Metrics interface {
	// RecordTaskSpawned records that a task was spawned.
	RecordTaskSpawned()

	// RecordTaskCompleted records that a task ran to completion.
	RecordTaskCompleted()

	// RecordPoll records one poll of a task: whether it completed the task,
	// and how long the poll took.
	RecordPoll(completed bool, duration time.Duration)

	// RecordQueueDepth records the current ready-queue depth.
	RecordQueueDepth(depth int)

	// RecordActiveTasks records the current active-task count.
	RecordActiveTasks(count int)
}

// NoOpMetrics discards all measurements.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new NoOpMetrics.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

func (m *NoOpMetrics) RecordTaskSpawned()             {}
func (m *NoOpMetrics) RecordTaskCompleted()           {}
func (m *NoOpMetrics) RecordPoll(bool, time.Duration) {}
func (m *NoOpMetrics) RecordQueueDepth(int)           {}
func (m *NoOpMetrics) RecordActiveTasks(int)          {}
