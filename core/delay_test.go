package core

import (
	"testing"
	"time"
)

// TestDelay_LowerBound_Short verifies a 1ms delay never resolves early
func TestDelay_LowerBound_Short(t *testing.T) {
	start := time.Now()
	BlockOn(Delay(time.Millisecond))

	if elapsed := time.Since(start); elapsed < time.Millisecond {
		t.Errorf("delay resolved after %v, want >= 1ms", elapsed)
	}
}

// TestDelay_LowerBound_Long verifies a 500ms delay never resolves early
func TestDelay_LowerBound_Long(t *testing.T) {
	start := time.Now()
	BlockOn(Delay(500 * time.Millisecond))

	if elapsed := time.Since(start); elapsed < 500*time.Millisecond {
		t.Errorf("delay resolved after %v, want >= 500ms", elapsed)
	}
}

// TestDelay_SequentialSuspension verifies consecutive delays accumulate
// Given: A single task that awaits two consecutive 100ms delays
// When: It signals completion
// Then: At least 200ms have elapsed since spawn
func TestDelay_SequentialSuspension(t *testing.T) {
	e := newTestExecutor()
	done := startExecutor(e)
	defer func() { e.Stop(); <-done }()

	completed := make(chan struct{})
	start := time.Now()

	e.Spawn(Chain(
		Delay(100*time.Millisecond),
		Delay(100*time.Millisecond),
		Do(func() { close(completed) }),
	))

	select {
	case <-completed:
	case <-time.After(5 * time.Second):
		t.Fatal("task did not complete")
	}

	if elapsed := time.Since(start); elapsed < 200*time.Millisecond {
		t.Errorf("task completed after %v, want >= 200ms", elapsed)
	}
}

// TestDelay_ElapsedDeadline verifies an already-passed deadline
// Given: A delay whose deadline is already in the past
// When: It is polled for the first time
// Then: It reports Ready without spawning a timer goroutine
func TestDelay_ElapsedDeadline(t *testing.T) {
	f := Delay(0).(*delayFuture)
	time.Sleep(time.Millisecond)

	if got := f.Poll(Waker{}); got != Ready {
		t.Fatalf("Poll() = %v, want Ready", got)
	}
	if f.armed {
		t.Error("timer goroutine was armed for an elapsed deadline")
	}
}

// TestDelay_PollAfterCompletion verifies the fatal double-poll contract
// Given: A delay that has already reported Ready
// When: It is polled again
// Then: It panics
func TestDelay_PollAfterCompletion(t *testing.T) {
	f := Delay(0)
	BlockOn(f)

	defer func() {
		if recover() == nil {
			t.Error("poll after completion did not panic")
		}
	}()
	f.Poll(Waker{})
}

// TestDelay_ReplacesStaleWaker verifies the stored-handle update rule
// Given: An armed delay holding the waker from an earlier poll
// When: It is polled with a handle bound to a different task
// Then: The stored handle is replaced; an equivalent handle is not re-stored
func TestDelay_ReplacesStaleWaker(t *testing.T) {
	queue := newReadyQueue()
	counter := &activeCounter{}
	first := &Task{future: Never(), ready: queue, active: counter}
	second := &Task{future: Never(), ready: queue, active: counter}

	f := Delay(time.Minute).(*delayFuture)

	if got := f.Poll(Waker{task: first}); got != Pending {
		t.Fatalf("first Poll() = %v, want Pending", got)
	}
	if !f.waker.WillWake(Waker{task: first}) {
		t.Fatal("stored waker does not wake the first task")
	}

	if got := f.Poll(Waker{task: second}); got != Pending {
		t.Fatalf("second Poll() = %v, want Pending", got)
	}
	if !f.waker.WillWake(Waker{task: second}) {
		t.Error("stored waker was not replaced by the non-equivalent handle")
	}
}

// TestDelay_TimerWakesTask verifies the wake protocol end to end
// Given: A task suspended on a short delay
// When: The timer goroutine fires
// Then: The wake re-enqueues the task and it completes
func TestDelay_TimerWakesTask(t *testing.T) {
	e := newTestExecutor()
	done := startExecutor(e)
	defer func() { e.Stop(); <-done }()

	completed := make(chan struct{})
	e.Spawn(Chain(
		Delay(20*time.Millisecond),
		Do(func() { close(completed) }),
	))

	select {
	case <-completed:
	case <-time.After(5 * time.Second):
		t.Fatal("timer wake never resumed the task")
	}
}
