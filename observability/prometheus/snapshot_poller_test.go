package prometheus

import (
	"sync"
	"testing"
	"time"

	"github.com/coopexec/go-coop-executor/core"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeProvider struct {
	mu    sync.Mutex
	stats core.ExecutorStats
}

func (f *fakeProvider) Stats() core.ExecutorStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

func (f *fakeProvider) set(stats core.ExecutorStats) {
	f.mu.Lock()
	f.stats = stats
	f.mu.Unlock()
}

func TestSnapshotPoller_ExportsGauges(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	provider := &fakeProvider{}
	provider.set(core.ExecutorStats{Active: 4, Queued: 2, Stopped: false})
	poller.RegisterExecutor("main", provider)

	poller.Start()
	defer poller.Stop()

	waitForGauge(t, poller.executorActive.WithLabelValues("main"), 4)

	if got := testutil.ToFloat64(poller.executorQueued.WithLabelValues("main")); got != 2 {
		t.Errorf("queued gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(poller.executorStopped.WithLabelValues("main")); got != 0 {
		t.Errorf("stopped gauge = %v, want 0", got)
	}

	provider.set(core.ExecutorStats{Active: 0, Queued: 0, Stopped: true})
	waitForGauge(t, poller.executorStopped.WithLabelValues("main"), 1)
}

func TestSnapshotPoller_WithRealExecutor(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	executor := core.New(core.WithLogger(core.NewNoOpLogger()))
	executor.Spawn(core.Never())

	poller.RegisterExecutor("real", executor)
	poller.Start()
	defer poller.Stop()

	waitForGauge(t, poller.executorActive.WithLabelValues("real"), 1)
}

func TestSnapshotPoller_StartStopIdempotent(t *testing.T) {
	poller, err := NewSnapshotPoller(prom.NewRegistry(), time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	poller.Start()
	poller.Start()
	poller.Stop()
	poller.Stop()
}

func waitForGauge(t *testing.T, gauge prom.Gauge, want float64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if testutil.ToFloat64(gauge) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("gauge = %v, want %v", testutil.ToFloat64(gauge), want)
}
