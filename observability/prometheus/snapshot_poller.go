package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/coopexec/go-coop-executor/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// SnapshotProvider provides current executor stats snapshots.
type SnapshotProvider interface {
	Stats() core.ExecutorStats
}

// SnapshotPoller periodically exports executor Stats() snapshots into
// Prometheus gauges. Useful when the inline core.Metrics hooks are not wired,
// or when gauges should stay fresh while the executor is idle.
type SnapshotPoller struct {
	interval time.Duration

	executorsMu sync.RWMutex
	executors   map[string]SnapshotProvider

	executorActive  *prom.GaugeVec
	executorQueued  *prom.GaugeVec
	executorStopped *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	active := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "coopexec",
		Name:      "executor_active_tasks",
		Help:      "Tasks spawned but not yet completed, per executor.",
	}, []string{"executor"})
	queued := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "coopexec",
		Name:      "executor_queue_depth",
		Help:      "Ready-queue depth snapshot, per executor.",
	}, []string{"executor"})
	stopped := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "coopexec",
		Name:      "executor_stopped",
		Help:      "Executor stopped state (1=stopped, 0=running).",
	}, []string{"executor"})

	var err error
	if active, err = registerCollector(reg, active); err != nil {
		return nil, err
	}
	if queued, err = registerCollector(reg, queued); err != nil {
		return nil, err
	}
	if stopped, err = registerCollector(reg, stopped); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:        interval,
		executors:       make(map[string]SnapshotProvider),
		executorActive:  active,
		executorQueued:  queued,
		executorStopped: stopped,
	}, nil
}

// RegisterExecutor adds an executor under the given label.
// Re-registering the same name replaces the provider.
func (p *SnapshotPoller) RegisterExecutor(name string, provider SnapshotProvider) {
	if provider == nil {
		return
	}
	p.executorsMu.Lock()
	defer p.executorsMu.Unlock()
	p.executors[name] = provider
}

// UnregisterExecutor removes an executor and its gauge series.
func (p *SnapshotPoller) UnregisterExecutor(name string) {
	p.executorsMu.Lock()
	delete(p.executors, name)
	p.executorsMu.Unlock()

	labels := prom.Labels{"executor": name}
	p.executorActive.Delete(labels)
	p.executorQueued.Delete(labels)
	p.executorStopped.Delete(labels)
}

// Start begins periodic collection. Safe to call once; subsequent calls are
// no-ops until Stop.
func (p *SnapshotPoller) Start() {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	if p.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.loop(ctx)
}

// Stop halts periodic collection and waits for the poll loop to exit.
func (p *SnapshotPoller) Stop() {
	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.running = false
	p.stateMu.Unlock()

	cancel()
	<-done
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collect()
		}
	}
}

func (p *SnapshotPoller) collect() {
	p.executorsMu.RLock()
	defer p.executorsMu.RUnlock()

	for name, provider := range p.executors {
		stats := provider.Stats()
		p.executorActive.WithLabelValues(name).Set(float64(stats.Active))
		p.executorQueued.WithLabelValues(name).Set(float64(stats.Queued))
		p.executorStopped.WithLabelValues(name).Set(boolToGauge(stats.Stopped))
	}
}

func boolToGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
