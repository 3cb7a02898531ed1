package prometheus

import (
	"errors"
	"fmt"
	"time"

	"github.com/coopexec/go-coop-executor/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	DurationBuckets []float64
}

// MetricsExporter adapts core.Metrics to Prometheus collectors.
type MetricsExporter struct {
	tasksSpawnedTotal   prom.Counter
	tasksCompletedTotal prom.Counter
	pollsTotal          *prom.CounterVec
	pollDurationSeconds prom.Histogram
	queueDepth          prom.Gauge
	activeTasks         prom.Gauge
}

var _ core.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for core.Metrics.
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "coopexec"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	spawned := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_spawned_total",
		Help:      "Total number of tasks spawned.",
	})
	completed := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total number of tasks that ran to completion.",
	})
	polls := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "polls_total",
		Help:      "Total number of task polls by result.",
	}, []string{"result"})
	pollDuration := prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "poll_duration_seconds",
		Help:      "Duration of individual task polls in seconds.",
		Buckets:   buckets,
	})
	queueDepth := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Current ready-queue depth.",
	})
	activeTasks := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "active_tasks",
		Help:      "Tasks spawned but not yet completed.",
	})

	var err error
	if spawned, err = registerCollector(reg, spawned); err != nil {
		return nil, err
	}
	if completed, err = registerCollector(reg, completed); err != nil {
		return nil, err
	}
	if polls, err = registerCollector(reg, polls); err != nil {
		return nil, err
	}
	if pollDuration, err = registerCollector(reg, pollDuration); err != nil {
		return nil, err
	}
	if queueDepth, err = registerCollector(reg, queueDepth); err != nil {
		return nil, err
	}
	if activeTasks, err = registerCollector(reg, activeTasks); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		tasksSpawnedTotal:   spawned,
		tasksCompletedTotal: completed,
		pollsTotal:          polls,
		pollDurationSeconds: pollDuration,
		queueDepth:          queueDepth,
		activeTasks:         activeTasks,
	}, nil
}

// RecordTaskSpawned records a spawn.
func (m *MetricsExporter) RecordTaskSpawned() {
	if m == nil {
		return
	}
	m.tasksSpawnedTotal.Inc()
}

// RecordTaskCompleted records a task completion.
func (m *MetricsExporter) RecordTaskCompleted() {
	if m == nil {
		return
	}
	m.tasksCompletedTotal.Inc()
}

// RecordPoll records one poll of a task.
func (m *MetricsExporter) RecordPoll(completed bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.pollsTotal.WithLabelValues(pollResultLabel(completed)).Inc()
	m.pollDurationSeconds.Observe(duration.Seconds())
}

// RecordQueueDepth records the current ready-queue depth.
func (m *MetricsExporter) RecordQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

// RecordActiveTasks records the current active-task count.
func (m *MetricsExporter) RecordActiveTasks(count int) {
	if m == nil {
		return
	}
	m.activeTasks.Set(float64(count))
}

func pollResultLabel(completed bool) string {
	if completed {
		return "ready"
	}
	return "pending"
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
