package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 收集 worker pool 的 Prometheus 指標。nil 值可安全呼叫。
type Metrics struct {
	workers   prometheus.Gauge
	busy      prometheus.Gauge
	queued    prometheus.Gauge
	submitted prometheus.Counter
	rejected  prometheus.Counter
	completed prometheus.Counter
	crashed   prometheus.Counter
	duration  prometheus.Histogram
}

// NewMetrics 建立指標並註冊到 reg
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_workers_alive",
			Help:      "Worker goroutines that have not exited",
		}),
		busy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_workers_busy",
			Help:      "Workers currently executing a task",
		}),
		queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_queue_depth",
			Help:      "Tasks waiting in the pool queue",
		}),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_tasks_submitted_total",
			Help:      "Tasks accepted by Execute",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_tasks_rejected_total",
			Help:      "Tasks rejected because the pool was closed or had no live workers",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_tasks_completed_total",
			Help:      "Tasks that returned normally",
		}),
		crashed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_tasks_panicked_total",
			Help:      "Tasks that panicked and took their worker down",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pool_task_duration_seconds",
			Help:      "Time spent executing tasks",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
	}
	reg.MustRegister(m.workers, m.busy, m.queued, m.submitted, m.rejected, m.completed, m.crashed, m.duration)
	return m
}

func (m *Metrics) workerStarted() {
	if m != nil {
		m.workers.Inc()
	}
}

func (m *Metrics) workerExited() {
	if m != nil {
		m.workers.Dec()
	}
}

func (m *Metrics) taskSubmitted(depth int) {
	if m != nil {
		m.submitted.Inc()
		m.queued.Set(float64(depth))
	}
}

func (m *Metrics) taskRejected() {
	if m != nil {
		m.rejected.Inc()
	}
}

func (m *Metrics) taskStarted(depth int) {
	if m != nil {
		m.busy.Inc()
		m.queued.Set(float64(depth))
	}
}

func (m *Metrics) taskFinished(start time.Time, panicked bool) {
	if m == nil {
		return
	}
	m.busy.Dec()
	m.duration.Observe(time.Since(start).Seconds())
	if panicked {
		m.crashed.Inc()
	} else {
		m.completed.Inc()
	}
}
