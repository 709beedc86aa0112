// Package metrics provides Prometheus instrumentation for goexec components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for goexec components.
type Registry struct {
	// Executor metrics
	TasksSubmitted  *prometheus.CounterVec
	TasksCompleted  *prometheus.CounterVec
	TasksEvicted    *prometheus.CounterVec
	TasksRejected   *prometheus.CounterVec
	TaskDuration    *prometheus.HistogramVec
	PoolSize        *prometheus.GaugeVec
	QueueDepth      *prometheus.GaugeVec
	WorkersStarted  *prometheus.CounterVec
	WorkersStopped  *prometheus.CounterVec

	// Scheduler metrics
	TasksScheduled *prometheus.CounterVec
	TasksFired     *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by goexec components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goexec",
				Subsystem: "executor",
				Name:      "tasks_submitted_total",
				Help:      "Total number of callables submitted",
			},
			[]string{"executor_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goexec",
				Subsystem: "executor",
				Name:      "tasks_completed_total",
				Help:      "Total number of callable executions completed",
			},
			[]string{"executor_name"},
		),

		TasksEvicted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goexec",
				Subsystem: "executor",
				Name:      "tasks_evicted_total",
				Help:      "Total number of pending futures evicted to a forced worker under saturation",
			},
			[]string{"executor_name"},
		),

		TasksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goexec",
				Subsystem: "executor",
				Name:      "tasks_rejected_total",
				Help:      "Total number of submissions rejected after shutdown",
			},
			[]string{"executor_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "goexec",
				Subsystem: "executor",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing callables",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"executor_name"},
		),

		PoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goexec",
				Subsystem: "pool",
				Name:      "size",
				Help:      "Current number of live workers",
			},
			[]string{"executor_name"},
		),

		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goexec",
				Subsystem: "queue",
				Name:      "depth",
				Help:      "Current number of pending futures",
			},
			[]string{"executor_name"},
		),

		WorkersStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goexec",
				Subsystem: "pool",
				Name:      "workers_started_total",
				Help:      "Total number of workers started",
			},
			[]string{"executor_name"},
		),

		WorkersStopped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goexec",
				Subsystem: "pool",
				Name:      "workers_stopped_total",
				Help:      "Total number of workers stopped",
			},
			[]string{"executor_name"},
		),

		TasksScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goexec",
				Subsystem: "scheduler",
				Name:      "tasks_scheduled_total",
				Help:      "Total number of tasks registered with the scheduler",
			},
			[]string{"scheduler_name"},
		),

		TasksFired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goexec",
				Subsystem: "scheduler",
				Name:      "tasks_fired_total",
				Help:      "Total number of due tasks submitted to the executor",
			},
			[]string{"scheduler_name"},
		),
	}
}
