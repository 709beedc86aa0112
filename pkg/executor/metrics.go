package executor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/goexec/pkg/metrics"
)

// MetricsExecutor wraps an Executor with Prometheus metrics collection.
type MetricsExecutor struct {
	exec     *Executor
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates an executor with metrics enabled on an isolated
// registry.
func NewWithMetrics(coreSize, maxSize int, keepAlive time.Duration, queueCapacity int, name string) (*MetricsExecutor, error) {
	// Use a separate registry per metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}
	return NewWithConfigAndMetrics(coreSize, maxSize, keepAlive, queueCapacity, name, config)
}

// NewWithConfigAndMetrics creates an executor instrumented against the
// given metrics configuration.
func NewWithConfigAndMetrics(coreSize, maxSize int, keepAlive time.Duration, queueCapacity int, name string, metricsConfig metrics.Config, opts ...Option) (*MetricsExecutor, error) {
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	me := &MetricsExecutor{
		name:     name,
		registry: registry,
		enabled:  metricsConfig.Enabled,
	}

	opts = append(opts, WithCallbacks(Callbacks{
		OnWorkerStart: func(int) {
			if me.enabled {
				me.registry.WorkersStarted.WithLabelValues(me.name).Inc()
				me.updateGauges()
			}
		},
		OnWorkerStop: func(int) {
			if me.enabled {
				me.registry.WorkersStopped.WithLabelValues(me.name).Inc()
				me.updateGauges()
			}
		},
		OnTaskComplete: func(_ int, _ interface{}, duration time.Duration) {
			if me.enabled {
				me.registry.TasksCompleted.WithLabelValues(me.name).Inc()
				me.registry.TaskDuration.WithLabelValues(me.name).Observe(duration.Seconds())
				me.updateGauges()
			}
		},
		OnEviction: func() {
			if me.enabled {
				me.registry.TasksEvicted.WithLabelValues(me.name).Inc()
			}
		},
	}))

	exec, err := New(coreSize, maxSize, keepAlive, queueCapacity, opts...)
	if err != nil {
		return nil, err
	}
	me.exec = exec
	me.updateGauges()
	return me, nil
}

func (me *MetricsExecutor) updateGauges() {
	if !me.enabled {
		return
	}
	me.registry.PoolSize.WithLabelValues(me.name).Set(float64(me.exec.PoolSize()))
	me.registry.QueueDepth.WithLabelValues(me.name).Set(float64(me.exec.QueueLen()))
}

// Submit submits a callable and records submission metrics.
func (me *MetricsExecutor) Submit(c *Callable) (*Future, error) {
	f, err := me.exec.Submit(c)
	if me.enabled {
		if err != nil {
			me.registry.TasksRejected.WithLabelValues(me.name).Inc()
		} else {
			me.registry.TasksSubmitted.WithLabelValues(me.name).Inc()
		}
		me.updateGauges()
	}
	return f, err
}

// Shutdown shuts the underlying executor down and refreshes the gauges.
func (me *MetricsExecutor) Shutdown() {
	me.exec.Shutdown()
	me.updateGauges()
}

// Executor returns the wrapped executor.
func (me *MetricsExecutor) Executor() *Executor {
	return me.exec
}

// PoolSize returns the current number of live workers.
func (me *MetricsExecutor) PoolSize() int {
	return me.exec.PoolSize()
}

// QueueLen returns the current number of pending futures.
func (me *MetricsExecutor) QueueLen() int {
	return me.exec.QueueLen()
}

// EnableMetrics enables metrics collection.
func (me *MetricsExecutor) EnableMetrics(config metrics.Config) error {
	me.enabled = config.Enabled
	if config.Registry != nil {
		me.registry = metrics.NewRegistry(config.Registry)
	}
	if me.enabled {
		me.updateGauges()
	}
	return nil
}

// DisableMetrics disables metrics collection.
func (me *MetricsExecutor) DisableMetrics() {
	me.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (me *MetricsExecutor) MetricsEnabled() bool {
	return me.enabled
}
