package scheduler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/goexec/pkg/executor"
	"github.com/vnykmshr/goexec/pkg/metrics"
)

// MetricsScheduler wraps a Scheduler with prometheus instrumentation.
// Registrations increment the scheduled counter and every submission of a
// due task increments the fired counter.
type MetricsScheduler struct {
	Scheduler
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates an instrumented scheduler with an isolated
// prometheus registry.
func NewWithMetrics(exec *executor.Executor, name string) (*MetricsScheduler, error) {
	return NewWithConfigAndMetrics(Config{Executor: exec}, name, metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})
}

// NewWithConfigAndMetrics creates an instrumented scheduler with custom
// scheduler and metrics configuration.
func NewWithConfigAndMetrics(cfg Config, name string, mcfg metrics.Config) (*MetricsScheduler, error) {
	ms := &MetricsScheduler{name: name}
	if mcfg.Enabled {
		ms.registry = registryFor(mcfg)
		ms.enabled = true

		userOnFire := cfg.OnFire
		cfg.OnFire = func(id string, f *executor.Future) {
			ms.registry.TasksFired.WithLabelValues(ms.name).Inc()
			if userOnFire != nil {
				userOnFire(id, f)
			}
		}
	}

	s, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	ms.Scheduler = s
	return ms, nil
}

func registryFor(cfg metrics.Config) *metrics.Registry {
	if cfg.Registry != nil {
		return metrics.NewRegistry(cfg.Registry)
	}
	return metrics.DefaultRegistry
}

func (ms *MetricsScheduler) scheduled() {
	if ms.enabled {
		ms.registry.TasksScheduled.WithLabelValues(ms.name).Inc()
	}
}

func (ms *MetricsScheduler) Schedule(id string, c *executor.Callable, runAt time.Time) error {
	err := ms.Scheduler.Schedule(id, c, runAt)
	if err == nil {
		ms.scheduled()
	}
	return err
}

func (ms *MetricsScheduler) ScheduleAfter(id string, c *executor.Callable, delay time.Duration) error {
	err := ms.Scheduler.ScheduleAfter(id, c, delay)
	if err == nil {
		ms.scheduled()
	}
	return err
}

func (ms *MetricsScheduler) ScheduleRepeating(id string, c *executor.Callable, interval time.Duration) error {
	err := ms.Scheduler.ScheduleRepeating(id, c, interval)
	if err == nil {
		ms.scheduled()
	}
	return err
}

func (ms *MetricsScheduler) ScheduleCron(id string, cronExpr string, c *executor.Callable) error {
	err := ms.Scheduler.ScheduleCron(id, cronExpr, c)
	if err == nil {
		ms.scheduled()
	}
	return err
}

// MetricsEnabled reports whether instrumentation is active.
func (ms *MetricsScheduler) MetricsEnabled() bool {
	return ms.enabled
}
