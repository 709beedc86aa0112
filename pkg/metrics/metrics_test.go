package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	if r.TasksSubmitted == nil || r.TasksCompleted == nil || r.TaskDuration == nil {
		t.Fatal("registry metrics should be initialized")
	}

	r.TasksSubmitted.WithLabelValues("test").Inc()
	r.TasksSubmitted.WithLabelValues("test").Inc()
	if got := testutil.ToFloat64(r.TasksSubmitted.WithLabelValues("test")); got != 2 {
		t.Errorf("TasksSubmitted = %v, want 2", got)
	}

	r.PoolSize.WithLabelValues("test").Set(3)
	if got := testutil.ToFloat64(r.PoolSize.WithLabelValues("test")); got != 3 {
		t.Errorf("PoolSize = %v, want 3", got)
	}
}

func TestSeparateRegistriesDoNotConflict(t *testing.T) {
	// Two registries may define the same metric names independently.
	r1 := NewRegistry(prometheus.NewRegistry())
	r2 := NewRegistry(prometheus.NewRegistry())

	r1.TasksCompleted.WithLabelValues("a").Inc()
	if got := testutil.ToFloat64(r2.TasksCompleted.WithLabelValues("a")); got != 0 {
		t.Errorf("registries should be isolated, got %v", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Enabled {
		t.Error("default config should be enabled")
	}
	if cfg.Namespace != "goexec" {
		t.Errorf("Namespace = %q, want goexec", cfg.Namespace)
	}
}
