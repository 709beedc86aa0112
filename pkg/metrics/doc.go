// Package metrics provides Prometheus instrumentation for goexec components.
//
// The metrics package provides automatic instrumentation for:
//   - Executors (submissions, completions, evictions, rejections, durations)
//   - Worker pools (live workers, workers started/stopped)
//   - Pending queues (depth)
//   - Schedulers (tasks scheduled, tasks fired)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	exec, err := executor.NewWithMetrics(2, 4, executor.KeepAliveForever, 8, "background")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//	exec, err := executor.NewWithConfigAndMetrics(2, 4, executor.KeepAliveForever, 8, "background", config)
//
// # Available Metrics
//
//   - goexec_executor_tasks_submitted_total: Callables submitted
//   - goexec_executor_tasks_completed_total: Callable executions completed
//   - goexec_executor_tasks_evicted_total: Pending futures evicted to a forced worker
//   - goexec_executor_tasks_rejected_total: Submissions rejected after shutdown
//   - goexec_executor_task_duration_seconds: Callable execution time
//   - goexec_pool_size: Live workers
//   - goexec_pool_workers_started_total / _stopped_total: Worker lifecycle
//   - goexec_queue_depth: Pending futures
//   - goexec_scheduler_tasks_scheduled_total / tasks_fired_total: Scheduler activity
//
// Metrics are labeled by executor_name or scheduler_name so several
// instances can share one registry.
package metrics
