/*
Package goexec provides a task-execution runtime built from a blocking
bounded queue, an elastic worker pool, and futures.

Components:

Queue (pkg/queue):
  - Blocking bounded FIFO with two interchangeable synchronization
    strategies: counting semaphores or condition variables
  - Blocking, non-blocking, and deadline-bounded operations

Pool (pkg/pool):
  - Worker accounting between a core size and a maximum size
  - Forced creation above core for saturation handling

Executor (pkg/executor):
  - Submit callables, receive futures
  - Evict-oldest saturation policy with forced workers
  - Periodic callables at fixed release times
  - Keep-alive expiry for workers above core size
  - Cooperative shutdown that drains pending work

Scheduler (pkg/scheduler):
  - Absolute-time, delayed, repeating, and cron scheduling
  - Due tasks submitted to an executor

Example usage:

	import "github.com/vnykmshr/goexec/pkg/executor"

	exec, _ := executor.New(2, 8, time.Minute, 64)
	defer exec.Shutdown()

	future, _ := exec.Submit(executor.NewCallable(work, params))
	result := future.Result()

Prometheus instrumentation is available through the NewWithMetrics
constructors in pkg/executor and pkg/scheduler.
*/
package goexec
