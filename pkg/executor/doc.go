/*
Package executor provides a task-execution runtime: callables wrapped in
futures, run by an elastic pool of workers fed from a bounded blocking
queue.

Basic usage:

	exec, err := executor.New(2, 4, executor.KeepAliveForever, 8)
	if err != nil {
		log.Fatal(err)
	}
	defer exec.Shutdown()

	future, err := exec.Submit(executor.NewCallable(func(params interface{}) interface{} {
		return params.(int) * 2
	}, 21))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(future.Result()) // blocks until the callable completes

Submission policy:

A submit first tries to create a worker within the core pool size; the new
worker executes the future directly. At core size, the future is queued
without blocking. When the queue is also full, the oldest pending future is
evicted, the new one takes its slot, and a forced worker (allowed to exceed
core size, up to the maximum) executes the evicted future. Admitted work is
never silently dropped; the cost is occasionally exceeding core size under
saturation.

Periodic callables:

	c := executor.NewPeriodicCallable(poll, nil, 100*time.Millisecond)
	future, _ := exec.Submit(c)

A periodic callable is re-invoked at absolute release times (start +
k*period), so the schedule does not drift. It stops cooperatively when the
executor shuts down; the future then completes with the result of the final
release.

Idle workers and keep-alive:

A worker finishing a future waits for the next pending one. With
KeepAliveForever it waits indefinitely; with a finite keep-alive it gives
up after that idle window and asks the pool to release it. The pool refuses
while the worker count is within core size, so core workers stay alive.

Shutdown:

Shutdown is cooperative. Pending futures are drained, periodic callables
stop after their current release, and Shutdown returns once the live worker
count reaches zero. Submitting after shutdown returns ErrShutdown.

Results and failures:

Future.Result blocks until completion; every concurrent caller receives the
same value. A callable that panics completes its future with a *PanicError
instead of stranding waiters. Timeouts and absent results inside the
runtime are ordinary values, not errors.
*/
package executor
