package executor

// The worker loop is a small state machine: running a one-shot callable,
// running a periodic callable, idle waiting for the next future, and
// terminated. Both running states transition to idle waiting on
// completion; idle waiting transitions back to a running state on
// obtaining a future, or to terminated when the pool grants removal.

// workerLoop executes futures starting with first, then drains the pending
// queue until the pool releases the worker.
func (e *Executor) workerLoop(first *Future) {
	id := int(e.workerSeq.Add(1))
	if e.callbacks.OnWorkerStart != nil {
		e.callbacks.OnWorkerStart(id)
	}

	f := first
	for {
		if f != nil {
			e.runFuture(id, f)
		}

		f = e.nextFuture()
		if f != nil {
			continue
		}

		// No work obtained: a keep-alive timeout or a shutdown
		// sentinel. Terminate only if the pool agrees.
		if e.pool.RemoveWorker() {
			break
		}

		// Removal denied: the pool still needs this worker to hold the
		// core size, so an expiring poll would only spin. Block until
		// work or a shutdown sentinel arrives.
		if item := e.pending.Get(); item != nil {
			f = item.(*Future)
		}
	}

	if e.callbacks.OnWorkerStop != nil {
		e.callbacks.OnWorkerStop(id)
	}
}

// nextFuture obtains the next pending future for an idle worker. With
// keep-alive disabled it blocks indefinitely; otherwise it gives up after
// the keep-alive window. A nil return means no work was obtained.
func (e *Executor) nextFuture() *Future {
	if e.keepAlive == KeepAliveForever {
		item := e.pending.Get()
		if item == nil {
			// Shutdown sentinel.
			return nil
		}
		return item.(*Future)
	}

	item, ok := e.pending.Poll(e.clk.Now().Add(e.keepAlive))
	if !ok || item == nil {
		return nil
	}
	return item.(*Future)
}

// runFuture executes f's callable. One-shot callables complete the future
// immediately. Periodic callables are re-invoked at absolute release times
// (start + k*period) until shutdown is observed; the future completes with
// the result of the final release.
func (e *Executor) runFuture(id int, f *Future) {
	c := f.callable

	if c.period == 0 {
		result := e.invoke(id, c)
		f.complete(result)
		return
	}

	release := e.clk.Now()
	var result interface{}
	for {
		result = e.invoke(id, c)
		release = release.Add(c.period)
		e.clk.SleepUntil(release)
		if e.pool.IsShutdown() {
			break
		}
	}
	f.complete(result)
}

// invoke runs the callable with panic recovery; a recovered panic becomes
// a *PanicError result so waiters are never stranded.
func (e *Executor) invoke(id int, c *Callable) (result interface{}) {
	start := e.clk.Now()
	defer func() {
		if r := recover(); r != nil {
			result = &PanicError{Value: r}
		}
		e.completed.Add(1)
		if e.callbacks.OnTaskComplete != nil {
			e.callbacks.OnTaskComplete(id, result, e.clk.Now().Sub(start))
		}
	}()
	return c.fn(c.params)
}
