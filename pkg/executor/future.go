package executor

import (
	"fmt"
	"sync"
)

// Future is the handle to the eventual result of one callable. It is
// shared by the submitting caller, which reads the result, and exactly one
// worker, which writes it. The completed flag transitions exactly once and
// only after the result slot has been written.
type Future struct {
	mu        sync.Mutex
	cond      *sync.Cond
	callable  *Callable
	completed bool
	result    interface{}
	done      chan struct{}
}

func newFuture(c *Callable) *Future {
	f := &Future{
		callable: c,
		done:     make(chan struct{}),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// complete writes the result, marks the future completed, and wakes every
// waiter. Later calls are no-ops; the first result wins.
func (f *Future) complete(result interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completed {
		return
	}
	f.result = result
	f.completed = true
	close(f.done)
	f.cond.Broadcast()
}

// Result blocks until the callable has completed, then returns its result.
// Any number of goroutines may block concurrently on the same future; all
// receive the same value.
func (f *Future) Result() interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	for !f.completed {
		f.cond.Wait()
	}
	return f.result
}

// TryResult returns the result if the callable has completed, without
// blocking.
func (f *Future) TryResult() (interface{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.completed {
		return nil, false
	}
	return f.result, true
}

// Done returns a channel closed once the future completes, for select-based
// consumers.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Callable returns the callable this future belongs to.
func (f *Future) Callable() *Callable {
	return f.callable
}

// PanicError is delivered as the result of a callable that panicked, so
// waiters are released instead of blocking forever.
type PanicError struct {
	Value interface{}
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("callable panicked: %v", e.Value)
}
