package executor

import "time"

// Func is the entry point of a callable. It receives the parameters bound
// at construction and returns the result delivered through the future.
type Func func(params interface{}) interface{}

// Callable is a unit of work: an entry point, its parameters, and an
// optional repeat period. A period of zero means run once. Callables are
// immutable after creation; the back-reference to the owning executor is
// bound at submit time.
type Callable struct {
	fn     Func
	params interface{}
	period time.Duration
	exec   *Executor
}

// NewCallable creates a one-shot callable.
func NewCallable(fn Func, params interface{}) *Callable {
	return &Callable{fn: fn, params: params}
}

// NewPeriodicCallable creates a callable re-executed every period until the
// owning executor shuts down. Release times are absolute (start + k*period),
// so execution does not drift.
func NewPeriodicCallable(fn Func, params interface{}, period time.Duration) *Callable {
	return &Callable{fn: fn, params: params, period: period}
}

// Period returns the repeat period; zero for one-shot callables.
func (c *Callable) Period() time.Duration {
	return c.period
}

// Executor returns the executor this callable was submitted to, or nil
// before submission.
func (c *Callable) Executor() *Executor {
	return c.exec
}
