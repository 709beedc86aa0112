package executor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/goexec/pkg/clock"
	gxerrors "github.com/vnykmshr/goexec/pkg/common/errors"
	"github.com/vnykmshr/goexec/pkg/common/validation"
	"github.com/vnykmshr/goexec/pkg/pool"
	"github.com/vnykmshr/goexec/pkg/queue"
)

// KeepAliveForever configures workers to wait indefinitely for new work
// instead of releasing themselves after an idle timeout.
const KeepAliveForever time.Duration = -1

// Callbacks observe executor lifecycle events. All fields are optional and
// must be fast; they run on worker goroutines.
type Callbacks struct {
	// OnWorkerStart is called when a worker goroutine starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker goroutine terminates.
	OnWorkerStop func(workerID int)

	// OnTaskComplete is called after each callable execution, including
	// every release of a periodic callable.
	OnTaskComplete func(workerID int, result interface{}, duration time.Duration)

	// OnEviction is called when a saturated submit evicts the oldest
	// pending future and re-homes it to a forced worker.
	OnEviction func()
}

// Executor composes an elastic worker pool with a blocking queue of
// pending futures. Submitted callables are wrapped in futures and executed
// by pool workers; callers block on Future.Result for the outcome.
type Executor struct {
	pool      *pool.Pool
	pending   queue.Blocking
	keepAlive time.Duration
	clk       clock.Clock
	callbacks Callbacks

	// submitMu serializes the producer side of the pending queue: the
	// non-blocking Add, the evict-and-replace sequence under saturation,
	// and the blocking fallback all run under it, so no submitter can
	// steal a slot another submitter just freed. Workers never take it.
	submitMu sync.Mutex

	shutdownOnce sync.Once
	workerSeq    atomic.Int64
	submitted    atomic.Int64
	completed    atomic.Int64
}

type execConfig struct {
	strategy  queue.Strategy
	clk       clock.Clock
	callbacks Callbacks
	activity  queue.ActivityFunc
}

// Option configures an Executor at construction.
type Option func(*execConfig)

// WithQueueStrategy selects the synchronization strategy of the pending
// queue. Default is queue.Semaphore.
func WithQueueStrategy(s queue.Strategy) Option {
	return func(c *execConfig) { c.strategy = s }
}

// WithClock injects the clock used for keep-alive deadlines and periodic
// release times.
func WithClock(clk clock.Clock) Option {
	return func(c *execConfig) { c.clk = clk }
}

// WithCallbacks installs lifecycle callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(c *execConfig) { c.callbacks = cb }
}

// WithQueueActivityFunc installs an observer on the pending queue.
func WithQueueActivityFunc(fn queue.ActivityFunc) Option {
	return func(c *execConfig) { c.activity = fn }
}

// New creates an Executor with coreSize long-lived workers, growth up to
// maxSize under saturation, the given idle keep-alive (KeepAliveForever to
// never release idle workers), and a pending queue of queueCapacity
// futures.
func New(coreSize, maxSize int, keepAlive time.Duration, queueCapacity int, opts ...Option) (*Executor, error) {
	if keepAlive < 0 && keepAlive != KeepAliveForever {
		return nil, gxerrors.NewValidationError("executor", "keepAlive", keepAlive, "must be non-negative or KeepAliveForever").
			WithHint("use executor.KeepAliveForever to disable idle release")
	}
	if err := validation.ValidatePositive("executor", "queueCapacity", queueCapacity); err != nil {
		return nil, err
	}

	cfg := execConfig{
		strategy: queue.Semaphore,
		clk:      clock.New(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p, err := pool.New(coreSize, maxSize)
	if err != nil {
		return nil, err
	}

	qopts := []queue.Option{
		queue.WithStrategy(cfg.strategy),
		queue.WithClock(cfg.clk),
	}
	if cfg.activity != nil {
		qopts = append(qopts, queue.WithActivityFunc(cfg.activity))
	}
	pending, err := queue.New(queueCapacity, qopts...)
	if err != nil {
		return nil, err
	}

	return &Executor{
		pool:      p,
		pending:   pending,
		keepAlive: keepAlive,
		clk:       cfg.clk,
		callbacks: cfg.callbacks,
	}, nil
}

// Submit wraps c in a new Future and arranges for its execution. The
// returned future can be polled or blocked on for the result; Submit itself
// never blocks on completion.
//
// Admission policy: a non-forced worker is created if the pool is below
// core size and the new worker executes the future directly. Otherwise the
// future is queued without blocking. If the queue is also full, the oldest
// pending future is evicted, the new future takes its slot, and a forced
// worker (allowed to exceed core size, up to max size) executes the evicted
// future. Admitted work is never silently dropped.
func (e *Executor) Submit(c *Callable) (*Future, error) {
	if c == nil {
		return nil, gxerrors.NewValidationError("executor", "callable", nil, "cannot be nil").
			WithHint("construct callables with NewCallable or NewPeriodicCallable")
	}
	if e.pool.IsShutdown() {
		return nil, gxerrors.ErrShutdown
	}

	c.exec = e
	f := newFuture(c)
	e.submitted.Add(1)

	// Fast path: a worker within core size runs the future directly.
	if e.pool.CreateWorker(func() { e.workerLoop(f) }, false) {
		return f, nil
	}

	e.submitMu.Lock()
	defer e.submitMu.Unlock()

	if e.pending.Add(f) {
		return f, nil
	}

	// Saturation: evict the oldest pending future, queue the new one in
	// its place, and force a worker for the evicted one.
	run := f
	if evicted, ok := e.pending.Remove(); ok {
		if e.pending.Add(f) {
			run = evicted.(*Future)
			if e.callbacks.OnEviction != nil {
				e.callbacks.OnEviction()
			}
		} else {
			// The freed slot was consumed by a producer outside
			// submitMu (the shutdown sentinel feeder). Keep the new
			// future for the forced worker and hand the evicted one
			// back with a blocking Put; workers are live, so a slot
			// frees up. Neither future is dropped.
			e.pending.Put(evicted)
		}
	}

	if !e.pool.CreateWorker(func() { e.workerLoop(run) }, true) {
		// Pool already at max size. Hand the future back to the queue
		// with a blocking Put: with max workers live there is always a
		// consumer, so the work is delayed, not dropped.
		e.pending.Put(run)
	}
	return f, nil
}

// Shutdown requests cooperative shutdown and blocks until every worker has
// drained or released itself. Periodic callables stop after their current
// release; nothing is interrupted in flight.
func (e *Executor) Shutdown() {
	e.shutdownOnce.Do(func() {
		e.pool.Shutdown()

		// Idle workers may be blocked forever in Get. Feed nil
		// sentinels until the pool drains; a worker drawing nil treats
		// it as "no work" and, with shutdown set, terminates.
		stop := make(chan struct{})
		go func() {
			defer close(stop)
			for e.pool.Size() > 0 {
				e.pending.Offer(nil, e.clk.Now().Add(10*time.Millisecond))
			}
		}()

		e.pool.WaitEmpty()
		<-stop
	})
}

// IsShutdown reports whether Shutdown has been called.
func (e *Executor) IsShutdown() bool {
	return e.pool.IsShutdown()
}

// PoolSize returns the current number of live workers.
func (e *Executor) PoolSize() int {
	return e.pool.Size()
}

// QueueLen returns the current number of pending futures.
func (e *Executor) QueueLen() int {
	return e.pending.Len()
}

// Submitted returns the total number of callables submitted.
func (e *Executor) Submitted() int64 {
	return e.submitted.Load()
}

// Completed returns the total number of callable executions completed,
// counting every release of a periodic callable.
func (e *Executor) Completed() int64 {
	return e.completed.Load()
}
