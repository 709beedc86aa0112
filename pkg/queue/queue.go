package queue

import (
	"time"

	"github.com/vnykmshr/goexec/pkg/clock"
	gxerrors "github.com/vnykmshr/goexec/pkg/common/errors"
	"github.com/vnykmshr/goexec/pkg/common/validation"
	"github.com/vnykmshr/goexec/pkg/queue/ring"
)

// Strategy selects the synchronization strategy backing a Blocking queue.
// Both strategies expose identical semantics; the choice is a
// construction-time configuration option, not a behavioral difference.
type Strategy int

const (
	// Semaphore uses counting semaphores for free and filled slots plus a
	// mutex guarding the ring.
	Semaphore Strategy = iota

	// CondVar uses one mutex and two condition variables ("item
	// available", "slot freed").
	CondVar
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Semaphore:
		return "semaphore"
	case CondVar:
		return "condvar"
	default:
		return "unknown"
	}
}

// Blocking is a bounded FIFO queue safe for concurrent producers and
// consumers, offering blocking, non-blocking, and deadline-bounded variants
// of insert and remove.
//
// Absence of an item is reported through the boolean return, never through
// an error: a Poll or Offer giving up at its deadline is a normal outcome.
type Blocking interface {
	// Get blocks until an item is available, then removes and returns it.
	Get() interface{}

	// Put blocks until a slot is free, then inserts item.
	Put(item interface{})

	// Remove is the non-blocking Get. It returns false immediately if
	// nothing is available, with no side effect on the queue.
	Remove() (interface{}, bool)

	// Add is the non-blocking Put. It returns false immediately if the
	// queue is full, with no side effect on the queue.
	Add(item interface{}) bool

	// Poll behaves like Get but gives up once the absolute deadline
	// passes, returning false without consuming anything.
	Poll(deadline time.Time) (interface{}, bool)

	// Offer behaves like Put but gives up once the absolute deadline
	// passes, returning false without filling a slot.
	Offer(item interface{}, deadline time.Time) bool

	// Len returns the current number of stored items.
	Len() int

	// Cap returns the fixed capacity.
	Cap() int
}

// ActivityFunc observes queue operations. op is one of "get", "put",
// "remove", "add", "poll", "offer"; ok reports whether the operation
// succeeded. Hooks must be fast and must not call back into the queue.
type ActivityFunc func(op string, item interface{}, ok bool)

type config struct {
	strategy Strategy
	clk      clock.Clock
	activity ActivityFunc
}

// Option configures a Blocking queue at construction.
type Option func(*config)

// WithStrategy selects the synchronization strategy. Default is Semaphore.
func WithStrategy(s Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithClock injects the clock used for deadline arithmetic.
func WithClock(clk clock.Clock) Option {
	return func(c *config) { c.clk = clk }
}

// WithActivityFunc installs an observer for queue operations.
func WithActivityFunc(fn ActivityFunc) Option {
	return func(c *config) { c.activity = fn }
}

// New creates a Blocking queue with the given capacity.
func New(capacity int, opts ...Option) (Blocking, error) {
	if err := validation.ValidatePositive("queue", "capacity", capacity); err != nil {
		return nil, err
	}

	cfg := config{
		strategy: Semaphore,
		clk:      clock.New(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	buf, err := ring.New(capacity)
	if err != nil {
		return nil, err
	}

	switch cfg.strategy {
	case Semaphore:
		return newSemQueue(buf, cfg), nil
	case CondVar:
		return newCondQueue(buf, cfg), nil
	default:
		return nil, gxerrors.NewValidationError("queue", "strategy", cfg.strategy, "unknown strategy").
			WithHint("use queue.Semaphore or queue.CondVar")
	}
}

func (c config) record(op string, item interface{}, ok bool) {
	if c.activity != nil {
		c.activity(op, item, ok)
	}
}
