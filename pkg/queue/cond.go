package queue

import (
	"sync"
	"time"

	"github.com/vnykmshr/goexec/pkg/queue/ring"
)

// condQueue synchronizes the ring with one mutex and two condition
// variables. itemAvail is signaled whenever a slot is filled, slotFreed
// whenever one is emptied.
//
// sync.Cond has no timed wait, so deadline-bounded operations arm a timer
// that broadcasts at the deadline and re-check the clock inside the wait
// loop.
type condQueue struct {
	mu        sync.Mutex
	buf       *ring.Ring
	itemAvail *sync.Cond
	slotFreed *sync.Cond
	cfg       config
}

func newCondQueue(buf *ring.Ring, cfg config) *condQueue {
	q := &condQueue{
		buf: buf,
		cfg: cfg,
	}
	q.itemAvail = sync.NewCond(&q.mu)
	q.slotFreed = sync.NewCond(&q.mu)
	return q
}

func (q *condQueue) Get() interface{} {
	q.mu.Lock()
	for {
		if item, ok := q.buf.TryGet(); ok {
			q.slotFreed.Signal()
			q.mu.Unlock()
			q.cfg.record("get", item, true)
			return item
		}
		q.itemAvail.Wait()
	}
}

func (q *condQueue) Put(item interface{}) {
	q.mu.Lock()
	for {
		if q.buf.TryPut(item) {
			q.itemAvail.Signal()
			q.mu.Unlock()
			q.cfg.record("put", item, true)
			return
		}
		q.slotFreed.Wait()
	}
}

func (q *condQueue) Remove() (interface{}, bool) {
	q.mu.Lock()
	item, ok := q.buf.TryGet()
	if ok {
		q.slotFreed.Signal()
	}
	q.mu.Unlock()
	q.cfg.record("remove", item, ok)
	return item, ok
}

func (q *condQueue) Add(item interface{}) bool {
	q.mu.Lock()
	ok := q.buf.TryPut(item)
	if ok {
		q.itemAvail.Signal()
	}
	q.mu.Unlock()
	q.cfg.record("add", item, ok)
	return ok
}

func (q *condQueue) Poll(deadline time.Time) (interface{}, bool) {
	q.mu.Lock()
	for {
		if item, ok := q.buf.TryGet(); ok {
			q.slotFreed.Signal()
			q.mu.Unlock()
			q.cfg.record("poll", item, true)
			return item, true
		}
		if !q.waitDeadline(q.itemAvail, deadline) {
			q.mu.Unlock()
			q.cfg.record("poll", nil, false)
			return nil, false
		}
	}
}

func (q *condQueue) Offer(item interface{}, deadline time.Time) bool {
	q.mu.Lock()
	for {
		if q.buf.TryPut(item) {
			q.itemAvail.Signal()
			q.mu.Unlock()
			q.cfg.record("offer", item, true)
			return true
		}
		if !q.waitDeadline(q.slotFreed, deadline) {
			q.mu.Unlock()
			q.cfg.record("offer", nil, false)
			return false
		}
	}
}

func (q *condQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Len()
}

func (q *condQueue) Cap() int {
	return q.buf.Cap()
}

// waitDeadline waits on cond until signaled or the absolute deadline
// passes. It must be called with q.mu held and returns with q.mu held.
// The return value is false once the deadline has been reached.
func (q *condQueue) waitDeadline(cond *sync.Cond, deadline time.Time) bool {
	wait := deadline.Sub(q.cfg.clk.Now())
	if wait <= 0 {
		return false
	}

	timer := time.AfterFunc(wait, func() {
		q.mu.Lock()
		cond.Broadcast()
		q.mu.Unlock()
	})
	cond.Wait()
	timer.Stop()

	// A broadcast from the timer and a genuine signal are
	// indistinguishable; the caller re-checks the buffer and we re-check
	// the clock on the next pass.
	return true
}
