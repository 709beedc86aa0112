package queue

import (
	"sync"
	"time"

	"github.com/vnykmshr/goexec/pkg/queue/ring"
)

// semQueue synchronizes the ring with two counting semaphores and a mutex.
// The free semaphore starts with one token per slot, the filled semaphore
// starts empty. Semaphores are buffered channels of empty structs, the
// conventional Go counting semaphore.
//
// A successful removal hands its token to the free semaphore only after the
// mutex has been released, so the exclusion lock is never held while
// signaling and each operation releases the lock exactly once.
type semQueue struct {
	mu     sync.Mutex
	buf    *ring.Ring
	free   chan struct{}
	filled chan struct{}
	cfg    config
}

func newSemQueue(buf *ring.Ring, cfg config) *semQueue {
	q := &semQueue{
		buf:    buf,
		free:   make(chan struct{}, buf.Cap()),
		filled: make(chan struct{}, buf.Cap()),
		cfg:    cfg,
	}
	for i := 0; i < buf.Cap(); i++ {
		q.free <- struct{}{}
	}
	return q
}

func (q *semQueue) Get() interface{} {
	<-q.filled
	item := q.pop()
	q.free <- struct{}{}
	q.cfg.record("get", item, true)
	return item
}

func (q *semQueue) Put(item interface{}) {
	<-q.free
	q.push(item)
	q.filled <- struct{}{}
	q.cfg.record("put", item, true)
}

func (q *semQueue) Remove() (interface{}, bool) {
	select {
	case <-q.filled:
	default:
		q.cfg.record("remove", nil, false)
		return nil, false
	}
	item := q.pop()
	q.free <- struct{}{}
	q.cfg.record("remove", item, true)
	return item, true
}

func (q *semQueue) Add(item interface{}) bool {
	select {
	case <-q.free:
	default:
		q.cfg.record("add", nil, false)
		return false
	}
	q.push(item)
	q.filled <- struct{}{}
	q.cfg.record("add", item, true)
	return true
}

func (q *semQueue) Poll(deadline time.Time) (interface{}, bool) {
	if !q.acquire(q.filled, deadline) {
		q.cfg.record("poll", nil, false)
		return nil, false
	}
	item := q.pop()
	q.free <- struct{}{}
	q.cfg.record("poll", item, true)
	return item, true
}

func (q *semQueue) Offer(item interface{}, deadline time.Time) bool {
	if !q.acquire(q.free, deadline) {
		q.cfg.record("offer", nil, false)
		return false
	}
	q.push(item)
	q.filled <- struct{}{}
	q.cfg.record("offer", item, true)
	return true
}

func (q *semQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Len()
}

func (q *semQueue) Cap() int {
	return q.buf.Cap()
}

// acquire performs a deadline-bounded semaphore wait. On timeout it returns
// false without consuming a token.
func (q *semQueue) acquire(sem chan struct{}, deadline time.Time) bool {
	wait := deadline.Sub(q.cfg.clk.Now())
	if wait <= 0 {
		select {
		case <-sem:
			return true
		default:
			return false
		}
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-sem:
		return true
	case <-timer.C:
		return false
	}
}

func (q *semQueue) pop() interface{} {
	q.mu.Lock()
	item, _ := q.buf.TryGet()
	q.mu.Unlock()
	return item
}

func (q *semQueue) push(item interface{}) {
	q.mu.Lock()
	q.buf.TryPut(item)
	q.mu.Unlock()
}
