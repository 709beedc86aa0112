// Package ring provides fixed-capacity FIFO storage with non-blocking
// operations.
//
// A Ring performs no internal synchronization: callers must hold exclusive
// access while operating on it. It is the storage leaf wrapped by the
// blocking queue in package queue.
package ring

import (
	eq "github.com/eapache/queue"

	"github.com/vnykmshr/goexec/pkg/common/validation"
)

// Ring is a bounded FIFO buffer. The capacity is fixed at creation.
type Ring struct {
	buf      *eq.Queue
	capacity int
}

// New creates a Ring with the given capacity.
func New(capacity int) (*Ring, error) {
	if err := validation.ValidatePositive("ring", "capacity", capacity); err != nil {
		return nil, err
	}
	return &Ring{
		buf:      eq.New(),
		capacity: capacity,
	}, nil
}

// TryPut appends item to the buffer. It returns false if the buffer is
// full, leaving it unchanged.
func (r *Ring) TryPut(item interface{}) bool {
	if r.buf.Length() >= r.capacity {
		return false
	}
	r.buf.Add(item)
	return true
}

// TryGet removes and returns the oldest item. It returns false if the
// buffer is empty, leaving it unchanged.
func (r *Ring) TryGet() (interface{}, bool) {
	if r.buf.Length() == 0 {
		return nil, false
	}
	return r.buf.Remove(), true
}

// Len returns the number of stored items.
func (r *Ring) Len() int {
	return r.buf.Length()
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int {
	return r.capacity
}
