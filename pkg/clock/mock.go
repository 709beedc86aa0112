package clock

import (
	"sync"
	"time"
)

// Mock implements Clock for testing with controllable time.
// Goroutines blocked in SleepUntil are released by Advance or Set.
type Mock struct {
	mu   sync.Mutex
	cond *sync.Cond
	now  time.Time
}

// NewMock creates a Mock starting at the given time.
// If zero time is provided, uses current time.
func NewMock(start time.Time) *Mock {
	if start.IsZero() {
		start = time.Now()
	}
	m := &Mock{now: start}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Now returns the current mock time.
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// SleepUntil blocks until the mock time reaches t.
func (m *Mock) SleepUntil(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.now.Before(t) {
		m.cond.Wait()
	}
}

// Advance moves the mock clock forward by the given duration and wakes
// any sleepers whose deadline has passed.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	m.cond.Broadcast()
}

// Set sets the mock clock to a specific time.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
	m.cond.Broadcast()
}
