// Package clock abstracts wall-clock access for components that schedule
// work against absolute deadlines.
//
// Deadlines are computed once as absolute timestamps and reused, never
// recomputed as relative durations, so periodic release times do not drift.
package clock

import "time"

// Clock provides current time and deadline-based sleeping.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// SleepUntil blocks the calling goroutine until the given absolute
	// time has been reached. It returns immediately if the time has
	// already passed.
	SleepUntil(t time.Time)
}

// Real is a Clock backed by the system clock.
type Real struct{}

// New returns the system clock.
func New() Clock {
	return Real{}
}

// Now returns the current system time.
func (Real) Now() time.Time {
	return time.Now()
}

// SleepUntil sleeps until t using the system timer.
func (Real) SleepUntil(t time.Time) {
	d := time.Until(t)
	if d > 0 {
		time.Sleep(d)
	}
}
