// Package clock schedules callbacks. Sessions depend on it instead of the time
// package so tests can drive countdowns and resolution delays by hand.
package clock

import "time"

// Timer is a cancel handle for a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Clock runs f in its own goroutine after d has elapsed.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (System) Now() time.Time {
	return time.Now()
}
