package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Generator uses it to determine "today" and the feed's year window.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock implements Clock pinned to a single instant. It backs the
// explicit date flag, where "today" is whatever the user asked about.
type FixedClock struct {
	T time.Time
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time {
	return c.T
}
