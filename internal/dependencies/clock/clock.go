package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time

	// Until returns the duration from the clock's current time to t
	Until(t time.Time) time.Duration
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Until returns the duration until t
func (c *RealClock) Until(t time.Time) time.Duration {
	return time.Until(t)
}
