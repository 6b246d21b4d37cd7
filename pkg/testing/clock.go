package testing

import (
	"time"

	"go.uber.org/atomic"
)

// Epoch is the instant every FakeClock starts at.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is an animation clock that only moves when told to. It is safe
// to read from hook goroutines while the test advances it.
type FakeClock struct {
	offset atomic.Duration
}

// NewFakeClock returns a clock standing at Epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// Now returns Epoch plus the time advanced so far.
func (c *FakeClock) Now() time.Time {
	return Epoch.Add(c.offset.Load())
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.offset.Add(d)
}

// Set moves the clock to t, which may lie before the current time.
func (c *FakeClock) Set(t time.Time) {
	c.offset.Store(t.Sub(Epoch))
}

// Elapsed returns how far the clock has moved from Epoch.
func (c *FakeClock) Elapsed() time.Duration {
	return c.offset.Load()
}
