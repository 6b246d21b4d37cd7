package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/cardstack/pkg/animation"
	"github.com/go-drift/cardstack/pkg/engine"
)

// FrameDuration is how far the fake clock moves per pumped frame.
const FrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: loop did not settle")

// Tester drives an engine loop against a fake clock so transitions and
// gesture settles can be stepped frame by frame.
type Tester struct {
	loop      *engine.Loop
	clock     *FakeClock
	prevClock animation.Clock
}

// NewTester creates a tester and installs its clock as the animation clock.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester() *Tester {
	clk := NewFakeClock()
	return &Tester{
		loop:      engine.NewLoop(),
		clock:     clk,
		prevClock: animation.SetClock(clk),
	}
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the previous animation clock.
func (t *Tester) Cleanup() {
	animation.SetClock(t.prevClock)
}

// Clock returns the fake clock for advancing time in tests.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Loop returns the loop to inject as the transitioner's dispatcher.
func (t *Tester) Loop() *engine.Loop {
	return t.loop
}

// Pump runs one frame without advancing the clock.
func (t *Tester) Pump() {
	t.loop.StepFrame()
}

// PumpFor advances the clock by d in FrameDuration steps, running a frame
// after each step.
func (t *Tester) PumpFor(d time.Duration) {
	for d > 0 {
		step := FrameDuration
		if d < step {
			step = d
		}
		t.clock.Advance(step)
		t.loop.StepFrame()
		d -= step
	}
}

// PumpAndSettle runs frames until the loop is idle or the timeout is
// reached. Each frame advances the fake clock by FrameDuration. Frames
// spent waiting on an awaited hook still count toward the timeout.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.loop.StepFrame()
		if !t.loop.NeedsFrame() {
			return nil
		}
		if t.loop.PendingAwaits() > 0 {
			time.Sleep(time.Millisecond)
		}
		t.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}
