package testing

import (
	"testing"
	"time"

	"github.com/go-drift/cardstack/pkg/animation"
	"github.com/go-drift/cardstack/pkg/rendering"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
	if clk.Elapsed() != 100*time.Millisecond {
		t.Errorf("Elapsed() = %v", clk.Elapsed())
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
	if clk.Elapsed() >= 0 {
		t.Errorf("setting a time before Epoch should give a negative offset, got %v", clk.Elapsed())
	}
}

func TestTester_InstallsClock(t *testing.T) {
	tester := NewTesterWithT(t)
	start := animation.Now()
	tester.Clock().Advance(500 * time.Millisecond)
	if got := animation.Now().Sub(start); got != 500*time.Millisecond {
		t.Errorf("animation clock advanced %v, want 500ms", got)
	}
}

func TestTester_PumpFor(t *testing.T) {
	tester := NewTesterWithT(t)
	v := animation.NewValue(0)
	v.AnimateTo(100, animation.Timing{Duration: time.Second, Curve: animation.LinearCurve}, nil)

	tester.PumpFor(500 * time.Millisecond)
	if got := v.Value(); got < 40 || got > 60 {
		t.Errorf("value after half the duration = %v, want ~50", got)
	}

	tester.PumpFor(600 * time.Millisecond)
	if got := v.Value(); got != 100 {
		t.Errorf("final value = %v, want 100", got)
	}
}

func TestTester_PumpAndSettle(t *testing.T) {
	tester := NewTesterWithT(t)
	v := animation.NewValue(0)
	var finished bool
	v.AnimateTo(1, animation.Timing{Duration: 100 * time.Millisecond}, func(f bool) { finished = f })

	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatalf("PumpAndSettle: %v", err)
	}
	if !finished {
		t.Error("expected animation to finish")
	}
	if tester.Loop().Frames() == 0 {
		t.Error("expected frames to be counted")
	}
}

func TestTester_PumpAndSettleWaitsForAwait(t *testing.T) {
	tester := NewTesterWithT(t)
	pending := make(chan error, 1)
	var resolved bool
	tester.Loop().Await(pending, func(err error) { resolved = err == nil })

	go func() { pending <- nil }()

	if err := tester.PumpAndSettle(5 * time.Second); err != nil {
		t.Fatalf("PumpAndSettle: %v", err)
	}
	if !resolved {
		t.Error("expected awaited result to be delivered")
	}
}

func TestTester_PumpAndSettleTimeout(t *testing.T) {
	tester := NewTesterWithT(t)
	pending := make(chan error)
	defer close(pending)
	tester.Loop().Await(pending, func(error) {})

	if err := tester.PumpAndSettle(50 * time.Millisecond); err != ErrSettleTimeout {
		t.Errorf("PumpAndSettle = %v, want ErrSettleTimeout", err)
	}
}

func TestDragSamples(t *testing.T) {
	samples := DragSamples(rendering.Offset{X: 10, Y: 300}, rendering.Offset{X: 100}, 4, rendering.Offset{X: 0.8})
	if len(samples) != 5 {
		t.Fatalf("len = %d, want 5", len(samples))
	}
	if got := samples[0].Delta.X; got != 25 {
		t.Errorf("first delta = %v, want 25", got)
	}
	last := samples[len(samples)-1]
	if last.Position.X != 110 || last.Delta.X != 100 || last.Velocity.X != 0.8 {
		t.Errorf("end sample = %+v", last)
	}
}
