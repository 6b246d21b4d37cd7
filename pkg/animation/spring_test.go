package animation

import (
	"math"
	"testing"
)

func runSpring(s *SpringSimulation, maxSeconds float64) (elapsed, peak float64) {
	const dt = 1.0 / 60
	peak = s.Position()
	for elapsed < maxSeconds && !s.Step(dt) {
		elapsed += dt
		peak = math.Max(peak, s.Position())
	}
	return elapsed, peak
}

func TestSpringSimulation_Settles(t *testing.T) {
	tests := []struct {
		name string
		desc SpringDescription
	}{
		{"ios", IOSSpring()},
		{"bouncy", BouncySpring()},
		{"critical", SpringDescription{Mass: 1, Stiffness: 100, Damping: 20}},
		{"overdamped", SpringDescription{Mass: 1, Stiffness: 100, Damping: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpringSimulation(tt.desc, 0, 0, 1)
			elapsed, _ := runSpring(s, 5)
			if !s.IsDone() {
				t.Fatalf("spring did not settle within 5s")
			}
			if s.Position() != 1 || s.Velocity() != 0 {
				t.Errorf("rest state = (%v, %v), want (1, 0)", s.Position(), s.Velocity())
			}
			if elapsed == 0 {
				t.Error("spring settled without moving")
			}
		})
	}
}

func TestSpringSimulation_IOSDoesNotOvershootVisibly(t *testing.T) {
	s := NewSpringSimulation(IOSSpring(), 0, 0, 1)
	elapsed, peak := runSpring(s, 5)
	if peak > 1.01 {
		t.Errorf("peak = %v, want no visible overshoot", peak)
	}
	if elapsed > 1.5 {
		t.Errorf("settled after %.2fs, want under 1.5s", elapsed)
	}
}

func TestSpringSimulation_BouncyOvershoots(t *testing.T) {
	s := NewSpringSimulation(BouncySpring(), 0, 0, 1)
	_, peak := runSpring(s, 5)
	if peak <= 1 {
		t.Errorf("peak = %v, want overshoot past 1", peak)
	}
}

func TestSpringSimulation_AtRestIsDone(t *testing.T) {
	s := NewSpringSimulation(IOSSpring(), 2, 0, 2)
	if !s.IsDone() {
		t.Error("spring starting at rest on its target should be done")
	}
}
