package animation

import (
	"math"
	"time"
)

// Driver describes how a [Value] travels to its target: a [Timing] tween or
// a [Spring] simulation.
type Driver interface {
	newStepper(from, to float64) stepper
}

// stepper produces the value at a given elapsed time since start.
type stepper interface {
	step(elapsed time.Duration) (value float64, done bool)
}

// Timing animates over a fixed duration shaped by Curve.
// A non-positive Duration jumps to the target on the next frame.
type Timing struct {
	Duration time.Duration
	Curve    Curve
}

func (t Timing) newStepper(from, to float64) stepper {
	return &timingStepper{cfg: t, from: from, to: to}
}

type timingStepper struct {
	cfg      Timing
	from, to float64
}

func (s *timingStepper) step(elapsed time.Duration) (float64, bool) {
	if s.cfg.Duration <= 0 {
		return s.to, true
	}
	progress := float64(elapsed) / float64(s.cfg.Duration)
	if progress >= 1 {
		return s.to, true
	}
	if progress < 0 {
		progress = 0
	}
	eased := progress
	if s.cfg.Curve != nil {
		eased = s.cfg.Curve(progress)
	}
	return s.from + (s.to-s.from)*eased, false
}

// Spring animates with a physically modeled spring.
type Spring struct {
	Description SpringDescription
	// Velocity is the initial velocity in units per second.
	Velocity float64
}

func (s Spring) newStepper(from, to float64) stepper {
	return &springStepper{sim: NewSpringSimulation(s.Description, from, s.Velocity, to)}
}

type springStepper struct {
	sim  *SpringSimulation
	last time.Duration
}

func (s *springStepper) step(elapsed time.Duration) (float64, bool) {
	dt := (elapsed - s.last).Seconds()
	s.last = elapsed
	done := s.sim.Step(dt)
	return s.sim.Position(), done
}

// Animation is a startable unit of motion. Starting it must never invoke
// done synchronously; finished is false when the motion was halted.
type Animation func(done func(finished bool))

// Value is a continuous, observable number that can be driven toward a
// target over time.
//
// At most one driver runs at a time. Starting a new animation, calling
// SetValue, or calling Stop halts the running driver; its completion is
// then delivered on the next frame with finished=false.
type Value struct {
	value float64

	ticker *Ticker
	onDone func(finished bool)

	listeners      map[int]func(float64)
	nextListenerID int
}

// NewValue creates a Value with an initial number.
func NewValue(initial float64) *Value {
	return &Value{
		value:     initial,
		listeners: make(map[int]func(float64)),
	}
}

// Value returns the current number.
func (v *Value) Value() float64 {
	return v.value
}

// SetValue halts any running driver and jumps to x.
func (v *Value) SetValue(x float64) {
	v.halt()
	v.set(x)
}

// Stop halts any running driver and returns the sampled value.
func (v *Value) Stop() float64 {
	v.halt()
	return v.value
}

// IsAnimating reports whether a driver is running.
func (v *Value) IsAnimating() bool {
	return v.ticker != nil
}

// AnimateTo drives the value to target. onDone may be nil.
func (v *Value) AnimateTo(target float64, driver Driver, onDone func(finished bool)) {
	v.halt()

	if driver == nil {
		driver = Timing{}
	}
	st := driver.newStepper(v.value, target)
	v.onDone = onDone

	var ticker *Ticker
	ticker = NewTicker(func(elapsed time.Duration) {
		if v.ticker != ticker {
			return
		}
		next, done := st.step(elapsed)
		v.set(next)
		// A listener may have restarted or halted the value.
		if v.ticker != ticker {
			return
		}
		if done {
			ticker.Stop()
			v.ticker = nil
			cb := v.onDone
			v.onDone = nil
			if cb != nil {
				cb(true)
			}
		}
	})
	v.ticker = ticker
	ticker.Start()
}

// To returns an Animation that drives v to target when started.
func (v *Value) To(target float64, driver Driver) Animation {
	return func(done func(finished bool)) {
		v.AnimateTo(target, driver, done)
	}
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (v *Value) AddListener(fn func(float64)) func() {
	id := v.nextListenerID
	v.nextListenerID++
	v.listeners[id] = fn
	return func() {
		delete(v.listeners, id)
	}
}

func (v *Value) halt() {
	if v.ticker == nil {
		return
	}
	v.ticker.Stop()
	v.ticker = nil
	if cb := v.onDone; cb != nil {
		v.onDone = nil
		Defer(func() { cb(false) })
	}
}

func (v *Value) set(x float64) {
	if x == v.value || math.IsNaN(x) {
		return
	}
	v.value = x
	for _, listener := range v.listeners {
		listener(x)
	}
}

// Parallel starts all animations together and reports once every one has
// ended. finished is true only when none of them was halted. An empty group
// completes on the next frame.
func Parallel(animations ...Animation) Animation {
	return func(done func(finished bool)) {
		if len(animations) == 0 {
			Defer(func() {
				if done != nil {
					done(true)
				}
			})
			return
		}
		remaining := len(animations)
		allFinished := true
		for _, anim := range animations {
			anim(func(finished bool) {
				allFinished = allFinished && finished
				remaining--
				if remaining == 0 && done != nil {
					done(allFinished)
				}
			})
		}
	}
}

// Sequence starts each animation after the previous one ends. A halted
// step stops the chain and reports finished=false. An empty sequence
// completes on the next frame.
func Sequence(animations ...Animation) Animation {
	return func(done func(finished bool)) {
		var run func(i int)
		run = func(i int) {
			if i == len(animations) {
				if done != nil {
					done(true)
				}
				return
			}
			animations[i](func(finished bool) {
				if !finished {
					if done != nil {
						done(false)
					}
					return
				}
				run(i + 1)
			})
		}
		if len(animations) == 0 {
			Defer(func() { run(0) })
			return
		}
		run(0)
	}
}
