package animation

import "math"

// SpringDescription holds the physical parameters of a damped spring.
type SpringDescription struct {
	// Mass of the object attached to the spring.
	Mass float64
	// Stiffness is the spring constant k.
	Stiffness float64
	// Damping is the viscous damping coefficient c.
	Damping float64
}

// IOSSpring returns a near-critically damped spring that settles a full
// screen transition in roughly half a second without visible overshoot.
func IOSSpring() SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: 170, Damping: 26}
}

// BouncySpring returns an underdamped spring that overshoots slightly.
func BouncySpring() SpringDescription {
	return SpringDescription{Mass: 1, Stiffness: 180, Damping: 12}
}

func (d SpringDescription) normalized() SpringDescription {
	if d.Mass <= 0 {
		d.Mass = 1
	}
	if d.Stiffness <= 0 {
		d.Stiffness = 100
	}
	if d.Damping < 0 {
		d.Damping = 0
	}
	return d
}

// SpringSimulation models a damped harmonic oscillator moving toward a
// target. The closed-form solution is evaluated at accumulated time, so
// variable frame times do not change the trajectory.
type SpringSimulation struct {
	target float64
	// Solution parameters relative to target.
	kind   springKind
	r1, r2 float64
	c1, c2 float64
	w      float64

	t         float64
	position  float64
	velocity  float64
	tolerance float64
	speedTol  float64
	done      bool
}

type springKind int

const (
	springCritical springKind = iota
	springOverdamped
	springUnderdamped
)

// NewSpringSimulation creates a simulation starting at position with the
// given velocity (units per second) heading for target.
func NewSpringSimulation(desc SpringDescription, position, velocity, target float64) *SpringSimulation {
	d := desc.normalized()
	s := &SpringSimulation{
		target:    target,
		position:  position,
		velocity:  velocity,
		tolerance: 1e-3,
		speedTol:  1e-2,
	}

	x0 := position - target
	v0 := velocity
	cmp := d.Damping*d.Damping - 4*d.Mass*d.Stiffness

	switch {
	case math.Abs(cmp) < 1e-9:
		s.kind = springCritical
		s.r1 = -d.Damping / (2 * d.Mass)
		s.c1 = x0
		s.c2 = v0 - s.r1*x0
	case cmp > 0:
		s.kind = springOverdamped
		root := math.Sqrt(cmp)
		s.r1 = (-d.Damping - root) / (2 * d.Mass)
		s.r2 = (-d.Damping + root) / (2 * d.Mass)
		s.c2 = (v0 - s.r1*x0) / (s.r2 - s.r1)
		s.c1 = x0 - s.c2
	default:
		s.kind = springUnderdamped
		s.w = math.Sqrt(-cmp) / (2 * d.Mass)
		s.r1 = -d.Damping / (2 * d.Mass)
		s.c1 = x0
		s.c2 = (v0 - s.r1*x0) / s.w
	}

	if math.Abs(x0) < s.tolerance && math.Abs(v0) < s.speedTol {
		s.position = target
		s.velocity = 0
		s.done = true
	}
	return s
}

// Step advances the simulation by dt seconds. Returns true once the spring
// has come to rest at its target.
func (s *SpringSimulation) Step(dt float64) bool {
	if s.done {
		return true
	}
	if dt > 0 {
		s.t += dt
	}
	x, v := s.evaluate(s.t)
	s.position = s.target + x
	s.velocity = v
	if math.Abs(x) < s.tolerance && math.Abs(v) < s.speedTol {
		s.position = s.target
		s.velocity = 0
		s.done = true
	}
	return s.done
}

func (s *SpringSimulation) evaluate(t float64) (x, v float64) {
	switch s.kind {
	case springCritical:
		e := math.Exp(s.r1 * t)
		x = (s.c1 + s.c2*t) * e
		v = (s.c2 + s.r1*(s.c1+s.c2*t)) * e
	case springOverdamped:
		e1 := math.Exp(s.r1 * t)
		e2 := math.Exp(s.r2 * t)
		x = s.c1*e1 + s.c2*e2
		v = s.c1*s.r1*e1 + s.c2*s.r2*e2
	default:
		e := math.Exp(s.r1 * t)
		cos := math.Cos(s.w * t)
		sin := math.Sin(s.w * t)
		x = e * (s.c1*cos + s.c2*sin)
		v = e * ((s.c1*s.r1+s.c2*s.w)*cos + (s.c2*s.r1-s.c1*s.w)*sin)
	}
	return x, v
}

// Position returns the current position.
func (s *SpringSimulation) Position() float64 { return s.position }

// Velocity returns the current velocity in units per second.
func (s *SpringSimulation) Velocity() float64 { return s.velocity }

// IsDone reports whether the spring has settled.
func (s *SpringSimulation) IsDone() bool { return s.done }
