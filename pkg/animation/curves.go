package animation

import (
	"fmt"
	"math"
	"strings"
)

// Curve transforms linear progress t in [0, 1] into eased progress.
//
// Standard curves: [LinearCurve], [Ease], [EaseIn], [EaseOut], [EaseInOut].
// Use [CubicBezier] to create custom curves matching CSS cubic-bezier().
type Curve func(t float64) float64

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// IOSNavigationCurve approximates iOS navigation transition easing.
var IOSNavigationCurve = CubicBezier(0.22, 1.0, 0.36, 1.0)

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.42, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.58, 1.0)

// EaseInOut starts and ends slowly with acceleration in the middle.
// It is the default curve for stack transitions and gesture settles.
var EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)

var namedCurves = map[string]Curve{
	"linear":      LinearCurve,
	"ease":        Ease,
	"ease_in":     EaseIn,
	"ease_out":    EaseOut,
	"ease_in_out": EaseInOut,
	"ios":         IOSNavigationCurve,
}

// CurveByName resolves a curve identifier as used in tuning files.
// Names are case-insensitive and accept '-' in place of '_'.
func CurveByName(name string) (Curve, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if key == "" {
		return EaseInOut, nil
	}
	if c, ok := namedCurves[key]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("animation: unknown curve %q", name)
}

// CubicBezier returns the CSS cubic-bezier(x1, y1, x2, y2) easing. The
// curve runs from (0,0) to (1,1); for an input x it solves for the curve
// parameter with Newton's method, falling back to bisection.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	bx := newBezierAxis(x1, x2)
	by := newBezierAxis(y1, y2)
	return func(x float64) float64 {
		switch {
		case x <= 0:
			return 0
		case x >= 1:
			return 1
		}
		return by.at(bx.solve(x))
	}
}

// bezierAxis holds one coordinate of a unit cubic bezier in polynomial
// form: a*t^3 + b*t^2 + c*t.
type bezierAxis struct {
	a, b, c float64
}

func newBezierAxis(p1, p2 float64) bezierAxis {
	c := 3 * p1
	b := 3*(p2-p1) - c
	return bezierAxis{a: 1 - c - b, b: b, c: c}
}

func (ax bezierAxis) at(t float64) float64 {
	return ((ax.a*t+ax.b)*t + ax.c) * t
}

func (ax bezierAxis) slope(t float64) float64 {
	return (3*ax.a*t+2*ax.b)*t + ax.c
}

// solve returns the parameter t in [0, 1] with at(t) == x.
func (ax bezierAxis) solve(x float64) float64 {
	const epsilon = 1e-7

	t := x
	for range 8 {
		diff := ax.at(t) - x
		if math.Abs(diff) < epsilon {
			return t
		}
		d := ax.slope(t)
		if math.Abs(d) < epsilon {
			break
		}
		t -= diff / d
	}

	lo, hi := 0.0, 1.0
	t = math.Max(lo, math.Min(x, hi))
	for hi-lo > epsilon {
		v := ax.at(t)
		if math.Abs(v-x) < epsilon {
			break
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}
