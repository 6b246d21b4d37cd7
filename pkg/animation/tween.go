package animation

import "github.com/go-drift/cardstack/pkg/rendering"

// Tween interpolates between Begin and End values based on a 0-1 input.
//
// Use the helper constructors ([TweenFloat64], [TweenOffset]) for common
// types, or create custom tweens with a Lerp function.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp linearly interpolates between Begin and End. Receives the begin value,
	// end value, and progress t in [0, 1]. Returns the interpolated value.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t (0.0 to 1.0).
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform returns the interpolated value at v's current value, typically
// a transition's progress.
func (tw *Tween[T]) Transform(v *Value) T {
	return tw.Evaluate(v.Value())
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset linearly interpolates between two Offset values.
func LerpOffset(a, b rendering.Offset, t float64) rendering.Offset {
	return rendering.Offset{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenOffset creates a tween for Offset values.
func TweenOffset(begin, end rendering.Offset) *Tween[rendering.Offset] {
	return &Tween[rendering.Offset]{Begin: begin, End: end, Lerp: LerpOffset}
}

// Interpolate maps x through the piecewise-linear function defined by the
// ascending input stops and their output values. Inputs outside the range
// clamp to the first or last output. Mismatched or empty stops return x.
func Interpolate(x float64, input, output []float64) float64 {
	if len(input) == 0 || len(input) != len(output) {
		return x
	}
	if x <= input[0] {
		return output[0]
	}
	last := len(input) - 1
	if x >= input[last] {
		return output[last]
	}
	for i := 1; i <= last; i++ {
		if x > input[i] {
			continue
		}
		span := input[i] - input[i-1]
		if span == 0 {
			return output[i]
		}
		return LerpFloat64(output[i-1], output[i], (x-input[i-1])/span)
	}
	return output[last]
}
