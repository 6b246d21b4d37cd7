// Package animation provides the frame-driven animation primitives used by
// the stack transitioner and the swipe-back gesture.
//
// # Core Components
//
//   - [Value]: a continuous, observable number that can be driven toward a
//     target by a [Timing] tween or a [Spring] simulation, with a completion
//     callback that always fires on a later frame.
//
//   - [Ticker]: the per-frame callback primitive. All tickers are advanced by
//     [StepTickers], which the engine calls once per frame.
//
//   - [Curve]: easing functions such as [EaseInOut], plus [CubicBezier] for
//     custom curves and [CurveByName] for tuning files.
//
//   - [SpringSimulation]: closed-form damped spring used by [Spring].
//
// # Basic Usage
//
//	position := animation.NewValue(0)
//	position.AddListener(func(v float64) { markNeedsPaint() })
//	position.AnimateTo(1, animation.Timing{
//	    Duration: 250 * time.Millisecond,
//	    Curve:    animation.EaseInOut,
//	}, func(finished bool) {
//	    // runs from a later StepTickers call
//	})
//
// Group animations with [Parallel]:
//
//	animation.Parallel(
//	    progress.To(1, spec),
//	    position.To(2, spec),
//	)(onTransitionEnd)
package animation
