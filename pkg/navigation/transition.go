package navigation

import (
	"time"

	"github.com/go-drift/cardstack/pkg/animation"
)

// DefaultTransitionDuration is used when no ConfigureTransition is set.
const DefaultTransitionDuration = 250 * time.Millisecond

// TransitionProps is the snapshot handed to hooks and renderers for one
// side of a transition.
type TransitionProps struct {
	Layout   *Layout
	Stack    *Stack
	Position *animation.Value
	Progress *animation.Value
	Scenes   []*Scene
	// Scene is the active scene of Scenes.
	Scene *Scene
	// Index is Scene.Index.
	Index int
}

// TransitionSpec configures the timing of a transition.
type TransitionSpec struct {
	Duration time.Duration
	// Curve eases a timed transition; nil means ease-in-out.
	Curve animation.Curve
	// Spring selects a physically modeled spring instead of a timed tween.
	Spring bool
	// SpringParams are used when Spring is set; the zero value means
	// animation.IOSSpring().
	SpringParams animation.SpringDescription
}

// DefaultTransitionSpec returns a 250ms ease-in-out tween.
func DefaultTransitionSpec() TransitionSpec {
	return TransitionSpec{
		Duration: DefaultTransitionDuration,
		Curve:    animation.EaseInOut,
	}
}

// driver converts the spec into an animation driver.
func (s TransitionSpec) driver() animation.Driver {
	if s.Spring {
		desc := s.SpringParams
		if desc == (animation.SpringDescription{}) {
			desc = animation.IOSSpring()
		}
		return animation.Spring{Description: desc}
	}
	curve := s.Curve
	if curve == nil {
		curve = animation.EaseInOut
	}
	return animation.Timing{Duration: s.Duration, Curve: curve}
}

// Awaitable is an optional pending result returned by a transition hook.
// A nil Awaitable means the hook finished synchronously. Otherwise the
// sequencer resumes once a value is received or the channel is closed.
type Awaitable <-chan error

// Dispatcher hands awaited hook results back to the frame loop.
// *engine.Loop implements it.
type Dispatcher interface {
	Await(pending <-chan error, callback func(error))
}

// TransitionerOptions are the host's collaborators for a Transitioner.
// Every field is optional.
type TransitionerOptions struct {
	// ConfigureTransition returns the spec for a transition. It is read once
	// per transition, when it starts.
	ConfigureTransition func(next, prev TransitionProps) TransitionSpec

	// OnTransitionStart runs before the animation starts.
	OnTransitionStart func(next, prev TransitionProps) Awaitable
	// OnTransitionEnd runs after stale scenes were purged. A queued
	// transition starts only once it resolves.
	OnTransitionEnd func(next, prev TransitionProps) Awaitable

	// OnFlipStart, OnFlipFromComplete and OnFlipToComplete bracket the two
	// halves of a flip transition.
	OnFlipStart        func()
	OnFlipFromComplete func()
	OnFlipToComplete   func()

	// Dispatch defaults to engine.Default().
	Dispatch Dispatcher
}
