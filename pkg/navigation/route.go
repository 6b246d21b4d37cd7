// Package navigation implements the transition engine behind a stack-based
// screen navigator.
//
// The host owns an ordered stack of routes and hands every new snapshot to a
// [Transitioner]. The transitioner reconciles the snapshot into a list of
// lifecycle-tagged [Scene] values, animates the shared position and progress
// values between the old and new active scene, and purges scenes that have
// finished animating out:
//
//	t, err := navigation.NewTransitioner(stack, navigation.TransitionerOptions{
//	    OnTransitionEnd: func(next, prev navigation.TransitionProps) navigation.Awaitable {
//	        log.Printf("now showing %s", next.Scene.Key)
//	        return nil
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	err = t.Update(nextStack) // push, pop or replace
//
// # Swipe Back
//
// A [GestureInterpreter] attached to the transitioner turns drag samples on
// the active scene into position updates and, on release, either commits a
// back navigation or snaps back. Committed swipes report the route key to go
// back from via OnGoBack once the settle animation has finished.
//
// # Flip Transitions
//
// Snapshots with Flip set are animated in two halves with a distinct
// halfway signal, see [TransitionerOptions.OnFlipFromComplete].
package navigation

import "reflect"

// GestureDirection selects which way a swipe-back drag travels.
type GestureDirection int

const (
	// GestureNormal drags away from the leading edge to go back.
	GestureNormal GestureDirection = iota
	// GestureInverted drags toward the leading edge to go back.
	GestureInverted
)

// String returns "normal" or "inverted".
func (d GestureDirection) String() string {
	if d == GestureInverted {
		return "inverted"
	}
	return "normal"
}

// ResponseDistance bounds how far from the leading edge a swipe may start.
// Zero fields fall back to the defaults.
type ResponseDistance struct {
	Horizontal float64
	Vertical   float64
}

// GestureOptions are per-route overrides for the swipe-back gesture.
type GestureOptions struct {
	// Enabled turns gestures on or off; nil keeps the interpreter default.
	Enabled *bool
	// Direction inverts the gesture when set to GestureInverted.
	Direction GestureDirection
	// ResponseDistance overrides the edge response distance.
	ResponseDistance ResponseDistance
}

// Route is one entry of the host's navigation stack.
//
// Routes are treated as immutable values. The lifecycle flags IsStale and
// IsPurged are the host's own projection; the transitioner reads them but
// derives its own scene-level flags instead of mutating them.
type Route struct {
	// Key uniquely identifies the route within a stack.
	Key string
	// Name is the screen name, e.g. "/details".
	Name string
	// Params carries screen arguments.
	Params map[string]any
	// AnimateFromBottom selects a vertical, modal-style card.
	AnimateFromBottom bool
	// IsStale marks a route the host has already logically removed.
	IsStale bool
	// IsPurged marks a route that must never render again.
	IsPurged bool
	// Gestures overrides swipe-back behavior for this route.
	Gestures *GestureOptions
}

// routesShallowEqual reports whether two routes carry the same payload.
func routesShallowEqual(a, b *Route) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Key == b.Key &&
		a.Name == b.Name &&
		a.AnimateFromBottom == b.AnimateFromBottom &&
		a.IsStale == b.IsStale &&
		a.IsPurged == b.IsPurged &&
		a.Gestures == b.Gestures &&
		reflect.DeepEqual(a.Params, b.Params)
}

// Stack is an ordered snapshot of routes. The active route is the last one
// and Index must equal len(Routes)-1.
type Stack struct {
	Routes []*Route
	Index  int
	// Flip marks a snapshot produced by a flip forward/back action.
	Flip bool
}

// NewStack builds a snapshot whose index points at the last route.
func NewStack(routes ...*Route) *Stack {
	return &Stack{Routes: routes, Index: len(routes) - 1}
}

// Top returns the active route, or nil for an empty stack.
func (s *Stack) Top() *Route {
	if s == nil || len(s.Routes) == 0 {
		return nil
	}
	return s.Routes[len(s.Routes)-1]
}

// Len returns the number of routes.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Routes)
}

// Valid reports whether the stack is non-empty and its index points at the
// last route.
func (s *Stack) Valid() bool {
	return s != nil && len(s.Routes) > 0 && s.Index == len(s.Routes)-1
}

// stacksEqual reports whether two snapshots are structurally identical.
func stacksEqual(a, b *Stack) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Index != b.Index || a.Flip != b.Flip || len(a.Routes) != len(b.Routes) {
		return false
	}
	for i := range a.Routes {
		if !routesShallowEqual(a.Routes[i], b.Routes[i]) {
			return false
		}
	}
	return true
}
