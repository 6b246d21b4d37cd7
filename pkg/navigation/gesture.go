package navigation

import (
	"math"
	"time"

	"github.com/go-drift/cardstack/pkg/animation"
	"github.com/go-drift/cardstack/pkg/rendering"
)

const (
	// SettleBaseline is the time a release with no velocity would take to
	// cross the whole axis. It sets the velocity floor for settles.
	SettleBaseline = 500 * time.Millisecond

	// PositionThreshold is how far past the previous index a slow release
	// must be to commit.
	PositionThreshold = 0.5

	// VelocityThreshold is the direction-corrected velocity, in px/ms,
	// above which a flick decides the release regardless of displacement.
	VelocityThreshold = 0.5

	// RespondThreshold is the minimum drag distance, in pixels, before a
	// swipe is admitted.
	RespondThreshold = 20.0

	// DefaultHorizontalResponseDistance bounds horizontal swipe starts.
	DefaultHorizontalResponseDistance = 25.0
	// DefaultVerticalResponseDistance bounds vertical swipe starts.
	DefaultVerticalResponseDistance = 135.0
)

// DragPhase is the phase of a drag sample.
type DragPhase int

const (
	DragStart DragPhase = iota
	DragUpdate
	DragEnd
	DragCancel
)

// String returns the phase name.
func (p DragPhase) String() string {
	switch p {
	case DragStart:
		return "start"
	case DragUpdate:
		return "update"
	case DragEnd:
		return "end"
	case DragCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// DragSample is one pointer sample of a drag.
type DragSample struct {
	Phase DragPhase
	// Position is the current pointer location in the container.
	Position rendering.Offset
	// Delta is the cumulative movement since the pointer went down.
	Delta rendering.Offset
	// Velocity is the instantaneous velocity in px/ms.
	Velocity rendering.Offset
}

// GestureConfig holds the interpreter-wide defaults. Routes may override
// them through Route.Gestures.
type GestureConfig struct {
	// Disabled turns swipe-back off unless a route enables it.
	Disabled bool
	// Direction is the default gesture direction.
	Direction GestureDirection
	// ResponseDistance overrides the default edge distances.
	ResponseDistance ResponseDistance
	// RTL mirrors horizontal gestures for right-to-left layouts.
	RTL bool
	// Vertical uses the vertical axis for every route, as in modal stacks.
	Vertical bool
}

// ReleaseDecision is the outcome of a released swipe.
type ReleaseDecision int

const (
	// ReleaseReset snaps back to the current card.
	ReleaseReset ReleaseDecision = iota
	// ReleaseGoBack commits the back navigation.
	ReleaseGoBack
)

// String returns "reset" or "go-back".
func (d ReleaseDecision) String() string {
	if d == ReleaseGoBack {
		return "go-back"
	}
	return "reset"
}

// DecideRelease decides a release. index is the external stack index,
// value the position at release and velocity the direction-corrected
// gesture velocity in px/ms, positive toward going back.
func DecideRelease(index int, value, velocity float64) ReleaseDecision {
	switch {
	case velocity < -VelocityThreshold:
		return ReleaseReset
	case velocity > VelocityThreshold:
		return ReleaseGoBack
	case value <= float64(index)-PositionThreshold:
		return ReleaseGoBack
	default:
		return ReleaseReset
	}
}

// SettleDurations returns how long the reset and go-back settles take for
// a release that moved moved pixels along an axis of length axis.
func SettleDurations(axis, moved, velocity float64, inverted bool) (reset, goBack time.Duration) {
	floor := axis / float64(SettleBaseline.Milliseconds())
	v := math.Max(math.Abs(velocity), floor)
	if v <= 0 {
		return 0, 0
	}
	resetMs := moved / v
	goBackMs := (axis - moved) / v
	if inverted {
		resetMs, goBackMs = goBackMs, resetMs
	}
	return msDuration(resetMs), msDuration(goBackMs)
}

func msDuration(ms float64) time.Duration {
	if ms <= 0 || math.IsNaN(ms) {
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}

type gestureSession struct {
	scene      *Scene
	vertical   bool
	inverted   bool
	startValue float64
	responding bool
	ended      bool
}

// GestureInterpreter turns drags on the active card into swipe-back
// navigation.
//
// While a session is responding it owns the transitioner's position value.
// A committed swipe moves the immediate index back right away so a second
// swipe can start before the host has popped the stack. The settle drops
// the immediate index however it ends, and OnGoBack fires only when it
// finishes with no new session responding.
type GestureInterpreter struct {
	t   *Transitioner
	cfg GestureConfig

	// OnGoBack receives the key of the route to go back from.
	OnGoBack func(key string)

	session        *gestureSession
	immediateIndex int
	hasImmediate   bool
	settleGen      int
}

// NewGestureInterpreter attaches an interpreter to t.
func NewGestureInterpreter(t *Transitioner, cfg GestureConfig) *GestureInterpreter {
	return &GestureInterpreter{t: t, cfg: cfg}
}

// ImmediateIndex returns the index the gesture math currently targets.
func (g *GestureInterpreter) ImmediateIndex() int {
	if g.hasImmediate {
		return g.immediateIndex
	}
	return g.t.Stack().Index
}

// IsResponding reports whether a session owns the position value.
func (g *GestureInterpreter) IsResponding() bool {
	return g.session != nil && g.session.responding
}

type resolvedGesture struct {
	enabled          bool
	inverted         bool
	vertical         bool
	responseDistance float64
}

func (g *GestureInterpreter) resolve(route *Route) resolvedGesture {
	r := resolvedGesture{
		enabled:  !g.cfg.Disabled,
		inverted: g.cfg.Direction == GestureInverted,
		vertical: g.cfg.Vertical || route.AnimateFromBottom,
	}
	distances := g.cfg.ResponseDistance
	if o := route.Gestures; o != nil {
		if o.Enabled != nil {
			r.enabled = *o.Enabled
		}
		r.inverted = o.Direction == GestureInverted
		if o.ResponseDistance.Horizontal > 0 {
			distances.Horizontal = o.ResponseDistance.Horizontal
		}
		if o.ResponseDistance.Vertical > 0 {
			distances.Vertical = o.ResponseDistance.Vertical
		}
	}
	if r.vertical {
		r.responseDistance = distances.Vertical
		if r.responseDistance <= 0 {
			r.responseDistance = DefaultVerticalResponseDistance
		}
	} else {
		r.responseDistance = distances.Horizontal
		if r.responseDistance <= 0 {
			r.responseDistance = DefaultHorizontalResponseDistance
		}
	}
	return r
}

// mirrored reports whether the axis runs from the far edge.
func (g *GestureInterpreter) mirrored(r resolvedGesture) bool {
	return r.inverted != (g.cfg.RTL && !r.vertical)
}

// ShouldStart runs the admission test for a drag on scene. On success a
// pending session is opened and Grant may be called.
func (g *GestureInterpreter) ShouldStart(scene *Scene, sample DragSample) bool {
	if scene == nil || g.IsResponding() {
		return false
	}
	if scene.Index != g.t.Stack().Index || g.t.IsTransitioning() {
		return false
	}
	r := g.resolve(scene.Route)
	if !r.enabled {
		return false
	}
	axis := g.t.Layout().AxisLength(r.vertical)
	if axis <= 0 {
		return false
	}

	drag := sample.Delta.Axis(r.vertical)
	edge := sample.Position.Axis(r.vertical) - drag
	if g.mirrored(r) {
		edge = axis - edge
	}
	if edge > r.responseDistance {
		return false
	}
	if math.Abs(drag) <= RespondThreshold {
		return false
	}
	if g.ImmediateIndex() == 0 {
		return false
	}

	g.session = &gestureSession{
		scene:    scene,
		vertical: r.vertical,
		inverted: r.inverted,
	}
	return true
}

// Grant hands position to the pending session, halting any settle in
// flight and sampling its value as the drag origin. The new session works
// against the external index.
func (g *GestureInterpreter) Grant() {
	s := g.session
	if s == nil || s.responding || s.ended {
		return
	}
	s.startValue = g.t.Position().Stop()
	s.responding = true
	// The halted settle no longer owns the immediate index.
	g.hasImmediate = false
	g.settleGen++
}

// sign is +1 when dragging along the axis moves toward going back.
func (g *GestureInterpreter) sign(s *gestureSession) float64 {
	if (g.cfg.RTL && !s.vertical) != s.inverted {
		return -1
	}
	return 1
}

// Move applies a drag update.
func (g *GestureInterpreter) Move(sample DragSample) {
	s := g.session
	if s == nil || !s.responding || s.ended {
		return
	}
	axis := g.t.Layout().AxisLength(s.vertical)
	if axis <= 0 {
		return
	}
	index := float64(g.t.Stack().Index)
	value := s.startValue - g.sign(s)*sample.Delta.Axis(s.vertical)/axis
	g.t.Position().SetValue(clamp(value, index-1, index))
}

// Release ends the session and settles to either the previous or the
// current card.
func (g *GestureInterpreter) Release(sample DragSample) {
	s := g.session
	if s == nil || !s.responding || s.ended {
		return
	}
	s.responding = false
	s.ended = true
	g.session = nil

	axis := g.t.Layout().AxisLength(s.vertical)
	sign := g.sign(s)
	moved := math.Abs(sample.Delta.Axis(s.vertical))
	velocity := sign * sample.Velocity.Axis(s.vertical)
	resetDur, goBackDur := SettleDurations(axis, moved, velocity, s.inverted)

	target := g.ImmediateIndex()
	index := g.t.Stack().Index
	switch DecideRelease(index, g.t.Position().Value(), velocity) {
	case ReleaseGoBack:
		g.goBack(target, goBackDur)
	default:
		g.settle(target, resetDur, nil)
	}
}

// Terminate abandons the session, for instance when the system reclaims
// the pointer, and snaps back to the external index.
func (g *GestureInterpreter) Terminate() {
	if g.session != nil {
		g.session.responding = false
		g.session.ended = true
		g.session = nil
	}
	g.hasImmediate = false
	g.settleGen++
	g.settle(g.t.Stack().Index, 0, nil)
}

// HandleDrag feeds a sample for scene through admission and the session
// lifecycle. It returns true while the sample was consumed by a session.
func (g *GestureInterpreter) HandleDrag(scene *Scene, sample DragSample) bool {
	switch sample.Phase {
	case DragStart:
		return false
	case DragUpdate:
		if !g.IsResponding() {
			// A pending session that was never granted is re-admitted.
			if !g.ShouldStart(scene, sample) {
				g.session = nil
				return false
			}
			g.Grant()
		}
		g.Move(sample)
		return true
	case DragEnd:
		if !g.IsResponding() {
			return false
		}
		g.Release(sample)
		return true
	case DragCancel:
		if !g.IsResponding() {
			return false
		}
		g.Terminate()
		return true
	}
	return false
}

// goBack settles one card below from. Whichever way the settle ends it
// drops the immediate index; only a settle that finishes with no new
// session responding asks the host to go back.
func (g *GestureInterpreter) goBack(from int, d time.Duration) {
	target := from - 1
	if target < 0 {
		target = 0
	}
	g.immediateIndex = target
	g.hasImmediate = true
	g.settleGen++
	gen := g.settleGen
	g.settle(target, d, func(finished bool) {
		// Halted callbacks arrive a frame late; a newer go back owns the index.
		if gen != g.settleGen {
			return
		}
		g.hasImmediate = false
		if !finished || g.IsResponding() || target >= g.t.Stack().Index {
			return
		}
		for _, s := range g.t.Scenes() {
			if s.Index == target+1 && !s.IsStale {
				if g.OnGoBack != nil {
					g.OnGoBack(s.Key)
				}
				return
			}
		}
	})
}

// settle animates position to target. onDone may be nil.
func (g *GestureInterpreter) settle(target int, d time.Duration, onDone func(finished bool)) {
	driver := animation.Timing{Duration: d, Curve: animation.EaseInOut}
	g.t.Position().AnimateTo(float64(target), driver, onDone)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
