package navigation_test

import (
	"testing"
	"time"

	"github.com/go-drift/cardstack/pkg/navigation"
	"github.com/go-drift/cardstack/pkg/rendering"
	cardtest "github.com/go-drift/cardstack/pkg/testing"
)

type gestureFixture struct {
	tester   *cardtest.Tester
	tr       *navigation.Transitioner
	gestures *navigation.GestureInterpreter
	backs    []string
}

func newGestureFixture(t *testing.T, cfg navigation.GestureConfig, measured bool, routes ...*navigation.Route) *gestureFixture {
	t.Helper()
	if len(routes) == 0 {
		routes = []*navigation.Route{route("id-0"), route("id-1"), route("id-2")}
	}
	f := &gestureFixture{tester: cardtest.NewTesterWithT(t)}
	f.tr = newTransitioner(t, f.tester, navigation.TransitionerOptions{}, navigation.NewStack(routes...))
	if measured {
		f.tr.OnLayout(rendering.Size{Width: 400, Height: 800})
	}
	f.gestures = navigation.NewGestureInterpreter(f.tr, cfg)
	f.gestures.OnGoBack = func(key string) { f.backs = append(f.backs, key) }
	return f
}

func (f *gestureFixture) active() *navigation.Scene {
	return f.tr.Props().Scene
}

func hdrag(pos, delta float64) navigation.DragSample {
	return navigation.DragSample{
		Phase:    navigation.DragUpdate,
		Position: rendering.Offset{X: pos, Y: 300},
		Delta:    rendering.Offset{X: delta},
	}
}

func TestDecideRelease(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		velocity float64
		want     navigation.ReleaseDecision
	}{
		{"past midpoint commits", 1.4, 0, navigation.ReleaseGoBack},
		{"exact midpoint commits", 1.5, 0, navigation.ReleaseGoBack},
		{"short of midpoint resets", 1.6, 0, navigation.ReleaseReset},
		{"backward flick overrides displacement", 1.8, 0.7, navigation.ReleaseGoBack},
		{"forward flick overrides displacement", 1.2, -0.7, navigation.ReleaseReset},
		{"weak flick falls back to threshold", 1.8, 0.4, navigation.ReleaseReset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := navigation.DecideRelease(2, tt.value, tt.velocity); got != tt.want {
				t.Errorf("DecideRelease(2, %v, %v) = %v, want %v", tt.value, tt.velocity, got, tt.want)
			}
		})
	}
}

func TestSettleDurations(t *testing.T) {
	near := func(got, want time.Duration) bool {
		d := got - want
		return d > -time.Microsecond && d < time.Microsecond
	}

	reset, goBack := navigation.SettleDurations(400, 100, 0, false)
	if !near(reset, 125*time.Millisecond) || !near(goBack, 375*time.Millisecond) {
		t.Errorf("floor velocity: reset %v, goBack %v", reset, goBack)
	}

	reset, goBack = navigation.SettleDurations(400, 100, 2, false)
	if !near(reset, 50*time.Millisecond) || !near(goBack, 150*time.Millisecond) {
		t.Errorf("fast release: reset %v, goBack %v", reset, goBack)
	}

	reset, goBack = navigation.SettleDurations(400, 100, 0, true)
	if !near(reset, 375*time.Millisecond) || !near(goBack, 125*time.Millisecond) {
		t.Errorf("inverted: reset %v, goBack %v", reset, goBack)
	}

	reset, goBack = navigation.SettleDurations(400, 500, 0, false)
	if goBack != 0 || reset <= 0 {
		t.Errorf("overshoot: reset %v, goBack %v", reset, goBack)
	}
}

func TestGestureAdmission(t *testing.T) {
	off := false
	tests := []struct {
		name     string
		cfg      navigation.GestureConfig
		measured bool
		routes   []*navigation.Route
		scene    func(f *gestureFixture) *navigation.Scene
		sample   navigation.DragSample
		want     bool
	}{
		{
			name:     "near the leading edge",
			measured: true,
			sample:   hdrag(110, 100),
			want:     true,
		},
		{
			name:     "50px from the edge",
			measured: true,
			sample:   hdrag(150, 100),
		},
		{
			name:     "far from the edge with a long drag",
			measured: true,
			sample:   hdrag(350, 300),
		},
		{
			name:     "drag not past the respond threshold",
			measured: true,
			sample:   hdrag(25, 20),
		},
		{
			name:   "axis not measured",
			sample: hdrag(110, 100),
		},
		{
			name:     "scene is not the active one",
			measured: true,
			scene:    func(f *gestureFixture) *navigation.Scene { return f.tr.Scenes()[1] },
			sample:   hdrag(110, 100),
		},
		{
			name:     "first stack position",
			measured: true,
			routes:   []*navigation.Route{route("id-0")},
			sample:   hdrag(110, 100),
		},
		{
			name:     "gestures disabled for the route",
			measured: true,
			routes: []*navigation.Route{
				route("id-0"),
				{Key: "id-1", Gestures: &navigation.GestureOptions{Enabled: &off}},
			},
			sample: hdrag(110, 100),
		},
		{
			name:     "gestures disabled globally",
			cfg:      navigation.GestureConfig{Disabled: true},
			measured: true,
			sample:   hdrag(110, 100),
		},
		{
			name:     "per-route response distance",
			measured: true,
			routes: []*navigation.Route{
				route("id-0"),
				{Key: "id-1", Gestures: &navigation.GestureOptions{ResponseDistance: navigation.ResponseDistance{Horizontal: 60}}},
			},
			sample: hdrag(150, 100),
			want:   true,
		},
		{
			name:     "right-to-left starts at the right edge",
			cfg:      navigation.GestureConfig{RTL: true},
			measured: true,
			sample:   hdrag(290, -100),
			want:     true,
		},
		{
			name:     "right-to-left rejects the left edge",
			cfg:      navigation.GestureConfig{RTL: true},
			measured: true,
			sample:   hdrag(110, 100),
		},
		{
			name:     "inverted starts at the far edge",
			cfg:      navigation.GestureConfig{Direction: navigation.GestureInverted},
			measured: true,
			sample:   hdrag(290, -100),
			want:     true,
		},
		{
			name:     "vertical card uses the vertical distance",
			measured: true,
			routes: []*navigation.Route{
				route("id-0"),
				{Key: "id-1", AnimateFromBottom: true},
			},
			sample: navigation.DragSample{
				Phase:    navigation.DragUpdate,
				Position: rendering.Offset{X: 200, Y: 220},
				Delta:    rendering.Offset{Y: 100},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGestureFixture(t, tt.cfg, tt.measured, tt.routes...)
			scene := f.active()
			if tt.scene != nil {
				scene = tt.scene(f)
			}
			if got := f.gestures.ShouldStart(scene, tt.sample); got != tt.want {
				t.Errorf("ShouldStart = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGestureAdmission_RejectedWhileTransitioning(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)
	_ = f.tr.Update(navigation.NewStack(route("id-0"), route("id-1"), route("id-2"), route("id-3")))

	if f.gestures.ShouldStart(f.active(), hdrag(110, 100)) {
		t.Error("gesture must not start while a transition runs")
	}
}

func TestGesture_MoveClampsPosition(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)
	if !f.gestures.ShouldStart(f.active(), hdrag(110, 100)) {
		t.Fatal("expected admission")
	}
	f.gestures.Grant()
	if !f.gestures.IsResponding() {
		t.Fatal("expected a responding session")
	}

	tests := []struct {
		delta float64
		want  float64
	}{
		{200, 1.5},
		{1000, 1},
		{-100, 2},
		{100, 1.75},
	}
	for _, tt := range tests {
		f.gestures.Move(hdrag(10+tt.delta, tt.delta))
		if got := f.tr.Position().Value(); got != tt.want {
			t.Errorf("delta %v: position = %v, want %v", tt.delta, got, tt.want)
		}
	}
}

func TestGesture_MoveMirroredForRTL(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{RTL: true}, true)
	if !f.gestures.ShouldStart(f.active(), hdrag(290, -100)) {
		t.Fatal("expected admission")
	}
	f.gestures.Grant()
	f.gestures.Move(hdrag(190, -200))
	if got := f.tr.Position().Value(); got != 1.5 {
		t.Errorf("position = %v, want 1.5", got)
	}
}

func TestGesture_ReleaseCommitsAndGoesBack(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)

	if !f.tester.Drag(f.gestures, f.active(), rendering.Offset{X: 5, Y: 300}, rendering.Offset{X: 300}, rendering.Offset{}) {
		t.Fatal("expected drag to be admitted")
	}
	if got := f.gestures.ImmediateIndex(); got != 1 {
		t.Errorf("immediate index after commit = %d, want 1", got)
	}
	if len(f.backs) != 0 {
		t.Fatal("go back must wait for the settle to finish")
	}

	settle(t, f.tester)

	if len(f.backs) != 1 || f.backs[0] != "id-2" {
		t.Fatalf("go back intents = %v, want [id-2]", f.backs)
	}
	if f.tr.Position().Value() != 1 {
		t.Errorf("position = %v, want 1", f.tr.Position().Value())
	}
	if got := f.gestures.ImmediateIndex(); got != 2 {
		t.Errorf("immediate index after settle = %d, want the external index 2", got)
	}

	// The host pops; position is already there so only progress runs.
	_ = f.tr.Update(navigation.NewStack(route("id-0"), route("id-1")))
	if f.tr.Position().IsAnimating() {
		t.Error("position should not animate after a committed swipe")
	}
	settle(t, f.tester)
	if got := keys(f.tr.Scenes()); !equalKeys(got, "id-0", "id-1") {
		t.Errorf("scenes = %v", got)
	}
	if len(f.backs) != 1 {
		t.Errorf("go back intents = %v, want exactly one", f.backs)
	}
}

func TestGesture_ReleaseResets(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)

	if !f.tester.Drag(f.gestures, f.active(), rendering.Offset{X: 5, Y: 300}, rendering.Offset{X: 100}, rendering.Offset{}) {
		t.Fatal("expected drag to be admitted")
	}
	settle(t, f.tester)

	if f.tr.Position().Value() != 2 {
		t.Errorf("position = %v, want 2", f.tr.Position().Value())
	}
	if len(f.backs) != 0 {
		t.Errorf("unexpected go back intents %v", f.backs)
	}
}

func TestGesture_FlickOverridesDisplacement(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)

	// 100px alone would reset, a 0.7 px/ms flick commits.
	f.tester.Drag(f.gestures, f.active(), rendering.Offset{X: 5, Y: 300}, rendering.Offset{X: 100}, rendering.Offset{X: 0.7})
	settle(t, f.tester)

	if len(f.backs) != 1 || f.backs[0] != "id-2" {
		t.Errorf("go back intents = %v, want [id-2]", f.backs)
	}

	g := newGestureFixture(t, navigation.GestureConfig{}, true)
	g.tester.Drag(g.gestures, g.active(), rendering.Offset{X: 5, Y: 300}, rendering.Offset{X: 300}, rendering.Offset{X: -0.7})
	settle(t, g.tester)

	if len(g.backs) != 0 || g.tr.Position().Value() != 2 {
		t.Errorf("forward flick should reset: backs %v, position %v", g.backs, g.tr.Position().Value())
	}
}

func TestGesture_TerminateResets(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)
	if !f.gestures.ShouldStart(f.active(), hdrag(110, 100)) {
		t.Fatal("expected admission")
	}
	f.gestures.Grant()
	f.gestures.Move(hdrag(210, 200))

	if !f.tester.Cancel(f.gestures, f.active()) {
		t.Fatal("expected cancel to be consumed")
	}
	if f.gestures.IsResponding() {
		t.Error("terminate must clear responding")
	}
	f.tester.Pump()

	if f.tr.Position().Value() != 2 {
		t.Errorf("position = %v, want immediate reset to 2", f.tr.Position().Value())
	}
	settle(t, f.tester)
	if len(f.backs) != 0 {
		t.Errorf("unexpected go back intents %v", f.backs)
	}
}

func TestGesture_SamplesAfterReleaseAreIgnored(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)
	if !f.gestures.ShouldStart(f.active(), hdrag(110, 100)) {
		t.Fatal("expected admission")
	}
	f.gestures.Grant()
	f.gestures.Move(hdrag(310, 300))
	f.gestures.Release(navigation.DragSample{Phase: navigation.DragEnd, Delta: rendering.Offset{X: 300}})

	f.gestures.Move(hdrag(10, 0))
	if !f.tr.Position().IsAnimating() {
		t.Error("a late move must not interrupt the settle")
	}
	if f.gestures.HandleDrag(f.active(), navigation.DragSample{Phase: navigation.DragEnd}) {
		t.Error("a late end sample must not be consumed")
	}

	settle(t, f.tester)
	if len(f.backs) != 1 {
		t.Errorf("go back intents = %v, want exactly one", f.backs)
	}
}

func TestGesture_NewTouchSuppressesGoBack(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)
	f.tester.Drag(f.gestures, f.active(), rendering.Offset{X: 5, Y: 300}, rendering.Offset{X: 300}, rendering.Offset{})

	// A second touch lands before the settle finishes.
	if !f.gestures.ShouldStart(f.active(), hdrag(110, 100)) {
		t.Fatal("expected a second swipe to be admitted")
	}
	f.gestures.Grant()
	f.tester.PumpFor(300 * time.Millisecond)

	if len(f.backs) != 0 {
		t.Errorf("go back must not fire while a new touch responds: %v", f.backs)
	}
	if got := f.gestures.ImmediateIndex(); got != 2 {
		t.Errorf("immediate index = %d, want the external index 2 once the settle is halted", got)
	}
}

func TestGesture_HostPushDuringSettle(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true, route("id-0"), route("id-1"))
	f.tester.Drag(f.gestures, f.active(), rendering.Offset{X: 5, Y: 300}, rendering.Offset{X: 300}, rendering.Offset{})
	if got := f.gestures.ImmediateIndex(); got != 0 {
		t.Fatalf("immediate index after commit = %d, want 0", got)
	}

	// The host pushes before the go back settle lands.
	if err := f.tr.Update(navigation.NewStack(route("id-0"), route("id-1"), route("id-2"))); err != nil {
		t.Fatalf("Update: %v", err)
	}
	settle(t, f.tester)

	if len(f.backs) != 0 {
		t.Errorf("go back must not fire for a halted settle: %v", f.backs)
	}
	if got := f.gestures.ImmediateIndex(); got != 2 {
		t.Errorf("immediate index = %d, want the external index 2", got)
	}
	if !f.gestures.ShouldStart(f.active(), hdrag(110, 100)) {
		t.Error("expected a swipe on the pushed card to be admitted")
	}
}

func TestGesture_PopThenPushDuringSettle(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)
	f.tester.Drag(f.gestures, f.active(), rendering.Offset{X: 5, Y: 300}, rendering.Offset{X: 300}, rendering.Offset{})

	_ = f.tr.Update(navigation.NewStack(route("id-0"), route("id-1")))
	settle(t, f.tester)
	_ = f.tr.Update(navigation.NewStack(route("id-0"), route("id-1"), route("id-3")))
	settle(t, f.tester)
	f.backs = nil

	// A short swipe on the new top resets in place.
	if !f.tester.Drag(f.gestures, f.active(), rendering.Offset{X: 5, Y: 300}, rendering.Offset{X: 120}, rendering.Offset{}) {
		t.Fatal("expected drag to be admitted")
	}
	settle(t, f.tester)

	if len(f.backs) != 0 {
		t.Errorf("go back intents = %v, want none", f.backs)
	}
	if f.tr.Position().Value() != 2 {
		t.Errorf("position = %v, want 2", f.tr.Position().Value())
	}
}

func TestGesture_ReleaseBehindStartStillEases(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)
	if !f.gestures.ShouldStart(f.active(), hdrag(110, 100)) {
		t.Fatal("expected the swipe to be admitted")
	}
	f.gestures.Grant()
	f.gestures.Move(hdrag(110, 100))

	// The finger came back past where it started.
	f.gestures.Release(navigation.DragSample{
		Phase:    navigation.DragEnd,
		Position: rendering.Offset{X: -40, Y: 300},
		Delta:    rendering.Offset{X: -50},
	})
	f.tester.PumpFor(16 * time.Millisecond)

	if !f.tr.Position().IsAnimating() {
		t.Error("reset should ease back rather than snap")
	}
	settle(t, f.tester)
	if f.tr.Position().Value() != 2 {
		t.Errorf("position = %v, want 2", f.tr.Position().Value())
	}
}

func TestGesture_HandleDragGrantsPendingSession(t *testing.T) {
	f := newGestureFixture(t, navigation.GestureConfig{}, true)
	if !f.gestures.ShouldStart(f.active(), hdrag(110, 100)) {
		t.Fatal("expected the swipe to be admitted")
	}
	if f.gestures.IsResponding() {
		t.Fatal("admission alone must not grant")
	}

	if !f.gestures.HandleDrag(f.active(), hdrag(110, 100)) {
		t.Fatal("drag update should be consumed")
	}
	if !f.gestures.IsResponding() {
		t.Error("expected the pending session to be granted")
	}
	if got := f.tr.Position().Value(); got != 1.75 {
		t.Errorf("position = %v, want 1.75", got)
	}
}
