package testing

import (
	"github.com/go-drift/cardstack/pkg/navigation"
	"github.com/go-drift/cardstack/pkg/rendering"
)

// DragSamples builds the update samples of a straight drag from start by
// delta in steps moves, followed by an end sample carrying velocity in
// px/ms. The start sample is omitted; the interpreter admits on updates.
func DragSamples(start, delta rendering.Offset, steps int, velocity rendering.Offset) []navigation.DragSample {
	if steps < 1 {
		steps = 1
	}
	samples := make([]navigation.DragSample, 0, steps+1)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		d := rendering.Offset{X: delta.X * f, Y: delta.Y * f}
		samples = append(samples, navigation.DragSample{
			Phase:    navigation.DragUpdate,
			Position: start.Add(d),
			Delta:    d,
		})
	}
	samples = append(samples, navigation.DragSample{
		Phase:    navigation.DragEnd,
		Position: start.Add(delta),
		Delta:    delta,
		Velocity: velocity,
	})
	return samples
}

// Drag feeds a drag to g for scene, pumping one frame after each sample.
// It returns false if the first update was not admitted.
func (t *Tester) Drag(g *navigation.GestureInterpreter, scene *navigation.Scene, start, delta rendering.Offset, velocity rendering.Offset) bool {
	samples := DragSamples(start, delta, 4, velocity)
	for i, s := range samples {
		consumed := g.HandleDrag(scene, s)
		if i == 0 && !consumed {
			return false
		}
		t.PumpFor(FrameDuration)
	}
	return true
}

// Cancel delivers a cancel sample for scene, as when the system reclaims
// the pointer.
func (t *Tester) Cancel(g *navigation.GestureInterpreter, scene *navigation.Scene) bool {
	return g.HandleDrag(scene, navigation.DragSample{Phase: navigation.DragCancel})
}
