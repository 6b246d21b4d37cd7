// Package testing provides deterministic frame pumping for cardstack tests.
//
// # Quick Start
//
// Create a tester, inject its loop, and pump frames:
//
//	func TestPush(t *testing.T) {
//	    tester := cardtest.NewTesterWithT(t)
//	    tr, _ := navigation.NewTransitioner(stack, navigation.TransitionerOptions{
//	        Dispatch: tester.Loop(),
//	    })
//	    tr.Update(pushed)
//
//	    if err := tester.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	    if tr.IsTransitioning() {
//	        t.Error("expected transition to finish")
//	    }
//	}
//
// # Animation Testing
//
// Control time for deterministic animation tests:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Gestures
//
// Drive the swipe-back interpreter with synthetic samples:
//
//	tester.Drag(gestures, scene, rendering.Offset{X: 5, Y: 300},
//	    rendering.Offset{X: 240}, rendering.Offset{})
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import cardtest "github.com/go-drift/cardstack/pkg/testing"
package testing
