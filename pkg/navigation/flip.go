package navigation

import "github.com/go-drift/cardstack/pkg/animation"

// FlipPhase identifies the half of a flip transition being animated.
type FlipPhase int

const (
	// FlipNone means no flip is animating.
	FlipNone FlipPhase = iota
	// FlipFrom is the first half, while the outgoing card turns away.
	FlipFrom
	// FlipTo is the second half, while the incoming card turns in.
	FlipTo
)

// String returns a short name for the phase.
func (p FlipPhase) String() string {
	switch p {
	case FlipFrom:
		return "from"
	case FlipTo:
		return "to"
	default:
		return "none"
	}
}

// runFlip animates a flip in two halves. The halves are zero-length when
// the index or position did not change, but every signal still fires in
// order: start, from-complete, to-complete.
func (t *Transitioner) runFlip(tr *transition, driver animation.Driver) {
	moves := tr.indexHasChanged && tr.positionHasChanged
	index := float64(tr.stack.Index)

	half := func(progress, position float64) animation.Animation {
		if !moves {
			return animation.Parallel()
		}
		return animation.Parallel(
			t.progress.To(progress, driver),
			t.position.To(position, driver),
		)
	}

	t.flipPhase = FlipFrom
	signal(t.opts.OnFlipStart)
	half(0.5, index-0.5)(func(bool) {
		if t.closed {
			return
		}
		t.flipPhase = FlipTo
		signal(t.opts.OnFlipFromComplete)
		half(1, index)(func(bool) {
			if t.closed {
				return
			}
			t.flipPhase = FlipNone
			signal(t.opts.OnFlipToComplete)
			t.complete()
		})
	})
}

func signal(fn func()) {
	if fn != nil {
		fn()
	}
}
