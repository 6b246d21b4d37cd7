package navigation

import (
	"github.com/go-drift/cardstack/pkg/animation"
	"github.com/go-drift/cardstack/pkg/rendering"
)

// offscreen parks inactive cards before the layout is measured.
const offscreen = 1e6

// CardStyle is the transform a renderer applies to one card.
type CardStyle struct {
	Translate rendering.Offset
	Opacity   float64
}

// CardStyleFor derives a card's transform from the shared position value.
//
// Horizontal cards slide in from the trailing edge and the covered card
// shifts back by 30% of the width. Cards with AnimateFromBottom rise from
// the bottom and the covered card stays put.
func CardStyleFor(props TransitionProps, scene *Scene, rtl bool) CardStyle {
	layout := props.Layout
	if layout == nil || !layout.IsMeasured {
		if scene.IsActive {
			return CardStyle{Opacity: 1}
		}
		return CardStyle{Translate: rendering.Offset{X: offscreen, Y: offscreen}}
	}

	position := props.Position.Value()
	index := float64(scene.Index)
	opacity := animation.Interpolate(position,
		[]float64{index - 1, index - 0.99, index, index + 0.99, index + 1},
		[]float64{0, 1, 1, 0.3, 0},
	)
	steps := []float64{index - 1, index, index + 1}

	if scene.Route.AnimateFromBottom {
		h := layout.InitHeight
		return CardStyle{
			Translate: rendering.Offset{Y: animation.Interpolate(position, steps, []float64{h, 0, 0})},
			Opacity:   opacity,
		}
	}

	w := layout.InitWidth
	out := []float64{w, 0, -0.3 * w}
	if rtl {
		out = []float64{-w, 0, 0.3 * w}
	}
	return CardStyle{
		Translate: rendering.Offset{X: animation.Interpolate(position, steps, out)},
		Opacity:   opacity,
	}
}
