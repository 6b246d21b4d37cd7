package navigation

import (
	"github.com/go-drift/cardstack/pkg/animation"
	"github.com/go-drift/cardstack/pkg/rendering"
)

// Layout tracks the measured size of the container the cards are drawn in.
//
// Width and Height are animated values so renderers can bind card offsets to
// them directly. Until the first measurement arrives IsMeasured is false and
// both read zero.
type Layout struct {
	Width      *animation.Value
	Height     *animation.Value
	InitWidth  float64
	InitHeight float64
	IsMeasured bool
}

// NewLayout returns an unmeasured layout.
func NewLayout() *Layout {
	return &Layout{
		Width:  animation.NewValue(0),
		Height: animation.NewValue(0),
	}
}

// Size returns the last measured size.
func (l *Layout) Size() rendering.Size {
	return rendering.Size{Width: l.InitWidth, Height: l.InitHeight}
}

// AxisLength returns the gesture axis length, or 0 while unmeasured.
func (l *Layout) AxisLength(vertical bool) float64 {
	if !l.IsMeasured {
		return 0
	}
	return l.Size().Axis(vertical)
}

// measure applies a new size and reports whether anything changed.
func (l *Layout) measure(size rendering.Size) bool {
	if l.IsMeasured && l.InitWidth == size.Width && l.InitHeight == size.Height {
		return false
	}
	if !l.IsMeasured && size.Width == 0 && size.Height == 0 {
		return false
	}
	l.InitWidth = size.Width
	l.InitHeight = size.Height
	l.IsMeasured = true
	l.Width.SetValue(size.Width)
	l.Height.SetValue(size.Height)
	return true
}
