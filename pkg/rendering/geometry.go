// Package rendering holds the small geometry vocabulary shared by gesture
// samples and layout measurement.
package rendering

// Offset represents a 2D point or vector in logical pixels.
type Offset struct {
	X float64
	Y float64
}

// Sub returns o - other.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Add returns o + other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Axis returns the vertical component when vertical is true, else the
// horizontal one.
func (o Offset) Axis(vertical bool) float64 {
	if vertical {
		return o.Y
	}
	return o.X
}

// Size represents width and height dimensions in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// Axis returns the height when vertical is true, else the width.
func (s Size) Axis(vertical bool) float64 {
	if vertical {
		return s.Height
	}
	return s.Width
}

// IsEmpty reports whether either dimension is non-positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}
