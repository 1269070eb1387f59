package layout

// Rect is an axis-aligned rectangle with X1 ≥ X0 and Y1 ≥ Y0.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Area returns Width × Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Contains reports whether (x, y) lies inside r. The lower edges are
// inclusive and the upper edges exclusive, so adjacent tiles never both
// claim a point on their shared edge.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// Scale returns r with both axes multiplied by the given factors.
func (r Rect) Scale(sx, sy float64) Rect {
	return Rect{X0: r.X0 * sx, Y0: r.Y0 * sy, X1: r.X1 * sx, Y1: r.Y1 * sy}
}
