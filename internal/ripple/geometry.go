package ripple

import "math"

// Point is a pointer location in content coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in content coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so that two contiguous clips never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Inset shrinks r by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// ContainsRect reports whether o lies entirely within r (edges inclusive).
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.MaxX() <= r.MaxX() && o.Y >= r.Y && o.MaxY() <= r.MaxY()
}

// clamp bounds v to [lo, hi]. A NaN v clamps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
