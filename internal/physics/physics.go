// Package physics provides axis-aligned boxes and broad-phase collision helpers.
package physics

// Rect is an axis-aligned box. X and Y are the top-left corner; Y grows
// downward like screen coordinates.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect creates a rect from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Intersects reports whether the two rects overlap with positive area.
// Rects that only share an edge do not intersect, and empty rects never do.
func (r Rect) Intersects(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.Left() < o.Right() && r.Right() > o.Left() &&
		r.Top() < o.Bottom() && r.Bottom() > o.Top()
}

// ContainsPoint reports whether (x, y) lies inside the rect. The left and
// top edges are inclusive, the right and bottom edges exclusive.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.Left() && x < r.Right() && y >= r.Top() && y < r.Bottom()
}

// SetMidBottom moves the rect so its bottom edge is centered on (x, y).
func (r *Rect) SetMidBottom(x, y float64) {
	r.X = x - r.W/2
	r.Y = y - r.H
}

// SetMidTop moves the rect so its top edge is centered on (x, y).
func (r *Rect) SetMidTop(x, y float64) {
	r.X = x - r.W/2
	r.Y = y
}

// SetCenter moves the rect so its center is (x, y).
func (r *Rect) SetCenter(x, y float64) {
	r.X = x - r.W/2
	r.Y = y - r.H/2
}
