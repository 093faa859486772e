package object

import "github.com/tomz197/invaders/internal/physics"

// Alien is one member of the invading formation. It moves horizontally
// every frame; its row only changes when the whole formation drops.
type Alien struct {
	X         float64      // Horizontal position (left edge) at sub-unit precision
	Rect      physics.Rect // Bounding box; Rect.X is resynced from X on update
	destroyed bool
}

// NewAlien creates an alien with its top-left corner at (x, y).
func NewAlien(x, y, width, height float64) *Alien {
	return &Alien{
		X:    x,
		Rect: physics.NewRect(x, y, width, height),
	}
}

// Update moves the alien horizontally in the fleet's direction.
func (a *Alien) Update(speed float64, direction int) {
	a.X += speed * float64(direction)
	a.Rect.X = a.X
}

// AtEdge reports whether the alien touches or passes the left or right
// screen boundary.
func (a *Alien) AtEdge(screen Screen) bool {
	return a.Rect.Right() >= float64(screen.Width) || a.Rect.Left() <= 0
}

// Drop moves the alien down by dy.
func (a *Alien) Drop(dy float64) {
	a.Rect.Y += dy
}

// MarkDestroyed marks the alien for removal.
func (a *Alien) MarkDestroyed() {
	a.destroyed = true
}

// IsDestroyed returns true if the alien is marked for removal.
func (a *Alien) IsDestroyed() bool {
	return a.destroyed
}
