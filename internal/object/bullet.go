package object

import "github.com/tomz197/invaders/internal/physics"

// Bullet is a shot fired straight up from the ship.
type Bullet struct {
	Y         float64      // Vertical position (top edge), decreasing upward
	Rect      physics.Rect // Bounding box; Rect.Y is resynced from Y on update
	destroyed bool         // Consumed by a collision
}

// NewBullet creates a bullet whose top edge is centered on the ship's top edge.
func NewBullet(ship *Ship, width, height float64) *Bullet {
	b := &Bullet{Rect: physics.NewRect(0, 0, width, height)}
	b.Rect.SetMidTop(ship.Rect.CenterX(), ship.Rect.Top())
	b.Y = b.Rect.Y
	return b
}

// Update moves the bullet up the screen.
func (b *Bullet) Update(speed float64) {
	b.Y -= speed
	b.Rect.Y = b.Y
}

// OffScreen reports whether the bullet has left through the top edge.
func (b *Bullet) OffScreen() bool {
	return b.Rect.Bottom() <= 0
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for removal.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}
