package object

import "github.com/tomz197/invaders/internal/physics"

// Ship is the player-controlled cannon at the bottom of the screen.
// It is created once per game session and only ever repositioned.
type Ship struct {
	X    float64      // Horizontal position (left edge) at sub-unit precision
	Rect physics.Rect // Bounding box; Rect.X is resynced from X on update

	// Movement intent, set by key-down and cleared by key-up.
	MovingLeft  bool
	MovingRight bool
}

// NewShip creates a ship of the given size at the bottom center of the screen.
func NewShip(screen Screen, width, height float64) *Ship {
	s := &Ship{Rect: physics.NewRect(0, 0, width, height)}
	s.Center(screen)
	return s
}

// Center puts the ship back at the bottom center of the screen.
func (s *Ship) Center(screen Screen) {
	s.Rect.SetMidBottom(float64(screen.Width)/2, float64(screen.Height))
	s.X = s.Rect.X
}

// Update applies movement intent. Each direction is an independent step,
// so holding both keys nets to zero.
func (s *Ship) Update(screen Screen, speed float64) {
	if s.MovingRight && s.Rect.Right() < float64(screen.Width) {
		s.X += speed
	}
	if s.MovingLeft && s.Rect.Left() > 0 {
		s.X -= speed
	}
	s.Rect.X = s.X
}
