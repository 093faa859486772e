// Package fleet manages the formation of live aliens: its initial grid
// layout, edge detection, and the drop-and-reverse maneuver.
package fleet

import (
	"math"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// Layout returns how many columns and rows of aliens fit on the screen.
// Spacing between aliens equals one alien width/height, with a one-alien
// margin at the top and left and room left above the ship.
func Layout(screen object.Screen, alienW, alienH, shipH float64) (cols, rows int) {
	availableX := float64(screen.Width) - 2*alienW
	cols = int(math.Floor(availableX / (2 * alienW)))

	availableY := float64(screen.Height) - 3*alienH - shipH
	rows = int(math.Floor(availableY / (2 * alienH)))

	return max(cols, 0), max(rows, 0)
}

// SlotPosition returns the top-left corner of the alien at (row, col).
func SlotPosition(row, col int, alienW, alienH float64) (x, y float64) {
	x = alienW + 2*alienW*float64(col)
	y = alienH + 2*alienH*float64(row)
	return x, y
}

// Fleet owns the aliens of the current wave.
type Fleet struct {
	Aliens []*object.Alien
	Cols   int // Columns of the last layout
	Rows   int // Rows of the last layout
}

// New creates an empty fleet.
func New() *Fleet {
	return &Fleet{}
}

// Populate replaces the fleet with a fresh full formation.
func (f *Fleet) Populate(screen object.Screen, s *config.Settings) {
	f.Clear()
	f.Cols, f.Rows = Layout(screen, s.AlienWidth, s.AlienHeight, s.ShipHeight)
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			x, y := SlotPosition(row, col, s.AlienWidth, s.AlienHeight)
			f.Aliens = append(f.Aliens, object.NewAlien(x, y, s.AlienWidth, s.AlienHeight))
		}
	}
}

// Clear removes every alien.
func (f *Fleet) Clear() {
	clear(f.Aliens)
	f.Aliens = f.Aliens[:0]
}

// Len returns the number of aliens in the fleet.
func (f *Fleet) Len() int {
	return len(f.Aliens)
}

// Empty reports whether the formation has been cleared.
func (f *Fleet) Empty() bool {
	return len(f.Aliens) == 0
}

// Compact drops aliens destroyed during collision resolution.
func (f *Fleet) Compact() {
	f.Aliens = object.Compact(f.Aliens)
}

// CheckEdges drops the formation and reverses its direction if any alien
// is at a screen edge. The maneuver happens at most once per call.
// Returns true if the fleet changed direction.
func (f *Fleet) CheckEdges(screen object.Screen, s *config.Settings) bool {
	for _, a := range f.Aliens {
		if a.AtEdge(screen) {
			f.changeDirection(s)
			return true
		}
	}
	return false
}

// changeDirection drops the entire fleet and flips its direction.
func (f *Fleet) changeDirection(s *config.Settings) {
	for _, a := range f.Aliens {
		a.Drop(s.FleetDropSpeed)
	}
	s.FleetDirection *= -1
}

// Update handles the edge maneuver and then moves every alien.
func (f *Fleet) Update(screen object.Screen, s *config.Settings) {
	f.CheckEdges(screen, s)
	for _, a := range f.Aliens {
		a.Update(s.AlienSpeed, s.FleetDirection)
	}
}

// HitsShip reports whether any alien overlaps the ship's box.
func (f *Fleet) HitsShip(ship physics.Rect) bool {
	for _, a := range f.Aliens {
		if a.Rect.Intersects(ship) {
			return true
		}
	}
	return false
}

// ReachedBottom reports whether any alien's bottom edge reached the bottom
// of the screen.
func (f *Fleet) ReachedBottom(screen object.Screen) bool {
	for _, a := range f.Aliens {
		if a.Rect.Bottom() >= float64(screen.Height) {
			return true
		}
	}
	return false
}
