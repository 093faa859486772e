// Package object holds the game entities and their per-frame update rules.
package object

import "github.com/tomz197/invaders/internal/physics"

// Screen represents the logical playfield dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen creates a screen of the given logical size.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// Rect returns the screen bounds anchored at the origin.
func (s Screen) Rect() physics.Rect {
	return physics.NewRect(0, 0, float64(s.Width), float64(s.Height))
}

// Destructible is implemented by entities that can be consumed mid-frame
// and compacted out of their collection afterwards.
type Destructible interface {
	// MarkDestroyed marks the entity for removal.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for removal.
	IsDestroyed() bool
}

// Compact removes destroyed entries in place and returns the shortened slice.
func Compact[T Destructible](items []T) []T {
	kept := items[:0] // reuse backing array
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
