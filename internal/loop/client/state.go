package client

import (
	"time"

	"github.com/tomz197/invaders/internal/object"
)

// ScreenMode is what the client is showing.
type ScreenMode int

const (
	ScreenMenu     ScreenMode = iota // Play button over the idle formation
	ScreenPlaying                    // Active gameplay
	ScreenShutdown                   // Server is shutting down
)

// ClientState holds per-session presentation state. Gameplay state lives
// in the game itself.
type ClientState struct {
	Mode     ScreenMode
	prevMode ScreenMode
	Running  bool

	// Held movement keys as of the last frame, for key-up detection.
	left  bool
	right bool

	delta         time.Duration // Frame delta time
	frame         int           // Frame counter for animation
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	wasInactive   bool

	particles []*object.Particle

	played    bool // At least one game finished, show its result on the menu
	lastScore int
	lastLevel int

	banner      string  // Transient message, e.g. another player's high score
	bannerTimer float64 // Seconds left to show the banner
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Mode:     ScreenMenu,
		prevMode: ScreenMenu,
		Running:  true,
	}
}

// showBanner displays msg for a few seconds.
func (s *ClientState) showBanner(msg string) {
	s.banner = msg
	s.bannerTimer = 4
}

// tick advances timers by the frame delta.
func (s *ClientState) tick() {
	s.frame++
	if s.bannerTimer > 0 {
		s.bannerTimer -= s.delta.Seconds()
		if s.bannerTimer <= 0 {
			s.banner = ""
		}
	}
	s.particles = object.UpdateParticles(s.particles, s.delta)
}
