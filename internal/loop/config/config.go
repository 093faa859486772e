// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"time"

	env "github.com/tomz197/invaders/internal/config"
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Max render resolution in terminal cells. Larger terminals get a centered,
// bordered play area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// High score persistence
const (
	HighScoreFlushInterval = 2 * time.Second
	DefaultHighScoreFile   = "high_score.json"
)

// Play button
const (
	PlayButtonWidth  = 200
	PlayButtonHeight = 50
)

// Settings holds the parameters read and written by the simulation.
// The dynamic subset (AlienSpeed, FleetDropSpeed, AlienPoints) is reset by
// InitDynamic at the start of every game; everything else lives for the
// whole process.
type Settings struct {
	// Screen, in logical units.
	ScreenWidth  int
	ScreenHeight int

	// Ship.
	ShipSpeed  float64
	ShipLimit  int
	ShipWidth  float64
	ShipHeight float64

	// Bullets.
	BulletSpeed    float64
	BulletWidth    float64
	BulletHeight   float64
	BulletsAllowed int

	// Aliens. FleetDirection is +1 for right, -1 for left.
	AlienWidth     float64
	AlienHeight    float64
	FleetDirection int

	// Difficulty incrementers.
	ScoreIncrease      float64
	AlienSpeedIncrease float64
	FleetDropIncrease  float64
	FleetDropMax       float64

	// Starting values for the dynamic subset.
	InitialAlienSpeed     float64
	InitialFleetDropSpeed float64
	InitialAlienPoints    int

	// Dynamic subset.
	AlienSpeed     float64
	FleetDropSpeed float64
	AlienPoints    int

	// ShipHitPause is how long the simulation stalls after a non-fatal hit.
	ShipHitPause time.Duration
}

// Default returns the stock settings with the dynamic subset initialised.
func Default() *Settings {
	s := &Settings{
		ScreenWidth:  1200,
		ScreenHeight: 800,

		ShipSpeed:  1.5,
		ShipLimit:  3,
		ShipWidth:  60,
		ShipHeight: 48,

		BulletSpeed:    2.0,
		BulletWidth:    3,
		BulletHeight:   15,
		BulletsAllowed: 4,

		AlienWidth:     60,
		AlienHeight:    58,
		FleetDirection: 1,

		ScoreIncrease:      1.5,
		AlienSpeedIncrease: 0.2,
		FleetDropIncrease:  2.0,
		FleetDropMax:       30.0,

		InitialAlienSpeed:     1.0,
		InitialFleetDropSpeed: 10.0,
		InitialAlienPoints:    50,

		ShipHitPause: 500 * time.Millisecond,
	}
	s.InitDynamic()
	return s
}

// Clone returns an independent copy, so each session can mutate its own.
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}

// InitDynamic resets the settings that change throughout a game.
func (s *Settings) InitDynamic() {
	s.AlienSpeed = s.InitialAlienSpeed
	s.FleetDropSpeed = s.InitialFleetDropSpeed
	s.AlienPoints = s.InitialAlienPoints
}

// ApplyEnv overrides settings from INVADERS_* environment variables and
// re-initialises the dynamic subset.
func (s *Settings) ApplyEnv() {
	s.ScreenWidth = env.GetEnvInt("INVADERS_SCREEN_WIDTH", s.ScreenWidth)
	s.ScreenHeight = env.GetEnvInt("INVADERS_SCREEN_HEIGHT", s.ScreenHeight)

	s.ShipSpeed = env.GetEnvFloat("INVADERS_SHIP_SPEED", s.ShipSpeed)
	s.ShipLimit = env.GetEnvInt("INVADERS_SHIP_LIMIT", s.ShipLimit)
	s.ShipWidth = env.GetEnvFloat("INVADERS_SHIP_WIDTH", s.ShipWidth)
	s.ShipHeight = env.GetEnvFloat("INVADERS_SHIP_HEIGHT", s.ShipHeight)

	s.BulletSpeed = env.GetEnvFloat("INVADERS_BULLET_SPEED", s.BulletSpeed)
	s.BulletWidth = env.GetEnvFloat("INVADERS_BULLET_WIDTH", s.BulletWidth)
	s.BulletHeight = env.GetEnvFloat("INVADERS_BULLET_HEIGHT", s.BulletHeight)
	s.BulletsAllowed = env.GetEnvInt("INVADERS_BULLETS_ALLOWED", s.BulletsAllowed)

	s.AlienWidth = env.GetEnvFloat("INVADERS_ALIEN_WIDTH", s.AlienWidth)
	s.AlienHeight = env.GetEnvFloat("INVADERS_ALIEN_HEIGHT", s.AlienHeight)

	s.ScoreIncrease = env.GetEnvFloat("INVADERS_SCORE_INCREASE", s.ScoreIncrease)
	s.AlienSpeedIncrease = env.GetEnvFloat("INVADERS_ALIEN_SPEED_INCREASE", s.AlienSpeedIncrease)
	s.FleetDropIncrease = env.GetEnvFloat("INVADERS_FLEET_DROP_INCREASE", s.FleetDropIncrease)
	s.FleetDropMax = env.GetEnvFloat("INVADERS_FLEET_DROP_MAX", s.FleetDropMax)

	s.InitialAlienSpeed = env.GetEnvFloat("INVADERS_ALIEN_SPEED", s.InitialAlienSpeed)
	s.InitialFleetDropSpeed = env.GetEnvFloat("INVADERS_FLEET_DROP_SPEED", s.InitialFleetDropSpeed)
	s.InitialAlienPoints = env.GetEnvInt("INVADERS_ALIEN_POINTS", s.InitialAlienPoints)

	s.ShipHitPause = env.GetEnvDuration("INVADERS_SHIP_HIT_PAUSE", s.ShipHitPause)

	s.InitDynamic()
}

// ErrInvalidSettings is returned by Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Validate reports the first setting that would make the simulation
// meaningless.
func (s *Settings) Validate() error {
	switch {
	case s.ScreenWidth <= 0 || s.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen must be positive, got %dx%d", ErrInvalidSettings, s.ScreenWidth, s.ScreenHeight)
	case s.ShipWidth <= 0 || s.ShipHeight <= 0:
		return fmt.Errorf("%w: ship size must be positive", ErrInvalidSettings)
	case s.AlienWidth <= 0 || s.AlienHeight <= 0:
		return fmt.Errorf("%w: alien size must be positive", ErrInvalidSettings)
	case s.BulletWidth <= 0 || s.BulletHeight <= 0:
		return fmt.Errorf("%w: bullet size must be positive", ErrInvalidSettings)
	case s.BulletsAllowed < 1:
		return fmt.Errorf("%w: bullets allowed must be at least 1, got %d", ErrInvalidSettings, s.BulletsAllowed)
	case s.ShipLimit < 1:
		return fmt.Errorf("%w: ship limit must be at least 1, got %d", ErrInvalidSettings, s.ShipLimit)
	case s.ShipSpeed < 0 || s.BulletSpeed <= 0 || s.InitialAlienSpeed < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidSettings)
	case s.FleetDirection != 1 && s.FleetDirection != -1:
		return fmt.Errorf("%w: fleet direction must be 1 or -1, got %d", ErrInvalidSettings, s.FleetDirection)
	case s.InitialAlienPoints < 0 || s.ScoreIncrease < 0:
		return fmt.Errorf("%w: alien points and score increase must not be negative", ErrInvalidSettings)
	case s.ShipHitPause < 0:
		return fmt.Errorf("%w: ship hit pause must not be negative", ErrInvalidSettings)
	}
	return nil
}
