// Package game implements the single-threaded invaders simulation: ship and
// bullet updates, the alien formation, collision and scoring, and wave
// progression. It performs no I/O; presentation side effects go through
// the Presenter and Pause collaborators.
package game

import (
	"fmt"
	"time"

	"github.com/tomz197/invaders/internal/fleet"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// Presenter is the part of the presentation layer the simulation drives
// directly.
type Presenter interface {
	// SetPointerVisible shows or hides the mouse pointer.
	SetPointerVisible(visible bool)
}

// Options configures a Game.
type Options struct {
	Presenter Presenter
	// Pause stalls the simulation after a non-fatal ship hit. Defaults to
	// time.Sleep.
	Pause func(time.Duration)
	// HighScore is the persisted high score to start from.
	HighScore int
}

// Stats tracks one session's statistics.
type Stats struct {
	ShipsLeft int
	Score     int
	Level     int
	HighScore int  // Never decreases for the life of the Game
	Active    bool // Gameplay running (false on the menu / after game over)
}

// Reset initialises the statistics that change during a game.
func (st *Stats) Reset(shipLimit int) {
	st.ShipsLeft = shipLimit
	st.Score = 0
	st.Level = 1
}

// Game is the complete simulation state for one player.
type Game struct {
	Settings   *config.Settings
	Stats      Stats
	Screen     object.Screen
	Ship       *object.Ship
	Bullets    []*object.Bullet
	Fleet      *fleet.Fleet
	PlayButton physics.Rect

	presenter Presenter
	pause     func(time.Duration)
	grid      *physics.SpatialGrid
	events    []Event
}

// New validates the settings and builds an inactive game with a formation
// already on screen behind the play button.
func New(settings *config.Settings, opts Options) (*Game, error) {
	if settings == nil {
		settings = config.Default()
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	screen := object.NewScreen(settings.ScreenWidth, settings.ScreenHeight)
	if cols, rows := fleet.Layout(screen, settings.AlienWidth, settings.AlienHeight, settings.ShipHeight); cols*rows == 0 {
		return nil, fmt.Errorf("new game: %w: no room for a formation on a %dx%d screen",
			config.ErrInvalidSettings, settings.ScreenWidth, settings.ScreenHeight)
	}

	g := &Game{
		Settings:  settings,
		Screen:    screen,
		Ship:      object.NewShip(screen, settings.ShipWidth, settings.ShipHeight),
		Fleet:     fleet.New(),
		presenter: opts.Presenter,
		pause:     opts.Pause,
		grid: physics.NewSpatialGrid(
			float64(settings.ScreenWidth),
			float64(settings.ScreenHeight),
			2*max(settings.AlienWidth, settings.AlienHeight),
		),
	}
	if g.pause == nil {
		g.pause = time.Sleep
	}

	g.PlayButton = physics.NewRect(0, 0, config.PlayButtonWidth, config.PlayButtonHeight)
	g.PlayButton.SetCenter(float64(screen.CenterX), float64(screen.CenterY))

	g.Stats.Reset(settings.ShipLimit)
	g.Stats.HighScore = max(opts.HighScore, 0)

	g.Fleet.Populate(screen, settings)
	return g, nil
}

// Start begins a new game: statistics and dynamic settings are reset and
// a fresh formation is created.
func (g *Game) Start() {
	g.Stats.Reset(g.Settings.ShipLimit)
	g.Settings.InitDynamic()
	g.Stats.Active = true

	g.clearBullets()
	g.Fleet.Populate(g.Screen, g.Settings)
	g.Ship.Center(g.Screen)
	g.Ship.MovingLeft = false
	g.Ship.MovingRight = false

	g.setPointerVisible(false)
	g.emit(Event{Type: EventGameStarted})
}

// Fire adds a bullet if fewer than BulletsAllowed are in flight.
// At capacity, or while no game is running, the request is ignored.
func (g *Game) Fire() bool {
	if !g.Stats.Active || len(g.Bullets) >= g.Settings.BulletsAllowed {
		return false
	}
	g.Bullets = append(g.Bullets, object.NewBullet(g.Ship, g.Settings.BulletWidth, g.Settings.BulletHeight))
	g.emit(Event{Type: EventFired})
	return true
}

// Ammo returns how many more bullets can be fired right now.
func (g *Game) Ammo() int {
	return g.Settings.BulletsAllowed - len(g.Bullets)
}

// Step advances the simulation by one frame. It does nothing while the
// game is inactive.
func (g *Game) Step() {
	if !g.Stats.Active {
		return
	}
	g.Ship.Update(g.Screen, g.Settings.ShipSpeed)
	g.updateBullets()
	g.updateAliens()
}

// ObserveHighScore raises the high score if another session beat it.
func (g *Game) ObserveHighScore(score int) {
	if score > g.Stats.HighScore {
		g.Stats.HighScore = score
	}
}

// updateBullets moves bullets, drops the ones that left the screen, and
// resolves hits against the formation.
func (g *Game) updateBullets() {
	for _, b := range g.Bullets {
		b.Update(g.Settings.BulletSpeed)
		if b.OffScreen() {
			b.MarkDestroyed()
		}
	}
	g.Bullets = object.Compact(g.Bullets)

	g.checkBulletAlienCollisions()
}

// updateAliens runs the edge maneuver, moves the formation, and checks
// whether the aliens reached the ship or the floor.
func (g *Game) updateAliens() {
	g.Fleet.Update(g.Screen, g.Settings)
	g.checkAliensWin()
}

// clearBullets removes every bullet in flight.
func (g *Game) clearBullets() {
	clear(g.Bullets)
	g.Bullets = g.Bullets[:0]
}

func (g *Game) setPointerVisible(visible bool) {
	if g.presenter != nil {
		g.presenter.SetPointerVisible(visible)
	}
}
