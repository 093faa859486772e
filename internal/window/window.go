// Package window is the desktop frontend: an ebiten game wrapping one
// session of the simulation, attached to the same hub as terminal clients.
package window

import (
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/game"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/object"
)

// EventSink receives every game event, e.g. to play sounds.
type EventSink interface {
	OnEvent(ev game.Event)
}

// Options configures the window.
type Options struct {
	Username string
	Settings *config.Settings // Cloned
	Sounds   EventSink
	Logger   *log.Logger
}

// binding maps physical keys to a game key. Held keys also report release.
type binding struct {
	keys []ebiten.Key
	key  game.Key
	held bool
}

var bindings = []binding{
	{keys: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, key: game.KeyLeft, held: true},
	{keys: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, key: game.KeyRight, held: true},
	{keys: []ebiten.Key{ebiten.KeySpace}, key: game.KeyFire},
	{keys: []ebiten.Key{ebiten.KeyP}, key: game.KeyPlay},
	{keys: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}, key: game.KeyEscape},
}

// Window implements ebiten.Game and game.Presenter.
type Window struct {
	hub    server.GameServer
	handle *server.ClientHandle
	game   *game.Game
	sounds EventSink
	logger *log.Logger
	user   string

	now         func() time.Time
	pausedUntil time.Time
	// Input seen while paused, applied in order once the pause ends.
	pending []game.InputEvent

	particles   []*object.Particle
	frame       int
	banner      string
	bannerUntil time.Time

	played    bool
	lastScore int
	lastLevel int
}

// New creates a window session registered with hub.
func New(hub server.GameServer, opts Options) (*Window, error) {
	settings := opts.Settings
	if settings == nil {
		settings = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &Window{
		hub:    hub,
		sounds: opts.Sounds,
		logger: logger,
		user:   opts.Username,
		now:    time.Now,
	}
	g, err := game.New(settings.Clone(), game.Options{
		Presenter: w,
		Pause:     w.pause,
		HighScore: hub.HighScore(),
	})
	if err != nil {
		return nil, fmt.Errorf("new window: %w", err)
	}
	w.game = g
	w.handle = hub.RegisterClient(opts.Username)
	return w, nil
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	defer w.hub.UnregisterClient(w.handle.ID)

	s := w.game.Settings
	ebiten.SetWindowSize(s.ScreenWidth, s.ScreenHeight)
	ebiten.SetWindowTitle("Space Invaders")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w.SetPointerVisible(true)

	w.logger.Info("window session started", "user", w.user)
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	w.logger.Info("window session ended", "user", w.user,
		"score", w.game.Stats.Score, "level", w.game.Stats.Level)
	return nil
}

// SetPointerVisible implements game.Presenter.
func (w *Window) SetPointerVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

// pause freezes the simulation without blocking the render loop.
func (w *Window) pause(d time.Duration) {
	w.pausedUntil = w.now().Add(d)
}

func (w *Window) paused() bool {
	return w.now().Before(w.pausedUntil)
}

// Layout keeps the logical screen size; ebiten scales it into the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.game.Settings.ScreenWidth, w.game.Settings.ScreenHeight
}

// Update advances one frame. Returns ebiten.Termination when the player quits
// or the hub goes away.
func (w *Window) Update() error {
	w.frame++
	w.particles = object.UpdateParticles(w.particles, time.Second/time.Duration(ebiten.TPS()))

	if !w.processHubEvents() {
		return ebiten.Termination
	}
	if w.banner != "" && !w.now().Before(w.bannerUntil) {
		w.banner = ""
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		w.copySummary()
	}

	evs := keyEvents(inpututil.IsKeyJustPressed, inpututil.IsKeyJustReleased)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		evs = append(evs, game.InputEvent{Type: game.InputPointerDown, X: float64(x), Y: float64(y)})
	}
	if w.applyInput(evs) {
		return ebiten.Termination
	}
	if w.paused() {
		return nil
	}

	w.game.Step()
	w.processGameEvents()
	return nil
}

// applyInput hands evs to the game. While paused they are queued and
// replayed in order once the pause ends. Returns true when the player quits.
func (w *Window) applyInput(evs []game.InputEvent) (quit bool) {
	if w.paused() {
		w.pending = append(w.pending, evs...)
		return false
	}
	if len(w.pending) > 0 {
		evs = append(w.pending, evs...)
		w.pending = nil
	}
	for _, ev := range evs {
		if w.game.HandleInput(ev) {
			return true
		}
	}
	return false
}

// keyEvents turns this frame's key edges into game input events.
func keyEvents(pressed, released func(ebiten.Key) bool) []game.InputEvent {
	var evs []game.InputEvent
	for _, b := range bindings {
		for _, k := range b.keys {
			if pressed(k) {
				evs = append(evs, game.InputEvent{Type: game.InputKeyDown, Key: b.key})
			}
			if b.held && released(k) {
				evs = append(evs, game.InputEvent{Type: game.InputKeyUp, Key: b.key})
			}
		}
	}
	return evs
}

// processHubEvents applies hub notices. Returns false once the hub has
// dropped this session.
func (w *Window) processHubEvents() bool {
	for {
		select {
		case ev, ok := <-w.handle.EventsCh:
			if !ok {
				return false
			}
			switch ev.Type {
			case server.EventHighScore:
				w.game.ObserveHighScore(ev.Score)
				who := ev.Username
				if who == "" {
					who = "another player"
				}
				w.showBanner(fmt.Sprintf("New high score %d by %s", ev.Score, who))
			case server.EventServerShutdown:
				return false
			}
		default:
			return true
		}
	}
}

func (w *Window) processGameEvents() {
	for _, ev := range w.game.DrainEvents() {
		if w.sounds != nil {
			w.sounds.OnEvent(ev)
		}
		switch ev.Type {
		case game.EventAlienDestroyed:
			w.particles = object.SpawnExplosion(w.particles, ev.X, ev.Y, 10, 150, 0.5)
		case game.EventHighScore:
			w.hub.SubmitScore(w.handle.ID, ev.Score)
		case game.EventShipHit:
			r := w.game.Ship.Rect
			w.particles = object.SpawnExplosion(w.particles, r.CenterX(), r.CenterY(), 24, 220, 0.8)
		case game.EventGameOver:
			w.played = true
			w.lastScore = ev.Score
			w.lastLevel = w.game.Stats.Level
			w.hub.GameOver(w.handle.ID, ev.Score, w.game.Stats.Level)
			w.logger.Info("game over", "user", w.user, "score", ev.Score, "level", w.game.Stats.Level)
		}
	}
}

func (w *Window) showBanner(msg string) {
	w.banner = msg
	w.bannerUntil = w.now().Add(4 * time.Second)
}

// copySummary puts a one-line result on the system clipboard.
func (w *Window) copySummary() {
	msg := summary(w.game.Stats, w.played, w.lastScore, w.lastLevel)
	if err := clipboard.WriteAll(msg); err != nil {
		w.logger.Warn("clipboard unavailable", "err", err)
		w.showBanner("Clipboard unavailable")
		return
	}
	w.showBanner("Copied: " + msg)
}

// summary describes the current or last game for sharing.
func summary(st game.Stats, played bool, lastScore, lastLevel int) string {
	switch {
	case st.Active:
		return fmt.Sprintf("Space Invaders: %d points on level %d, %d ships left (high score %d)",
			st.Score, st.Level, st.ShipsLeft, st.HighScore)
	case played:
		return fmt.Sprintf("Space Invaders: scored %d, reached level %d (high score %d)",
			lastScore, lastLevel, st.HighScore)
	default:
		return fmt.Sprintf("Space Invaders: high score %d", st.HighScore)
	}
}
