// Package client runs one terminal session: it reads keys and mouse
// clicks, steps that session's game and renders it onto a half-block canvas.
package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/game"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/object"
)

// EventSink receives every game event, e.g. to play sounds.
type EventSink interface {
	OnEvent(ev game.Event)
}

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	game         *game.Game
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	sounds       EventSink
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	// Settings is the template for this session's game; it is cloned.
	Settings *config.Settings
	Sounds   EventSink
	Logger   *log.Logger
}

// NewClient creates a new client connected to the given hub.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	settings := opts.Settings
	if settings == nil {
		settings = config.Default()
	}
	settings = settings.Clone()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Client{
		server:       gs,
		state:        NewClientState(),
		writer:       w,
		lastInput:    time.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		sounds:       opts.Sounds,
		logger:       logger,
	}

	g, err := game.New(settings, game.Options{
		Presenter: c,
		Pause:     c.pause,
		HighScore: gs.HighScore(),
	})
	if err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}
	c.game = g

	// Canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	c.canvas = draw.NewScaledCanvas(renderWidth, renderHeight,
		float64(settings.ScreenWidth), float64(settings.ScreenHeight))
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter = draw.NewChunkWriter(w, offsetCol, offsetRow)

	c.handle = gs.RegisterClient(opts.Username)
	c.inputStream = input.StartStream(r)
	return c, nil
}

// Game returns the session's game.
func (c *Client) Game() *game.Game {
	return c.game
}

// SetPointerVisible implements game.Presenter. The terminal has no pointer
// to hide, so this toggles mouse reporting: clicks only matter on the menu.
func (c *Client) SetPointerVisible(visible bool) {
	if visible {
		draw.EnableMouse(c.chunkWriter)
	} else {
		draw.DisableMouse(c.chunkWriter)
	}
}

// pause draws the reset formation and recentred ship, then stalls the
// session.
func (c *Client) pause(d time.Duration) {
	_ = c.drawFrame()
	time.Sleep(d)
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.ClearScreen(c.writer)
	c.SetPointerVisible(true)
	defer func() {
		draw.DisableMouse(c.writer)
		fmt.Fprint(c.writer, draw.ColorReset)
		draw.ClearScreen(c.writer)
		draw.ShowCursor(c.writer)
	}()
	defer c.server.UnregisterClient(c.handle.ID)

	c.logger.Info("session started", "user", c.username, "client", c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.Mode {
		case ScreenMenu, ScreenPlaying:
			c.game.Step()
			c.processGameEvents()
			c.syncMode()
		case ScreenShutdown:
			c.updateShutdownState()
		}
		c.state.tick()

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.logger.Info("session ended", "user", c.username, "client", c.handle.ID,
		"score", c.game.Stats.Score, "level", c.game.Stats.Level)
	return nil
}

// processInput reads input and feeds it to the game.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)

	if len(in.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive session", "user", c.username)
		c.state.Running = false
		return
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}
	if c.state.Mode == ScreenShutdown {
		return
	}

	for _, ev := range translateInput(in, &c.state.left, &c.state.right, c.canvas.TerminalToLogical) {
		if c.game.HandleInput(ev) {
			c.state.Running = false
			return
		}
	}
}

// translateInput converts one frame of terminal input into game input
// events. Held-key changes since the previous frame become key-down and
// key-up events; clicks are mapped through toLogical.
func translateInput(in input.Input, left, right *bool, toLogical func(col, row int) (float64, float64, bool)) []game.InputEvent {
	var evs []game.InputEvent

	transition := func(was *bool, now bool, key game.Key) {
		switch {
		case now && !*was:
			evs = append(evs, game.InputEvent{Type: game.InputKeyDown, Key: key})
		case !now && *was:
			evs = append(evs, game.InputEvent{Type: game.InputKeyUp, Key: key})
		}
		*was = now
	}
	transition(left, in.Left, game.KeyLeft)
	transition(right, in.Right, game.KeyRight)

	if in.Fire {
		evs = append(evs, game.InputEvent{Type: game.InputKeyDown, Key: game.KeyFire})
	}
	if in.Play {
		evs = append(evs, game.InputEvent{Type: game.InputKeyDown, Key: game.KeyPlay})
	}
	for _, click := range in.Clicks {
		if x, y, ok := toLogical(click.Col, click.Row); ok {
			evs = append(evs, game.InputEvent{Type: game.InputPointerDown, X: x, Y: y})
		}
	}
	if in.Escape {
		evs = append(evs, game.InputEvent{Type: game.InputKeyDown, Key: game.KeyEscape})
	}
	return evs
}

// processServerEvents handles events from the hub.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventHighScore:
				c.game.ObserveHighScore(event.Score)
				who := event.Username
				if who == "" {
					who = "another player"
				}
				c.state.showBanner(fmt.Sprintf("New high score %d by %s", event.Score, who))
			case server.EventServerShutdown:
				c.state.Mode = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// processGameEvents fans game events out to sound, effects and the hub.
func (c *Client) processGameEvents() {
	for _, ev := range c.game.DrainEvents() {
		if c.sounds != nil {
			c.sounds.OnEvent(ev)
		}

		switch ev.Type {
		case game.EventGameStarted:
			input.ResetKeyInput(c.inputStream)
			c.state.left, c.state.right = false, false
			c.logger.Info("game started", "user", c.username)
		case game.EventAlienDestroyed:
			c.state.particles = object.SpawnExplosion(c.state.particles, ev.X, ev.Y, 6, 150, 0.5)
		case game.EventHighScore:
			c.server.SubmitScore(c.handle.ID, ev.Score)
		case game.EventWaveCleared:
			c.logger.Info("wave cleared", "user", c.username, "level", ev.Level)
		case game.EventShipHit:
			ship := c.game.Ship.Rect
			c.state.particles = object.SpawnExplosion(c.state.particles, ship.CenterX(), ship.CenterY(), 16, 220, 0.8)
			c.logger.Info("ship lost", "user", c.username, "ships_left", ev.ShipsLeft)
		case game.EventGameOver:
			c.state.played = true
			c.state.lastScore = ev.Score
			c.state.lastLevel = c.game.Stats.Level
			c.server.GameOver(c.handle.ID, ev.Score, c.game.Stats.Level)
			c.logger.Info("game over", "user", c.username, "score", ev.Score, "level", c.game.Stats.Level)
		}
	}
}

// syncMode follows the game between menu and play.
func (c *Client) syncMode() {
	if c.game.Stats.Active {
		c.state.Mode = ScreenPlaying
	} else {
		c.state.Mode = ScreenMenu
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
