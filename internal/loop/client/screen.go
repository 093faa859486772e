package client

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
)

// rowColors tints the formation band by band.
var rowColors = [...]draw.Color{draw.ColorMagenta, draw.ColorCyan, draw.ColorYellow, draw.ColorWhite}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On mode or inactivity transitions, do a full terminal clear
	// so UI elements from the previous mode don't persist on screen.
	modeChanged := c.state.Mode != c.state.prevMode
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if modeChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevMode = c.state.Mode
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.drawWorld()

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawWorld rasterises the formation, the ship, bullets and explosions.
func (c *Client) drawWorld() {
	g := c.game
	pose := c.state.frame / 30
	band := 2 * g.Settings.AlienHeight

	for _, a := range g.Fleet.Aliens {
		color := rowColors[int(a.Rect.Y/band)%len(rowColors)]
		a.Draw(c.canvas, color, pose)
	}
	g.Ship.Draw(c.canvas)
	for _, b := range g.Bullets {
		b.Draw(c.canvas)
	}

	c.canvas.SetColor(draw.ColorYellow)
	for _, p := range c.state.particles {
		p.Draw(c.canvas)
	}

	if !g.Stats.Active {
		r := g.PlayButton
		c.canvas.SetColor(draw.ColorGreen)
		c.canvas.FillRect(r.X, r.Y, r.W, r.H)
	}
}

// text writes s over the canvas and flags the cells so the canvas
// repaints them once the text is gone.
func (c *Client) text(col, row int, style, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	if style == "" {
		c.chunkWriter.WriteAt(col, row, s)
	} else {
		c.chunkWriter.WriteStyledAt(col, row, style, s)
	}
	c.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// centered writes s centered on the canvas.
func (c *Client) centered(row int, style, s string) {
	c.text(draw.CenterCol(c.canvas.TerminalWidth(), s), row, style, s)
}

// drawUI draws the text overlay.
func (c *Client) drawUI() {
	termHeight := c.canvas.TerminalHeight()
	centerY := termHeight / 2

	if c.state.Mode == ScreenShutdown {
		c.drawShutdownScreen(centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerY)
		return
	}

	c.drawHUD()
	if c.state.Mode == ScreenMenu {
		c.drawMenu()
	}
	if c.state.banner != "" {
		c.centered(termHeight, draw.ColorBrightCyan, c.state.banner)
	}
}

// drawHUD draws the status line.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD() {
	g := c.game
	termWidth := c.canvas.TerminalWidth()

	left := fmt.Sprintf("Score %-8d High %-8d Level %-3d", g.Stats.Score, g.Stats.HighScore, g.Stats.Level)
	c.text(2, 1, draw.ColorBold, left)

	ammo := strings.Repeat("|", g.Ammo()) + strings.Repeat(".", g.Settings.BulletsAllowed-g.Ammo())
	right := fmt.Sprintf("Ships %-2d Ammo %s", g.Stats.ShipsLeft, ammo)
	if col := termWidth - utf8.RuneCountInString(right); col > utf8.RuneCountInString(left)+3 {
		c.text(col, 1, draw.ColorBold, right)
	}
}

// drawMenu draws the title, the play button label, the controls and the
// leaderboard around the play button.
func (c *Client) drawMenu() {
	button := c.game.PlayButton
	_, buttonRow := c.canvas.LogicalToTerminal(button.CenterX(), button.CenterY())
	termHeight := c.canvas.TerminalHeight()

	c.centered(buttonRow-6, draw.ColorBold, "S P A C E   I N V A D E R S")
	if c.state.played {
		result := fmt.Sprintf("Game over: score %d, reached level %d", c.state.lastScore, c.state.lastLevel)
		c.centered(buttonRow-4, "", result)
	}

	c.centered(buttonRow, draw.ColorGreen.Background()+draw.ColorWhite.Foreground()+draw.ColorBold, " Play ")

	// Blinking prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.centered(buttonRow+3, "", ">>  Click Play or press P  <<")
	}

	controls := []string{
		"A D / < >  . . . . Move",
		"SPACE  . . . . . . Fire",
		"Q / ESC  . . . . . Quit",
	}
	row := buttonRow + 5
	for _, line := range controls {
		if row > termHeight-1 {
			return
		}
		c.centered(row, draw.ColorDim, line)
		row++
	}

	snap := c.server.GetSnapshot()
	row++
	c.centered(row, "", fmt.Sprintf("Players online: %d", snap.Players))
	for i, entry := range snap.TopScores {
		row++
		if row > termHeight-1 {
			return
		}
		name := entry.Username
		if name == "" {
			name = "anonymous"
		}
		c.centered(row, "", fmt.Sprintf("%d. %-12.12s %8d  L%-2d", i+1, name, entry.Score, entry.Level))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerY int) {
	c.centered(centerY-2, draw.ColorBold, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.centered(centerY, "", msg)
	c.centered(centerY+2, "", "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerY int) {
	c.centered(centerY-3, draw.ColorBold, "SERVER SHUTTING DOWN")
	c.centered(centerY-1, "", "The server is restarting for maintenance.")
	c.centered(centerY, "", "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.centered(centerY+2, "", fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.centered(centerY+4, "", "Press Q to disconnect now")
}
