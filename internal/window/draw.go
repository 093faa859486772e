package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/invaders/internal/physics"
)

var (
	backgroundColor = color.RGBA{R: 0x00, G: 0x49, B: 0x7f, A: 0xff}
	bulletColor     = color.RGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}
	shipColor       = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	buttonColor     = color.RGBA{R: 0x00, G: 0x64, B: 0x00, A: 0xff}
	particleColor   = color.RGBA{R: 0xff, G: 0xd5, B: 0x4f, A: 0xff}
)

// alienColors tints the formation band by band.
var alienColors = []color.RGBA{
	{R: 0xff, G: 0xeb, B: 0x3b, A: 0xff},
	{R: 0xff, G: 0xc1, B: 0x07, A: 0xff},
	{R: 0xcd, G: 0xdc, B: 0x39, A: 0xff},
}

// alienColor picks a colour for an alien whose top edge is at y.
func alienColor(y, band float64) color.RGBA {
	if band <= 0 {
		return alienColors[0]
	}
	i := int(y/band) % len(alienColors)
	if i < 0 {
		i = 0
	}
	return alienColors[i]
}

func fillRect(dst *ebiten.Image, r physics.Rect, clr color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// Draw renders the frame.
func (w *Window) Draw(screen *ebiten.Image) {
	g := w.game
	screen.Fill(backgroundColor)

	band := 2 * g.Settings.AlienHeight
	legs := float32(g.Settings.AlienHeight) * 0.25
	for _, a := range g.Fleet.Aliens {
		r := a.Rect
		clr := alienColor(r.Y, band)
		body := r
		body.H -= float64(legs)
		fillRect(screen, body, clr)
		// Legs alternate between two poses.
		x0, x1 := float32(r.X), float32(r.Right())-float32(r.W)*0.2
		if (w.frame/30)&1 == 1 {
			x0 += float32(r.W) * 0.1
			x1 -= float32(r.W) * 0.1
		}
		vector.FillRect(screen, x0, float32(body.Bottom()), float32(r.W)*0.2, legs, clr, false)
		vector.FillRect(screen, x1, float32(body.Bottom()), float32(r.W)*0.2, legs, clr, false)
	}

	ship := g.Ship.Rect
	base := ship
	base.Y += ship.H * 0.45
	base.H -= ship.H * 0.45
	fillRect(screen, base, shipColor)
	turret := physics.NewRect(ship.X+ship.W*0.42, ship.Y, ship.W*0.16, ship.H*0.5)
	fillRect(screen, turret, shipColor)

	for _, b := range g.Bullets {
		fillRect(screen, b.Rect, bulletColor)
	}
	for _, p := range w.particles {
		if p.Visible() {
			vector.FillRect(screen, float32(p.X)-1.5, float32(p.Y)-1.5, 3, 3, particleColor, false)
		}
	}

	w.drawHUD(screen)
	if !g.Stats.Active {
		w.drawMenu(screen)
	}
	if w.banner != "" {
		drawCentered(screen, w.banner, g.Settings.ScreenHeight-16, color.White)
	}
}

func (w *Window) drawHUD(screen *ebiten.Image) {
	st := w.game.Stats
	text.Draw(screen, fmt.Sprintf("Score %d", st.Score), basicfont.Face7x13, 16, 24, color.White)
	text.Draw(screen, fmt.Sprintf("High %d", st.HighScore), basicfont.Face7x13, 16, 42, color.White)
	text.Draw(screen, fmt.Sprintf("Level %d", st.Level), basicfont.Face7x13, 16, 60, color.White)

	right := fmt.Sprintf("Ships %d  Ammo %d", st.ShipsLeft, w.game.Ammo())
	x := w.game.Settings.ScreenWidth - 16 - len(right)*basicfont.Face7x13.Advance
	text.Draw(screen, right, basicfont.Face7x13, x, 24, color.White)
}

func (w *Window) drawMenu(screen *ebiten.Image) {
	button := w.game.PlayButton
	fillRect(screen, button, buttonColor)
	vector.StrokeRect(screen, float32(button.X), float32(button.Y), float32(button.W), float32(button.H), 2, color.White, false)
	drawCentered(screen, "Play", int(button.CenterY())+4, color.White)

	drawCentered(screen, "SPACE INVADERS", int(button.Y)-60, color.White)
	if w.played {
		drawCentered(screen, fmt.Sprintf("Game over: score %d, reached level %d", w.lastScore, w.lastLevel),
			int(button.Y)-30, color.White)
	}

	y := int(button.Bottom()) + 40
	for _, line := range []string{
		"Arrows / A D  move",
		"Space  fire",
		"P  play    C  copy result    Esc  quit",
	} {
		drawCentered(screen, line, y, color.White)
		y += 18
	}

	snap := w.hub.GetSnapshot()
	y += 18
	for i, e := range snap.TopScores {
		name := e.Username
		if name == "" {
			name = "anonymous"
		}
		drawCentered(screen, fmt.Sprintf("%d. %-12.12s %8d  L%d", i+1, name, e.Score, e.Level), y, color.White)
		y += 18
	}
}

// drawCentered draws s horizontally centered with its baseline at y.
func drawCentered(screen *ebiten.Image, s string, y int, clr color.Color) {
	width := len([]rune(s)) * basicfont.Face7x13.Advance
	x := (screen.Bounds().Dx() - width) / 2
	text.Draw(screen, s, basicfont.Face7x13, x, y, clr)
}
