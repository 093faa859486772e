package game

// InputType identifies a discrete input event from the presentation layer.
type InputType int

const (
	InputKeyDown InputType = iota
	InputKeyUp
	InputPointerDown
	InputQuit
)

// Key is a game key, independent of how a frontend detects it.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyFire
	KeyPlay
	KeyEscape
)

// InputEvent is one input event. X and Y are logical screen coordinates
// and only meaningful for InputPointerDown.
type InputEvent struct {
	Type InputType
	Key  Key
	X, Y float64
}

// HandleInput applies an input event. Returns true when the process should
// terminate.
func (g *Game) HandleInput(ev InputEvent) (quit bool) {
	switch ev.Type {
	case InputQuit:
		return true
	case InputKeyDown:
		return g.keyDown(ev.Key)
	case InputKeyUp:
		g.keyUp(ev.Key)
	case InputPointerDown:
		g.checkPlayButton(ev.X, ev.Y)
	}
	return false
}

func (g *Game) keyDown(k Key) bool {
	switch k {
	case KeyRight:
		g.Ship.MovingRight = true
	case KeyLeft:
		g.Ship.MovingLeft = true
	case KeyEscape:
		return true
	case KeyFire:
		g.Fire()
	case KeyPlay:
		if !g.Stats.Active {
			g.Start()
		}
	}
	return false
}

func (g *Game) keyUp(k Key) {
	switch k {
	case KeyRight:
		g.Ship.MovingRight = false
	case KeyLeft:
		g.Ship.MovingLeft = false
	}
}

// checkPlayButton starts a new game when the play button is clicked on
// the menu.
func (g *Game) checkPlayButton(x, y float64) {
	if g.PlayButton.ContainsPoint(x, y) && !g.Stats.Active {
		g.Start()
	}
}
