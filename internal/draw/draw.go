// Package draw renders the logical playfield onto a terminal using
// half-block characters and ANSI escape sequences.
package draw

import "strconv"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a terminal palette entry. The zero value is an unset pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGreen
	ColorRed
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorBlue
)

// ANSI SGR sequences for text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorBrightCyan = "\033[96m"
	ColorDim        = "\033[2m"
)

// sgr maps palette entries to ANSI bright foreground codes; background is +10.
var sgr = [...]int{
	ColorWhite:   97,
	ColorGreen:   92,
	ColorRed:     91,
	ColorYellow:  93,
	ColorCyan:    96,
	ColorMagenta: 95,
	ColorBlue:    94,
}

// Foreground returns the SGR sequence selecting c as the text color.
func (c Color) Foreground() string {
	if c == ColorNone || int(c) >= len(sgr) {
		return "\033[39m"
	}
	return "\033[" + strconv.Itoa(sgr[c]) + "m"
}

// Background returns the SGR sequence selecting c as the cell background.
func (c Color) Background() string {
	if c == ColorNone || int(c) >= len(sgr) {
		return "\033[49m"
	}
	return "\033[" + strconv.Itoa(sgr[c]+10) + "m"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
