package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillRect_CoversAtLeastOnePixel(t *testing.T) {
	// 120 columns for 1200 logical units: one pixel per 10 units.
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.SetColor(ColorRed)
	c.FillRect(601, 401, 3, 3)

	set := 0
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			if c.pixelAt(x, y) != ColorNone {
				set++
				assert.Equal(t, ColorRed, c.pixelAt(x, y))
			}
		}
	}
	assert.Equal(t, 1, set)
	assert.Equal(t, ColorRed, c.pixelAt(60, 40))
}

func TestFillRect_Scales(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.FillRect(0, 0, 60, 58) // 6 x 5.8 pixels

	assert.NotEqual(t, ColorNone, c.pixelAt(5, 5))
	assert.Equal(t, ColorNone, c.pixelAt(6, 0))
	assert.Equal(t, ColorNone, c.pixelAt(0, 6))
}

func TestTerminalToLogical(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.SetOffset(5, 2)

	x, y, ok := c.TerminalToLogical(6, 3) // top-left cell of the render area
	require.True(t, ok)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)

	x, y, ok = c.TerminalToLogical(65, 22)
	require.True(t, ok)
	assert.InDelta(t, 595.0, x, 1e-9)
	assert.InDelta(t, 390.0, y, 1e-9)

	_, _, ok = c.TerminalToLogical(5, 3)
	assert.False(t, ok, "left of the render area")
	_, _, ok = c.TerminalToLogical(126, 3)
	assert.False(t, ok, "right of the render area")
}

func TestRender_OnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.SetFloat(2, 2)

	var buf bytes.Buffer
	c.Render(&buf)
	first := buf.String()
	assert.Contains(t, first, string(BlockUpperHalf))
	// The first frame writes every cell.
	assert.Equal(t, 50, strings.Count(first, "H"))

	buf.Reset()
	c.Clear()
	c.SetFloat(2, 2)
	c.Render(&buf)
	assert.Empty(t, buf.String(), "nothing changed")

	buf.Reset()
	c.Clear()
	c.Render(&buf)
	assert.Equal(t, 1, strings.Count(buf.String(), "\033[2;3H"), "erased pixel is blanked")

	buf.Reset()
	c.MarkTextDirty(1, 1, 2)
	c.Render(&buf)
	assert.Equal(t, 2, strings.Count(buf.String(), "H"))
}

func TestRender_MixedColorsUseBackground(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	c.SetColor(ColorGreen)
	c.SetFloat(0, 0)
	c.SetColor(ColorRed)
	c.SetFloat(0, 1)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	assert.Contains(t, out, ColorGreen.Foreground())
	assert.Contains(t, out, ColorRed.Background())
	assert.Contains(t, out, string(BlockUpperHalf))
	assert.True(t, strings.HasSuffix(out, ColorReset))
}

func TestResize_ForcesRedraw(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	var buf bytes.Buffer
	c.Render(&buf)

	c.Resize(6, 3)
	buf.Reset()
	c.Render(&buf)
	assert.Equal(t, 18, strings.Count(buf.String(), "H"))
}

func TestCenterCol(t *testing.T) {
	assert.Equal(t, 4, CenterCol(10, "Play"))
	assert.Equal(t, 1, CenterCol(3, "too long"))
	assert.Equal(t, 5, CenterCol(10, "██"), "runes, not bytes")
}

func TestChunkWriter_AppliesOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteStyledAt(1, 1, ColorBold, "hi")
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[3;4H"+ColorBold+"hi"+ColorReset, out.String())
	assert.Zero(t, cw.Len())
}
