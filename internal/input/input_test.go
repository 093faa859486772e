package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Keys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Input
	}{
		{"fire", " ", Input{Fire: true}},
		{"play", "p", Input{Play: true}},
		{"enter plays", "\r", Input{Play: true}},
		{"quit", "q", Input{Quit: true}},
		{"ctrl-c", "\x03", Input{Quit: true}},
		{"left letter", "a", Input{Left: true}},
		{"right letter", "d", Input{Right: true}},
		{"left arrow", "\x1b[D", Input{Left: true}},
		{"right arrow ss3", "\x1bOC", Input{Right: true}},
		{"up arrow ignored", "\x1b[A", Input{}},
		{"escape waits for the rest of a sequence", "\x1b", Input{}},
		{"escape then fire", "\x1b ", Input{Fire: true}},
		{"arrow then fire", "\x1b[C ", Input{Right: true, Fire: true}},
		{"unknown csi skipped", "\x1b[1;5D", Input{}},
		{"unknown csi then play", "\x1b[15~p", Input{Play: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream()
			got := s.parse([]byte(tt.in), time.Now())
			got.Pressed = nil
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_HeldKeysExpire(t *testing.T) {
	s := newStream()
	start := time.Now()

	in := s.parse([]byte("d"), start)
	assert.True(t, in.Right)

	in = s.parse(nil, start.Add(DefaultHoldDuration/2))
	assert.True(t, in.Right, "still held between repeats")
	assert.False(t, in.Fire)

	in = s.parse(nil, start.Add(DefaultHoldDuration))
	assert.False(t, in.Right)
}

func TestParse_ResetForgetsHeldKeys(t *testing.T) {
	s := newStream()
	now := time.Now()
	s.parse([]byte("a"), now)
	ResetKeyInput(s)
	assert.False(t, s.parse(nil, now).Left)
}

func TestParse_ArrowSplitAcrossFrames(t *testing.T) {
	s := newStream()
	now := time.Now()

	in := s.parse([]byte("\x1b"), now)
	assert.False(t, in.Escape)

	in = s.parse([]byte("[D"), now.Add(5*time.Millisecond))
	assert.False(t, in.Escape)
	assert.True(t, in.Left)
	assert.False(t, in.Right, "the final byte is not read as a letter key")
}

func TestParse_ArrowSplitAfterDelay(t *testing.T) {
	s := newStream()
	now := time.Now()

	s.parse([]byte("\x1b["), now)
	in := s.parse(nil, now.Add(EscapeTimeout/2))
	assert.False(t, in.Escape)

	in = s.parse([]byte("C"), now.Add(3*EscapeTimeout))
	assert.True(t, in.Right)
	assert.False(t, in.Escape)
}

func TestParse_LoneEscapeAfterTimeout(t *testing.T) {
	s := newStream()
	now := time.Now()

	assert.False(t, s.parse([]byte(" \x1b"), now).Escape)
	assert.False(t, s.parse(nil, now.Add(EscapeTimeout/2)).Escape)
	assert.True(t, s.parse(nil, now.Add(EscapeTimeout)).Escape)
	assert.False(t, s.parse(nil, now.Add(2*EscapeTimeout)).Escape, "reported once")
}

func TestParse_LateKeyAfterEscape(t *testing.T) {
	s := newStream()
	now := time.Now()

	s.parse([]byte("\x1b"), now)
	in := s.parse([]byte("p"), now.Add(EscapeTimeout))
	assert.True(t, in.Escape)
	assert.True(t, in.Play)
}

func TestParse_MouseSplitAcrossFrames(t *testing.T) {
	s := newStream()
	now := time.Now()

	in := s.parse([]byte("\x1b[<0;12"), now)
	assert.Empty(t, in.Clicks)

	in = s.parse([]byte(";7M"), now.Add(time.Millisecond))
	require.Len(t, in.Clicks, 1)
	assert.Equal(t, Click{Col: 12, Row: 7}, in.Clicks[0])
}

func TestParse_MouseClicks(t *testing.T) {
	s := newStream()
	in := s.parse([]byte("\x1b[<0;12;7M\x1b[<0;12;7m\x1b[<2;3;3M\x1b[<32;5;5M\x1b[<64;1;1M\x1b[<0;40;20M"), time.Now())

	require.Len(t, in.Clicks, 2, "only primary presses; release, right button, motion and wheel ignored")
	assert.Equal(t, Click{Col: 12, Row: 7}, in.Clicks[0])
	assert.Equal(t, Click{Col: 40, Row: 20}, in.Clicks[1])
	assert.False(t, in.Escape)
}

func TestParse_TruncatedMouseIsNotAClick(t *testing.T) {
	s := newStream()
	in := s.parse([]byte("\x1b[<0;12"), time.Now())
	assert.Empty(t, in.Clicks)
	assert.False(t, in.Fire)
}

func TestReadInput_ClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader(" ")))

	var in Input
	require.Eventually(t, func() bool {
		in = ReadInput(s)
		return in.Quit
	}, time.Second, 5*time.Millisecond)
}
