package window

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/game"
	"github.com/tomz197/invaders/internal/loop/server"
)

type stubHub struct {
	handle    *server.ClientHandle
	submitted []int
	finished  []int
}

func (h *stubHub) RegisterClient(name string) *server.ClientHandle {
	h.handle = &server.ClientHandle{ID: 1, Username: name, EventsCh: make(chan server.ClientEvent, 4)}
	return h.handle
}
func (h *stubHub) UnregisterClient(int)          {}
func (h *stubHub) SubmitScore(_ int, score int)  { h.submitted = append(h.submitted, score) }
func (h *stubHub) GameOver(_ int, score, _ int)  { h.finished = append(h.finished, score) }
func (h *stubHub) HighScore() int                { return 50 }
func (h *stubHub) GetSnapshot() *server.Snapshot { return &server.Snapshot{} }

func keySet(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, want := range keys {
			if k == want {
				return true
			}
		}
		return false
	}
}

func TestKeyEvents(t *testing.T) {
	evs := keyEvents(keySet(ebiten.KeyA, ebiten.KeySpace), keySet(ebiten.KeyArrowRight, ebiten.KeyP))
	assert.Equal(t, []game.InputEvent{
		{Type: game.InputKeyDown, Key: game.KeyLeft},
		{Type: game.InputKeyUp, Key: game.KeyRight},
		{Type: game.InputKeyDown, Key: game.KeyFire},
	}, evs, "releasing a press-only key is ignored")

	evs = keyEvents(keySet(ebiten.KeyQ), keySet())
	assert.Equal(t, []game.InputEvent{{Type: game.InputKeyDown, Key: game.KeyEscape}}, evs)
}

func TestSummary(t *testing.T) {
	st := game.Stats{Score: 120, Level: 2, ShipsLeft: 3, HighScore: 900, Active: true}
	assert.Equal(t, "Space Invaders: 120 points on level 2, 3 ships left (high score 900)", summary(st, false, 0, 0))

	st.Active = false
	assert.Equal(t, "Space Invaders: scored 80, reached level 4 (high score 900)", summary(st, true, 80, 4))
	assert.Equal(t, "Space Invaders: high score 900", summary(st, false, 0, 0))
}

func TestAlienColor(t *testing.T) {
	assert.Equal(t, alienColors[0], alienColor(58, 116))
	assert.Equal(t, alienColors[1], alienColor(174, 116))
	assert.Equal(t, alienColors[0], alienColor(174, 0))
}

func TestWindow_PauseDoesNotBlock(t *testing.T) {
	hub := &stubHub{}
	w, err := New(hub, Options{Username: "ann"})
	require.NoError(t, err)
	assert.Equal(t, 50, w.game.Stats.HighScore)

	now := time.Unix(1000, 0)
	w.now = func() time.Time { return now }

	start := time.Now()
	w.pause(time.Minute)
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, w.paused())

	now = now.Add(time.Minute)
	assert.False(t, w.paused())
}

func TestWindow_HubEvents(t *testing.T) {
	hub := &stubHub{}
	w, err := New(hub, Options{})
	require.NoError(t, err)

	hub.handle.EventsCh <- server.ClientEvent{Type: server.EventHighScore, Score: 700, Username: "bob"}
	assert.True(t, w.processHubEvents())
	assert.Equal(t, 700, w.game.Stats.HighScore)
	assert.Contains(t, w.banner, "700")

	hub.handle.EventsCh <- server.ClientEvent{Type: server.EventHighScore, Score: 800}
	assert.True(t, w.processHubEvents())
	assert.Equal(t, "New high score 800 by another player", w.banner)

	hub.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	assert.False(t, w.processHubEvents())
}

func TestWindow_InputDuringPauseIsReplayed(t *testing.T) {
	hub := &stubHub{}
	w, err := New(hub, Options{Settings: config.Default()})
	require.NoError(t, err)

	now := time.Unix(1000, 0)
	w.now = func() time.Time { return now }

	g := w.game
	g.Start()
	require.False(t, w.applyInput([]game.InputEvent{{Type: game.InputKeyDown, Key: game.KeyLeft}}))
	require.True(t, g.Ship.MovingLeft)

	w.pause(500 * time.Millisecond)
	assert.False(t, w.applyInput([]game.InputEvent{{Type: game.InputKeyUp, Key: game.KeyLeft}}))
	assert.True(t, g.Ship.MovingLeft, "held until the pause ends")

	now = now.Add(time.Second)
	assert.False(t, w.applyInput(nil))
	assert.False(t, g.Ship.MovingLeft, "release seen during the pause is applied")
	assert.Empty(t, w.pending)
}

func TestWindow_EscapeDuringPauseQuits(t *testing.T) {
	hub := &stubHub{}
	w, err := New(hub, Options{Settings: config.Default()})
	require.NoError(t, err)

	now := time.Unix(1000, 0)
	w.now = func() time.Time { return now }

	w.pause(500 * time.Millisecond)
	assert.False(t, w.applyInput([]game.InputEvent{{Type: game.InputKeyDown, Key: game.KeyEscape}}))

	now = now.Add(time.Second)
	assert.True(t, w.applyInput(nil))
}

func TestWindow_GameOverReported(t *testing.T) {
	hub := &stubHub{}
	w, err := New(hub, Options{Settings: config.Default()})
	require.NoError(t, err)

	g := w.game
	g.Start()
	g.Stats.ShipsLeft = 1
	g.Stats.Score = 60
	g.Fleet.Aliens[0].Rect.Y = float64(g.Settings.ScreenHeight)
	g.Step()
	w.processGameEvents()

	assert.Equal(t, []int{60}, hub.finished)
	assert.True(t, w.played)
	assert.Equal(t, 60, w.lastScore)
}
