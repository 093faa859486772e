package object

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testScreen = NewScreen(1200, 800)

func TestShip_CenteredAtBottom(t *testing.T) {
	s := NewShip(testScreen, 60, 48)
	assert.Equal(t, 570.0, s.X)
	assert.Equal(t, 570.0, s.Rect.X)
	assert.Equal(t, 800.0, s.Rect.Bottom())
}

func TestShip_MovesBySpeed(t *testing.T) {
	tests := []struct {
		name        string
		left, right bool
		want        float64
	}{
		{"right", false, true, 571.5},
		{"left", true, false, 568.5},
		{"both cancel", true, true, 570},
		{"none", false, false, 570},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShip(testScreen, 60, 48)
			s.MovingLeft = tt.left
			s.MovingRight = tt.right
			s.Update(testScreen, 1.5)
			assert.InDelta(t, tt.want, s.X, 1e-9)
			assert.Equal(t, s.X, s.Rect.X)
		})
	}
}

func TestShip_StopsAtEdges(t *testing.T) {
	s := NewShip(testScreen, 60, 48)
	s.X, s.Rect.X = 1140, 1140 // right edge touching the screen edge
	s.MovingRight = true
	s.Update(testScreen, 1.5)
	assert.Equal(t, 1140.0, s.X)

	s.X, s.Rect.X = 0, 0
	s.MovingRight = false
	s.MovingLeft = true
	s.Update(testScreen, 1.5)
	assert.Equal(t, 0.0, s.X)
}

func TestShip_CenterAfterMoving(t *testing.T) {
	s := NewShip(testScreen, 60, 48)
	s.MovingLeft = true
	for i := 0; i < 10; i++ {
		s.Update(testScreen, 1.5)
	}
	s.Center(testScreen)
	assert.Equal(t, 570.0, s.X)
	assert.Equal(t, 570.0, s.Rect.X)
}

func TestBullet_SpawnsAtShipNose(t *testing.T) {
	s := NewShip(testScreen, 60, 48)
	b := NewBullet(s, 3, 15)
	assert.InDelta(t, s.Rect.CenterX(), b.Rect.CenterX(), 1e-9)
	assert.Equal(t, s.Rect.Top(), b.Rect.Top())
	assert.Equal(t, b.Y, b.Rect.Y)
}

func TestBullet_UpdateAndOffScreen(t *testing.T) {
	s := NewShip(testScreen, 60, 48)
	b := NewBullet(s, 3, 15)
	startY := b.Y
	b.Update(2)
	assert.Equal(t, startY-2, b.Y)
	assert.Equal(t, b.Y, b.Rect.Y)
	assert.False(t, b.OffScreen())

	b.Y = -14
	b.Update(1)
	assert.True(t, b.OffScreen(), "bottom edge at 0 counts as off screen")
}

func TestAlien_UpdateFollowsDirection(t *testing.T) {
	a := NewAlien(100, 58, 60, 58)
	a.Update(1.5, 1)
	assert.Equal(t, 101.5, a.X)
	a.Update(1.5, -1)
	assert.Equal(t, 100.0, a.X)
	assert.Equal(t, a.X, a.Rect.X)
}

func TestAlien_AtEdge(t *testing.T) {
	assert.True(t, NewAlien(0, 0, 60, 58).AtEdge(testScreen))
	assert.True(t, NewAlien(1140, 0, 60, 58).AtEdge(testScreen))
	assert.True(t, NewAlien(1150, 0, 60, 58).AtEdge(testScreen))
	assert.False(t, NewAlien(1, 0, 60, 58).AtEdge(testScreen))
	assert.False(t, NewAlien(1139, 0, 60, 58).AtEdge(testScreen))
}

func TestAlien_DropKeepsX(t *testing.T) {
	a := NewAlien(100, 58, 60, 58)
	a.Drop(10)
	assert.Equal(t, 68.0, a.Rect.Y)
	assert.Equal(t, 100.0, a.X)
}

func TestCompact(t *testing.T) {
	aliens := []*Alien{NewAlien(0, 0, 1, 1), NewAlien(1, 0, 1, 1), NewAlien(2, 0, 1, 1)}
	aliens[1].MarkDestroyed()
	kept := Compact(aliens)
	require.Len(t, kept, 2)
	assert.Equal(t, 0.0, kept[0].X)
	assert.Equal(t, 2.0, kept[1].X)
}

func TestParticles_ExpireAndRelease(t *testing.T) {
	ps := SpawnExplosion(nil, 10, 10, 12, 50, 0.5)
	require.Len(t, ps, 12)
	for _, p := range ps {
		assert.True(t, p.Visible())
	}

	ps = UpdateParticles(ps, 100*time.Millisecond)
	assert.Len(t, ps, 12, "lifetimes are at least 0.25s")

	ps = UpdateParticles(ps, time.Second)
	assert.Empty(t, ps)
}
