package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Edges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	assert.Equal(t, 10.0, r.Left())
	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 20.0, r.Top())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, 25.0, r.CenterX())
	assert.Equal(t, 40.0, r.CenterY())
}

func TestRect_Intersects(t *testing.T) {
	base := NewRect(0, 0, 10, 10)
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", NewRect(5, 5, 10, 10), true},
		{"contained", NewRect(2, 2, 2, 2), true},
		{"touching right edge", NewRect(10, 0, 5, 5), false},
		{"touching bottom edge", NewRect(0, 10, 5, 5), false},
		{"apart", NewRect(20, 20, 5, 5), false},
		{"empty", NewRect(5, 5, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(base))
		})
	}
}

func TestRect_ContainsPoint(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	assert.True(t, r.ContainsPoint(0, 0))
	assert.True(t, r.ContainsPoint(9.9, 9.9))
	assert.False(t, r.ContainsPoint(10, 5))
	assert.False(t, r.ContainsPoint(5, 10))
	assert.False(t, r.ContainsPoint(-0.1, 5))
}

func TestRect_Anchors(t *testing.T) {
	r := NewRect(0, 0, 60, 48)
	r.SetMidBottom(600, 800)
	assert.Equal(t, 570.0, r.X)
	assert.Equal(t, 752.0, r.Y)

	r.SetMidTop(100, 10)
	assert.Equal(t, 70.0, r.X)
	assert.Equal(t, 10.0, r.Y)

	r.SetCenter(600, 400)
	assert.Equal(t, 600.0, r.CenterX())
	assert.Equal(t, 400.0, r.CenterY())
}

func TestSpatialGrid_QueryFindsSpanningItems(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	// Spans four cells around (10,10).
	g.Insert(NewRect(5, 5, 10, 10), 7)
	g.Insert(NewRect(80, 80, 5, 5), 9)

	seen := map[int]int{}
	g.Query(NewRect(12, 12, 1, 1), func(i int) bool {
		seen[i]++
		return false
	})
	assert.Equal(t, map[int]int{7: 1}, seen)

	seen = map[int]int{}
	g.Query(NewRect(0, 0, 100, 100), func(i int) bool {
		seen[i]++
		return false
	})
	assert.Equal(t, 4, seen[7], "item reported once per covered cell")
	assert.Equal(t, 1, seen[9])
}

func TestSpatialGrid_ClampsOutsideBoxes(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(NewRect(-50, -50, 10, 10), 1)
	g.Insert(NewRect(150, 150, 10, 10), 2)

	var found []int
	g.Query(NewRect(0, 0, 1, 1), func(i int) bool {
		found = append(found, i)
		return false
	})
	assert.Equal(t, []int{1}, found)

	found = found[:0]
	g.Query(NewRect(99, 99, 1, 1), func(i int) bool {
		found = append(found, i)
		return false
	})
	assert.Equal(t, []int{2}, found)
}

func TestSpatialGrid_ClearAndEarlyStop(t *testing.T) {
	g := NewSpatialGrid(50, 50, 10)
	g.Insert(NewRect(1, 1, 2, 2), 1)
	g.Insert(NewRect(2, 2, 2, 2), 2)

	calls := 0
	g.Query(NewRect(0, 0, 5, 5), func(i int) bool {
		calls++
		return true
	})
	assert.Equal(t, 1, calls)

	g.Clear()
	calls = 0
	g.Query(NewRect(0, 0, 50, 50), func(i int) bool {
		calls++
		return false
	})
	assert.Zero(t, calls)
}
