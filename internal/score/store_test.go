package score

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "high_score.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissing)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpen_Values(t *testing.T) {
	tests := []struct {
		content string
		want    int
		corrupt bool
	}{
		{"0", 0, false},
		{"1500\n", 1500, false},
		{"1500.0", 1500, false},
		{"-3", 0, true},
		{"\"high\"", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			s, err := Open(writeFile(t, tt.content))
			if tt.corrupt {
				assert.ErrorIs(t, err, ErrCorrupt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Value())
			assert.False(t, s.Dirty())
		})
	}
}

func TestInit_CreatesOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_score.json")

	created, err := Init(path)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("42"), 0o644))
	created, err = Init(path)
	require.NoError(t, err)
	assert.False(t, created)

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 42, s.Value())
}

func TestUpdate_Monotonic(t *testing.T) {
	s, err := Open(writeFile(t, "100"))
	require.NoError(t, err)

	assert.False(t, s.Update(50))
	assert.False(t, s.Update(100))
	assert.False(t, s.Dirty())

	assert.True(t, s.Update(150))
	assert.Equal(t, 150, s.Value())
	assert.True(t, s.Dirty())
}

func TestSave_RoundTripsThroughFile(t *testing.T) {
	path := writeFile(t, "0")
	s, err := Open(path)
	require.NoError(t, err)

	s.Update(2250)
	require.NoError(t, s.Flush())
	assert.False(t, s.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2250", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFlush_SkipsWhenClean(t *testing.T) {
	path := writeFile(t, "7")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	require.NoError(t, s.Flush())
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist, "clean store does not write")
}

func TestUpdate_Concurrent(t *testing.T) {
	s, err := Open(writeFile(t, "0"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.Update(v * 10)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 500, s.Value())
}
