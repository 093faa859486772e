package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/invaders/internal/loop/game"
)

func TestSoundManager_SafeWithoutInitialize(t *testing.T) {
	sm := NewSoundManager()
	assert.NotPanics(t, func() {
		sm.PlayFire()
		sm.PlayAlienHit()
		sm.PlayShipHit()
		sm.PlayWave()
		sm.PlayGameOver()
		for typ := game.EventGameStarted; typ <= game.EventGameOver; typ++ {
			sm.OnEvent(game.Event{Type: typ, ShipsLeft: 1})
		}
		sm.Cleanup()
	})
}

func TestSoundManager_Initialize(t *testing.T) {
	sm := NewSoundManager()
	if err := sm.Initialize(); err != nil {
		t.Skipf("no audio device: %v", err)
	}
	require.NoError(t, sm.Initialize(), "second call is a no-op")
	sm.PlayFire()
	sm.Cleanup()
}

// drain streams everything from s and returns the samples of the left channel.
func drain(t *testing.T, s beep.Streamer) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			assert.Equal(t, buf[i][0], buf[i][1], "mono")
			out = append(out, buf[i][0])
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func peak(samples []float64) float64 {
	p := 0.0
	for _, s := range samples {
		p = math.Max(p, math.Abs(s))
	}
	return p
}

func TestGenerators_BoundedAndFinite(t *testing.T) {
	d := 100 * time.Millisecond
	tests := []struct {
		name string
		gen  beep.Streamer
	}{
		{"sweep", NewSweepGenerator(sampleRate, 1400, 500, d, 0.12)},
		{"noise", NewNoiseBurstGenerator(sampleRate, 14, 0.25)},
		{"arpeggio", NewArpeggioGenerator(sampleRate, []float64{440, 550}, d/2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := drain(t, beep.Take(sampleRate.N(d), tt.gen))
			require.Len(t, samples, sampleRate.N(d))
			p := peak(samples)
			assert.Greater(t, p, 0.0, "audible")
			assert.LessOrEqual(t, p, 1.0, "no clipping")
		})
	}
}

func TestSweepGenerator_FadesOut(t *testing.T) {
	d := 200 * time.Millisecond
	samples := drain(t, beep.Take(sampleRate.N(d), NewSweepGenerator(sampleRate, 800, 400, d, 0.5)))
	quarter := len(samples) / 4
	assert.Greater(t, peak(samples[:quarter]), peak(samples[3*quarter:]))
}

func TestArpeggioGenerator_SilentAfterNotes(t *testing.T) {
	step := 20 * time.Millisecond
	g := NewArpeggioGenerator(sampleRate, []float64{440}, step)
	samples := drain(t, beep.Take(sampleRate.N(3*step), g))
	assert.Zero(t, peak(samples[sampleRate.N(step):]))
}
