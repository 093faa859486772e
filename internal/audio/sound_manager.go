// Package audio plays synthesised sound effects for game events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/invaders/internal/loop/game"
)

const (
	sampleRate = beep.SampleRate(44100)
	// maxVoices bounds how many effects may overlap; extra requests are dropped.
	maxVoices = 8
)

// SoundManager mixes short effects into a single speaker stream.
// All methods are no-ops until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// play adds a streamer to the mixer.
func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.mixer.Len() < maxVoices {
		sm.mixer.Add(s)
	}
	speaker.Unlock()
}

// PlayFire plays the descending laser blip of a shot.
func (sm *SoundManager) PlayFire() {
	sm.play(beep.Take(sampleRate.N(90*time.Millisecond), NewSweepGenerator(sampleRate, 1400, 500, 90*time.Millisecond, 0.12)))
}

// PlayAlienHit plays a short noise burst.
func (sm *SoundManager) PlayAlienHit() {
	sm.play(beep.Take(sampleRate.N(180*time.Millisecond), NewNoiseBurstGenerator(sampleRate, 14, 0.25)))
}

// PlayShipHit plays a longer, lower explosion.
func (sm *SoundManager) PlayShipHit() {
	sm.play(beep.Take(sampleRate.N(450*time.Millisecond), NewNoiseBurstGenerator(sampleRate, 5, 0.35)))
}

// PlayWave plays a rising arpeggio when a formation is cleared.
func (sm *SoundManager) PlayWave() {
	sm.play(beep.Take(sampleRate.N(360*time.Millisecond), NewArpeggioGenerator(sampleRate, []float64{523.25, 659.25, 783.99}, 120*time.Millisecond)))
}

// PlayGameOver plays a slow falling tone.
func (sm *SoundManager) PlayGameOver() {
	sm.play(beep.Take(sampleRate.N(900*time.Millisecond), NewSweepGenerator(sampleRate, 440, 110, 900*time.Millisecond, 0.2)))
}

// OnEvent plays the effect for a game event, if it has one.
func (sm *SoundManager) OnEvent(ev game.Event) {
	switch ev.Type {
	case game.EventFired:
		sm.PlayFire()
	case game.EventAlienDestroyed:
		sm.PlayAlienHit()
	case game.EventShipHit:
		if ev.ShipsLeft > 0 {
			sm.PlayShipHit()
		}
	case game.EventWaveCleared:
		sm.PlayWave()
	case game.EventGameOver:
		sm.PlayGameOver()
	}
}
