package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// SweepGenerator glides a square-ish tone from one frequency to another.
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	length   int
	volume   float64
	pos      int
	phase    float64
}

// NewSweepGenerator creates a tone sweeping from `from` to `to` Hz over d.
func NewSweepGenerator(sr beep.SampleRate, from, to float64, d time.Duration, volume float64) *SweepGenerator {
	return &SweepGenerator{
		sr:     sr,
		from:   from,
		to:     to,
		length: max(sr.N(d), 1),
		volume: volume,
	}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.length), 1)
		freq := g.from + (g.to-g.from)*progress

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		// Sine plus a third harmonic, fading out linearly
		sample := math.Sin(2*math.Pi*g.phase) + 0.3*math.Sin(6*math.Pi*g.phase)
		sample *= g.volume * (1 - progress)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// NoiseBurstGenerator produces exponentially decaying noise with a low rumble.
type NoiseBurstGenerator struct {
	sr     beep.SampleRate
	decay  float64
	volume float64
	pos    int
	seed   int64
	last   float64
}

// NewNoiseBurstGenerator creates a noise burst; higher decay ends sooner.
func NewNoiseBurstGenerator(sr beep.SampleRate, decay, volume float64) *NoiseBurstGenerator {
	return &NoiseBurstGenerator{
		sr:     sr,
		decay:  decay,
		volume: volume,
		seed:   time.Now().UnixNano() & 0x7fffffff,
	}
}

func (g *NoiseBurstGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * g.decay)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		// One-pole low-pass for a duller crunch
		g.last += 0.35 * (noise - g.last)

		rumble := 0.4 * math.Sin(2*math.Pi*70*t)
		sample := g.volume * envelope * (g.last + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseBurstGenerator) Err() error {
	return nil
}

// ArpeggioGenerator plays each note for a fixed step, then holds silence.
type ArpeggioGenerator struct {
	sr    beep.SampleRate
	notes []float64
	step  int
	pos   int
}

// NewArpeggioGenerator creates an arpeggio of notes (Hz), each lasting step.
func NewArpeggioGenerator(sr beep.SampleRate, notes []float64, step time.Duration) *ArpeggioGenerator {
	return &ArpeggioGenerator{
		sr:    sr,
		notes: notes,
		step:  max(sr.N(step), 1),
	}
}

func (g *ArpeggioGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		idx := g.pos / g.step
		sample := 0.0
		if idx < len(g.notes) {
			inNote := g.pos % g.step
			t := float64(inNote) / float64(g.sr)
			env := 1 - float64(inNote)/float64(g.step)
			sample = 0.15 * env * math.Sin(2*math.Pi*g.notes[idx]*t)
		}
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ArpeggioGenerator) Err() error {
	return nil
}
