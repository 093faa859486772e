package object

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/tomz197/invaders/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. Particles never take part in
// collisions; frontends update and draw them alongside the simulation.
type Particle struct {
	X, Y        float64 // Position in logical units
	VX, VY      float64 // Velocity in logical units per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Fade        bool    // Whether to fade out over lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion appends count particles in a circular burst around (x, y).
func SpawnExplosion(dst []*Particle, x, y float64, count int, speed, lifetime float64) []*Particle {
	for i := 0; i < count; i++ {
		// Random direction
		angle := rand.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rand.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rand.Float64()*0.5)

		vx := math.Cos(angle) * spd
		vy := math.Sin(angle) * spd

		dst = append(dst, NewParticle(x, y, vx, vy, life))
	}
	return dst
}

// Update moves the particle. Returns true once it has expired.
func (p *Particle) Update(delta time.Duration) bool {
	dt := delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor

	p.X += p.VX * dt
	p.Y += p.VY * dt

	return false
}

// Visible reports whether the particle should still be drawn.
func (p *Particle) Visible() bool {
	// Skip faded particles (< 25% lifetime)
	if p.Fade && p.MaxLifetime > 0 {
		return p.Lifetime/p.MaxLifetime >= 0.25
	}
	return true
}

// Draw renders the particle as a pixel on the canvas.
func (p *Particle) Draw(c *draw.Canvas) {
	if p.Visible() {
		c.SetFloat(p.X, p.Y)
	}
}

// UpdateParticles advances every particle, releasing and dropping the
// expired ones.
func UpdateParticles(particles []*Particle, delta time.Duration) []*Particle {
	kept := particles[:0]
	for _, p := range particles {
		if p.Update(delta) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(particles[len(kept):])
	return kept
}
