package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/evade/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. It never takes part in collisions.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity per frame
	Lifetime    int     // Frames remaining
	MaxLifetime int     // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity multiplier per frame (1.0 = no drag)
	Color       draw.Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy float64, lifetime int, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates count particles flying out of (x, y) in random directions.
// speed is in units per frame, lifetime in frames.
func SpawnBurst(x, y float64, count int, speed float64, lifetime int, color draw.Color, spawner Spawner) {
	if spawner == nil || lifetime <= 0 {
		return
	}

	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rand.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime/2 + rand.Intn(lifetime/2+1)
		if life < 1 {
			life = 1
		}

		p := NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, color)
		spawner.Spawn(p)
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) bool {
	p.Lifetime--
	if p.Lifetime <= 0 {
		return true
	}

	p.VX *= p.Drag
	p.VY *= p.Drag
	p.X += p.VX
	p.Y += p.VY

	// Particles leaving the field just disappear
	return !ctx.Field.Contains(p.X, p.Y)
}

// Draw renders the particle as a pixel on the canvas.
func (p *Particle) Draw(ctx DrawContext) {
	// Skip faded particles (< 25% lifetime)
	if p.MaxLifetime > 0 && p.Lifetime*4 < p.MaxLifetime {
		return
	}
	ctx.Canvas.SetFloat(p.X, p.Y, p.Color)
}
