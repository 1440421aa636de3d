package debris

import (
	"image/color"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/terrain"
	"go.uber.org/zap"
)

// Particle is one piece of debris. A particle is either active (visible
// and simulated) or idle (free for reuse).
type Particle struct {
	Position cp.Vector
	Velocity cp.Vector
	Size     float64
	Color    color.NRGBA

	active     bool
	generation uint64
	rng        *rand.Rand
}

// Initialize places the particle and gives it a small random velocity in
// [-1,1) on each axis.
func (p *Particle) Initialize(pos cp.Vector, size float64, c color.NRGBA) {
	p.Position = pos
	p.Size = size
	p.Color = c
	p.Velocity = cp.Vector{
		X: (p.rng.Float64() - 0.5) * 2,
		Y: (p.rng.Float64() - 0.5) * 2,
	}
}

func (p *Particle) Active() bool {
	return p != nil && p.active
}

// Generation changes every time the particle is lent out again.
func (p *Particle) Generation() uint64 {
	return p.generation
}

// ExpiryFunc reports whether an active particle has finished its life.
type ExpiryFunc func(p *Particle) bool

// BelowY expires particles that fall under a world-space floor.
func BelowY(killY float64) ExpiryFunc {
	return func(p *Particle) bool {
		return p.Position.Y < killY
	}
}

// Options configures a Pool.
type Options struct {
	Prewarm int
	Expired ExpiryFunc
	Seed    int64
	Logger  *zap.Logger
}

// Pool recycles debris particles. It grows by one whenever every particle
// is active and never shrinks.
type Pool struct {
	particles []*Particle
	expired   ExpiryFunc
	rng       *rand.Rand
	log       *zap.Logger
}

func NewPool(opts Options) *Pool {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pool{
		particles: make([]*Particle, 0, opts.Prewarm),
		expired:   opts.Expired,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		log:       log,
	}
	for i := 0; i < opts.Prewarm; i++ {
		p.particles = append(p.particles, &Particle{rng: p.rng})
	}
	return p
}

// Request satisfies terrain.DebrisSink.
func (p *Pool) Request() terrain.Particle {
	return p.Acquire()
}

// Acquire lends out the first idle particle, reclaiming expired ones on the
// way, or grows the pool by one.
func (p *Pool) Acquire() *Particle {
	for _, pt := range p.particles {
		if pt.active && !p.isExpired(pt) {
			continue
		}
		return p.lend(pt)
	}
	pt := &Particle{rng: p.rng}
	p.particles = append(p.particles, pt)
	p.log.Debug("debris: pool grew", zap.Int("size", len(p.particles)))
	return p.lend(pt)
}

func (p *Pool) lend(pt *Particle) *Particle {
	pt.active = true
	pt.generation++
	return pt
}

func (p *Pool) isExpired(pt *Particle) bool {
	return p.expired != nil && p.expired(pt)
}

// Reap returns every expired active particle to idle and reports how many
// were reclaimed.
func (p *Pool) Reap() int {
	n := 0
	for _, pt := range p.particles {
		if pt.active && p.isExpired(pt) {
			pt.active = false
			n++
		}
	}
	return n
}

// Integrate advances active particles with simple Euler steps. It is used
// when no physics space simulates the debris.
func (p *Pool) Integrate(dt float64, gravity cp.Vector) {
	for _, pt := range p.particles {
		if !pt.active {
			continue
		}
		pt.Velocity = pt.Velocity.Add(gravity.Mult(dt))
		pt.Position = pt.Position.Add(pt.Velocity.Mult(dt))
	}
}

// Each visits every particle, active or not.
func (p *Pool) Each(fn func(pt *Particle)) {
	for _, pt := range p.particles {
		fn(pt)
	}
}

func (p *Pool) Len() int {
	return len(p.particles)
}

func (p *Pool) ActiveCount() int {
	n := 0
	for _, pt := range p.particles {
		if pt.active {
			n++
		}
	}
	return n
}
