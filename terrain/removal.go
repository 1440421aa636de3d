package terrain

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// RemoveRadius erases every solid texel whose texel-space distance from the
// texel under center is at most radius. radius is in world units. It
// returns the number of texels erased.
func (b *Body) RemoveRadius(center cp.Vector, radius float64) int {
	if b.Destroyed() || radius < 0 {
		return 0
	}
	m := b.Mapper()
	r := radius * m.ppu() / math.Abs(b.transform.ScaleX())
	r2 := r * r
	cx, cy := m.WorldToTexel(center)
	reach := int(math.Ceil(r))

	erased := b.erase(cx-reach, cy-reach, cx+reach+1, cy+reach+1, func(x, y int, _ cp.Vector) bool {
		dx := float64(x - cx)
		dy := float64(y - cy)
		return dx*dx+dy*dy <= r2
	})
	return b.afterRemoval(erased)
}

// RemoveShape erases every solid texel inside shape's bounding box whose
// world centre the shape contains.
func (b *Body) RemoveShape(shape Shape) int {
	if b.Destroyed() || shape == nil {
		return 0
	}
	x0, y0, x1, y1 := b.Mapper().WorldBBToTexelRect(shape.BB())
	erased := b.erase(x0, y0, x1, y1, func(_, _ int, world cp.Vector) bool {
		return shape.Contains(world)
	})
	return b.afterRemoval(erased)
}

// erase clears solid texels in [x0,x1) x [y0,y1) accepted by hit. Each
// erased texel decrements the counter and emits one debris particle. It
// stops early if the body is destroyed mid-scan.
func (b *Body) erase(x0, y0, x1, y1 int, hit func(x, y int, world cp.Vector) bool) int {
	x0, y0, x1, y1, err := clampRect(b.mask, x0, y0, x1, y1)
	if err != nil {
		b.log.Debug("terrain: removal skipped", zap.Error(err))
		return 0
	}

	m := b.Mapper()
	size := b.debrisSize()
	erased := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if !b.mask.Solid(x, y) {
				continue
			}
			world := m.TexelToWorld(x, y)
			if !hit(x, y, world) {
				continue
			}
			c := b.mask.Color(x, y)
			b.mask.Clear(x, y)
			erased++
			b.emitDebris(world, size, c)
			b.decrement()
			if b.Destroyed() {
				return erased
			}
		}
	}
	return erased
}

func (b *Body) debrisSize() float64 {
	scale := b.tmpl.DebrisScale
	if scale <= 0 {
		scale = 1
	}
	return scale / b.Mapper().ppu() * math.Abs(b.transform.ScaleX())
}

func (b *Body) afterRemoval(erased int) int {
	if erased == 0 || b.Destroyed() {
		return erased
	}
	b.regenerate()
	if len(b.outline) > 1 {
		b.Split()
	}
	return erased
}

func (b *Body) emitDebris(pos cp.Vector, size float64, c color.NRGBA) {
	if b.deps.Debris == nil {
		return
	}
	p := b.deps.Debris.Request()
	if p == nil {
		return
	}
	p.Initialize(pos, size, c)
}
