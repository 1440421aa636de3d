package terrain

import (
	"image"
	"image/color"
	"sort"
	"testing"

	"github.com/jakecoffman/cp"
)

var stone = color.NRGBA{R: 120, G: 100, B: 80, A: 255}

// fillMask returns a w x h mask with every rect (in texel coordinates)
// filled solid.
func fillMask(w, h int, rects ...image.Rectangle) *Mask {
	m := NewMask(w, h)
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				m.Set(x, y, stone)
			}
		}
	}
	return m
}

// rectCollider traces each 4-connected component as its bounding
// rectangle, largest first. With fixed set it always returns fixed.
type rectCollider struct {
	fixed Outline
	calls int
}

func (c *rectCollider) RegenerateOutline(mask *Mask, m Mapper) Outline {
	c.calls++
	if c.fixed != nil {
		return c.fixed.Clone()
	}
	type comp struct{ x0, y0, x1, y1 int }
	w, h := mask.Width(), mask.Height()
	seen := make([]bool, w*h)
	var comps []comp
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if seen[y*w+x] || !mask.Solid(x, y) {
				continue
			}
			c := comp{x0: x, y0: y, x1: x + 1, y1: y + 1}
			seen[y*w+x] = true
			stack := [][2]int{{x, y}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				c.x0, c.y0 = min(c.x0, p[0]), min(c.y0, p[1])
				c.x1, c.y1 = max(c.x1, p[0]+1), max(c.y1, p[1]+1)
				for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					nx, ny := p[0]+d[0], p[1]+d[1]
					if !mask.Solid(nx, ny) || seen[ny*w+nx] {
						continue
					}
					seen[ny*w+nx] = true
					stack = append(stack, [2]int{nx, ny})
				}
			}
			comps = append(comps, c)
		}
	}
	sort.SliceStable(comps, func(i, j int) bool {
		ai := (comps[i].x1 - comps[i].x0) * (comps[i].y1 - comps[i].y0)
		aj := (comps[j].x1 - comps[j].x0) * (comps[j].y1 - comps[j].y0)
		return ai > aj
	})
	out := make(Outline, 0, len(comps))
	for _, c := range comps {
		out = append(out, Path{
			m.TexelToLocal(cp.Vector{X: float64(c.x0), Y: float64(c.y0)}),
			m.TexelToLocal(cp.Vector{X: float64(c.x1), Y: float64(c.y0)}),
			m.TexelToLocal(cp.Vector{X: float64(c.x1), Y: float64(c.y1)}),
			m.TexelToLocal(cp.Vector{X: float64(c.x0), Y: float64(c.y1)}),
		})
	}
	return out
}

func (c *rectCollider) OverlapPoint(o Outline, m Mapper, world cp.Vector) bool {
	return o.Contains(m.WorldToLocal(world))
}

func (c *rectCollider) ClosestPoint(o Outline, m Mapper, world cp.Vector) cp.Vector {
	p, ok := o.ClosestPoint(m.WorldToLocal(world))
	if !ok {
		return world
	}
	return m.LocalToWorld(p)
}

type recordedParticle struct {
	pos   cp.Vector
	size  float64
	color color.NRGBA
}

func (p *recordedParticle) Initialize(pos cp.Vector, size float64, c color.NRGBA) {
	p.pos, p.size, p.color = pos, size, c
}

type countingSink struct {
	handed []*recordedParticle
}

func (s *countingSink) Request() Particle {
	p := &recordedParticle{}
	s.handed = append(s.handed, p)
	return p
}

type duplicateSpawner struct {
	deps    Deps
	spawned []*Body
}

func (s *duplicateSpawner) Instantiate(src *Body) *Body {
	child := src.Duplicate(s.deps)
	if child != nil {
		s.spawned = append(s.spawned, child)
	}
	return child
}

type rectShape cp.BB

func (r rectShape) Contains(p cp.Vector) bool {
	return bbContains(cp.BB(r), p)
}

func (r rectShape) BB() cp.BB {
	return cp.BB(r)
}

// harness wires a body with ppu 1 and pivot at the bottom-left corner, so
// local, world and texel-corner coordinates coincide.
type harness struct {
	collider  *rectCollider
	sink      *countingSink
	spawner   *duplicateSpawner
	destroyed []*Body
	body      *Body
}

func newHarness(mask *Mask, threshold float64) *harness {
	h := &harness{
		collider: &rectCollider{},
		sink:     &countingSink{},
	}
	deps := Deps{
		Collider:    h.collider,
		Debris:      h.sink,
		OnDestroyed: func(b *Body) { h.destroyed = append(h.destroyed, b) },
	}
	h.spawner = &duplicateSpawner{deps: deps}
	deps.Spawner = h.spawner
	h.spawner.deps = deps
	tmpl := &Template{
		Name:          "test",
		Source:        mask,
		PixelsPerUnit: 1,
		BaseThreshold: threshold,
	}
	h.body = NewBody(tmpl, NewTransform(cp.Vector{}), deps)
	return h
}

func assertCounterMatchesMask(t testing.TB, b *Body) {
	t.Helper()
	if b.Destroyed() {
		return
	}
	if got, want := b.Pixels(), b.Mask().CountSolid(); got != want {
		t.Fatalf("pixel counter %d does not match rescan %d", got, want)
	}
}
