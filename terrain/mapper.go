package terrain

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Transform places a body in the world. Scale is applied first, then
// rotation (radians), then translation.
type Transform struct {
	Position cp.Vector
	Rotation float64
	Scale    cp.Vector
}

// NewTransform returns a unit-scale transform at pos.
func NewTransform(pos cp.Vector) Transform {
	return Transform{Position: pos, Scale: cp.Vector{X: 1, Y: 1}}
}

// ScaleX returns the horizontal scale, with zero treated as 1.
func (t Transform) ScaleX() float64 {
	return nonZero(t.Scale.X)
}

func (t Transform) ScaleY() float64 {
	return nonZero(t.Scale.Y)
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// Mapper converts between world space, body-local space and texel space.
// Pivot is expressed in texels from the bottom-left corner of the mask.
type Mapper struct {
	Transform     Transform
	PixelsPerUnit float64
	Pivot         cp.Vector
}

func (m Mapper) ppu() float64 {
	if m.PixelsPerUnit <= 0 {
		return 1
	}
	return m.PixelsPerUnit
}

func (m Mapper) WorldToLocal(p cp.Vector) cp.Vector {
	d := p.Sub(m.Transform.Position).Unrotate(cp.ForAngle(m.Transform.Rotation))
	return cp.Vector{X: d.X / m.Transform.ScaleX(), Y: d.Y / m.Transform.ScaleY()}
}

func (m Mapper) LocalToWorld(l cp.Vector) cp.Vector {
	s := cp.Vector{X: l.X * m.Transform.ScaleX(), Y: l.Y * m.Transform.ScaleY()}
	return m.Transform.Position.Add(s.Rotate(cp.ForAngle(m.Transform.Rotation)))
}

// LocalToTexel returns continuous texel coordinates; texel (x,y) spans
// [x,x+1) x [y,y+1).
func (m Mapper) LocalToTexel(l cp.Vector) cp.Vector {
	return l.Mult(m.ppu()).Add(m.Pivot)
}

func (m Mapper) TexelToLocal(t cp.Vector) cp.Vector {
	return t.Sub(m.Pivot).Mult(1 / m.ppu())
}

// WorldToTexel returns the texel containing p. The result may lie outside
// the mask; callers clamp.
func (m Mapper) WorldToTexel(p cp.Vector) (int, int) {
	t := m.LocalToTexel(m.WorldToLocal(p))
	return int(math.Floor(t.X)), int(math.Floor(t.Y))
}

// TexelToWorld returns the world position of the centre of texel (x,y).
func (m Mapper) TexelToWorld(x, y int) cp.Vector {
	return m.LocalToWorld(m.TexelToLocal(cp.Vector{X: float64(x) + 0.5, Y: float64(y) + 0.5}))
}

// TexelSize is the world-space edge length of one texel along X.
func (m Mapper) TexelSize() float64 {
	return math.Abs(m.Transform.ScaleX()) / m.ppu()
}

// WorldBBToTexelRect maps the four corners of a world box into texel space
// and returns the enclosing integer rect [x0,x1) x [y0,y1), unclamped.
func (m Mapper) WorldBBToTexelRect(bb cp.BB) (x0, y0, x1, y1 int) {
	corners := [4]cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		t := m.LocalToTexel(m.WorldToLocal(c))
		minX = math.Min(minX, t.X)
		minY = math.Min(minY, t.Y)
		maxX = math.Max(maxX, t.X)
		maxY = math.Max(maxY, t.Y)
	}
	return int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY))
}

// LocalBBToTexelRect is WorldBBToTexelRect for a box already in local space.
func (m Mapper) LocalBBToTexelRect(bb cp.BB) (x0, y0, x1, y1 int) {
	lo := m.LocalToTexel(cp.Vector{X: bb.L, Y: bb.B})
	hi := m.LocalToTexel(cp.Vector{X: bb.R, Y: bb.T})
	return int(math.Floor(math.Min(lo.X, hi.X))), int(math.Floor(math.Min(lo.Y, hi.Y))),
		int(math.Ceil(math.Max(lo.X, hi.X))), int(math.Ceil(math.Max(lo.Y, hi.Y)))
}

// clampRect clips [x0,x1) x [y0,y1) to the mask.
func clampRect(mask *Mask, x0, y0, x1, y1 int) (int, int, int, int, error) {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > mask.Width() {
		x1 = mask.Width()
	}
	if y1 > mask.Height() {
		y1 = mask.Height()
	}
	if x1-x0 <= 0 || y1-y0 <= 0 {
		return 0, 0, 0, 0, ErrMaskOutOfBounds
	}
	return x0, y0, x1, y1, nil
}
