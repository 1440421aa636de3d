package terrain

import (
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// State is the lifecycle stage of a body.
type State int

const (
	StateIntact State = iota
	StateEroding
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateIntact:
		return "intact"
	case StateEroding:
		return "eroding"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Template carries what every body spawned from the same source shares.
type Template struct {
	Name   string
	Source *Mask

	PixelsPerUnit float64
	// Pivot is normalised: (0.5, 0.5) is the centre of the mask.
	Pivot cp.Vector

	// BaseThreshold is divided by the body's X scale to get the pixel
	// count at or below which the body is destroyed.
	BaseThreshold float64
	// DebrisScale multiplies the world size of one texel for debris.
	DebrisScale float64
	// BoundaryTolerance, in texels, keeps texels whose centre is this close
	// to the outline during split re-derivation.
	BoundaryTolerance float64
}

// PivotTexels converts the normalised pivot to texel units for a mask.
func (t *Template) PivotTexels(m *Mask) cp.Vector {
	return cp.Vector{X: t.Pivot.X * float64(m.Width()), Y: t.Pivot.Y * float64(m.Height())}
}

// Body is one destructible fragment. It exclusively owns its mask and
// outline.
type Body struct {
	tmpl      *Template
	deps      Deps
	log       *zap.Logger
	mask      *Mask
	pivot     cp.Vector
	outline   Outline
	transform Transform
	pixels    int
	state     State
	version   uint64
}

// NewBody duplicates the template's source bitmap, counts its pixels and
// builds the initial outline.
func NewBody(tmpl *Template, tr Transform, deps Deps) *Body {
	b := &Body{
		tmpl:      tmpl,
		deps:      deps,
		log:       deps.logger(),
		mask:      tmpl.Source.Clone(),
		transform: tr,
	}
	if b.mask == nil {
		b.mask = NewMask(0, 0)
	}
	b.pivot = tmpl.PivotTexels(b.mask)
	b.recount()
	if !b.Destroyed() {
		b.regenerate()
	}
	return b
}

// Duplicate copies the body's current mask, outline and placement into a
// new body wired to deps.
func (b *Body) Duplicate(deps Deps) *Body {
	if b == nil || b.Destroyed() {
		return nil
	}
	return &Body{
		tmpl:      b.tmpl,
		deps:      deps,
		log:       deps.logger(),
		mask:      b.mask.Clone(),
		pivot:     b.pivot,
		outline:   b.outline.Clone(),
		transform: b.transform,
		pixels:    b.pixels,
		state:     StateIntact,
		version:   1,
	}
}

func (b *Body) Template() *Template {
	return b.tmpl
}

// Mask returns the live mask, or nil once destroyed.
func (b *Body) Mask() *Mask {
	return b.mask
}

// Outline returns the current outline. Callers must not modify it.
func (b *Body) Outline() Outline {
	return b.outline
}

func (b *Body) Transform() Transform {
	return b.transform
}

// SetTransform moves the body. The outline is local, so only its version
// changes.
func (b *Body) SetTransform(t Transform) {
	if b.Destroyed() {
		return
	}
	b.transform = t
	b.version++
}

func (b *Body) Mapper() Mapper {
	return Mapper{
		Transform:     b.transform,
		PixelsPerUnit: b.tmpl.PixelsPerUnit,
		Pivot:         b.pivot,
	}
}

func (b *Body) Pixels() int {
	return b.pixels
}

func (b *Body) State() State {
	return b.state
}

func (b *Body) Destroyed() bool {
	return b == nil || b.state == StateDestroyed
}

// Version increments whenever the outline or transform changes.
func (b *Body) Version() uint64 {
	return b.version
}

// Threshold is BaseThreshold / scale.X.
func (b *Body) Threshold() float64 {
	return b.tmpl.BaseThreshold / math.Abs(b.transform.ScaleX())
}

// WorldBounds returns the world box of the mask rectangle.
func (b *Body) WorldBounds() cp.BB {
	m := b.Mapper()
	w, h := float64(b.mask.Width()), float64(b.mask.Height())
	corners := [4]cp.Vector{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, c := range corners {
		p := m.LocalToWorld(m.TexelToLocal(c))
		bb.L = math.Min(bb.L, p.X)
		bb.B = math.Min(bb.B, p.Y)
		bb.R = math.Max(bb.R, p.X)
		bb.T = math.Max(bb.T, p.Y)
	}
	return bb
}

// decrement lowers the counter by one and re-checks the threshold.
func (b *Body) decrement() {
	b.pixels--
	if b.state == StateIntact {
		b.state = StateEroding
	}
	b.checkThreshold()
}

// recount rescans the mask and re-checks the threshold.
func (b *Body) recount() {
	b.pixels = b.mask.CountSolid()
	b.checkThreshold()
}

func (b *Body) checkThreshold() {
	if b.Destroyed() {
		return
	}
	if float64(b.pixels) <= b.Threshold() {
		b.destroy()
	}
}

func (b *Body) destroy() {
	b.state = StateDestroyed
	b.mask = nil
	b.outline = nil
	b.version++
	b.log.Debug("terrain: body destroyed",
		zap.String("template", b.tmpl.Name),
		zap.Int("pixels", b.pixels),
		zap.Float64("threshold", b.Threshold()))
	if b.deps.OnDestroyed != nil {
		b.deps.OnDestroyed(b)
	}
}

func (b *Body) regenerate() {
	if b.Destroyed() || b.deps.Collider == nil {
		return
	}
	b.outline = b.deps.Collider.RegenerateOutline(b.mask, b.Mapper())
	b.version++
}

// setOutline overwrites the outline after a split reassigns geometry.
func (b *Body) setOutline(o Outline) {
	if b.Destroyed() {
		return
	}
	b.outline = o
	b.version++
}
