package terrain

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// ColliderService regenerates and queries collision outlines. Outlines are
// in body-local units; the mapper carries the body's placement.
type ColliderService interface {
	RegenerateOutline(mask *Mask, m Mapper) Outline
	OverlapPoint(outline Outline, m Mapper, world cp.Vector) bool
	ClosestPoint(outline Outline, m Mapper, world cp.Vector) cp.Vector
}

// Shape is an overlap predicate with a world-space bounding box.
type Shape interface {
	Contains(world cp.Vector) bool
	BB() cp.BB
}

// Particle is a debris handle lent out by a DebrisSink.
type Particle interface {
	Initialize(pos cp.Vector, size float64, c color.NRGBA)
}

// DebrisSink hands out idle debris particles. It never fails.
type DebrisSink interface {
	Request() Particle
}

// Spawner creates a registered duplicate of src for a split fragment.
type Spawner interface {
	Instantiate(src *Body) *Body
}

// Deps are the collaborators a body is constructed with.
type Deps struct {
	Collider ColliderService
	Debris   DebrisSink
	Spawner  Spawner
	Logger   *zap.Logger

	// OnDestroyed is called once when the body reaches its threshold.
	OnDestroyed func(b *Body)
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
