package system

import (
	"github.com/milk9111/destructible/ecs"
	"github.com/milk9111/destructible/terrain"
)

// ColliderSystem mirrors changed outlines into the physics space.
type ColliderSystem struct{}

func NewColliderSystem() *ColliderSystem {
	return &ColliderSystem{}
}

func (s *ColliderSystem) Update(w *ecs.World) {
	space := w.Space()
	if space == nil {
		return
	}
	w.ForEach(func(_ ecs.Entity, b *terrain.Body) {
		space.SyncTerrain(b)
	})
}
