package system

import (
	"github.com/milk9111/destructible/ecs"
	"github.com/milk9111/destructible/terrain"
)

// CleanupSystem releases destroyed bodies from the registry.
type CleanupSystem struct{}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{}
}

func (s *CleanupSystem) Update(w *ecs.World) {
	var dead []ecs.Entity
	w.ForEach(func(e ecs.Entity, b *terrain.Body) {
		if b.Destroyed() {
			dead = append(dead, e)
		}
	})
	for _, e := range dead {
		w.Release(e)
	}
}
