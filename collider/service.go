package collider

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/terrain"
)

// Service is the outline generator and point-query backend used by every
// body. It is stateless.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// RegenerateOutline traces the mask and returns local-space paths.
func (s *Service) RegenerateOutline(mask *terrain.Mask, m terrain.Mapper) terrain.Outline {
	return loopsToOutline(TraceMask(mask), m)
}

// OverlapPoint applies the even-odd rule in body-local space.
func (s *Service) OverlapPoint(outline terrain.Outline, m terrain.Mapper, world cp.Vector) bool {
	return outline.Contains(m.WorldToLocal(world))
}

// ClosestPoint returns the nearest boundary point, measured in local space
// and mapped back to world space. With no edges it returns world itself.
func (s *Service) ClosestPoint(outline terrain.Outline, m terrain.Mapper, world cp.Vector) cp.Vector {
	local, ok := outline.ClosestPoint(m.WorldToLocal(world))
	if !ok {
		return world
	}
	return m.LocalToWorld(local)
}
