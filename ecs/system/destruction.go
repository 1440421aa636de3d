package system

import (
	"github.com/milk9111/destructible/ecs"
	"go.uber.org/zap"
)

// DestructionSystem applies queued destroy requests to every live body whose
// bounds overlap the request.
type DestructionSystem struct {
	erased int
}

func NewDestructionSystem() *DestructionSystem {
	return &DestructionSystem{}
}

// Erased is the number of texels removed during the last update.
func (s *DestructionSystem) Erased() int {
	return s.erased
}

func (s *DestructionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.erased = 0
	for _, req := range w.DrainRequests() {
		area := req.BB()
		// Snapshot first: fragments spawned by this request must not be hit
		// by it again.
		for _, e := range w.Entities() {
			b, ok := w.Body(e)
			if !ok || b.Destroyed() || !b.WorldBounds().Intersects(area) {
				continue
			}
			before := w.Spawned()
			var n int
			if req.Shape != nil {
				n = b.RemoveShape(req.Shape)
			} else {
				n = b.RemoveRadius(req.Center, req.Radius)
			}
			s.erased += n
			if frags := int(w.Spawned() - before); frags > 0 {
				w.Events().Push(ecs.Event{Kind: ecs.EventBodySplit, Entity: e, Fragments: frags})
				w.Logger().Debug("destruction: split",
					zap.Stringer("entity", e),
					zap.Int("fragments", frags))
			}
		}
	}
}
