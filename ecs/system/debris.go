package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/ecs"
)

// DebrisSystem returns expired particles to the pool and moves the rest,
// through the physics space when there is one.
type DebrisSystem struct {
	gravity cp.Vector
}

// NewDebrisSystem takes the gravity used when no physics space is attached.
func NewDebrisSystem(gravity cp.Vector) *DebrisSystem {
	return &DebrisSystem{gravity: gravity}
}

func (s *DebrisSystem) Update(w *ecs.World) {
	pool := w.Debris()
	if pool == nil {
		return
	}
	pool.Reap()
	if space := w.Space(); space != nil {
		space.SyncDebris(pool)
		space.Step(w.DT())
		return
	}
	pool.Integrate(w.DT(), s.gravity)
}
