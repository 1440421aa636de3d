package collider

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/debris"
	"github.com/milk9111/destructible/terrain"
	"go.uber.org/zap"
)

const (
	segmentRadius   = 0.005
	terrainFriction = 0.8
	debrisFriction  = 0.6
	debrisMass      = 0.01
)

// Space mirrors terrain outlines into a Chipmunk space as static segments
// and simulates debris particles as small dynamic boxes that land on them.
type Space struct {
	space   *cp.Space
	log     *zap.Logger
	terrain map[*terrain.Body]*terrainShapes
	owners  map[*cp.Shape]*terrain.Body
	debris  map[*debris.Particle]*debrisBody
}

type terrainShapes struct {
	shapes  []*cp.Shape
	version uint64
}

type debrisBody struct {
	body       *cp.Body
	shape      *cp.Shape
	generation uint64
}

// NewSpace creates a space with vertical gravity in world units/s².
func NewSpace(gravity float64, log *zap.Logger) *Space {
	if log == nil {
		log = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &Space{
		space:   space,
		log:     log,
		terrain: make(map[*terrain.Body]*terrainShapes),
		owners:  make(map[*cp.Shape]*terrain.Body),
		debris:  make(map[*debris.Particle]*debrisBody),
	}
}

// Space returns the underlying Chipmunk space.
func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// SyncTerrain rebuilds the segments of b when its version changed since
// the last sync. Destroyed bodies are removed.
func (s *Space) SyncTerrain(b *terrain.Body) {
	if s == nil || b == nil {
		return
	}
	if b.Destroyed() {
		s.RemoveTerrain(b)
		return
	}
	if ts, ok := s.terrain[b]; ok && ts.version == b.Version() {
		return
	}
	s.RemoveTerrain(b)

	m := b.Mapper()
	ts := &terrainShapes{version: b.Version()}
	for _, path := range b.Outline() {
		for i, j := 0, len(path)-1; i < len(path); j, i = i, i+1 {
			a := m.LocalToWorld(path[j])
			c := m.LocalToWorld(path[i])
			shape := cp.NewSegment(s.space.StaticBody, a, c, segmentRadius)
			shape.SetFriction(terrainFriction)
			s.space.AddShape(shape)
			s.owners[shape] = b
			ts.shapes = append(ts.shapes, shape)
		}
	}
	s.terrain[b] = ts
}

// RemoveTerrain drops every segment belonging to b.
func (s *Space) RemoveTerrain(b *terrain.Body) {
	if s == nil {
		return
	}
	ts, ok := s.terrain[b]
	if !ok {
		return
	}
	for _, shape := range ts.shapes {
		s.space.RemoveShape(shape)
		delete(s.owners, shape)
	}
	delete(s.terrain, b)
}

// TerrainShapes reports how many segments back b.
func (s *Space) TerrainShapes(b *terrain.Body) int {
	if s == nil {
		return 0
	}
	if ts, ok := s.terrain[b]; ok {
		return len(ts.shapes)
	}
	return 0
}

// SyncDebris attaches newly lent particles, resets reused ones and detaches
// idle ones.
func (s *Space) SyncDebris(pool *debris.Pool) {
	if s == nil || pool == nil {
		return
	}
	pool.Each(func(pt *debris.Particle) {
		db, ok := s.debris[pt]
		if !pt.Active() {
			if ok {
				s.detach(pt, db)
			}
			return
		}
		if ok && db.generation == pt.Generation() {
			return
		}
		if ok {
			s.detach(pt, db)
		}
		s.attach(pt)
	})
}

func (s *Space) attach(pt *debris.Particle) {
	size := pt.Size
	if size <= 0 {
		size = 0.01
	}
	body := cp.NewBody(debrisMass, cp.MomentForBox(debrisMass, size, size))
	body.SetPosition(pt.Position)
	body.SetVelocityVector(pt.Velocity)
	shape := cp.NewBox(body, size, size, 0)
	shape.SetFriction(debrisFriction)
	s.space.AddBody(body)
	s.space.AddShape(shape)
	s.debris[pt] = &debrisBody{body: body, shape: shape, generation: pt.Generation()}
}

func (s *Space) detach(pt *debris.Particle, db *debrisBody) {
	s.space.RemoveShape(db.shape)
	s.space.RemoveBody(db.body)
	delete(s.debris, pt)
}

// DebrisBodies reports how many particles are currently simulated.
func (s *Space) DebrisBodies() int {
	if s == nil {
		return 0
	}
	return len(s.debris)
}

// Step advances the simulation and copies debris state back to particles.
func (s *Space) Step(dt float64) {
	if s == nil || dt <= 0 {
		return
	}
	s.space.Step(dt)
	for pt, db := range s.debris {
		pt.Position = db.body.Position()
		pt.Velocity = db.body.Velocity()
	}
}

// BodyAt returns the terrain body whose outline lies nearest to world,
// within maxDistance.
func (s *Space) BodyAt(world cp.Vector, maxDistance float64) *terrain.Body {
	if s == nil {
		return nil
	}
	info := s.space.PointQueryNearest(world, maxDistance, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return nil
	}
	return s.owners[info.Shape]
}
