package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/collider"
	"github.com/milk9111/destructible/debris"
	"github.com/milk9111/destructible/terrain"
	"go.uber.org/zap"
)

// DestroyRequest asks the destruction system to erase terrain this step.
// With Shape set it removes by overlap; otherwise it removes within Radius
// of Center.
type DestroyRequest struct {
	Shape  terrain.Shape
	Center cp.Vector
	Radius float64
}

// BB is the world box the request can touch.
func (r DestroyRequest) BB() cp.BB {
	if r.Shape != nil {
		return r.Shape.BB()
	}
	return cp.NewBBForCircle(r.Center, r.Radius)
}

// Options wires the shared collaborators of a world.
type Options struct {
	Collider terrain.ColliderService
	Debris   *debris.Pool
	Space    *collider.Space
	Logger   *zap.Logger
}

// World owns every terrain body. A body lives from Spawn (or a split) until
// Release; destruction only marks it for cleanup.
type World struct {
	entities entityStore
	bodies   SparseSet[*terrain.Body]
	lookup   map[*terrain.Body]Entity
	events   EventQueue
	requests []DestroyRequest

	deps    terrain.Deps
	pool    *debris.Pool
	space   *collider.Space
	log     *zap.Logger
	dt      float64
	step    uint64
	spawned uint64
}

// NewWorld creates an empty world.
func NewWorld(opts Options) *World {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		lookup: make(map[*terrain.Body]Entity),
		pool:   opts.Debris,
		space:  opts.Space,
		log:    log,
	}
	w.deps = terrain.Deps{
		Collider:    opts.Collider,
		Spawner:     w,
		Logger:      log,
		OnDestroyed: w.onDestroyed,
	}
	if opts.Debris != nil {
		w.deps.Debris = opts.Debris
	}
	return w
}

// Spawn creates and registers a body from tmpl. A body that is born at or
// below its threshold is not registered and the zero Entity is returned.
func (w *World) Spawn(tmpl *terrain.Template, tr terrain.Transform) Entity {
	if w == nil || tmpl == nil {
		return Entity{}
	}
	b := terrain.NewBody(tmpl, tr, w.deps)
	if b.Destroyed() {
		w.log.Warn("ecs: template spawned below threshold", zap.String("template", tmpl.Name))
		return Entity{}
	}
	e := w.register(b)
	w.events.Push(Event{Kind: EventBodySpawned, Entity: e})
	return e
}

// Instantiate registers a duplicate of src for a split fragment.
func (w *World) Instantiate(src *terrain.Body) *terrain.Body {
	if w == nil || src == nil {
		return nil
	}
	child := src.Duplicate(w.deps)
	if child == nil {
		return nil
	}
	parent := w.lookup[src]
	e := w.register(child)
	w.spawned++
	w.events.Push(Event{Kind: EventBodySpawned, Entity: e, Parent: parent})
	return child
}

func (w *World) register(b *terrain.Body) Entity {
	e := w.entities.create()
	w.bodies.Set(e, b)
	w.lookup[b] = e
	return e
}

func (w *World) onDestroyed(b *terrain.Body) {
	e, ok := w.lookup[b]
	if !ok {
		return
	}
	w.events.Push(Event{Kind: EventBodyDestroyed, Entity: e})
}

// Release drops a body from the registry and from the physics space.
func (w *World) Release(e Entity) bool {
	if w == nil {
		return false
	}
	b, ok := w.bodies.Get(e)
	if !ok {
		return false
	}
	w.bodies.Remove(e)
	delete(w.lookup, b)
	w.entities.destroy(e)
	w.space.RemoveTerrain(b)
	w.events.Push(Event{Kind: EventBodyReleased, Entity: e})
	return true
}

// Clear releases every body.
func (w *World) Clear() {
	for _, e := range w.Entities() {
		w.Release(e)
	}
	w.requests = nil
}

// IsAlive reports whether an entity handle is still registered.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

func (w *World) Body(e Entity) (*terrain.Body, bool) {
	if w == nil {
		return nil, false
	}
	return w.bodies.Get(e)
}

func (w *World) EntityOf(b *terrain.Body) (Entity, bool) {
	if w == nil {
		return Entity{}, false
	}
	e, ok := w.lookup[b]
	return e, ok
}

// Entities returns a snapshot of the registered entities, safe to hold
// while bodies are spawned or released.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return append([]Entity(nil), w.bodies.Entities()...)
}

// Len reports how many bodies are registered.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.bodies.Len()
}

// ForEach visits every registered body.
func (w *World) ForEach(fn func(e Entity, b *terrain.Body)) {
	if w == nil {
		return
	}
	for _, e := range w.Entities() {
		if b, ok := w.bodies.Get(e); ok {
			fn(e, b)
		}
	}
}

// Request queues a destroy request for the next step.
func (w *World) Request(r DestroyRequest) {
	if w == nil {
		return
	}
	w.requests = append(w.requests, r)
}

// DrainRequests returns queued requests and clears the queue.
func (w *World) DrainRequests() []DestroyRequest {
	if w == nil || len(w.requests) == 0 {
		return nil
	}
	out := w.requests
	w.requests = nil
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Spawned counts fragments created by splits since the world was made.
func (w *World) Spawned() uint64 {
	return w.spawned
}

func (w *World) Debris() *debris.Pool {
	return w.pool
}

func (w *World) Space() *collider.Space {
	return w.space
}

func (w *World) Logger() *zap.Logger {
	return w.log
}

// DT is the duration of the current step in seconds.
func (w *World) DT() float64 {
	return w.dt
}

// Step is the number of completed scheduler steps.
func (w *World) Step() uint64 {
	return w.step
}
