package ecs

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/collider"
	"github.com/milk9111/destructible/debris"
	"github.com/milk9111/destructible/terrain"
	"go.uber.org/zap/zaptest"
)

func slabTemplate(w, h int, threshold float64) *terrain.Template {
	mask := terrain.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mask.Set(x, y, color.NRGBA{R: 80, G: 60, B: 40, A: 255})
		}
	}
	return &terrain.Template{Name: "slab", Source: mask, PixelsPerUnit: 1, BaseThreshold: threshold}
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	return NewWorld(Options{
		Collider: collider.NewService(),
		Debris:   debris.NewPool(debris.Options{Prewarm: 4}),
		Logger:   zaptest.NewLogger(t),
	})
}

func TestEntityStoreLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s entityStore
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, s.create())
			}
			if s.live != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, s.live)
			}
			if c.destroyIndex >= 0 {
				e := ents[c.destroyIndex]
				if !s.destroy(e) {
					t.Fatalf("destroy should return true for alive entity")
				}
				if s.isAlive(e) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if s.destroy(e) {
					t.Fatalf("second destroy should be rejected")
				}
				reused := s.create()
				if reused.ID != e.ID || reused.Gen == e.Gen {
					t.Fatalf("expected slot %d reused with a new generation, got %v", e.ID, reused)
				}
			}
		})
	}
}

func TestSparseSet(t *testing.T) {
	var s SparseSet[string]
	a := Entity{ID: 1}
	b := Entity{ID: 2}
	c := Entity{ID: 5}

	s.Set(a, "a")
	s.Set(b, "b")
	s.Set(c, "c")
	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}

	tests := []struct {
		name string
		e    Entity
		want string
		ok   bool
	}{
		{"present", b, "b", true},
		{"sparse_gap", Entity{ID: 3}, "", false},
		{"stale_generation", Entity{ID: 1, Gen: 1}, "", false},
		{"zero", Entity{}, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.Get(tc.e)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("Get(%v) = %q,%v want %q,%v", tc.e, got, ok, tc.want, tc.ok)
			}
		})
	}

	if !s.Remove(a) {
		t.Fatalf("remove should succeed")
	}
	if got, ok := s.Get(c); !ok || got != "c" {
		t.Fatalf("swap-remove corrupted the last entry: %q %v", got, ok)
	}
	if s.Has(a) || s.Len() != 2 {
		t.Fatalf("a should be gone")
	}
}

func TestWorldSpawnAndRelease(t *testing.T) {
	w := newTestWorld(t)
	e := w.Spawn(slabTemplate(4, 4, 0), terrain.NewTransform(cp.Vector{}))
	if !e.Valid() || !w.IsAlive(e) {
		t.Fatalf("spawned entity should be alive")
	}
	b, ok := w.Body(e)
	if !ok {
		t.Fatalf("body missing for %v", e)
	}
	if got, ok := w.EntityOf(b); !ok || got != e {
		t.Fatalf("reverse lookup failed")
	}

	events := w.Events().Drain()
	if len(events) != 1 || events[0].Kind != EventBodySpawned {
		t.Fatalf("expected one spawn event, got %+v", events)
	}

	if !w.Release(e) {
		t.Fatalf("release should succeed")
	}
	if w.IsAlive(e) || w.Len() != 0 {
		t.Fatalf("released body should be gone")
	}
	if w.Release(e) {
		t.Fatalf("second release should fail")
	}
}

func TestWorldSpawnBelowThreshold(t *testing.T) {
	w := newTestWorld(t)
	if e := w.Spawn(slabTemplate(2, 2, 10), terrain.NewTransform(cp.Vector{})); e.Valid() {
		t.Fatalf("template below threshold should not register")
	}
	if w.Len() != 0 || w.Events().Len() != 0 {
		t.Fatalf("nothing should be registered")
	}
}

func TestWorldRegistersSplitFragments(t *testing.T) {
	w := newTestWorld(t)
	e := w.Spawn(slabTemplate(10, 3, 0), terrain.NewTransform(cp.Vector{}))
	w.Events().Drain()
	b, _ := w.Body(e)

	b.RemoveShape(column{x: 3})

	if w.Len() != 2 {
		t.Fatalf("expected the fragment to be registered, got %d bodies", w.Len())
	}
	if w.Spawned() != 1 {
		t.Fatalf("expected one split fragment, got %d", w.Spawned())
	}
	events := w.Events().Drain()
	if len(events) != 1 || events[0].Kind != EventBodySpawned || events[0].Parent != e {
		t.Fatalf("expected spawn event with parent %v, got %+v", e, events)
	}
	if w.Debris().ActiveCount() != 3 {
		t.Fatalf("expected 3 debris particles, got %d", w.Debris().ActiveCount())
	}
}

func TestWorldDestroyEvent(t *testing.T) {
	w := newTestWorld(t)
	e := w.Spawn(slabTemplate(3, 3, 5), terrain.NewTransform(cp.Vector{}))
	w.Events().Drain()
	b, _ := w.Body(e)

	b.RemoveRadius(cp.Vector{X: 1.5, Y: 1.5}, 5)
	if !b.Destroyed() {
		t.Fatalf("body should be destroyed")
	}
	events := w.Events().Drain()
	if len(events) != 1 || events[0].Kind != EventBodyDestroyed || events[0].Entity != e {
		t.Fatalf("expected destroy event for %v, got %+v", e, events)
	}
	if !w.IsAlive(e) {
		t.Fatalf("destroyed bodies stay registered until released")
	}
}

func TestSchedulerStep(t *testing.T) {
	w := newTestWorld(t)
	var seen []float64
	s := NewScheduler(systemFunc(func(w *World) { seen = append(seen, w.DT()) }), nil)
	s.Step(w, 0.5)
	s.Step(w, 0.25)
	if len(seen) != 2 || seen[0] != 0.5 || seen[1] != 0.25 {
		t.Fatalf("unexpected dt sequence %v", seen)
	}
	if w.Step() != 2 {
		t.Fatalf("expected 2 steps, got %d", w.Step())
	}
	if len(s.Systems()) != 1 {
		t.Fatalf("nil systems should be skipped")
	}
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }

// column covers a single texel column at ppu 1.
type column struct{ x int }

func (c column) Contains(p cp.Vector) bool {
	return p.X > float64(c.x) && p.X < float64(c.x+1)
}

func (c column) BB() cp.BB {
	return cp.BB{L: float64(c.x) + 0.1, B: -100, R: float64(c.x) + 0.9, T: 100}
}
