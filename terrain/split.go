package terrain

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// ClassifyPaths splits an outline into the paths that stay with the body
// (path 0 plus every path whose vertices all lie inside it) and the
// disjoint islands that need their own body. Degenerate paths are kept as
// holes, and a degenerate path 0 disables splitting altogether.
func ClassifyPaths(o Outline) (retained Outline, islands []Path) {
	if len(o) == 0 {
		return nil, nil
	}
	main := o[0]
	if main.Validate() != nil {
		return o, nil
	}
	retained = Outline{main}
	for _, p := range o[1:] {
		if p.Validate() != nil || main.ContainsPath(p) {
			retained = append(retained, p)
			continue
		}
		islands = append(islands, p)
	}
	return retained, islands
}

// Split separates disjoint islands of the current outline into new bodies
// created through the spawner. It returns the spawned bodies, including
// any that were destroyed straight away for falling under their threshold.
func (b *Body) Split() []*Body {
	if b.Destroyed() || len(b.outline) <= 1 {
		return nil
	}
	retained, islands := ClassifyPaths(b.outline)
	// Re-derivation needs the collider; without it nothing is split.
	if len(islands) == 0 || b.deps.Spawner == nil || b.deps.Collider == nil {
		return nil
	}

	spawned := make([]*Body, 0, len(islands))
	for _, island := range islands {
		child := b.deps.Spawner.Instantiate(b)
		if child == nil {
			continue
		}
		child.setOutline(Outline{island})
		child.Rederive()
		spawned = append(spawned, child)
	}

	b.setOutline(retained)
	b.Rederive()

	b.log.Debug("terrain: body split",
		zap.String("template", b.tmpl.Name),
		zap.Int("islands", len(islands)),
		zap.Int("retained_paths", len(retained)),
		zap.Bool("survived", !b.Destroyed()))
	return spawned
}

// Rederive clears every solid texel that no longer lies inside the body's
// outline, rescans the pixel count and re-checks the threshold. If texels
// were cleared and the body survives, the outline is regenerated from the
// trimmed mask.
func (b *Body) Rederive() int {
	if b.Destroyed() {
		return 0
	}
	bb, ok := b.outline.Bounds()
	if !ok || b.deps.Collider == nil {
		return 0
	}

	m := b.Mapper()
	x0, y0, x1, y1 := m.LocalBBToTexelRect(bb)
	tol := b.tmpl.BoundaryTolerance * m.TexelSize()

	cleared := 0
	for y := 0; y < b.mask.Height(); y++ {
		for x := 0; x < b.mask.Width(); x++ {
			if !b.mask.Solid(x, y) {
				continue
			}
			if x < x0 || x >= x1 || y < y0 || y >= y1 || !b.keepTexel(m, bb, x, y, tol) {
				b.mask.Clear(x, y)
				cleared++
			}
		}
	}

	b.recount()
	if cleared > 0 && !b.Destroyed() {
		b.regenerate()
	}
	return cleared
}

// keepTexel accepts a texel whose centre passes the outline's local bounds
// and the collider's overlap query, or lies within tol of the outline.
func (b *Body) keepTexel(m Mapper, bb cp.BB, x, y int, tol float64) bool {
	local := m.TexelToLocal(cp.Vector{X: float64(x) + 0.5, Y: float64(y) + 0.5})
	world := m.LocalToWorld(local)
	if bbContains(bb, local) && b.deps.Collider.OverlapPoint(b.outline, m, world) {
		return true
	}
	if tol <= 0 {
		return false
	}
	return b.deps.Collider.ClosestPoint(b.outline, m, world).Distance(world) <= tol
}
