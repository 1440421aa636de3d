package collider

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/terrain"
)

type gridPoint struct {
	X, Y int
}

type gridEdge struct {
	from, to gridPoint
	used     bool
}

func (e *gridEdge) dir() gridPoint {
	return gridPoint{X: e.to.X - e.from.X, Y: e.to.Y - e.from.Y}
}

// TraceMask walks the boundary between solid and empty texels and returns
// closed loops in texel-corner coordinates. Solid area is always on the
// left of each edge, so outer boundaries wind counter-clockwise and holes
// clockwise. Texels that only touch diagonally end up in separate loops.
func TraceMask(mask *terrain.Mask) [][]gridPoint {
	if mask == nil || mask.Len() == 0 {
		return nil
	}
	edges := collectEdges(mask)
	outgoing := make(map[gridPoint][]*gridEdge, len(edges))
	for _, e := range edges {
		outgoing[e.from] = append(outgoing[e.from], e)
	}

	var loops [][]gridPoint
	for _, start := range edges {
		if start.used {
			continue
		}
		loop := []gridPoint{start.from}
		cur := start
		cur.used = true
		for cur.to != start.from {
			next := pickNext(outgoing[cur.to], cur.dir())
			if next == nil {
				break
			}
			next.used = true
			loop = append(loop, cur.to)
			cur = next
		}
		loops = append(loops, simplifyLoop(loop))
	}
	return loops
}

func collectEdges(mask *terrain.Mask) []*gridEdge {
	var edges []*gridEdge
	add := func(ax, ay, bx, by int) {
		edges = append(edges, &gridEdge{from: gridPoint{ax, ay}, to: gridPoint{bx, by}})
	}
	for y := 0; y < mask.Height(); y++ {
		for x := 0; x < mask.Width(); x++ {
			if !mask.Solid(x, y) {
				continue
			}
			if !mask.Solid(x, y-1) {
				add(x, y, x+1, y)
			}
			if !mask.Solid(x+1, y) {
				add(x+1, y, x+1, y+1)
			}
			if !mask.Solid(x, y+1) {
				add(x+1, y+1, x, y+1)
			}
			if !mask.Solid(x-1, y) {
				add(x, y+1, x, y)
			}
		}
	}
	return edges
}

// pickNext prefers a left turn, then straight, then a right turn. Turning
// left at a diagonal pinch keeps the two touching texels apart.
func pickNext(candidates []*gridEdge, in gridPoint) *gridEdge {
	left := gridPoint{X: -in.Y, Y: in.X}
	right := gridPoint{X: in.Y, Y: -in.X}
	var straight, turnRight *gridEdge
	for _, e := range candidates {
		if e.used {
			continue
		}
		switch e.dir() {
		case left:
			return e
		case in:
			straight = e
		case right:
			turnRight = e
		}
	}
	if straight != nil {
		return straight
	}
	return turnRight
}

// simplifyLoop drops vertices that sit in the middle of a straight run.
func simplifyLoop(loop []gridPoint) []gridPoint {
	if len(loop) < 3 {
		return loop
	}
	out := make([]gridPoint, 0, len(loop))
	n := len(loop)
	for i := 0; i < n; i++ {
		prev := loop[(i+n-1)%n]
		cur := loop[i]
		next := loop[(i+1)%n]
		d1 := gridPoint{X: cur.X - prev.X, Y: cur.Y - prev.Y}
		d2 := gridPoint{X: next.X - cur.X, Y: next.Y - cur.Y}
		if d1.X*d2.Y-d1.Y*d2.X == 0 {
			continue
		}
		out = append(out, cur)
	}
	return out
}

// loopsToOutline converts texel loops into body-local paths. Outer loops
// come first, largest area first, so path 0 is the main boundary; holes
// follow in the same order.
func loopsToOutline(loops [][]gridPoint, m terrain.Mapper) terrain.Outline {
	type entry struct {
		path terrain.Path
		area float64
	}
	entries := make([]entry, 0, len(loops))
	for _, loop := range loops {
		if len(loop) < 3 {
			continue
		}
		path := make(terrain.Path, len(loop))
		for i, p := range loop {
			path[i] = m.TexelToLocal(cp.Vector{X: float64(p.X), Y: float64(p.Y)})
		}
		entries = append(entries, entry{path: path, area: path.SignedArea()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ai, aj := entries[i].area, entries[j].area
		if (ai > 0) != (aj > 0) {
			return ai > 0
		}
		return math.Abs(ai) > math.Abs(aj)
	})
	out := make(terrain.Outline, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out
}
