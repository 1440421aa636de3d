package terrain

import (
	"math"

	"github.com/jakecoffman/cp"
)

// onEdgeEpsilon is the distance in local units under which a point counts
// as lying on a polygon edge.
const onEdgeEpsilon = 1e-9

// Path is a closed loop of body-local points. The closing edge from the
// last vertex back to the first is implicit.
type Path []cp.Vector

// Outline is an ordered set of paths. Path 0 is the outer boundary; the rest
// are holes or disjoint islands until the split detector has run.
type Outline []Path

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Bounds returns the axis-aligned box of the path.
func (p Path) Bounds() cp.BB {
	if len(p) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: p[0].X, B: p[0].Y, R: p[0].X, T: p[0].Y}
	for _, v := range p[1:] {
		bb.L = math.Min(bb.L, v.X)
		bb.B = math.Min(bb.B, v.Y)
		bb.R = math.Max(bb.R, v.X)
		bb.T = math.Max(bb.T, v.Y)
	}
	return bb
}

// SignedArea is positive for counter-clockwise loops.
func (p Path) SignedArea() float64 {
	if len(p) < 3 {
		return 0
	}
	sum := 0.0
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		sum += p[j].X*p[i].Y - p[i].X*p[j].Y
	}
	return sum / 2
}

// Validate reports ErrGeometryDegenerate for paths with fewer than three
// vertices or a zero-area bounding box.
func (p Path) Validate() error {
	if len(p) < 3 {
		return ErrGeometryDegenerate
	}
	bb := p.Bounds()
	if bb.R-bb.L <= 0 || bb.T-bb.B <= 0 {
		return ErrGeometryDegenerate
	}
	return nil
}

// OnEdge reports whether pt lies on one of the path's edges.
func (p Path) OnEdge(pt cp.Vector) bool {
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		if onSegment(p[j], p[i], pt) {
			return true
		}
	}
	return false
}

func onSegment(a, b, pt cp.Vector) bool {
	ab := b.Sub(a)
	ap := pt.Sub(a)
	if math.Abs(ab.Cross(ap)) > onEdgeEpsilon*math.Max(1, ab.Length()) {
		return false
	}
	return pt.X >= math.Min(a.X, b.X)-onEdgeEpsilon && pt.X <= math.Max(a.X, b.X)+onEdgeEpsilon &&
		pt.Y >= math.Min(a.Y, b.Y)-onEdgeEpsilon && pt.Y <= math.Max(a.Y, b.Y)+onEdgeEpsilon
}

// crossings toggles parity once per edge crossed by a horizontal ray cast
// from pt towards +X.
func (p Path) crossings(pt cp.Vector) bool {
	inside := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Contains is an even-odd point-in-polygon test. Points on an edge count
// as inside, which keeps grid-aligned holes that share an edge with the
// outer boundary attached to their body.
func (p Path) Contains(pt cp.Vector) bool {
	if len(p) < 3 {
		return false
	}
	if p.OnEdge(pt) {
		return true
	}
	return p.crossings(pt)
}

// ContainsPath reports whether every vertex of q lies inside p.
func (p Path) ContainsPath(q Path) bool {
	for _, v := range q {
		if !p.Contains(v) {
			return false
		}
	}
	return true
}

func (o Outline) Clone() Outline {
	if o == nil {
		return nil
	}
	out := make(Outline, len(o))
	for i, p := range o {
		out[i] = p.Clone()
	}
	return out
}

// Bounds merges the bounds of every path; ok is false for an empty outline.
func (o Outline) Bounds() (cp.BB, bool) {
	ok := false
	var bb cp.BB
	for _, p := range o {
		if len(p) == 0 {
			continue
		}
		pb := p.Bounds()
		if !ok {
			bb = pb
			ok = true
			continue
		}
		bb.L = math.Min(bb.L, pb.L)
		bb.B = math.Min(bb.B, pb.B)
		bb.R = math.Max(bb.R, pb.R)
		bb.T = math.Max(bb.T, pb.T)
	}
	return bb, ok
}

// Contains applies the even-odd rule across all paths, so holes are
// excluded and islands inside holes are included. A point on any edge
// counts as inside.
func (o Outline) Contains(pt cp.Vector) bool {
	inside := false
	for _, p := range o {
		if len(p) < 3 {
			continue
		}
		if p.OnEdge(pt) {
			return true
		}
		if p.crossings(pt) {
			inside = !inside
		}
	}
	return inside
}

// ClosestPoint returns the point on any outline edge nearest to pt.
func (o Outline) ClosestPoint(pt cp.Vector) (cp.Vector, bool) {
	best := cp.Vector{}
	bestDist := math.Inf(1)
	found := false
	for _, p := range o {
		for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
			c := closestOnSegment(p[j], p[i], pt)
			if d := c.DistanceSq(pt); d < bestDist {
				best, bestDist, found = c, d, true
			}
		}
	}
	return best, found
}

func closestOnSegment(a, b, pt cp.Vector) cp.Vector {
	ab := b.Sub(a)
	l := ab.LengthSq()
	if l == 0 {
		return a
	}
	t := pt.Sub(a).Dot(ab) / l
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mult(t))
}

func bbContains(bb cp.BB, v cp.Vector) bool {
	return v.X >= bb.L && v.X <= bb.R && v.Y >= bb.B && v.Y <= bb.T
}
