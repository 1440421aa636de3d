package terrain

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func square(x0, y0, x1, y1 float64) Path {
	return Path{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func TestPathContains(t *testing.T) {
	p := square(0, 0, 10, 10)
	cases := []struct {
		name string
		pt   cp.Vector
		want bool
	}{
		{"centre", cp.Vector{X: 5, Y: 5}, true},
		{"outside", cp.Vector{X: 11, Y: 5}, false},
		{"on_edge", cp.Vector{X: 10, Y: 5}, true},
		{"on_vertex", cp.Vector{X: 0, Y: 0}, true},
		{"below", cp.Vector{X: 5, Y: -0.1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := p.Contains(c.pt); got != c.want {
				t.Fatalf("Contains(%v) = %v, want %v", c.pt, got, c.want)
			}
		})
	}
}

func TestPathConcaveContains(t *testing.T) {
	// U shape open at the top.
	u := Path{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 6}, {X: 0, Y: 6}}
	if u.Contains(cp.Vector{X: 3, Y: 4}) {
		t.Fatalf("point in the notch should be outside")
	}
	if !u.Contains(cp.Vector{X: 1, Y: 4}) {
		t.Fatalf("point in the left arm should be inside")
	}
}

func TestPathValidate(t *testing.T) {
	cases := []struct {
		name string
		p    Path
		ok   bool
	}{
		{"square", square(0, 0, 1, 1), true},
		{"two_points", Path{{X: 0, Y: 0}, {X: 1, Y: 1}}, false},
		{"flat", Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.p.Validate()
			if (err == nil) != c.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, c.ok)
			}
			if err != nil && err != ErrGeometryDegenerate {
				t.Fatalf("expected ErrGeometryDegenerate, got %v", err)
			}
		})
	}
}

func TestOutlineEvenOdd(t *testing.T) {
	o := Outline{square(0, 0, 10, 10), square(4, 4, 6, 6)}
	if o.Contains(cp.Vector{X: 5, Y: 5}) {
		t.Fatalf("point inside the hole should be outside the outline")
	}
	if !o.Contains(cp.Vector{X: 2, Y: 2}) {
		t.Fatalf("point in the solid ring should be inside")
	}
	if !o.Contains(cp.Vector{X: 4, Y: 5}) {
		t.Fatalf("point on the hole edge should count as inside")
	}
}

func TestOutlineClosestPoint(t *testing.T) {
	o := Outline{square(0, 0, 10, 10)}
	got, ok := o.ClosestPoint(cp.Vector{X: 12, Y: 5})
	if !ok || got != (cp.Vector{X: 10, Y: 5}) {
		t.Fatalf("expected (10,5), got %v ok=%v", got, ok)
	}
	if _, ok := (Outline{}).ClosestPoint(cp.Vector{}); ok {
		t.Fatalf("empty outline has no closest point")
	}
}

func TestOutlineBounds(t *testing.T) {
	o := Outline{square(0, 0, 2, 2), square(5, -1, 6, 1)}
	bb, ok := o.Bounds()
	if !ok {
		t.Fatalf("expected bounds")
	}
	if bb != (cp.BB{L: 0, B: -1, R: 6, T: 2}) {
		t.Fatalf("unexpected bounds %v", bb)
	}
}
