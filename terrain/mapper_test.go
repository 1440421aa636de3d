package terrain

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestMapperRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		m    Mapper
	}{
		{
			name: "identity",
			m:    Mapper{Transform: NewTransform(cp.Vector{}), PixelsPerUnit: 1},
		},
		{
			name: "centre_pivot",
			m: Mapper{
				Transform:     NewTransform(cp.Vector{X: 4, Y: -3}),
				PixelsPerUnit: 100,
				Pivot:         cp.Vector{X: 8, Y: 8},
			},
		},
		{
			name: "rotated_non_uniform",
			m: Mapper{
				Transform: Transform{
					Position: cp.Vector{X: 3, Y: -2},
					Rotation: 0.3,
					Scale:    cp.Vector{X: 2, Y: 0.5},
				},
				PixelsPerUnit: 16,
				Pivot:         cp.Vector{X: 8, Y: 8},
			},
		},
		{
			name: "mirrored",
			m: Mapper{
				Transform: Transform{
					Position: cp.Vector{X: 1, Y: 1},
					Rotation: math.Pi / 2,
					Scale:    cp.Vector{X: -1.5, Y: 1},
				},
				PixelsPerUnit: 10,
				Pivot:         cp.Vector{X: 5, Y: 2},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for y := 0; y < 16; y++ {
				for x := 0; x < 16; x++ {
					gx, gy := c.m.WorldToTexel(c.m.TexelToWorld(x, y))
					if gx != x || gy != y {
						t.Fatalf("texel (%d,%d) round-tripped to (%d,%d)", x, y, gx, gy)
					}
				}
			}

			// Any point inside a texel maps back to within half a texel.
			for _, f := range []float64{0.1, 0.37, 0.5, 0.9} {
				for y := 0; y < 16; y++ {
					for x := 0; x < 16; x++ {
						in := cp.Vector{X: float64(x) + f, Y: float64(y) + 1 - f}
						world := c.m.LocalToWorld(c.m.TexelToLocal(in))
						centre := c.m.TexelToWorld(c.m.WorldToTexel(world))
						got := c.m.LocalToTexel(c.m.WorldToLocal(centre))
						if math.Abs(got.X-in.X) > 0.5+1e-9 || math.Abs(got.Y-in.Y) > 0.5+1e-9 {
							t.Fatalf("point %v came back at %v, more than half a texel away", in, got)
						}
					}
				}
			}

			p := cp.Vector{X: 1.25, Y: -7.5}
			back := c.m.LocalToWorld(c.m.WorldToLocal(p))
			if back.Distance(p) > 1e-9 {
				t.Fatalf("world->local->world drifted: %v -> %v", p, back)
			}
		})
	}
}

func TestMapperZeroScaleIsUnit(t *testing.T) {
	m := Mapper{Transform: Transform{}, PixelsPerUnit: 1}
	if got := m.TexelToWorld(2, 3); got != (cp.Vector{X: 2.5, Y: 3.5}) {
		t.Fatalf("zero scale should behave as 1, got %v", got)
	}
	if m.TexelSize() != 1 {
		t.Fatalf("expected texel size 1, got %v", m.TexelSize())
	}
}

func TestWorldBBToTexelRect(t *testing.T) {
	m := Mapper{
		Transform:     NewTransform(cp.Vector{X: 10, Y: 10}),
		PixelsPerUnit: 2,
	}
	x0, y0, x1, y1 := m.WorldBBToTexelRect(cp.BB{L: 10.2, B: 9, R: 11.1, T: 10.6})
	if x0 != 0 || y0 != -2 || x1 != 3 || y1 != 2 {
		t.Fatalf("unexpected rect [%d,%d)x[%d,%d)", x0, x1, y0, y1)
	}
}

func TestClampRect(t *testing.T) {
	mask := NewMask(4, 4)
	cases := []struct {
		name           string
		x0, y0, x1, y1 int
		wantErr        bool
	}{
		{"inside", 1, 1, 3, 3, false},
		{"overhang", -5, -5, 10, 10, false},
		{"left_of_mask", -5, 0, 0, 4, true},
		{"inverted", 3, 3, 1, 1, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x0, y0, x1, y1, err := clampRect(mask, c.x0, c.y0, c.x1, c.y1)
			if (err != nil) != c.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if err == nil && (x0 < 0 || y0 < 0 || x1 > 4 || y1 > 4) {
				t.Fatalf("rect not clamped: [%d,%d)x[%d,%d)", x0, x1, y0, y1)
			}
			if err != nil && err != ErrMaskOutOfBounds {
				t.Fatalf("expected ErrMaskOutOfBounds, got %v", err)
			}
		})
	}
}
