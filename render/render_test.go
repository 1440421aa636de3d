package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/terrain"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCameraRoundTrip(t *testing.T) {
	cam := Camera{Position: cp.Vector{X: 2, Y: -1}, Zoom: 50, Width: 800, Height: 600}
	cases := []cp.Vector{{X: 0, Y: 0}, {X: 2, Y: -1}, {X: -3.5, Y: 4.25}}
	for _, v := range cases {
		x, y := cam.WorldToScreen(v)
		back := cam.ScreenToWorld(x, y)
		if !near(back.X, v.X) || !near(back.Y, v.Y) {
			t.Fatalf("round trip %v -> %v", v, back)
		}
	}
	if x, y := cam.WorldToScreen(cam.Position); !near(x, 400) || !near(y, 300) {
		t.Fatalf("camera position should be at screen centre, got %v,%v", x, y)
	}
	if _, y := cam.WorldToScreen(cp.Vector{X: 2, Y: 0}); y >= 300 {
		t.Fatalf("higher world y should be higher on screen (smaller y), got %v", y)
	}
	bb := cam.Bounds()
	if !near(bb.R-bb.L, 16) || !near(bb.T-bb.B, 12) {
		t.Fatalf("unexpected view bounds %v", bb)
	}
}

func TestBodyGeoMMatchesMapper(t *testing.T) {
	mask := terrain.NewMask(40, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			mask.Set(x, y, color.NRGBA{A: 255})
		}
	}
	tmpl := &terrain.Template{Source: mask, PixelsPerUnit: 10, Pivot: cp.Vector{X: 0.5, Y: 0.5}}
	tr := terrain.Transform{Position: cp.Vector{X: 1, Y: 2}, Rotation: 0.4, Scale: cp.Vector{X: 1.5, Y: 0.5}}
	b := terrain.NewBody(tmpl, tr, terrain.Deps{})
	cam := Camera{Zoom: 30, Width: 640, Height: 480}

	g := BodyGeoM(b, cam)
	m := b.Mapper()
	// Image pixel (px, py) holds texel (px, 19-py); its centre must land
	// where the mapper puts that texel's centre.
	for _, p := range [][2]int{{0, 0}, {39, 19}, {10, 5}} {
		px, py := p[0], p[1]
		sx, sy := g.Apply(float64(px)+0.5, float64(py)+0.5)
		wx, wy := cam.WorldToScreen(m.TexelToWorld(px, 19-py))
		if !near(sx, wx) || !near(sy, wy) {
			t.Fatalf("pixel %v: geom (%v,%v) vs mapper (%v,%v)", p, sx, sy, wx, wy)
		}
	}
}

func TestPremultiply(t *testing.T) {
	pix := []byte{200, 100, 50, 128, 10, 20, 30, 255, 9, 9, 9, 0}
	premultiply(pix)
	want := []byte{100, 50, 25, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i := range want {
		if pix[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, pix[i], want[i])
		}
	}
}

func TestToNRGBAClamps(t *testing.T) {
	got := toNRGBA(cp.FColor{R: 2, G: -1, B: 0.5, A: 1})
	if got.R != 255 || got.G != 0 || got.B != 127 || got.A != 255 {
		t.Fatalf("unexpected colour %v", got)
	}
}
