package main

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/collider"
	"github.com/milk9111/destructible/terrain"
)

func dotMask() *terrain.Mask {
	mask := terrain.NewMask(5, 5)
	mask.Set(2, 2, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	return mask
}

func TestHalo(t *testing.T) {
	tests := []struct {
		name      string
		thickness int
		want      int
	}{
		{name: "none", thickness: 0, want: 0},
		{name: "one", thickness: 1, want: 8},
		{name: "two", thickness: 2, want: 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := Halo(dotMask(), tt.thickness, haloColor)
			got := 0
			for y := 0; y < 5; y++ {
				for x := 0; x < 5; x++ {
					if img.NRGBAAt(x, y) == haloColor {
						got++
					}
				}
			}
			if got != tt.want {
				t.Fatalf("halo texels = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPreviewMarksVertices(t *testing.T) {
	tmpl := &terrain.Template{Name: "dot", Source: dotMask(), PixelsPerUnit: 1}
	b := terrain.NewBody(tmpl, terrain.NewTransform(cp.Vector{}), terrain.Deps{Collider: collider.NewService()})
	if got := vertexCount(b.Outline()); got != 4 {
		t.Fatalf("vertices = %d, want 4", got)
	}
	img := Preview(b, 1)
	marked := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if img.NRGBAAt(x, y) == vertexColor {
				marked++
			}
		}
	}
	if marked == 0 {
		t.Fatalf("expected outline vertices to be marked")
	}
}
