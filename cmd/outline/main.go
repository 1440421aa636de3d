// Command outline renders every terrain template from the prefab directory
// to a PNG preview: the generated bitmap, a halo around its solid texels and
// the vertices of the traced outline.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/collider"
	"github.com/milk9111/destructible/prefabs"
	"github.com/milk9111/destructible/scene"
	"github.com/milk9111/destructible/terrain"
	"go.uber.org/zap"
)

var (
	haloColor   = color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}
	vertexColor = color.NRGBA{R: 0x30, G: 0xff, B: 0x60, A: 0xff}
)

func main() {
	dir := flag.String("prefabs", "prefabs", "prefab directory (embedded copies are used when missing)")
	out := flag.String("out", ".", "output directory for previews")
	only := flag.String("template", "", "render a single template")
	thickness := flag.Int("halo", 2, "halo thickness in texels")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	prefabs.SetDir(*dir)
	set, err := prefabs.LoadTerrainSpec()
	if err != nil {
		logger.Fatal("outline: load terrain", zap.Error(err))
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Fatal("outline: create output dir", zap.Error(err))
	}

	svc := collider.NewService()
	for _, spec := range set.Templates {
		if *only != "" && spec.Name != *only {
			continue
		}
		tmpl, err := scene.NewTemplate(spec)
		if err != nil {
			logger.Error("outline: build template", zap.String("template", spec.Name), zap.Error(err))
			continue
		}
		body := terrain.NewBody(tmpl, terrain.NewTransform(cp.Vector{}), terrain.Deps{Collider: svc, Logger: logger})
		img := Preview(body, *thickness)

		path := filepath.Join(*out, spec.Name+".png")
		if err := writePNG(path, img); err != nil {
			logger.Error("outline: write preview", zap.String("path", path), zap.Error(err))
			continue
		}
		logger.Info("outline: rendered",
			zap.String("template", spec.Name),
			zap.String("path", path),
			zap.Int("pixels", body.Pixels()),
			zap.Float64("threshold", body.Threshold()),
			zap.Int("paths", len(body.Outline())),
			zap.Int("vertices", vertexCount(body.Outline())))
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func vertexCount(o terrain.Outline) int {
	n := 0
	for _, p := range o {
		n += len(p)
	}
	return n
}

// Preview draws the body mask over its halo and marks each outline vertex.
func Preview(b *terrain.Body, thickness int) *image.NRGBA {
	mask := b.Mask()
	out := Halo(mask, thickness, haloColor)
	draw.Draw(out, out.Bounds(), mask.Image(), image.Point{}, draw.Over)

	m := b.Mapper()
	h := mask.Height()
	for _, path := range b.Outline() {
		for _, v := range path {
			t := m.LocalToTexel(v)
			// Vertices sit on texel corners; mark the texel up and right of
			// the corner, flipped to image rows.
			x, y := int(t.X), h-1-int(t.Y)
			if x >= mask.Width() {
				x = mask.Width() - 1
			}
			if y < 0 {
				y = 0
			}
			out.SetNRGBA(x, y, vertexColor)
		}
	}
	return out
}

// Halo returns an image, top row first, holding col on every empty texel
// within thickness texels of a solid one.
func Halo(mask *terrain.Mask, thickness int, col color.NRGBA) *image.NRGBA {
	w, h := mask.Width(), mask.Height()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Solid(x, y) {
				continue
			}
			ymin, ymax := max(y-thickness, 0), min(y+thickness, h-1)
			xmin, xmax := max(x-thickness, 0), min(x+thickness, w-1)
			found := false
			for yy := ymin; yy <= ymax && !found; yy++ {
				for xx := xmin; xx <= xmax; xx++ {
					if mask.Solid(xx, yy) {
						found = true
						break
					}
				}
			}
			if found {
				out.SetNRGBA(x, h-1-y, col)
			}
		}
	}
	return out
}
