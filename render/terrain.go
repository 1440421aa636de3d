package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/destructible/terrain"
)

type bodyImage struct {
	img     *ebiten.Image
	pix     []byte
	version uint64
}

// TerrainRenderer keeps one GPU image per body and re-uploads it when the
// body changes.
type TerrainRenderer struct {
	images map[*terrain.Body]*bodyImage
}

func NewTerrainRenderer() *TerrainRenderer {
	return &TerrainRenderer{images: make(map[*terrain.Body]*bodyImage)}
}

// DrawBody draws b's current mask.
func (r *TerrainRenderer) DrawBody(screen *ebiten.Image, b *terrain.Body, cam Camera) {
	if screen == nil || b.Destroyed() {
		return
	}
	bi := r.image(b)
	if bi == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = BodyGeoM(b, cam)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(bi.img, op)
}

func (r *TerrainRenderer) image(b *terrain.Body) *bodyImage {
	mask := b.Mask()
	w, h := mask.Width(), mask.Height()
	if w == 0 || h == 0 {
		return nil
	}
	bi, ok := r.images[b]
	if !ok {
		bi = &bodyImage{img: ebiten.NewImage(w, h), pix: make([]byte, w*h*4)}
		r.images[b] = bi
	} else if bi.version == b.Version() {
		return bi
	}
	mask.WritePix(bi.pix)
	premultiply(bi.pix)
	bi.img.WritePixels(bi.pix)
	bi.version = b.Version()
	return bi
}

// Forget drops the cached image of b.
func (r *TerrainRenderer) Forget(b *terrain.Body) {
	if bi, ok := r.images[b]; ok {
		bi.img.Deallocate()
		delete(r.images, b)
	}
}

// Prune forgets every cached body for which keep returns false.
func (r *TerrainRenderer) Prune(keep func(b *terrain.Body) bool) int {
	n := 0
	for b := range r.images {
		if keep != nil && keep(b) {
			continue
		}
		r.Forget(b)
		n++
	}
	return n
}

// Cached reports how many body images are held.
func (r *TerrainRenderer) Cached() int {
	return len(r.images)
}

// BodyGeoM maps image pixels of b's mask to the screen. Image row 0 is the
// top texel row.
func BodyGeoM(b *terrain.Body, cam Camera) ebiten.GeoM {
	m := b.Mapper()
	tr := b.Transform()
	h := float64(b.Mask().Height())
	ppu := m.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}

	var g ebiten.GeoM
	g.Translate(-m.Pivot.X, -(h - m.Pivot.Y))
	g.Scale(tr.ScaleX()/ppu, -tr.ScaleY()/ppu)
	g.Rotate(tr.Rotation)
	g.Translate(tr.Position.X, tr.Position.Y)
	cam.Apply(&g)
	return g
}

// DrawOutline strokes every path of b.
func DrawOutline(screen *ebiten.Image, b *terrain.Body, cam Camera, clr color.Color) {
	if screen == nil || b.Destroyed() {
		return
	}
	m := b.Mapper()
	for _, path := range b.Outline() {
		for i, j := 0, len(path)-1; i < len(path); j, i = i, i+1 {
			x1, y1 := cam.WorldToScreen(m.LocalToWorld(path[j]))
			x2, y2 := cam.WorldToScreen(m.LocalToWorld(path[i]))
			vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, clr, true)
		}
	}
}

// premultiply converts non-premultiplied RGBA bytes in place.
func premultiply(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint16(pix[i+3])
		if a == 255 {
			continue
		}
		pix[i] = uint8(uint16(pix[i]) * a / 255)
		pix[i+1] = uint8(uint16(pix[i+1]) * a / 255)
		pix[i+2] = uint8(uint16(pix[i+2]) * a / 255)
	}
}
