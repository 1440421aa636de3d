package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/destructible/debris"
)

const minDebrisPixels = 1

// DrawDebris fills a square per active particle.
func DrawDebris(screen *ebiten.Image, pool *debris.Pool, cam Camera) {
	if screen == nil || pool == nil {
		return
	}
	view := cam.Bounds()
	pool.Each(func(p *debris.Particle) {
		if !p.Active() || !view.ContainsVect(p.Position) {
			return
		}
		size := p.Size * cam.zoom()
		if size < minDebrisPixels {
			size = minDebrisPixels
		}
		x, y := cam.WorldToScreen(p.Position)
		vector.FillRect(screen, float32(x-size/2), float32(y-size/2), float32(size), float32(size), p.Color, false)
	})
}
