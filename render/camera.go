// Package render draws terrain bodies, debris and debug overlays with
// ebiten. World space is y-up; the screen is y-down.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Camera maps world units to screen pixels. The camera position is shown at
// the centre of the screen.
type Camera struct {
	Position cp.Vector
	Zoom     float64
	Width    float64
	Height   float64
}

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

func (c Camera) WorldToScreen(v cp.Vector) (float64, float64) {
	z := c.zoom()
	return (v.X-c.Position.X)*z + c.Width/2, c.Height/2 - (v.Y-c.Position.Y)*z
}

func (c Camera) ScreenToWorld(x, y float64) cp.Vector {
	z := c.zoom()
	return cp.Vector{
		X: (x-c.Width/2)/z + c.Position.X,
		Y: (c.Height/2-y)/z + c.Position.Y,
	}
}

// Apply appends the world-to-screen transform to g.
func (c Camera) Apply(g *ebiten.GeoM) {
	z := c.zoom()
	g.Translate(-c.Position.X, -c.Position.Y)
	g.Scale(z, -z)
	g.Translate(c.Width/2, c.Height/2)
}

// Bounds is the world box visible on screen.
func (c Camera) Bounds() cp.BB {
	lo := c.ScreenToWorld(0, c.Height)
	hi := c.ScreenToWorld(c.Width, 0)
	return cp.BB{L: lo.X, B: lo.Y, R: hi.X, T: hi.Y}
}
