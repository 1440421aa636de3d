// Package brush provides the overlap shapes used for shape-mode terrain
// removal. Circle and Box are backed by Chipmunk shapes; Polygon handles
// arbitrary (including concave) outlines such as scripted brushes.
package brush

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/terrain"
)

// Brush is a movable removal shape.
type Brush interface {
	terrain.Shape
	MoveTo(p cp.Vector)
}

// Circle is a round brush.
type Circle struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
}

func NewCircle(center cp.Vector, radius float64) *Circle {
	body := cp.NewKinematicBody()
	body.SetPosition(center)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.CacheBB()
	return &Circle{body: body, shape: shape, radius: radius}
}

func (c *Circle) MoveTo(p cp.Vector) {
	c.body.SetPosition(p)
	c.shape.CacheBB()
}

func (c *Circle) Contains(p cp.Vector) bool {
	return c.shape.PointQuery(p).Distance <= 0
}

func (c *Circle) BB() cp.BB {
	return c.shape.BB()
}

func (c *Circle) Radius() float64 {
	return c.radius
}

// Box is a rectangular brush that can be rotated.
type Box struct {
	body          *cp.Body
	shape         *cp.Shape
	width, height float64
}

func NewBox(center cp.Vector, width, height, angle float64) *Box {
	body := cp.NewKinematicBody()
	body.SetPosition(center)
	body.SetAngle(angle)
	shape := cp.NewBox(body, width, height, 0)
	shape.CacheBB()
	return &Box{body: body, shape: shape, width: width, height: height}
}

func (b *Box) MoveTo(p cp.Vector) {
	b.body.SetPosition(p)
	b.shape.CacheBB()
}

// Rotate sets the box angle in radians.
func (b *Box) Rotate(angle float64) {
	b.body.SetAngle(angle)
	b.shape.CacheBB()
}

func (b *Box) Contains(p cp.Vector) bool {
	return b.shape.PointQuery(p).Distance <= 0
}

func (b *Box) BB() cp.BB {
	return b.shape.BB()
}

// Polygon is an arbitrary closed outline, tested with the even-odd rule.
type Polygon struct {
	local    terrain.Path
	center   cp.Vector
	angle    float64
	world    terrain.Path
	worldBB  cp.BB
	boundsOK bool
}

// NewPolygon builds a brush from vertices relative to its centre.
func NewPolygon(center cp.Vector, vertices []cp.Vector) *Polygon {
	p := &Polygon{local: terrain.Path(vertices).Clone(), center: center}
	p.refresh()
	return p
}

func (p *Polygon) MoveTo(c cp.Vector) {
	p.center = c
	p.refresh()
}

func (p *Polygon) Rotate(angle float64) {
	p.angle = angle
	p.refresh()
}

func (p *Polygon) refresh() {
	rot := cp.ForAngle(p.angle)
	p.world = make(terrain.Path, len(p.local))
	for i, v := range p.local {
		p.world[i] = p.center.Add(v.Rotate(rot))
	}
	p.boundsOK = p.world.Validate() == nil
	p.worldBB = p.world.Bounds()
}

func (p *Polygon) Contains(pt cp.Vector) bool {
	if !p.boundsOK {
		return false
	}
	return p.world.Contains(pt)
}

func (p *Polygon) BB() cp.BB {
	if !p.boundsOK {
		return cp.BB{L: p.center.X, B: p.center.Y, R: p.center.X, T: p.center.Y}
	}
	return p.worldBB
}

// Vertices returns the current world-space outline.
func (p *Polygon) Vertices() terrain.Path {
	return p.world
}

// Extent is the largest distance from the centre to any vertex.
func (p *Polygon) Extent() float64 {
	r := 0.0
	for _, v := range p.local {
		r = math.Max(r, v.Length())
	}
	return r
}
