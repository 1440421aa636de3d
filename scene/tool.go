package scene

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/brush"
	"github.com/milk9111/destructible/ecs"
	"github.com/milk9111/destructible/prefabs"
)

// Tool is one selectable brush. Radius tools erase around a point; the
// others carry an overlap shape that follows the cursor.
type Tool struct {
	Name   string
	Kind   prefabs.BrushKind
	Radius float64
	Shape  brush.Brush
}

// Request builds a destroy request centred at p.
func (t *Tool) Request(p cp.Vector) ecs.DestroyRequest {
	if t.Shape == nil {
		return ecs.DestroyRequest{Center: p, Radius: t.Radius}
	}
	t.Shape.MoveTo(p)
	return ecs.DestroyRequest{Shape: t.Shape}
}

// NewTool builds a tool from its spec. Script brushes are loaded through
// prefabs.LoadScript.
func NewTool(spec prefabs.BrushSpec) (*Tool, error) {
	t := &Tool{Name: spec.Name, Kind: spec.Kind, Radius: spec.Radius}
	switch spec.Kind {
	case prefabs.BrushRadius:
	case prefabs.BrushCircle:
		t.Shape = brush.NewCircle(cp.Vector{}, spec.Radius)
	case prefabs.BrushBox:
		t.Shape = brush.NewBox(cp.Vector{}, spec.Width, spec.Height, spec.Angle)
	case prefabs.BrushScript:
		src, err := prefabs.LoadScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("scene: brush %s: %w", spec.Name, err)
		}
		poly, err := brush.LoadScripted(spec.Script, src, spec.Params)
		if err != nil {
			return nil, err
		}
		poly.Rotate(spec.Angle)
		t.Shape = poly
	default:
		return nil, fmt.Errorf("scene: brush %s: unknown kind %q", spec.Name, spec.Kind)
	}
	return t, nil
}

func Tools(set *prefabs.BrushSetSpec) ([]*Tool, error) {
	if set == nil {
		return nil, nil
	}
	out := make([]*Tool, 0, len(set.Brushes))
	for _, spec := range set.Brushes {
		t, err := NewTool(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
