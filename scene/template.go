package scene

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/destructible/prefabs"
	"github.com/milk9111/destructible/terrain"
)

// NewTemplate builds a terrain template from its spec.
func NewTemplate(spec prefabs.TerrainSpec) (*terrain.Template, error) {
	mask, err := BuildMask(spec)
	if err != nil {
		return nil, err
	}
	return &terrain.Template{
		Name:              spec.Name,
		Source:            mask,
		PixelsPerUnit:     spec.PixelsPerUnit,
		Pivot:             cp.Vector{X: spec.PivotX, Y: spec.PivotY},
		BaseThreshold:     spec.Threshold,
		DebrisScale:       spec.DebrisScale,
		BoundaryTolerance: spec.BoundaryTolerance,
	}, nil
}

// Templates builds every template in set, keyed by name.
func Templates(set *prefabs.TerrainSetSpec) (map[string]*terrain.Template, error) {
	out := make(map[string]*terrain.Template)
	if set == nil {
		return out, nil
	}
	for _, spec := range set.Templates {
		if _, dup := out[spec.Name]; dup {
			return nil, fmt.Errorf("scene: duplicate template %q", spec.Name)
		}
		tmpl, err := NewTemplate(spec)
		if err != nil {
			return nil, err
		}
		out[spec.Name] = tmpl
	}
	return out, nil
}

// Transform converts a prefab transform; a missing scale means 1.
func Transform(spec prefabs.TransformSpec) terrain.Transform {
	sx, sy := spec.ScaleX, spec.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return terrain.Transform{
		Position: cp.Vector{X: spec.X, Y: spec.Y},
		Rotation: spec.Rotation,
		Scale:    cp.Vector{X: sx, Y: sy},
	}
}
