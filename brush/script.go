package brush

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
)

var (
	ErrNoVertices  = errors.New("brush: script defines no vertices")
	ErrBadVertex   = errors.New("brush: vertex must be a [x, y] pair of numbers")
	ErrTooFewVerts = errors.New("brush: polygon needs at least 3 vertices")
)

// ScriptVertices runs a tengo script and reads its global `vertices`, an
// array of [x, y] pairs relative to the brush centre. params are exposed
// to the script as globals.
func ScriptVertices(name string, src []byte, params map[string]any) ([]cp.Vector, error) {
	script := tengo.NewScript(src)
	for k, v := range params {
		if err := script.Add(k, v); err != nil {
			return nil, fmt.Errorf("brush: script %s: param %s: %w", name, k, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("brush: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("brush: run %s: %w", name, err)
	}
	if !compiled.IsDefined("vertices") {
		return nil, fmt.Errorf("brush: %s: %w", name, ErrNoVertices)
	}

	raw := compiled.Get("vertices").Array()
	if len(raw) < 3 {
		return nil, fmt.Errorf("brush: %s: %w", name, ErrTooFewVerts)
	}
	out := make([]cp.Vector, 0, len(raw))
	for i, item := range raw {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("brush: %s: vertex %d: %w", name, i, ErrBadVertex)
		}
		x, okX := toFloat(pair[0])
		y, okY := toFloat(pair[1])
		if !okX || !okY {
			return nil, fmt.Errorf("brush: %s: vertex %d: %w", name, i, ErrBadVertex)
		}
		out = append(out, cp.Vector{X: x, Y: y})
	}
	return out, nil
}

// LoadScripted builds a polygon brush from a tengo script.
func LoadScripted(name string, src []byte, params map[string]any) (*Polygon, error) {
	verts, err := ScriptVertices(name, src, params)
	if err != nil {
		return nil, err
	}
	return NewPolygon(cp.Vector{}, verts), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
