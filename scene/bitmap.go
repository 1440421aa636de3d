// Package scene turns prefab specs into terrain templates, brushes and
// registered bodies.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"

	"github.com/milk9111/destructible/prefabs"
	"github.com/milk9111/destructible/terrain"
)

var (
	ErrEmptyBitmap  = errors.New("scene: bitmap has no size")
	ErrUnknownStamp = errors.New("scene: unknown stamp kind")
)

var defaultFill = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// BuildMask paints a template's stamps, in order, into a new mask.
func BuildMask(spec prefabs.TerrainSpec) (*terrain.Mask, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("scene: template %s: %w", spec.Name, ErrEmptyBitmap)
	}
	m := terrain.NewMask(spec.Width, spec.Height)
	rng := rand.New(rand.NewSource(spec.Seed))
	for i, st := range spec.Stamps {
		if err := stamp(m, st, rng); err != nil {
			return nil, fmt.Errorf("scene: template %s: stamp %d: %w", spec.Name, i, err)
		}
	}
	return m, nil
}

func stamp(m *terrain.Mask, st prefabs.StampSpec, rng *rand.Rand) error {
	var inside func(x, y int) bool
	switch st.Kind {
	case prefabs.StampRect, prefabs.StampErase:
		inside = func(int, int) bool { return true }
	case prefabs.StampEllipse, prefabs.StampCarve:
		rx, ry := float64(st.W)/2, float64(st.H)/2
		cx, cy := float64(st.X)+rx, float64(st.Y)+ry
		inside = func(x, y int) bool {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			return dx*dx+dy*dy <= 1
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStamp, st.Kind)
	}

	erase := st.Kind == prefabs.StampErase || st.Kind == prefabs.StampCarve
	base := st.Color.NRGBA(defaultFill)
	for y := st.Y; y < st.Y+st.H; y++ {
		for x := st.X; x < st.X+st.W; x++ {
			if !m.InBounds(x, y) || !inside(x, y) {
				continue
			}
			if erase {
				m.Clear(x, y)
				continue
			}
			m.Set(x, y, jitter(base, st.Jitter, rng))
		}
	}
	return nil
}

// jitter shifts the colour's brightness by up to ±amount.
func jitter(c color.NRGBA, amount int, rng *rand.Rand) color.NRGBA {
	if amount <= 0 {
		return c
	}
	d := rng.Intn(2*amount+1) - amount
	return color.NRGBA{R: clampByte(int(c.R) + d), G: clampByte(int(c.G) + d), B: clampByte(int(c.B) + d), A: c.A}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
