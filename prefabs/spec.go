package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	TerrainFile = "terrain.yaml"
	SceneFile   = "scene.yaml"
	BrushesFile = "brushes.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// TerrainSetSpec lists every destructible template.
type TerrainSetSpec struct {
	Templates []TerrainSpec `yaml:"templates"`
}

// TerrainSpec describes a template bitmap and its destruction tuning. The
// bitmap is painted from stamps in texel coordinates, y up.
type TerrainSpec struct {
	Name              string      `yaml:"name"`
	Width             int         `yaml:"width"`
	Height            int         `yaml:"height"`
	PixelsPerUnit     float64     `yaml:"pixels_per_unit"`
	PivotX            float64     `yaml:"pivot_x"`
	PivotY            float64     `yaml:"pivot_y"`
	Threshold         float64     `yaml:"threshold"`
	DebrisScale       float64     `yaml:"debris_scale"`
	BoundaryTolerance float64     `yaml:"boundary_tolerance"`
	Seed              int64       `yaml:"seed"`
	Stamps            []StampSpec `yaml:"stamps"`
}

// StampKind selects how a stamp paints the bitmap.
type StampKind string

const (
	StampRect    StampKind = "rect"
	StampEllipse StampKind = "ellipse"
	StampErase   StampKind = "erase"
	StampCarve   StampKind = "carve"
)

type StampSpec struct {
	Kind   StampKind  `yaml:"kind"`
	X      int        `yaml:"x"`
	Y      int        `yaml:"y"`
	W      int        `yaml:"w"`
	H      int        `yaml:"h"`
	Color  *YAMLColor `yaml:"color"`
	Jitter int        `yaml:"jitter"`
}

func LoadTerrainSpec() (*TerrainSetSpec, error) {
	spec, err := LoadSpec[TerrainSetSpec](TerrainFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Find returns the template named name.
func (s *TerrainSetSpec) Find(name string) (*TerrainSpec, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Templates {
		if s.Templates[i].Name == name {
			return &s.Templates[i], true
		}
	}
	return nil, false
}

type SceneSpec struct {
	Name       string          `yaml:"name"`
	Gravity    float64         `yaml:"gravity"`
	KillY      float64         `yaml:"kill_y"`
	Background *YAMLColor      `yaml:"background"`
	Bodies     []PlacementSpec `yaml:"bodies"`
}

type PlacementSpec struct {
	Template  string        `yaml:"template"`
	Transform TransformSpec `yaml:"transform"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](SceneFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type BrushSetSpec struct {
	Brushes []BrushSpec `yaml:"brushes"`
}

// BrushKind selects the removal mode of a brush.
type BrushKind string

const (
	BrushRadius BrushKind = "radius"
	BrushCircle BrushKind = "circle"
	BrushBox    BrushKind = "box"
	BrushScript BrushKind = "script"
)

type BrushSpec struct {
	Name   string         `yaml:"name"`
	Kind   BrushKind      `yaml:"kind"`
	Radius float64        `yaml:"radius"`
	Width  float64        `yaml:"width"`
	Height float64        `yaml:"height"`
	Angle  float64        `yaml:"angle"`
	Script string         `yaml:"script"`
	Params map[string]any `yaml:"params"`
}

func LoadBrushSpec() (*BrushSetSpec, error) {
	spec, err := LoadSpec[BrushSetSpec](BrushesFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the colour as non-premultiplied RGBA, or fallback if unset.
func (c *YAMLColor) NRGBA(fallback color.NRGBA) color.NRGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
