package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultTOML []byte

type Config struct {
	Window     WindowConfig     `toml:"window"`
	Camera     CameraConfig     `toml:"camera"`
	Simulation SimulationConfig `toml:"simulation"`
	Prefabs    PrefabsConfig    `toml:"prefabs"`
	Debug      DebugConfig      `toml:"debug"`
	Logging    LoggingConfig    `toml:"logging"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type CameraConfig struct {
	X    float64 `toml:"x"`
	Y    float64 `toml:"y"`
	Zoom float64 `toml:"zoom"` // screen pixels per world unit
}

type SimulationConfig struct {
	TPS          int   `toml:"tps"`
	PoolPrewarm  int   `toml:"pool_prewarm"`
	DebrisSeed   int64 `toml:"debris_seed"`
	PhysicsSpace bool  `toml:"physics_space"` // simulate debris with chipmunk
}

type PrefabsConfig struct {
	Dir       string `toml:"dir"`
	HotReload bool   `toml:"hot_reload"`
}

type DebugConfig struct {
	Outlines bool `toml:"outlines"`
	Physics  bool `toml:"physics"`
	HUD      bool `toml:"hud"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads path over the built-in defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Default parses the embedded default.toml.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(defaultTOML, cfg); err != nil {
		return nil, fmt.Errorf("config: parse defaults: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Zoom <= 0 {
		return fmt.Errorf("camera zoom must be positive, got %v", c.Camera.Zoom)
	}
	if c.Simulation.TPS <= 0 {
		return fmt.Errorf("simulation tps must be positive, got %d", c.Simulation.TPS)
	}
	if c.Simulation.PoolPrewarm < 0 {
		return fmt.Errorf("pool prewarm must not be negative, got %d", c.Simulation.PoolPrewarm)
	}
	return nil
}
