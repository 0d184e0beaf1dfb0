// Package config provides configuration loading and access for the cultivator.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Akodiat/treeCultivator/genome"
	"github.com/Akodiat/treeCultivator/params"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrUnknownVariant is returned when the selected seed variant is not defined.
var ErrUnknownVariant = errors.New("config: unknown variant")

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig             `yaml:"screen"`
	Grid      GridConfig               `yaml:"grid"`
	Mutation  MutationConfig           `yaml:"mutation"`
	Render    RenderConfig             `yaml:"render"`
	Camera    CameraConfig             `yaml:"camera"`
	Telemetry TelemetryConfig          `yaml:"telemetry"`
	Variant   string                   `yaml:"variant"`
	Variants  map[string]VariantConfig `yaml:"variants"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// GridConfig holds the population size and cell layout.
type GridConfig struct {
	PopulationSize int     `yaml:"population_size"`
	Columns        int     `yaml:"columns"`
	CellSize       float64 `yaml:"cell_size"`
	Gap            float64 `yaml:"gap"`
	Margin         float64 `yaml:"margin"`
	ScrollSpeed    float64 `yaml:"scroll_speed"` // Pixels per wheel notch
	PanelWidth     int     `yaml:"panel_width"`  // Parameter panel on the right
}

// MutationConfig holds the per-parameter Gaussian perturbation.
type MutationConfig struct {
	Mean  float64 `yaml:"mean"`
	Stdev float64 `yaml:"stdev"`
}

// RenderConfig holds render loop settings.
type RenderConfig struct {
	RotationSpeed   float64 `yaml:"rotation_speed"` // Radians per elapsed millisecond
	BackgroundColor string  `yaml:"background_color"`
	CellColor       string  `yaml:"cell_color"`
	BarkColor       string  `yaml:"bark_color"`
	LeafColor       string  `yaml:"leaf_color"`
	CylinderSides   int     `yaml:"cylinder_sides"`
}

// CameraConfig holds the per-cell orbit camera settings.
type CameraConfig struct {
	FovY         float64 `yaml:"fov_y"`
	Distance     float64 `yaml:"distance"`
	TargetHeight float64 `yaml:"target_height"`
	MinDistance  float64 `yaml:"min_distance"`
	MaxDistance  float64 `yaml:"max_distance"`
	EnableZoom   bool    `yaml:"enable_zoom"`
	EnablePan    bool    `yaml:"enable_pan"`
	OrbitSpeed   float64 `yaml:"orbit_speed"` // Radians per dragged pixel
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Frames averaged per perf sample
}

// VariantConfig is a named seed configuration for the initial population.
type VariantConfig struct {
	DisplayRegion string             `yaml:"display_region"`
	Seed          int64              `yaml:"seed"`
	Segments      int                `yaml:"segments"`
	Values        map[string]float64 `yaml:"values"`
}

// Template converts the variant into a genome template.
func (v VariantConfig) Template() genome.Template {
	t := genome.Template{
		Seed:     v.Seed,
		Segments: v.Segments,
		Values:   make(map[params.Key]float64, len(v.Values)),
	}
	for k, val := range v.Values {
		t.Values[params.Key(k)] = val
	}
	return t
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Background color.RGBA
	Cell       color.RGBA
	Bark       color.RGBA
	Leaf       color.RGBA
	Mutation   genome.Gaussian
	Variant    VariantConfig
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SelectVariant switches the active seed variant.
func (c *Config) SelectVariant(name string) error {
	v, ok := c.Variants[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	c.Variant = name
	c.Derived.Variant = v
	return nil
}

// computeDerived validates the loaded values and fills Derived.
func (c *Config) computeDerived() error {
	if c.Grid.PopulationSize < 1 {
		return fmt.Errorf("config: grid.population_size must be positive, got %d", c.Grid.PopulationSize)
	}
	if c.Grid.Columns < 1 {
		c.Grid.Columns = 1
	}
	if c.Render.CylinderSides < 3 {
		c.Render.CylinderSides = 3
	}
	if c.Camera.MinDistance > c.Camera.MaxDistance {
		return fmt.Errorf("config: camera.min_distance %v exceeds max_distance %v", c.Camera.MinDistance, c.Camera.MaxDistance)
	}

	colors := []struct {
		name string
		src  string
		dst  *color.RGBA
	}{
		{"render.background_color", c.Render.BackgroundColor, &c.Derived.Background},
		{"render.cell_color", c.Render.CellColor, &c.Derived.Cell},
		{"render.bark_color", c.Render.BarkColor, &c.Derived.Bark},
		{"render.leaf_color", c.Render.LeafColor, &c.Derived.Leaf},
	}
	for _, col := range colors {
		rgba, err := ParseColor(col.src)
		if err != nil {
			return fmt.Errorf("config: %s: %w", col.name, err)
		}
		*col.dst = rgba
	}

	c.Derived.Mutation = genome.Gaussian{Mean: c.Mutation.Mean, StdDev: c.Mutation.Stdev}
	return c.SelectVariant(c.Variant)
}

// ParseColor parses "#rrggbb" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
