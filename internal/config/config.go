package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"geoheat/internal/frame"
	"geoheat/internal/geom"
	"geoheat/internal/heat"
)

// Config is the top-level configuration of a heat overlay.
type Config struct {
	Geometry GeometryConfig `yaml:"geometry"`
	Frames   FramesConfig   `yaml:"frames"`
	Style    heat.Style     `yaml:"style"`

	// Group selects which group of the value table is drawn. Empty selects
	// the first group in sorted order.
	Group string `yaml:"group"`
}

// GeometryConfig points at the region boundaries.
type GeometryConfig struct {
	// Path is a GeoJSON, KML, CSV (name,wkt) or WKT file.
	Path string `yaml:"path"`

	// NameProperty is the GeoJSON feature property holding the region id.
	NameProperty string `yaml:"name_property"`
}

// FramesConfig points at the time series source.
type FramesConfig struct {
	Path string `yaml:"path"`

	// Format is json | prometheus | lines. Empty selects by extension.
	Format string `yaml:"format"`

	// GroupLabel and RegionLabel are the Prometheus labels forming a frame name.
	GroupLabel  string `yaml:"group_label"`
	RegionLabel string `yaml:"region_label"`
}

// SourceOptions converts the section for frame.LoadFile.
func (f FramesConfig) SourceOptions() frame.SourceOptions {
	return frame.SourceOptions{Format: f.Format, GroupLabel: f.GroupLabel, RegionLabel: f.RegionLabel}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Defaults returns a Config pre-populated with default values.
func Defaults() *Config {
	return &Config{
		Geometry: GeometryConfig{NameProperty: geom.DefaultNameProperty},
		Frames: FramesConfig{
			GroupLabel:  frame.DefaultGroupLabel,
			RegionLabel: frame.DefaultRegionLabel,
		},
		Style: heat.DefaultStyle(),
	}
}

// Validate checks required fields and structural constraints.
func (c *Config) Validate() error {
	if c.Geometry.Path == "" {
		return fmt.Errorf("geometry.path is required")
	}
	switch c.Frames.Format {
	case "", frame.FormatJSON, frame.FormatPrometheus, frame.FormatLines:
	default:
		return fmt.Errorf("frames.format: unknown format %q", c.Frames.Format)
	}
	if err := c.Style.Validate(); err != nil {
		return err
	}
	return nil
}
