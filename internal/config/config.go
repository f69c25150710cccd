// Package config provides configuration loading and validation for spinplex.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Render    RenderConfig  `yaml:"render"`
	Color     string        `yaml:"color"`
	Log       LogConfig     `yaml:"log"`
	Bar       BarConfig     `yaml:"bar"`
	FrameSets []FrameSetDef `yaml:"frame_sets"`
}

// RenderConfig controls the render loop.
type RenderConfig struct {
	// Tick is the fixed cadence in shared mode.
	Tick time.Duration `yaml:"tick"`
	// MaxIdle bounds how long the per-entity loop sleeps with nothing due.
	MaxIdle     time.Duration `yaml:"max_idle"`
	Cadence     string        `yaml:"cadence"`
	Anchor      string        `yaml:"anchor"`
	Interactive string        `yaml:"interactive"`
}

// LogConfig contains logging settings. Logs never go to the animated stream.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// BarConfig contains progress bar defaults.
type BarConfig struct {
	Style string `yaml:"style"`
	Width int    `yaml:"width"`
}

// FrameSetDef is a user-defined frame set.
type FrameSetDef struct {
	Name     string        `yaml:"name"`
	Glyphs   []string      `yaml:"glyphs"`
	Interval time.Duration `yaml:"interval"`
	End      string        `yaml:"end"`
	Color    string        `yaml:"color"`
}

// DefaultConfigPath is the default path to look for the configuration file.
const DefaultConfigPath = "spinplex.yaml"

// Default values for optional configuration fields.
const (
	DefaultTick        = 80 * time.Millisecond
	DefaultMaxIdle     = 250 * time.Millisecond
	DefaultCadence     = "per-entity"
	DefaultAnchor      = "saved"
	DefaultMode        = "auto"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultBarStyle    = "classic"
	DefaultBarWidth    = 30
	DefaultSetInterval = 100 * time.Millisecond
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration from the specified file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDefault loads configuration from the default path. A missing default
// file is not an error; the defaults are returned instead.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// applyDefaults sets default values for optional configuration fields.
func (c *Config) applyDefaults() {
	if c.Render.Tick <= 0 {
		c.Render.Tick = DefaultTick
	}
	if c.Render.MaxIdle <= 0 {
		c.Render.MaxIdle = DefaultMaxIdle
	}
	if c.Render.Cadence == "" {
		c.Render.Cadence = DefaultCadence
	}
	if c.Render.Anchor == "" {
		c.Render.Anchor = DefaultAnchor
	}
	if c.Render.Interactive == "" {
		c.Render.Interactive = DefaultMode
	}
	if c.Color == "" {
		c.Color = DefaultMode
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Bar.Style == "" {
		c.Bar.Style = DefaultBarStyle
	}
	if c.Bar.Width <= 0 {
		c.Bar.Width = DefaultBarWidth
	}
	for i := range c.FrameSets {
		if c.FrameSets[i].Interval <= 0 {
			c.FrameSets[i].Interval = DefaultSetInterval
		}
	}
}

// validate checks enumerations and frame set definitions.
func (c *Config) validate() error {
	checks := []struct {
		field, value string
		allowed      []string
	}{
		{"render.cadence", c.Render.Cadence, []string{"per-entity", "shared"}},
		{"render.anchor", c.Render.Anchor, []string{"saved", "relative"}},
		{"render.interactive", c.Render.Interactive, []string{"auto", "always", "never"}},
		{"color", c.Color, []string{"auto", "always", "never"}},
		{"log.level", c.Log.Level, []string{"debug", "info", "warn", "error"}},
		{"log.format", c.Log.Format, []string{"text", "json"}},
	}
	for _, chk := range checks {
		if !oneOf(chk.value, chk.allowed) {
			return fmt.Errorf("%s must be one of %s, got %q", chk.field, strings.Join(chk.allowed, ", "), chk.value)
		}
	}

	seen := make(map[string]bool, len(c.FrameSets))
	for i, def := range c.FrameSets {
		if def.Name == "" {
			return fmt.Errorf("frame_sets[%d].name is required", i)
		}
		if seen[def.Name] {
			return fmt.Errorf("frame_sets[%d]: duplicate name %q", i, def.Name)
		}
		seen[def.Name] = true
		if len(def.Glyphs) == 0 {
			return fmt.Errorf("frame_sets[%d] (%s): glyphs must not be empty", i, def.Name)
		}
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
