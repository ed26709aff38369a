// Package config provides configuration loading for the simulator.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"lifegrid/internal/core"
	"lifegrid/internal/life"
	_ "lifegrid/internal/seed"
	"lifegrid/internal/sim"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid reports a configuration value outside its allowed range.
var ErrInvalid = errors.New("invalid config")

// Config holds every startup setting. None of it changes at runtime except
// the seeding density, which the loop owns after construction.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Render    RenderConfig    `yaml:"render"`
	Cadence   sim.Cadence     `yaml:"cadence"`
	Rules     life.Rules      `yaml:"rules"`
	Seeding   SeedingConfig   `yaml:"seeding"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// GridConfig holds the fixed board dimensions.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// RenderConfig holds display settings.
type RenderConfig struct {
	CellSize  int  `yaml:"cell_size"` // pixels per cell edge
	GridLines bool `yaml:"grid_lines"`
}

// SeedingConfig selects the seeder and its initial density.
type SeedingConfig struct {
	Density float64           `yaml:"density"`
	Seed    int64             `yaml:"seed"`
	Mode    string            `yaml:"mode"`
	Options map[string]string `yaml:"options"`
}

// TelemetryConfig controls per-generation CSV output.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty disables output
	Window    int    `yaml:"window"`     // generations per stats window
}

// LogConfig controls the slog handler installed by the binaries.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := parse(nil)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return cfg
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults. The result is validated.
func Load(path string) (*Config, error) {
	var user []byte
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		user = data
	}
	cfg, err := parse(user)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays the YAML document onto the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(user []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing defaults: %w", err)
	}
	if len(bytes.TrimSpace(user)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(user))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks every field the binaries depend on.
func (c *Config) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("%w: grid %dx%d: %w", ErrInvalid, c.Grid.Rows, c.Grid.Cols, core.ErrInvalidDimension)
	}
	if c.Render.CellSize <= 0 {
		return fmt.Errorf("%w: render.cell_size must be positive, got %d", ErrInvalid, c.Render.CellSize)
	}
	if err := c.Cadence.Validate(); err != nil {
		return fmt.Errorf("%w: cadence: %w", ErrInvalid, err)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: rules: %w", ErrInvalid, err)
	}
	if err := core.ValidateDensity(c.Seeding.Density); err != nil {
		return fmt.Errorf("%w: seeding: %w", ErrInvalid, err)
	}
	if _, err := core.NewSeeder(c.Seeding.Mode, c.Seeding.Options); err != nil {
		return fmt.Errorf("%w: seeding: %w", ErrInvalid, err)
	}
	if c.Telemetry.Window <= 0 {
		return fmt.Errorf("%w: telemetry.window must be positive, got %d", ErrInvalid, c.Telemetry.Window)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", l.Level, err)
	}
	return lvl, nil
}

// Logger builds the slog logger described by the config.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	lvl, err := l.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SimConfig converts the settings into the loop's construction config using
// the seeder named by Seeding.Mode.
func (c *Config) SimConfig() (sim.Config, error) {
	seeder, err := core.NewSeeder(c.Seeding.Mode, c.Seeding.Options)
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{
		Rows:    c.Grid.Rows,
		Cols:    c.Grid.Cols,
		Rules:   c.Rules,
		Density: c.Seeding.Density,
		Seed:    c.Seeding.Seed,
		Cadence: c.Cadence,
		Seeder:  seeder,
	}, nil
}
