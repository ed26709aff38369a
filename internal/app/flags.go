package app

import (
	"flag"

	"lifegrid/internal/config"
)

// Flags represents the command-line parameters that override the config file.
type Flags struct {
	ConfigPath string
	Seed       int64
	Density    float64
	Scale      int
	OutputDir  string
	LogLevel   string
}

// NewFlags returns Flags whose zero-ish sentinels leave the config untouched.
func NewFlags() *Flags {
	return &Flags{Density: -1}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "path to a YAML config (empty = built-in defaults)")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "seed for grid seeding (0 = config value)")
	fs.Float64Var(&f.Density, "density", f.Density, "initial seeding density in [0,1] (negative = config value)")
	fs.IntVar(&f.Scale, "scale", f.Scale, "pixels per cell (0 = config value)")
	fs.StringVar(&f.OutputDir, "output-dir", f.OutputDir, "directory for telemetry CSV (empty = config value)")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "debug, info, warn or error (empty = config value)")
}

// Load reads the config file and applies the overrides, then validates.
func (f *Flags) Load() (*config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies every set flag onto cfg.
func (f *Flags) Apply(cfg *config.Config) {
	if f.Seed != 0 {
		cfg.Seeding.Seed = f.Seed
	}
	if f.Density >= 0 {
		cfg.Seeding.Density = f.Density
	}
	if f.Scale > 0 {
		cfg.Render.CellSize = f.Scale
	}
	if f.OutputDir != "" {
		cfg.Telemetry.OutputDir = f.OutputDir
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
}
