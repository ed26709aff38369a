// Package seed registers the grid seeders selectable from configuration.
package seed

import (
	"fmt"
	"math"
	"strconv"

	"github.com/aquilax/go-perlin"

	"lifegrid/internal/core"
)

// NoiseConfig holds parameters for the perlin-clustered seeder.
type NoiseConfig struct {
	// Scale converts cell coordinates to noise space; smaller is smoother.
	Scale float64
	// Amplitude is how far noise pushes the per-cell probability from density.
	Amplitude float64
	Alpha     float64
	Beta      float64
	Octaves   int32
}

// DefaultNoiseConfig returns the standard configuration.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{Scale: 0.08, Amplitude: 1.5, Alpha: 2, Beta: 2, Octaves: 3}
}

// NoiseFromMap populates a NoiseConfig from a string map.
func NoiseFromMap(cfg map[string]string) (NoiseConfig, error) {
	c := DefaultNoiseConfig()
	if cfg == nil {
		return c, nil
	}
	floats := map[string]*float64{
		"scale":     &c.Scale,
		"amplitude": &c.Amplitude,
		"alpha":     &c.Alpha,
		"beta":      &c.Beta,
	}
	for key, dst := range floats {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(parsed) || parsed < 0 {
			return c, fmt.Errorf("noise seeder: option %s=%q must be a non-negative number", key, v)
		}
		*dst = parsed
	}
	if v, ok := cfg["octaves"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return c, fmt.Errorf("noise seeder: option octaves=%q must be a positive integer", v)
		}
		c.Octaves = int32(parsed)
	}
	return c, nil
}

// Noise seeds cells with a probability modulated by 2D perlin noise, producing
// clustered colonies whose mean density tracks the requested density.
type Noise struct {
	cfg NoiseConfig
}

// NewNoise returns a Noise seeder.
func NewNoise(cfg NoiseConfig) *Noise { return &Noise{cfg: cfg} }

// Name returns the seeder identifier.
func (n *Noise) Name() string { return "noise" }

// Seed populates g. Density 0 always leaves the grid dead.
func (n *Noise) Seed(g *core.Grid, rng *core.RNG, density float64) error {
	if err := core.ValidateDensity(density); err != nil {
		return err
	}
	field := perlin.NewPerlin(n.cfg.Alpha, n.cfg.Beta, n.cfg.Octaves, rng.Int64())
	cells := g.Cells()
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			v := field.Noise2D(float64(col)*n.cfg.Scale, float64(row)*n.cfg.Scale)
			p := density * (1 + n.cfg.Amplitude*v)
			cells[g.Index(row, col)] = rng.Chance(clamp01(p))
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func init() {
	core.RegisterSeeder("uniform", func(map[string]string) (core.Seeder, error) {
		return core.Uniform{}, nil
	})
	core.RegisterSeeder("noise", func(cfg map[string]string) (core.Seeder, error) {
		c, err := NoiseFromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewNoise(c), nil
	})
}
