package sim

import (
	"errors"
	"fmt"
	"time"

	"lifegrid/internal/core"
	"lifegrid/internal/life"
)

// ErrInvalidCadence reports an unusable scheduling configuration.
var ErrInvalidCadence = errors.New("invalid cadence")

// CadenceMode selects what drives generations forward.
type CadenceMode string

const (
	// CadenceFrame steps on every host refresh via Loop.Tick.
	CadenceFrame CadenceMode = "frame"
	// CadenceInterval steps on a wall-clock ticker owned by the loop.
	CadenceInterval CadenceMode = "interval"
)

// Cadence describes how often the loop advances. In frame mode a positive
// Interval throttles steps to at most one per interval; zero steps every frame.
type Cadence struct {
	Mode     CadenceMode   `yaml:"mode"`
	Interval time.Duration `yaml:"interval"`
}

// Validate checks the cadence is usable.
func (c Cadence) Validate() error {
	switch c.Mode {
	case CadenceFrame:
		if c.Interval < 0 {
			return fmt.Errorf("%w: negative frame interval %s", ErrInvalidCadence, c.Interval)
		}
	case CadenceInterval:
		if c.Interval <= 0 {
			return fmt.Errorf("%w: interval mode needs a positive interval, got %s", ErrInvalidCadence, c.Interval)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidCadence, c.Mode)
	}
	return nil
}

// Config holds everything the loop fixes at construction.
type Config struct {
	Rows    int
	Cols    int
	Rules   life.Rules
	Density float64
	Seed    int64
	Cadence Cadence
	// Seeder populates the grid on startup and restart; nil means uniform.
	Seeder core.Seeder
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Rows:    80,
		Cols:    120,
		Rules:   life.Classic(),
		Density: 0.33,
		Seed:    1,
		Cadence: Cadence{Mode: CadenceFrame},
	}
}

// Validate checks every field that would otherwise fail later.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", core.ErrInvalidDimension, c.Rows, c.Cols)
	}
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if err := core.ValidateDensity(c.Density); err != nil {
		return err
	}
	return c.Cadence.Validate()
}
