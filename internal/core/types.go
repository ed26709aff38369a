package core

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSeeder reports a seeder name with no registered factory.
var ErrUnknownSeeder = errors.New("unknown seeder")

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Seeder populates a freshly reset grid from a density.
type Seeder interface {
	Name() string
	Seed(g *Grid, rng *RNG, density float64) error
}

// SeederFactory constructs a Seeder using an optional configuration map.
type SeederFactory func(cfg map[string]string) (Seeder, error)

var seeders = map[string]SeederFactory{}

// RegisterSeeder adds a seeder factory under the provided name.
func RegisterSeeder(name string, f SeederFactory) {
	if name == "" || f == nil {
		return
	}
	seeders[name] = f
}

// NewSeeder builds the named seeder.
func NewSeeder(name string, cfg map[string]string) (Seeder, error) {
	f, ok := seeders[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownSeeder, name, SeederNames())
	}
	return f(cfg)
}

// SeederNames lists registered seeders in sorted order.
func SeederNames() []string {
	names := make([]string, 0, len(seeders))
	for name := range seeders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Uniform seeds every cell independently with probability density.
type Uniform struct{}

// Name returns the seeder identifier.
func (Uniform) Name() string { return "uniform" }

// Seed randomizes g in place.
func (Uniform) Seed(g *Grid, rng *RNG, density float64) error {
	return g.Randomize(rng, density)
}
