// Package sweep runs many independent simulations across seeding densities
// to show how the starting density shapes the long-run population.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"lifegrid/internal/sim"
)

// Scenario is one density/seed combination.
type Scenario struct {
	Density float64
	Seed    int64
}

func (s Scenario) String() string {
	return fmt.Sprintf("density=%.2f seed=%d", s.Density, s.Seed)
}

// Result summarises one scenario run.
type Result struct {
	Scenario Scenario
	// InitialFraction and FinalFraction are live-cell fractions.
	InitialFraction float64
	FinalFraction   float64
	PeakPopulation  int
	// StableAt is the first generation of a run of StableWindow generations
	// with unchanged population, or -1 when none was seen.
	StableAt int
	Steps    int
}

// Options controls a sweep.
type Options struct {
	Base         sim.Config
	Steps        int
	StableWindow int
	Workers      int
}

// Scenarios returns the cross product of densities and seeds.
func Scenarios(densities []float64, seeds []int64) []Scenario {
	out := make([]Scenario, 0, len(densities)*len(seeds))
	for _, d := range densities {
		for _, s := range seeds {
			out = append(out, Scenario{Density: d, Seed: s})
		}
	}
	return out
}

// Run executes every scenario on a bounded worker pool. Results are returned
// in scenario order. The first failure cancels the remaining work.
func Run(ctx context.Context, opts Options, scenarios []Scenario) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sc := range scenarios {
		g.Go(func() error {
			res, err := RunScenario(ctx, opts, sc)
			if err != nil {
				return fmt.Errorf("%s: %w", sc, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunScenario steps one loop for up to opts.Steps generations.
func RunScenario(ctx context.Context, opts Options, sc Scenario) (Result, error) {
	cfg := opts.Base
	cfg.Density = sc.Density
	cfg.Seed = sc.Seed
	cfg.Cadence = sim.Cadence{Mode: sim.CadenceFrame}
	loop, err := sim.New(cfg)
	if err != nil {
		return Result{}, err
	}

	cells := float64(cfg.Rows * cfg.Cols)
	initial := loop.Population()
	res := Result{
		Scenario:        sc,
		InitialFraction: float64(initial) / cells,
		PeakPopulation:  initial,
		StableAt:        -1,
	}

	window := opts.StableWindow
	if window <= 0 {
		window = 10
	}
	last, streak, streakStart := initial, 0, 0
	pop := initial
	for step := 0; step < opts.Steps; step++ {
		if step%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		f, err := loop.StepOnce()
		if err != nil {
			return Result{}, err
		}
		pop = f.Population
		res.Steps = f.Generation
		if pop > res.PeakPopulation {
			res.PeakPopulation = pop
		}
		if pop == last {
			if streak == 0 {
				streakStart = f.Generation - 1
			}
			streak++
			if streak >= window {
				res.StableAt = streakStart
				break
			}
		} else {
			streak = 0
		}
		last = pop
	}
	res.FinalFraction = float64(pop) / cells
	return res, nil
}

// Summary aggregates results sharing a density.
type Summary struct {
	Density       float64
	Runs          int
	MeanFinal     float64
	StableRuns    int
	MeanStableGen float64
}

// Summarize groups results by density in ascending order.
func Summarize(results []Result) []Summary {
	byDensity := map[float64]*Summary{}
	for _, r := range results {
		s, ok := byDensity[r.Scenario.Density]
		if !ok {
			s = &Summary{Density: r.Scenario.Density}
			byDensity[r.Scenario.Density] = s
		}
		s.Runs++
		s.MeanFinal += r.FinalFraction
		if r.StableAt >= 0 {
			s.StableRuns++
			s.MeanStableGen += float64(r.StableAt)
		}
	}
	out := make([]Summary, 0, len(byDensity))
	for _, s := range byDensity {
		s.MeanFinal /= float64(s.Runs)
		if s.StableRuns > 0 {
			s.MeanStableGen /= float64(s.StableRuns)
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Density < out[j].Density })
	return out
}
