// Command density-sweep runs the rule engine across a range of seeding
// densities and reports where each run settles.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"time"

	"lifegrid/internal/sim"
	"lifegrid/internal/sweep"
)

func main() {
	steps := flag.Int("steps", 500, "generations to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	rows := flag.Int("rows", 80, "grid rows")
	cols := flag.Int("cols", 120, "grid columns")
	seeds := flag.Int("seeds", 4, "seeds per density")
	window := flag.Int("stable-window", 10, "generations of unchanged population that count as stable")
	top := flag.Int("top", 5, "number of longest-lived scenarios to print")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	base := sim.DefaultConfig()
	base.Rows, base.Cols = *rows, *cols

	var densities []float64
	for d := 5; d <= 95; d += 5 {
		densities = append(densities, float64(d)/100)
	}
	seedList := make([]int64, *seeds)
	for i := range seedList {
		seedList[i] = int64(i + 1)
	}
	scenarios := sweep.Scenarios(densities, seedList)

	start := time.Now()
	results, err := sweep.Run(context.Background(), sweep.Options{
		Base:         base,
		Steps:        *steps,
		StableWindow: *window,
		Workers:      *workers,
	}, scenarios)
	if err != nil {
		log.Error("sweep failed", "error", err)
		os.Exit(1)
	}
	log.Info("sweep complete", "scenarios", len(results), "elapsed", time.Since(start).Round(time.Millisecond))

	fmt.Printf("%-8s %5s %10s %8s %10s\n", "density", "runs", "final", "stable", "stable-gen")
	for _, s := range sweep.Summarize(results) {
		fmt.Printf("%-8.2f %5d %10.4f %8d %10.1f\n", s.Density, s.Runs, s.MeanFinal, s.StableRuns, s.MeanStableGen)
	}

	sort.Slice(results, func(i, j int) bool {
		return settleGen(results[i]) > settleGen(results[j])
	})
	if *top > len(results) {
		*top = len(results)
	}
	fmt.Printf("\nTop %d longest-lived scenarios:\n", *top)
	for i := 0; i < *top; i++ {
		r := results[i]
		fmt.Printf("#%d %s stableAt=%d final=%.4f peak=%d initial=%.4f\n",
			i+1, r.Scenario, r.StableAt, r.FinalFraction, r.PeakPopulation, r.InitialFraction)
	}
}

// settleGen orders unsettled runs after every settled one.
func settleGen(r sweep.Result) int {
	if r.StableAt < 0 {
		return r.Steps + 1
	}
	return r.StableAt
}
