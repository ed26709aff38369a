// Package telemetry records per-generation population samples, aggregates
// them into fixed windows and writes both as CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Sample is one completed generation.
type Sample struct {
	Run          int     `csv:"run"`
	Generation   int     `csv:"generation"`
	Population   int     `csv:"population"`
	Births       int     `csv:"births"`
	Deaths       int     `csv:"deaths"`
	LiveFraction float64 `csv:"live_fraction"`
}

// WindowStats holds aggregated statistics for a run of consecutive samples.
type WindowStats struct {
	Run             int     `csv:"run"`
	StartGeneration int     `csv:"start_generation"`
	EndGeneration   int     `csv:"end_generation"`
	Samples         int     `csv:"samples"`
	PopulationMean  float64 `csv:"population_mean"`
	PopulationStd   float64 `csv:"population_std"`
	PopulationP10   float64 `csv:"population_p10"`
	PopulationP50   float64 `csv:"population_p50"`
	PopulationP90   float64 `csv:"population_p90"`
	Births          int     `csv:"births"`
	Deaths          int     `csv:"deaths"`
	// Stable is set when population did not change across the window.
	Stable bool `csv:"stable"`
}

// Compute aggregates samples into a window. It returns false for no samples.
func Compute(samples []Sample) (WindowStats, bool) {
	if len(samples) == 0 {
		return WindowStats{}, false
	}
	pops := make([]float64, len(samples))
	ws := WindowStats{
		Run:             samples[0].Run,
		StartGeneration: samples[0].Generation,
		EndGeneration:   samples[len(samples)-1].Generation,
		Samples:         len(samples),
		Stable:          true,
	}
	for i, s := range samples {
		pops[i] = float64(s.Population)
		ws.Births += s.Births
		ws.Deaths += s.Deaths
		if s.Population != samples[0].Population {
			ws.Stable = false
		}
	}
	if len(pops) > 1 {
		ws.PopulationMean, ws.PopulationStd = stat.MeanStdDev(pops, nil)
	} else {
		ws.PopulationMean = pops[0]
	}
	sort.Float64s(pops)
	ws.PopulationP10 = stat.Quantile(0.1, stat.Empirical, pops, nil)
	ws.PopulationP50 = stat.Quantile(0.5, stat.Empirical, pops, nil)
	ws.PopulationP90 = stat.Quantile(0.9, stat.Empirical, pops, nil)
	return ws, true
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("run", s.Run),
		slog.Int("start", s.StartGeneration),
		slog.Int("end", s.EndGeneration),
		slog.Float64("pop_mean", s.PopulationMean),
		slog.Float64("pop_std", s.PopulationStd),
		slog.Float64("pop_p50", s.PopulationP50),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Bool("stable", s.Stable),
	)
}
