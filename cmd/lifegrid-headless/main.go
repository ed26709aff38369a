// Command lifegrid-headless runs the simulation loop on an interval cadence
// without a window and writes per-generation telemetry.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"lifegrid/internal/app"
	"lifegrid/internal/config"
	"lifegrid/internal/sim"
	"lifegrid/internal/telemetry"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	generations := flag.Int("generations", 1000, "stop after this many generations (0 = run until interrupted)")
	interval := flag.Duration("interval", 0, "step interval (0 = config value, or 16ms under frame cadence)")
	flushEvery := flag.Duration("flush", time.Second, "how often telemetry is written")
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := cfg.Log.Logger(os.Stderr)
	slog.SetDefault(log)

	if cfg.Seeding.Seed == 0 {
		cfg.Seeding.Seed = time.Now().UnixNano()
	}
	// Without a window there is no refresh signal, so frame cadence becomes
	// a fixed interval.
	if cfg.Cadence.Mode == sim.CadenceFrame || *interval > 0 {
		cfg.Cadence.Mode = sim.CadenceInterval
		if *interval > 0 {
			cfg.Cadence.Interval = *interval
		} else if cfg.Cadence.Interval <= 0 {
			cfg.Cadence.Interval = 16 * time.Millisecond
		}
	}

	if err := run(cfg, *generations, *flushEvery, log); err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, maxGen int, flushEvery time.Duration, log *slog.Logger) error {
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}
	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return err
	}
	defer out.Close()

	collector := telemetry.NewCollector(simCfg.Rows*simCfg.Cols, cfg.Telemetry.Window)
	reached := make(chan struct{}, 1)
	observe := func(f sim.Frame) {
		collector.Record(f.Generation, f.Population, f.Births, f.Deaths)
		if maxGen > 0 && f.Generation >= maxGen {
			select {
			case reached <- struct{}{}:
			default:
			}
		}
	}

	loop, err := sim.New(simCfg, sim.WithLogger(log), sim.WithObserver(observe))
	if err != nil {
		return err
	}
	collector.Record(0, loop.Population(), 0, 0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("headless run",
		"rows", simCfg.Rows, "cols", simCfg.Cols,
		"rules", simCfg.Rules.String(),
		"density", simCfg.Density, "seed", simCfg.Seed,
		"interval", simCfg.Cadence.Interval,
		"generations", maxGen,
		"output_dir", out.Dir())
	loop.Start()

	g.Go(func() error {
		defer cancel()
		select {
		case <-ctx.Done():
		case <-reached:
		}
		loop.Stop()
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(flushEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := flush(collector, out, log); err != nil {
					return err
				}
			}
		}
	})
	if err := g.Wait(); err != nil {
		loop.Stop()
		return err
	}

	collector.Flush()
	if err := flush(collector, out, log); err != nil {
		return err
	}
	log.Info("run finished", "generation", loop.Generation())
	return nil
}

func flush(c *telemetry.Collector, out *telemetry.OutputManager, log *slog.Logger) error {
	samples, windows := c.Drain()
	for _, w := range windows {
		log.Info("window", "stats", w)
	}
	if err := out.WriteSamples(samples); err != nil {
		return err
	}
	return out.WriteWindows(windows)
}
