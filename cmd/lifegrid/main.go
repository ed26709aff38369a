//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lifegrid/internal/app"
	"lifegrid/internal/sim"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
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
	simCfg, err := cfg.SimConfig()
	if err != nil {
		log.Error("building loop config", "error", err)
		os.Exit(1)
	}
	loop, err := sim.New(simCfg, sim.WithLogger(log))
	if err != nil {
		log.Error("creating loop", "error", err)
		os.Exit(1)
	}
	log.Info("grid ready",
		"rows", simCfg.Rows, "cols", simCfg.Cols,
		"rules", simCfg.Rules.String(),
		"density", simCfg.Density, "seed", simCfg.Seed,
		"seeder", simCfg.Seeder.Name())

	game := app.New(loop, cfg.Render, log)
	w, h := game.WindowSize()

	ebiten.SetWindowTitle("lifegrid: " + simCfg.Rules.String())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("game exited", "error", err)
		os.Exit(1)
	}
	loop.Stop()
}
