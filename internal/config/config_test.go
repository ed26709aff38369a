package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lifegrid/internal/core"
	"lifegrid/internal/sim"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid.Rows != 80 || cfg.Grid.Cols != 120 {
		t.Fatalf("grid %dx%d, expected 80x120", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	if cfg.Render.CellSize != 8 {
		t.Fatalf("cell size %d, expected 8", cfg.Render.CellSize)
	}
	if cfg.Rules.Underpopulation != 2 || cfg.Rules.Overpopulation != 4 || cfg.Rules.Revival != 3 {
		t.Fatalf("rules %+v, expected 2/4/3", cfg.Rules)
	}
	if cfg.Seeding.Density != 0.33 || cfg.Seeding.Mode != "uniform" {
		t.Fatalf("seeding %+v", cfg.Seeding)
	}
	if cfg.Cadence.Mode != sim.CadenceFrame {
		t.Fatalf("cadence %+v, expected frame", cfg.Cadence)
	}
}

func TestOverlayKeepsUnsetDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
grid:
  rows: 10
cadence:
  mode: interval
  interval: 25ms
seeding:
  mode: noise
  options:
    scale: "0.2"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid.Rows != 10 || cfg.Grid.Cols != 120 {
		t.Fatalf("grid %dx%d, expected 10x120", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	if cfg.Cadence.Mode != sim.CadenceInterval || cfg.Cadence.Interval != 25*time.Millisecond {
		t.Fatalf("cadence %+v", cfg.Cadence)
	}
	if cfg.Seeding.Density != 0.33 {
		t.Fatalf("density %v should keep its default", cfg.Seeding.Density)
	}

	sc, err := cfg.SimConfig()
	if err != nil {
		t.Fatal(err)
	}
	if sc.Seeder.Name() != "noise" || sc.Rows != 10 {
		t.Fatalf("sim config %+v", sc)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.yaml")
	if err := os.WriteFile(path, []byte("seeding:\n  density: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seeding.Density != 0.5 {
		t.Fatalf("density %v, expected 0.5", cfg.Seeding.Density)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"rows":      "grid: {rows: 0}",
		"cell size": "render: {cell_size: 0}",
		"density":   "seeding: {density: 1.2}",
		"rules":     "rules: {overpopulation: 9}",
		"cadence":   "cadence: {mode: interval, interval: 0s}",
		"seeder":    "seeding: {mode: glider-gun}",
		"window":    "telemetry: {window: 0}",
		"level":     "log: {level: loud}",
		"format":    "log: {format: xml}",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err=%v, expected ErrInvalid", name, err)
		}
	}

	_, err := Parse([]byte("seeding: {density: -1}"))
	if !errors.Is(err, core.ErrInvalidDensity) {
		t.Fatalf("density error should wrap core.ErrInvalidDensity, got %v", err)
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	if _, err := Parse([]byte("grid: {rows: 3, depth: 2}")); err == nil {
		t.Fatal("unknown keys should be rejected")
	}
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "json"
	if cfg.Log.Logger(os.Stderr) == nil {
		t.Fatal("nil logger")
	}
}
