//go:build ebiten

package app

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lifegrid/internal/config"
	"lifegrid/internal/core"
	"lifegrid/internal/render"
	"lifegrid/internal/sim"
	"lifegrid/internal/ui"
)

const hudWidth = 220

// Game adapts a simulation loop to the ebiten.Game interface. Ebiten's update
// callback is the refresh signal that drives frame cadence.
type Game struct {
	loop    *sim.Loop
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	log     *slog.Logger

	cellSize  int
	gridLines bool
}

// New constructs a Game for the provided loop.
func New(loop *sim.Loop, rc config.RenderConfig, log *slog.Logger) *Game {
	v := loop.View()
	return &Game{
		loop:      loop,
		painter:   render.NewGridPainter(v.Rows(), v.Cols()),
		overlay:   ui.NewOverlay(v, rc.CellSize),
		hud:       ui.NewHUD(loop, loop, hudWidth, log),
		log:       log,
		cellSize:  rc.CellSize,
		gridLines: rc.GridLines,
	}
}

// WindowSize returns the initial window dimensions.
func (g *Game) WindowSize() (int, int) {
	return g.Layout(0, 0)
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.loop.State() == sim.Running {
			g.loop.Stop()
		} else {
			g.loop.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.loop.Restart(); err != nil {
			g.log.Error("restart failed", "error", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.loop.State() == sim.Stopped {
		if _, err := g.loop.StepOnce(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.hud.Adjust("density", 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.hud.Adjust("density", -1)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if row, col, ok := render.CellAt(x, y, g.cellSize, g.loop.View()); ok {
			if err := g.loop.Toggle(row, col); err != nil {
				g.log.Warn("toggle failed", "row", row, "col", col, "error", err)
			}
		}
	}

	g.overlay.Update()
	g.hud.Update(g.boardWidth())

	if _, err := g.loop.Tick(); err != nil {
		return err
	}
	return nil
}

// Draw renders the current generation.
func (g *Game) Draw(screen *ebiten.Image) {
	g.loop.ReadView(func(v core.View) {
		g.painter.Blit(screen, v, g.cellSize, g.gridLines)
		g.overlay.Draw(screen)
	})
	g.hud.Draw(screen, g.boardWidth(), g.boardHeight())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.boardWidth() + g.hud.Width(), g.boardHeight()
}

func (g *Game) boardWidth() int  { return g.loop.View().Cols() * g.cellSize }
func (g *Game) boardHeight() int { return g.loop.View().Rows() * g.cellSize }
