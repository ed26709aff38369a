//go:build ebiten

package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lifegrid/internal/core"
	"lifegrid/internal/render"
)

// Overlay draws optional debugging visuals on top of the board.
type Overlay struct {
	view     core.View
	scale    int
	showHeat bool
	heat     *render.HeatPainter
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(view core.View, scale int) *Overlay {
	return &Overlay{
		view:  view,
		scale: scale,
		heat:  render.NewHeatPainter(view.Rows(), view.Cols()),
	}
}

// Update toggles layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeat = !o.showHeat
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showHeat {
		o.heat.Blit(screen, o.view, scale)
	}
}
