//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"lifegrid/internal/core"
)

// GridPainter updates a single RGBA image from cell liveness and draws it
// scaled by the cell size.
type GridPainter struct {
	w, h  int
	img   *ebiten.Image
	buf   []byte
	pixel *ebiten.Image
}

// NewGridPainter allocates a painter for a grid of rows x cols cells.
func NewGridPainter(rows, cols int) *GridPainter {
	gp := &GridPainter{w: cols, h: rows, buf: make([]byte, 4*rows*cols)}
	gp.img = ebiten.NewImage(cols, rows)
	gp.pixel = ebiten.NewImage(1, 1)
	gp.pixel.Fill(color.White)
	return gp
}

// Blit uploads the view into the painter image and draws it at scale
// pixels per cell, optionally outlining each cell.
func (gp *GridPainter) Blit(dst *ebiten.Image, v core.View, scale int, gridLines bool) {
	if v.Rows() != gp.h || v.Cols() != gp.w {
		return
	}
	fillViewRGBA(gp.buf, v, AliveColor, DeadColor)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)

	if gridLines && scale >= 4 {
		gp.drawLines(dst, scale)
	}
}

func (gp *GridPainter) drawLines(dst *ebiten.Image, scale int) {
	width := float64(gp.w * scale)
	height := float64(gp.h * scale)
	line := func(x, y, w, h float64) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w, h)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(LineColor)
		dst.DrawImage(gp.pixel, op)
	}
	for col := 0; col <= gp.w; col++ {
		line(float64(col*scale), 0, 1, height)
	}
	for row := 0; row <= gp.h; row++ {
		line(0, float64(row*scale), width, 1)
	}
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }

// HeatPainter draws a translucent neighbour-count layer over the board.
type HeatPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
	tint color.RGBA
}

// NewHeatPainter allocates a heat layer for a grid of rows x cols cells.
func NewHeatPainter(rows, cols int) *HeatPainter {
	return &HeatPainter{
		w:    cols,
		h:    rows,
		img:  ebiten.NewImage(cols, rows),
		buf:  make([]byte, 4*rows*cols),
		tint: color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff},
	}
}

// Blit recomputes the layer from v and draws it at scale pixels per cell.
func (hp *HeatPainter) Blit(dst *ebiten.Image, v core.View, scale int) {
	if v.Rows() != hp.h || v.Cols() != hp.w {
		return
	}
	fillHeatRGBA(hp.buf, v, hp.tint)
	hp.img.WritePixels(hp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(hp.img, op)
}
