package render

import (
	"image/color"

	"lifegrid/internal/core"
)

// Palette colours match the original board: light green cells on crimson.
var (
	AliveColor = color.RGBA{R: 0x90, G: 0xee, B: 0x90, A: 0xff}
	DeadColor  = color.RGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff}
	LineColor  = color.RGBA{A: 0xff}
)

// fillViewRGBA converts the liveness of every cell in v into RGBA pixels in
// buf, one pixel per cell in row-major order.
func fillViewRGBA(buf []byte, v core.View, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	cols := v.Cols()
	for row := 0; row < v.Rows(); row++ {
		for col := 0; col < cols; col++ {
			base := (row*cols + col) * 4
			if v.Alive(row, col) {
				buf[base+0] = uint8(rOn >> 8)
				buf[base+1] = uint8(gOn >> 8)
				buf[base+2] = uint8(bOn >> 8)
				buf[base+3] = uint8(aOn >> 8)
				continue
			}
			buf[base+0] = uint8(rOff >> 8)
			buf[base+1] = uint8(gOff >> 8)
			buf[base+2] = uint8(bOff >> 8)
			buf[base+3] = uint8(aOff >> 8)
		}
	}
}

// fillHeatRGBA tints each cell by its live-neighbour count, from transparent
// at zero to opaque at eight.
func fillHeatRGBA(buf []byte, v core.View, tint color.RGBA) {
	cols := v.Cols()
	for row := 0; row < v.Rows(); row++ {
		for col := 0; col < cols; col++ {
			n := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if (dr != 0 || dc != 0) && v.Alive(row+dr, col+dc) {
						n++
					}
				}
			}
			base := (row*cols + col) * 4
			a := uint8(n * 255 / 8)
			// Premultiplied alpha, as ebiten expects.
			buf[base+0] = uint8(uint16(tint.R) * uint16(a) / 255)
			buf[base+1] = uint8(uint16(tint.G) * uint16(a) / 255)
			buf[base+2] = uint8(uint16(tint.B) * uint16(a) / 255)
			buf[base+3] = a
		}
	}
}

// CellAt maps screen pixel coordinates to a grid cell for a board drawn at
// the given cell size. ok is false outside the board.
func CellAt(x, y, cellSize int, v core.View) (row, col int, ok bool) {
	if cellSize <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/cellSize, x/cellSize
	if row >= v.Rows() || col >= v.Cols() {
		return 0, 0, false
	}
	return row, col, true
}
