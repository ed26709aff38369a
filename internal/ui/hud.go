//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"lifegrid/internal/core"
)

// HUD renders the control panel to the right of the board: start/stop/restart
// buttons, adjustable controls and a read-out of the loop parameters.
type HUD struct {
	source    ParameterSource
	transport Transport
	log       *slog.Logger

	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	buttons      []hudButton
	controls     []hudControlState
	panelOffsetX int

	pixel *ebiten.Image
}

type hudButton struct {
	label  string
	rect   image.Rectangle
	action func()
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for the provided loop and panel width.
func NewHUD(source ParameterSource, transport Transport, width int, log *slog.Logger) *HUD {
	if width < 0 {
		width = 0
	}
	if log == nil {
		log = slog.Default()
	}
	h := &HUD{source: source, transport: transport, width: width, log: log}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	for _, ctrl := range source.ParameterControls() {
		h.controls = append(h.controls, hudControlState{control: ctrl, value: "--"})
	}
	h.buttons = []hudButton{
		{label: "Start", action: transport.Start},
		{label: "Stop", action: transport.Stop},
		{label: "Restart", action: h.restart},
	}
	h.layout()
	return h
}

func (h *HUD) restart() {
	if err := h.transport.Restart(); err != nil {
		h.log.Error("restart failed", "error", err)
	}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot and handles clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.source.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the board.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawButtons()
	h.drawControls()
	h.drawReadout()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok || param.Type != core.ParamTypeFloat {
			state.hasValue = false
			state.value = "--"
			continue
		}
		v, err := parseFloat(param.Value)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.floatValue = v
		state.value = formatFloat(state.control, v)
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for _, b := range h.buttons {
		if pointInRect(px, my, b.rect) {
			b.action()
			return
		}
	}
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.Adjust(state.control.Key, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.Adjust(state.control.Key, 1)
			return
		}
	}
}

// Adjust moves the named control one step in direction.
func (h *HUD) Adjust(key string, direction int) {
	if h == nil {
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		if state.control.Key != key || !state.hasValue {
			continue
		}
		target, ok := adjustFloat(state.control, state.floatValue, direction)
		if !ok {
			return
		}
		if h.source.SetFloatParameter(key, target) {
			state.floatValue = target
			state.value = formatFloat(state.control, target)
		}
		return
	}
}

func (h *HUD) drawButtons() {
	for _, b := range h.buttons {
		h.drawButton(b.rect, b.label, true)
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, textColor)
		valueColor := textColor
		if !state.hasValue {
			valueColor = dimColor
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		_, canDown := adjustFloat(state.control, state.floatValue, -1)
		_, canUp := adjustFloat(state.control, state.floatValue, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && canDown)
		h.drawButton(state.plusRect, "+", state.hasValue && canUp)
	}
}

func (h *HUD) drawReadout() {
	face := basicfont.Face7x13
	y := controlsTop(len(h.controls)) + sectionGap
	for _, group := range h.snapshot.Groups {
		text.Draw(h.panel, group.Name, face, panelPadding, y, headerColor)
		y += readoutLine
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label, face, panelPadding+8, y, dimColor)
			bounds := text.BoundString(face, p.Value)
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y, textColor)
			y += readoutLine
		}
		y += readoutLine / 2
	}
	text.Draw(h.panel, "space start/stop  r restart", face, panelPadding, y, dimColor)
	text.Draw(h.panel, "n step  up/down density", face, panelPadding, y+readoutLine, dimColor)
	text.Draw(h.panel, "click toggle  1 heat map", face, panelPadding, y+2*readoutLine, dimColor)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	n := len(h.buttons)
	if n > 0 {
		avail := h.width - 2*panelPadding - (n-1)*buttonGap
		bw := avail / n
		for i := range h.buttons {
			x := panelPadding + i*(bw+buttonGap)
			h.buttons[i].rect = image.Rect(x, panelPadding, x+bw, panelPadding+buttonSize)
		}
	}
	for i := range h.controls {
		top := controlsTop(0) + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

func controlsTop(rows int) int {
	return panelPadding + buttonSize + sectionGap/2 + rows*lineHeight
}

var (
	textColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
)

const (
	panelPadding  = 12
	lineHeight    = 36
	buttonSize    = 24
	buttonGap     = 6
	labelBaseline = 24
	sectionGap    = 24
	readoutLine   = 16
)
