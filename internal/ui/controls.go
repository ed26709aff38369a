package ui

import (
	"math"
	"strconv"

	"lifegrid/internal/core"
)

// ParameterSource is what the HUD reads and adjusts.
type ParameterSource interface {
	Parameters() core.ParameterSnapshot
	ParameterControls() []core.ParameterControl
	core.FloatParameterSetter
}

// Transport is the start/stop/restart surface wired to the HUD buttons.
type Transport interface {
	Start()
	Stop()
	Restart() error
}

// adjustFloat returns the value one step from current in direction, clamped
// to the control bounds. ok is false when the value would not change.
func adjustFloat(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	target := current + float64(direction)*step
	// Snap to the step grid so repeated presses do not drift.
	target = math.Round(target/step) * step
	if target < ctrl.Min {
		target = ctrl.Min
	}
	if target > ctrl.Max {
		target = ctrl.Max
	}
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
