package core

import "time"

// FixedStep paces frame-driven updates so the simulation advances at most once
// per interval regardless of the host refresh rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep that fires once per interval. A
// non-positive interval fires on every call.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetInterval(interval)
	fs.accumulator = fs.step
	return fs
}

// SetInterval changes the pacing interval. It is safe to call from the main loop.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval < 0 {
		interval = 0
	}
	f.step = interval
}

// Interval returns the current pacing interval.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Rewind discards accumulated time so the next ShouldStep fires immediately.
func (f *FixedStep) Rewind() {
	f.accumulator = f.step
	f.last = time.Time{}
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	if f.step == 0 {
		return true
	}
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		// Long stalls do not queue a burst of catch-up steps.
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
