// Package sim drives the rule engine over a grid on a configurable cadence and
// exposes the start/stop/restart controls used by the host.
package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"lifegrid/internal/core"
	"lifegrid/internal/life"
)

// State is the loop's scheduling state.
type State int

const (
	// Stopped is the initial state; no steps are scheduled.
	Stopped State = iota
	// Running means generations advance on the configured cadence.
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Frame is handed to observers after each completed generation. View reads
// the settled grid and is only valid for the duration of the callback.
type Frame struct {
	Generation int
	View       core.View
	Population int
	Births     int
	Deaths     int
}

// Observer is called synchronously once per completed generation while the
// loop holds its lock. Observers must not call the loop's control methods.
type Observer func(Frame)

// Option customises a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(loop *Loop) {
		if l != nil {
			loop.log = l
		}
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(fn Observer) Option {
	return func(loop *Loop) {
		if fn != nil {
			loop.observers = append(loop.observers, fn)
		}
	}
}

// Loop owns the grid and advances it one generation at a time. Every mutation
// holds mu, so steps never overlap and readers never see a half-written grid.
type Loop struct {
	mu sync.Mutex

	cfg     Config
	grid    *core.Grid
	scratch *core.Grid
	rng     *core.RNG
	seeder  core.Seeder
	density float64

	state      State
	generation int
	births     int
	deaths     int

	pacer  *core.FixedStep
	cancel context.CancelFunc
	done   chan struct{}

	observers []Observer
	log       *slog.Logger
}

// New builds a loop in the Stopped state with a freshly seeded grid.
func New(cfg Config, opts ...Option) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := core.NewGrid(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	scratch, err := core.NewGrid(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	l := &Loop{
		cfg:     cfg,
		grid:    grid,
		scratch: scratch,
		rng:     core.NewRNG(cfg.Seed),
		seeder:  cfg.Seeder,
		density: cfg.Density,
		pacer:   core.NewFixedStep(cfg.Cadence.Interval),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if l.seeder == nil {
		l.seeder = core.Uniform{}
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.seeder.Seed(l.grid, l.rng, l.density); err != nil {
		return nil, fmt.Errorf("seeding grid: %w", err)
	}
	return l, nil
}

// Observe registers an additional observer.
func (l *Loop) Observe(fn Observer) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// Start moves the loop to Running. Calling it while running is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == Running {
		return
	}
	l.state = Running
	switch l.cfg.Cadence.Mode {
	case CadenceInterval:
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		l.cancel, l.done = cancel, done
		go l.run(ctx, done, l.cfg.Cadence.Interval)
	default:
		l.pacer.Rewind()
	}
	l.log.Debug("loop started", "cadence", l.cfg.Cadence.Mode, "interval", l.cfg.Cadence.Interval, "generation", l.generation)
}

// Stop moves the loop to Stopped. No step begins after Stop returns, and
// calling it while stopped is a no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.state != Running {
		l.mu.Unlock()
		return
	}
	l.state = Stopped
	done := l.done
	if l.cancel != nil {
		// Cancelled under mu: any tick that takes the lock after this sees it.
		l.cancel()
	}
	l.cancel, l.done = nil, nil
	gen := l.generation
	l.mu.Unlock()

	if done != nil {
		<-done
	}
	l.log.Debug("loop stopped", "generation", gen)
}

// Restart stops the loop, kills every cell, reseeds with the current density
// and starts again. Observers receive the reseeded generation zero.
func (l *Loop) Restart() error {
	l.Stop()

	l.mu.Lock()
	l.grid.Reset()
	if err := l.seeder.Seed(l.grid, l.rng, l.density); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("reseeding grid: %w", err)
	}
	l.generation = 0
	l.births, l.deaths = 0, 0
	l.notifyLocked()
	density := l.density
	l.mu.Unlock()

	l.log.Debug("loop restarted", "density", density, "seeder", l.seeder.Name())
	l.Start()
	return nil
}

// SetDensity changes the seeding density used by the next Restart. Values
// outside [0, 1] are rejected.
func (l *Loop) SetDensity(density float64) error {
	if err := core.ValidateDensity(density); err != nil {
		return err
	}
	l.mu.Lock()
	l.density = density
	l.mu.Unlock()
	return nil
}

// Density returns the density the next Restart will use.
func (l *Loop) Density() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.density
}

// State returns the current scheduling state.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Generation returns the number of generations since the last (re)seed.
func (l *Loop) Generation() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// Population returns the number of live cells.
func (l *Loop) Population() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.grid.Population()
}

// Rules returns the fixed thresholds.
func (l *Loop) Rules() life.Rules { return l.cfg.Rules }

// Config returns the construction configuration.
func (l *Loop) Config() Config { return l.cfg }

// View returns the grid for read-only use. Reads are only safe from the
// goroutine that drives the loop (frame cadence); use ReadView otherwise.
func (l *Loop) View() core.View { return l.grid }

// ReadView calls fn with the settled grid while holding the loop lock.
func (l *Loop) ReadView(fn func(core.View)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.grid)
}

// Toggle flips one cell between generations.
func (l *Loop) Toggle(row, col int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.grid.Toggle(row, col)
}

// StepOnce advances exactly one generation regardless of state.
func (l *Loop) StepOnce() (Frame, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stepLocked()
}

// Tick is the refresh hook for frame cadence. It steps once when running and
// the pacer allows it, and reports whether a generation completed. It never
// steps under interval cadence.
func (l *Loop) Tick() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != Running || l.cfg.Cadence.Mode != CadenceFrame {
		return false, nil
	}
	if !l.pacer.ShouldStep() {
		return false, nil
	}
	if _, err := l.stepLocked(); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Loop) run(ctx context.Context, done chan struct{}, interval time.Duration) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.mu.Lock()
			if ctx.Err() != nil {
				l.mu.Unlock()
				return
			}
			if _, err := l.stepLocked(); err != nil {
				l.log.Error("step failed", "error", err)
			}
			l.mu.Unlock()
		}
	}
}

func (l *Loop) stepLocked() (Frame, error) {
	d, err := life.Step(l.cfg.Rules, l.grid, l.scratch)
	if err != nil {
		return Frame{}, err
	}
	if err := l.grid.Swap(l.scratch); err != nil {
		return Frame{}, err
	}
	l.generation++
	l.births, l.deaths = d.Births, d.Deaths
	return l.notifyLocked(), nil
}

func (l *Loop) notifyLocked() Frame {
	f := Frame{
		Generation: l.generation,
		View:       l.grid,
		Population: l.grid.Population(),
		Births:     l.births,
		Deaths:     l.deaths,
	}
	for _, obs := range l.observers {
		obs(f)
	}
	return f
}
