package telemetry

import "sync"

// Collector buffers samples and closes a WindowStats every window samples.
// A sample with generation zero starts a new run and flushes the open window.
type Collector struct {
	mu     sync.Mutex
	window int
	cells  int
	run    int

	pending []Sample
	open    []Sample
	windows []WindowStats
}

// NewCollector returns a Collector for a grid of cells cells. Non-positive
// windows default to 100 samples.
func NewCollector(cells, window int) *Collector {
	if window <= 0 {
		window = 100
	}
	return &Collector{window: window, cells: cells}
}

// Record adds one generation.
func (c *Collector) Record(generation, population, births, deaths int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation == 0 && (len(c.open) > 0 || len(c.windows) > 0 || len(c.pending) > 0) {
		c.closeWindowLocked()
		c.run++
	}
	s := Sample{
		Run:        c.run,
		Generation: generation,
		Population: population,
		Births:     births,
		Deaths:     deaths,
	}
	if c.cells > 0 {
		s.LiveFraction = float64(population) / float64(c.cells)
	}
	c.pending = append(c.pending, s)
	c.open = append(c.open, s)
	if len(c.open) >= c.window {
		c.closeWindowLocked()
	}
}

// Flush closes any partially filled window.
func (c *Collector) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeWindowLocked()
}

// Drain returns and clears the samples and closed windows recorded since the
// previous Drain.
func (c *Collector) Drain() ([]Sample, []WindowStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	samples, windows := c.pending, c.windows
	c.pending, c.windows = nil, nil
	return samples, windows
}

func (c *Collector) closeWindowLocked() {
	if ws, ok := Compute(c.open); ok {
		c.windows = append(c.windows, ws)
	}
	c.open = c.open[:0]
}
