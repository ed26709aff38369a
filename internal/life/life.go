// Package life implements the Game of Life update rule with configurable
// thresholds over a hard-edged core.Grid.
package life

import (
	"errors"
	"fmt"

	"lifegrid/internal/core"
)

// ErrInvalidRules reports thresholds that cannot describe a Moore neighbourhood.
var ErrInvalidRules = errors.New("invalid rules")

// Rules holds the three neighbour-count thresholds of the decision table.
// Bounds are exclusive: a live cell dies when n < Underpopulation or
// n > Overpopulation, and a dead cell is born when n == Revival.
type Rules struct {
	Underpopulation int `yaml:"underpopulation"`
	Overpopulation  int `yaml:"overpopulation"`
	Revival         int `yaml:"revival"`
}

// Classic returns the thresholds 2/4/3: live cells survive on 2, 3 or 4
// neighbours, dead cells are born on exactly 3.
func Classic() Rules {
	return Rules{Underpopulation: 2, Overpopulation: 4, Revival: 3}
}

// Validate checks every threshold lies in the neighbour-count range [0, 8].
func (r Rules) Validate() error {
	check := func(name string, v int) error {
		if v < 0 || v > 8 {
			return fmt.Errorf("%w: %s=%d not in [0,8]", ErrInvalidRules, name, v)
		}
		return nil
	}
	if err := check("underpopulation", r.Underpopulation); err != nil {
		return err
	}
	if err := check("overpopulation", r.Overpopulation); err != nil {
		return err
	}
	return check("revival", r.Revival)
}

// Next returns the liveness of a cell in the following generation given its
// current liveness and live-neighbour count n.
func (r Rules) Next(alive bool, n int) bool {
	switch {
	case n < r.Underpopulation:
		return false
	case n > r.Overpopulation:
		return false
	case !alive && n == r.Revival:
		return true
	default:
		return alive
	}
}

// String renders the thresholds for logs and HUD titles.
func (r Rules) String() string {
	return fmt.Sprintf("under<%d over>%d revive=%d", r.Underpopulation, r.Overpopulation, r.Revival)
}

// Delta summarises the transition from one generation to the next.
type Delta struct {
	Births     int
	Deaths     int
	Population int
}

// Step writes the generation following cur into next. Every neighbour count
// is taken from cur, which is never modified; next is fully overwritten.
func Step(r Rules, cur, next *core.Grid) (Delta, error) {
	if cur == nil || next == nil || cur.Rows() != next.Rows() || cur.Cols() != next.Cols() {
		return Delta{}, fmt.Errorf("%w: step buffers differ in shape", core.ErrInvalidDimension)
	}
	src := cur.Cells()
	dst := next.Cells()
	var d Delta
	for idx, alive := range src {
		n := cur.NeighborsAt(idx)
		nxt := r.Next(alive, n)
		dst[idx] = nxt
		switch {
		case nxt && !alive:
			d.Births++
		case alive && !nxt:
			d.Deaths++
		}
		if nxt {
			d.Population++
		}
	}
	return d, nil
}
