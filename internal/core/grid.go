package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDimension reports a non-positive or mismatched grid size.
	ErrInvalidDimension = errors.New("invalid grid dimension")
	// ErrIndexOutOfRange reports coordinates outside the grid.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidDensity reports a seeding density outside [0, 1].
	ErrInvalidDensity = errors.New("invalid density")
)

// View is the read-only face of a grid handed to renderers and observers.
type View interface {
	Rows() int
	Cols() int
	Alive(row, col int) bool
}

// neighborOffsets lists the Moore neighbourhood as (dRow, dCol) pairs.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid stores a fixed rows x cols board of live/dead cells in row-major order.
// The grid has hard edges: positions outside it are absent, not wrapped.
type Grid struct {
	rows, cols int
	cells      []bool
}

// NewGrid allocates a grid with every cell dead.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, rows, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: make([]bool, rows*cols)}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns the grid dimensions in the W/H form used by renderers.
func (g *Grid) Size() Size { return Size{W: g.cols, H: g.rows} }

// Index returns the linear slice index for (row, col). It does not check bounds.
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) check(row, col int) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrIndexOutOfRange, row, col, g.rows, g.cols)
	}
	return nil
}

// Get returns the liveness at (row, col).
func (g *Grid) Get(row, col int) (bool, error) {
	if err := g.check(row, col); err != nil {
		return false, err
	}
	return g.cells[g.Index(row, col)], nil
}

// Set updates the liveness at (row, col).
func (g *Grid) Set(row, col int, alive bool) error {
	if err := g.check(row, col); err != nil {
		return err
	}
	g.cells[g.Index(row, col)] = alive
	return nil
}

// Toggle flips the liveness at (row, col).
func (g *Grid) Toggle(row, col int) error {
	if err := g.check(row, col); err != nil {
		return err
	}
	i := g.Index(row, col)
	g.cells[i] = !g.cells[i]
	return nil
}

// Alive reports liveness at (row, col); positions off the grid are dead.
func (g *Grid) Alive(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.cells[g.Index(row, col)]
}

// NeighborsAlive counts live cells in the Moore neighbourhood of (row, col).
// The cell itself is never counted and neither is anything off the grid.
func (g *Grid) NeighborsAlive(row, col int) (int, error) {
	if err := g.check(row, col); err != nil {
		return 0, err
	}
	return g.neighbors(row, col), nil
}

// neighbors is NeighborsAlive without the centre bounds check.
func (g *Grid) neighbors(row, col int) int {
	n := 0
	for _, off := range neighborOffsets {
		r, c := row+off[0], col+off[1]
		if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
			continue
		}
		if g.cells[r*g.cols+c] {
			n++
		}
	}
	return n
}

// NeighborsAt is the unchecked neighbour count used by the rule engine,
// which only iterates in-range coordinates.
func (g *Grid) NeighborsAt(idx int) int {
	return g.neighbors(idx/g.cols, idx%g.cols)
}

// Reset kills every cell.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Randomize sets each cell alive independently with probability density.
// Densities outside [0, 1] are rejected, never clamped.
func (g *Grid) Randomize(rng *RNG, density float64) error {
	if err := ValidateDensity(density); err != nil {
		return err
	}
	for i := range g.cells {
		g.cells[i] = rng.Chance(density)
	}
	return nil
}

// ValidateDensity checks that density is a probability.
func ValidateDensity(density float64) error {
	if math.IsNaN(density) || density < 0 || density > 1 {
		return fmt.Errorf("%w: %v not in [0,1]", ErrInvalidDensity, density)
	}
	return nil
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, alive := range g.cells {
		if alive {
			n++
		}
	}
	return n
}

// Cells exposes the backing slice so the rule engine can read/write directly.
func (g *Grid) Cells() []bool { return g.cells }

// Swap exchanges the cell storage of two equally sized grids.
func (g *Grid) Swap(other *Grid) error {
	if err := g.sameShape(other); err != nil {
		return err
	}
	g.cells, other.cells = other.cells, g.cells
	return nil
}

// CopyFrom overwrites g with the cells of other.
func (g *Grid) CopyFrom(other *Grid) error {
	if err := g.sameShape(other); err != nil {
		return err
	}
	copy(g.cells, other.cells)
	return nil
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.sameShape(other) != nil {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) sameShape(other *Grid) error {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return fmt.Errorf("%w: shape mismatch", ErrInvalidDimension)
	}
	return nil
}
