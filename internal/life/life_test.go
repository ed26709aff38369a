package life

import (
	"errors"
	"testing"

	"lifegrid/internal/core"
)

func newGrid(t *testing.T, rows, cols int, live ...[2]int) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range live {
		if err := g.Set(p[0], p[1], true); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func step(t *testing.T, r Rules, g *core.Grid) Delta {
	t.Helper()
	next, _ := core.NewGrid(g.Rows(), g.Cols())
	d, err := Step(r, g, next)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Swap(next); err != nil {
		t.Fatal(err)
	}
	return d
}

func expectCells(t *testing.T, g *core.Grid, live map[[2]int]bool, when string) {
	t.Helper()
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			alive := g.Alive(row, col)
			if live[[2]int{row, col}] != alive {
				t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v", when, row, col, alive, !alive)
			}
		}
	}
}

func TestNextBoundaryValues(t *testing.T) {
	r := Classic()
	cases := []struct {
		alive bool
		n     int
		want  bool
	}{
		{true, 0, false},
		{true, 1, false},
		{true, 2, true},
		{true, 3, true},
		{true, 4, true},
		{true, 5, false},
		{true, 8, false},
		{false, 1, false},
		{false, 2, false},
		{false, 3, true},
		{false, 4, false},
		{false, 5, false},
	}
	for _, c := range cases {
		if got := r.Next(c.alive, c.n); got != c.want {
			t.Fatalf("Next(alive=%v, n=%d)=%v, expected %v", c.alive, c.n, got, c.want)
		}
	}
}

func TestNextRevivalOutsideSurvivalBand(t *testing.T) {
	// Revival below the underpopulation threshold can never fire.
	r := Rules{Underpopulation: 3, Overpopulation: 5, Revival: 2}
	if r.Next(false, 2) {
		t.Fatal("underpopulation check must win over revival")
	}
	r = Rules{Underpopulation: 1, Overpopulation: 2, Revival: 6}
	if r.Next(false, 6) {
		t.Fatal("overpopulation check must win over revival")
	}
	r = Rules{Underpopulation: 0, Overpopulation: 8, Revival: 0}
	if !r.Next(false, 0) {
		t.Fatal("revival on zero neighbours should fire when thresholds allow it")
	}
}

func TestValidate(t *testing.T) {
	if err := Classic().Validate(); err != nil {
		t.Fatalf("classic rules rejected: %v", err)
	}
	for _, r := range []Rules{
		{Underpopulation: -1, Overpopulation: 4, Revival: 3},
		{Underpopulation: 2, Overpopulation: 9, Revival: 3},
		{Underpopulation: 2, Overpopulation: 4, Revival: 10},
	} {
		if err := r.Validate(); !errors.Is(err, ErrInvalidRules) {
			t.Fatalf("%v err=%v, expected ErrInvalidRules", r, err)
		}
	}
}

func TestLShapeFillsCorner(t *testing.T) {
	g := newGrid(t, 3, 3, [2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1})
	if n, _ := g.NeighborsAlive(0, 1); n != 3 {
		t.Fatalf("(0,1) has %d neighbours, expected 3", n)
	}

	d := step(t, Classic(), g)

	expectCells(t, g, map[[2]int]bool{
		{0, 0}: true, {0, 1}: true,
		{1, 0}: true, {1, 1}: true,
	}, "after one step")
	if d.Births != 1 || d.Deaths != 0 || d.Population != 4 {
		t.Fatalf("delta %+v, expected 1 birth, 0 deaths, population 4", d)
	}
}

func TestIsolatedCellsDie(t *testing.T) {
	g := newGrid(t, 3, 3, [2]int{0, 0}, [2]int{2, 2})
	d := step(t, Classic(), g)
	if g.Population() != 0 || d.Deaths != 2 {
		t.Fatalf("population %d deaths %d, expected 0 and 2", g.Population(), d.Deaths)
	}
}

func TestOvercrowdedCellDies(t *testing.T) {
	// Centre of a plus with both diagonals on one side has 5 neighbours.
	g := newGrid(t, 3, 3,
		[2]int{1, 1},
		[2]int{0, 1}, [2]int{1, 0}, [2]int{1, 2}, [2]int{2, 1},
		[2]int{0, 0},
	)
	step(t, Classic(), g)
	if g.Alive(1, 1) {
		t.Fatal("a live cell with 5 neighbours should die")
	}
}

func TestBlockStillLife(t *testing.T) {
	block := map[[2]int]bool{{2, 2}: true, {2, 3}: true, {3, 2}: true, {3, 3}: true}
	g := newGrid(t, 6, 6, [2]int{2, 2}, [2]int{2, 3}, [2]int{3, 2}, [2]int{3, 3})
	for p := range block {
		if n, _ := g.NeighborsAlive(p[0], p[1]); n != 3 {
			t.Fatalf("block cell %v has %d neighbours, expected 3", p, n)
		}
	}
	for gen := 1; gen <= 5; gen++ {
		d := step(t, Classic(), g)
		if d.Births != 0 || d.Deaths != 0 {
			t.Fatalf("generation %d: delta %+v, expected no change", gen, d)
		}
		expectCells(t, g, block, "block")
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := newGrid(t, 5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

	step(t, Classic(), g)
	expectCells(t, g, map[[2]int]bool{
		{2, 1}: true,
		{2, 2}: true,
		{2, 3}: true,
	}, "after first step")

	step(t, Classic(), g)
	expectCells(t, g, map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	}, "after second step")
}

func TestStepLeavesCurrentUntouched(t *testing.T) {
	cur := newGrid(t, 5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
	before := newGrid(t, 5, 5)
	_ = before.CopyFrom(cur)
	next := newGrid(t, 5, 5)
	// Pre-fill next to prove it is fully overwritten.
	for i := range next.Cells() {
		next.Cells()[i] = true
	}
	if _, err := Step(Classic(), cur, next); err != nil {
		t.Fatal(err)
	}
	if !cur.Equal(before) {
		t.Fatal("Step mutated the current generation")
	}
	if next.Population() != 3 {
		t.Fatalf("next population %d, expected 3", next.Population())
	}
}

func TestStepDeterministic(t *testing.T) {
	seed := newGrid(t, 32, 32)
	if err := seed.Randomize(core.NewRNG(5), 0.4); err != nil {
		t.Fatal(err)
	}
	a := newGrid(t, 32, 32)
	b := newGrid(t, 32, 32)
	if _, err := Step(Classic(), seed, a); err != nil {
		t.Fatal(err)
	}
	if _, err := Step(Classic(), seed, b); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatal("identical input produced different generations")
	}
}

func TestStepRejectsMismatchedBuffers(t *testing.T) {
	a := newGrid(t, 3, 4)
	b := newGrid(t, 4, 3)
	if _, err := Step(Classic(), a, b); !errors.Is(err, core.ErrInvalidDimension) {
		t.Fatalf("err=%v, expected ErrInvalidDimension", err)
	}
	if _, err := Step(Classic(), a, nil); !errors.Is(err, core.ErrInvalidDimension) {
		t.Fatalf("nil next err=%v, expected ErrInvalidDimension", err)
	}
}
