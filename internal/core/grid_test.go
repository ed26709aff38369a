package core

import (
	"errors"
	"testing"
)

func mustGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	if err != nil {
		t.Fatalf("NewGrid(%d,%d): %v", rows, cols, err)
	}
	return g
}

func TestNewGridRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 4}, {0, 0}} {
		if _, err := NewGrid(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimension) {
			t.Fatalf("NewGrid(%d,%d) err=%v, expected ErrInvalidDimension", dims[0], dims[1], err)
		}
	}
}

func TestNewGridStartsDead(t *testing.T) {
	g := mustGrid(t, 4, 7)
	if g.Rows() != 4 || g.Cols() != 7 {
		t.Fatalf("dimensions %dx%d, expected 4x7", g.Rows(), g.Cols())
	}
	if got := g.Population(); got != 0 {
		t.Fatalf("population %d, expected 0", got)
	}
	if len(g.Cells()) != 28 {
		t.Fatalf("backing slice has %d cells, expected 28", len(g.Cells()))
	}
}

func TestAccessorsBoundsChecked(t *testing.T) {
	g := mustGrid(t, 3, 3)
	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if _, err := g.Get(pos[0], pos[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Get%v err=%v", pos, err)
		}
		if err := g.Set(pos[0], pos[1], true); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Set%v err=%v", pos, err)
		}
		if err := g.Toggle(pos[0], pos[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Toggle%v err=%v", pos, err)
		}
		if _, err := g.NeighborsAlive(pos[0], pos[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("NeighborsAlive%v err=%v", pos, err)
		}
		if g.Alive(pos[0], pos[1]) {
			t.Fatalf("Alive%v should report absent cells as dead", pos)
		}
	}

	if err := g.Set(1, 2, true); err != nil {
		t.Fatal(err)
	}
	alive, err := g.Get(1, 2)
	if err != nil || !alive {
		t.Fatalf("Get(1,2)=%v,%v after Set", alive, err)
	}
	if err := g.Toggle(1, 2); err != nil {
		t.Fatal(err)
	}
	if g.Alive(1, 2) {
		t.Fatal("Toggle should flip a live cell to dead")
	}
}

func TestNeighborsAliveExcludesSelf(t *testing.T) {
	g := mustGrid(t, 3, 3)
	for i := range g.Cells() {
		g.Cells()[i] = true
	}
	n, err := g.NeighborsAlive(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Fatalf("centre of a full 3x3 has %d neighbours, expected 8", n)
	}
}

func TestNeighborsAliveHardEdges(t *testing.T) {
	g := mustGrid(t, 3, 3)
	// Opposite corners would be neighbours on a torus.
	_ = g.Set(0, 0, true)
	_ = g.Set(2, 2, true)
	_ = g.Set(0, 2, true)
	_ = g.Set(2, 0, true)

	if n, _ := g.NeighborsAlive(0, 0); n != 0 {
		t.Fatalf("corner counted %d neighbours, expected 0 without wraparound", n)
	}

	for i := range g.Cells() {
		g.Cells()[i] = true
	}
	expect := map[[2]int]int{
		{0, 0}: 3, {0, 1}: 5, {0, 2}: 3,
		{1, 0}: 5, {1, 1}: 8, {1, 2}: 5,
		{2, 0}: 3, {2, 1}: 5, {2, 2}: 3,
	}
	for pos, want := range expect {
		if n, _ := g.NeighborsAlive(pos[0], pos[1]); n != want {
			t.Fatalf("cell %v has %d neighbours, expected %d", pos, n, want)
		}
	}
}

func TestRandomizeExtremes(t *testing.T) {
	g := mustGrid(t, 20, 30)
	rng := NewRNG(7)

	if err := g.Randomize(rng, 1); err != nil {
		t.Fatal(err)
	}
	if got := g.Population(); got != 600 {
		t.Fatalf("density 1 produced %d live cells, expected 600", got)
	}

	g.Reset()
	if err := g.Randomize(rng, 0); err != nil {
		t.Fatal(err)
	}
	if got := g.Population(); got != 0 {
		t.Fatalf("reset + density 0 produced %d live cells, expected 0", got)
	}
}

func TestRandomizeHalfDensity(t *testing.T) {
	g := mustGrid(t, 100, 100)
	if err := g.Randomize(NewRNG(42), 0.5); err != nil {
		t.Fatal(err)
	}
	frac := float64(g.Population()) / 10000
	if frac < 0.45 || frac > 0.55 {
		t.Fatalf("live fraction %.3f outside [0.45, 0.55]", frac)
	}
}

func TestRandomizeRejectsBadDensity(t *testing.T) {
	g := mustGrid(t, 2, 2)
	_ = g.Set(0, 0, true)
	for _, d := range []float64{-0.01, 1.01, nanValue()} {
		if err := g.Randomize(NewRNG(1), d); !errors.Is(err, ErrInvalidDensity) {
			t.Fatalf("density %v err=%v, expected ErrInvalidDensity", d, err)
		}
	}
	if !g.Alive(0, 0) {
		t.Fatal("rejected Randomize must leave the grid untouched")
	}
}

func TestRandomizeDeterministicForSeed(t *testing.T) {
	a := mustGrid(t, 16, 16)
	b := mustGrid(t, 16, 16)
	_ = a.Randomize(NewRNG(99), 0.4)
	_ = b.Randomize(NewRNG(99), 0.4)
	if !a.Equal(b) {
		t.Fatal("same seed should produce identical grids")
	}
}

func TestSwapAndCopyRequireSameShape(t *testing.T) {
	a := mustGrid(t, 2, 3)
	b := mustGrid(t, 2, 3)
	c := mustGrid(t, 3, 2)
	_ = a.Set(0, 1, true)

	if err := a.Swap(c); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("Swap with mismatched shape err=%v", err)
	}
	if err := a.CopyFrom(c); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("CopyFrom with mismatched shape err=%v", err)
	}

	if err := a.Swap(b); err != nil {
		t.Fatal(err)
	}
	if a.Alive(0, 1) || !b.Alive(0, 1) {
		t.Fatal("Swap should exchange cell storage")
	}
	if err := a.CopyFrom(b); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatal("CopyFrom should make grids equal")
	}
	if a.Equal(c) {
		t.Fatal("grids of different shape are never equal")
	}
}

func nanValue() float64 {
	zero := 0.0
	return zero / zero
}
