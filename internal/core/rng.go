package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance returns true with probability p. p <= 0 never fires, p >= 1 always does.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// Int64 returns a non-negative pseudo-random int64, used to derive sub-seeds.
func (r *RNG) Int64() int64 {
	return r.r.Int64()
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
