// Package util provides shared helpers for tests and benchmarks.
package util

import "math/rand/v2"

// RNG encapsulates a deterministically seeded random number generator so
// failing randomized tests can be replayed.
type RNG struct {
	rand *rand.Rand
	seed uint64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	return r.rand.Float64()
}

// IntN returns a pseudo-random number in [0, n). It panics if n <= 0.
func (r *RNG) IntN(n int) int {
	return r.rand.IntN(n)
}

// Perm returns a pseudo-random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	return r.rand.Perm(n)
}
