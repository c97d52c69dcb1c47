// Package market simulates external pricing fluctuation.
package market

import (
	"math/rand/v2"
)

// Source yields pseudo-random values in [0.0, 1.0).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// RandGen is a small seeded generator so market factors replay exactly under
// a fixed --seed and in tests.
type RandGen struct {
	state uint64
}

// NewRandGen creates a new random generator with a seed
func NewRandGen(seed uint64) *RandGen {
	return &RandGen{state: seed}
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0)
func (r *RandGen) Float64() float64 {
	// Linear congruential step, low 31 bits
	r.state = r.state*1103515245 + 12345
	return float64(r.state&0x7FFFFFFF) / float64(0x80000000)
}

// NewSource returns a deterministic RandGen for a non-zero seed and a
// process-random source otherwise.
func NewSource(seed uint64) Source {
	if seed != 0 {
		return NewRandGen(seed)
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Uniform draws one sample from [lo, hi]. Out-of-range source values are
// clamped so a misbehaving source cannot leave the interval.
func Uniform(src Source, lo, hi float64) float64 {
	u := src.Float64()
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	v := lo + u*(hi-lo)
	if v > hi {
		return hi
	}
	return v
}
