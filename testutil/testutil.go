// Package testutil provides deterministic random data generators for tests
// and benchmarks.
package testutil

import (
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/succinct/intvec"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// BitVector generates a random bit vector of n bits where each bit is set
// with the given probability.
func (r *RNG) BitVector(n uint64, density float64) *intvec.BitVector {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := intvec.NewBit(n, false)
	for i := uint64(0); i < n; i++ {
		if r.rand.Float64() < density {
			v.SetBit(i, true)
		}
	}
	return v
}

// Uints generates n random values fitting the given bit width.
func (r *RNG) Uints(n uint64, width uint8) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	mask := ^uint64(0)
	if width < 64 {
		mask = (uint64(1) << width) - 1
	}
	vals := make([]uint64, n)
	for i := range vals {
		vals[i] = r.rand.Uint64() & mask
	}
	return vals
}

// IntVector generates a random packed vector of n elements with the given
// width.
func (r *RNG) IntVector(n uint64, width uint8) *intvec.IntVector {
	vals := r.Uints(n, width)
	v := intvec.New(n, 0, width)
	for i, x := range vals {
		v.Set(uint64(i), x)
	}
	return v
}

// Increasing generates a strictly increasing sequence of n values below max.
// It returns fewer than n values if max does not leave enough room.
func (r *RNG) Increasing(n, max uint64) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uint64]struct{}, n)
	for uint64(len(seen)) < n && uint64(len(seen)) < max {
		seen[uint64(r.rand.Int63n(int64(max)))] = struct{}{}
	}
	vals := make([]uint64, 0, len(seen))
	for x := range seen {
		vals = append(vals, x)
	}
	slices.Sort(vals)
	return vals
}
