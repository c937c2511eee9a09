package core

import (
	"math/rand"
	"sync"
)

// Sampler provides uniform random numbers in [0, 1) for jittered sampling.
// Implementations shared across render workers must be safe for concurrent use.
type Sampler interface {
	Get1D() float64
}

// RandomSampler wraps a Go random generator behind a mutex so a single
// seeded stream can be shared by all render workers
type RandomSampler struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Float64()
}

// GlobalSampler draws from the math/rand top-level source, which is already
// safe for concurrent use
type GlobalSampler struct{}

// Get1D returns a random float64 in [0, 1)
func (GlobalSampler) Get1D() float64 {
	return rand.Float64()
}

// ConstantSampler always returns the same value, for deterministic tests
type ConstantSampler float64

// Get1D returns the constant
func (c ConstantSampler) Get1D() float64 {
	return float64(c)
}
