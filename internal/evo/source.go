package evo

import (
	"math/rand"
	"time"
)

// Source supplies the randomness the generation cycle consumes: bootstrap
// coordinates, mutation factors and parent indexes.
type Source interface {
	// Uniform returns a value in [low, high).
	Uniform(low, high float64) float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// RandSource is a Source backed by math/rand.
type RandSource struct {
	rng *rand.Rand
}

// NewSource returns a deterministic source for a non-zero seed and a
// time-seeded one otherwise.
func NewSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandSource) Uniform(low, high float64) float64 {
	return low + s.rng.Float64()*(high-low)
}

func (s *RandSource) Intn(n int) int {
	return s.rng.Intn(n)
}
