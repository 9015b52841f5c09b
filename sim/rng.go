package sim

import "math/rand"

// RNG wraps math/rand.Rand behind an explicit seed so battles replay
// identically for the same scenario and seed.
type RNG struct {
	src *rand.Rand
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(seed))}
}

// Roll returns a random integer in [1, sides]. Sides below 2 roll 1.
func (r *RNG) Roll(sides int) int {
	if sides < 2 {
		return 1
	}
	return r.src.Intn(sides) + 1
}
