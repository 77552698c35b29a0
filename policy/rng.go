package policy

import "math/rand/v2"

// RNG abstracts the random source ReservoirSamplingPolicy needs, letting
// callers inject a seeded generator for reproducible sampling across
// runs and in tests.
type RNG interface {
	// IntN returns a pseudo-random integer in [0, n).
	IntN(n int) int
}

// pcgRNG is the default RNG, backed by math/rand/v2's PCG source.
type pcgRNG struct {
	r *rand.Rand
}

// NewSeededRNG returns an RNG deterministically seeded from seed: the
// same seed always produces the same sequence of draws.
func NewSeededRNG(seed uint64) RNG {
	return &pcgRNG{r: rand.New(rand.NewPCG(seed, seed))}
}

func (p *pcgRNG) IntN(n int) int { return p.r.IntN(n) }
