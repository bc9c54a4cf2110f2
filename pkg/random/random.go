// Package random defines the pseudo-random capability consumed by the
// generator and a seeded default implementation.
//
// Every stochastic function in roadnet takes a [Source] argument; nothing
// reads ambient global state, so a seed fully determines the output.
package random

import "math/rand/v2"

// Source is the minimal random surface the generator needs.
type Source interface {
	// IntRange returns a uniform integer in [lo, hi]. Callers guarantee lo <= hi.
	IntRange(lo, hi int) int
	// FloatRange returns a uniform float in [lo, hi).
	FloatRange(lo, hi float64) float64
	// Choice returns a uniform index in [0, n). Callers guarantee n > 0.
	Choice(n int) int
}

// Pick returns a uniformly chosen element of items. It panics on an empty
// slice, like indexing would.
func Pick[T any](src Source, items []T) T {
	return items[src.Choice(len(items))]
}

// PCG is a [Source] backed by math/rand/v2's PCG generator.
type PCG struct {
	rng *rand.Rand
}

// NewPCG returns a source seeded from seed.
func NewPCG(seed uint64) *PCG {
	return &PCG{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// IntRange implements [Source].
func (p *PCG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.IntN(hi-lo+1)
}

// FloatRange implements [Source].
func (p *PCG) FloatRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Float64()*(hi-lo)
}

// Choice implements [Source].
func (p *PCG) Choice(n int) int {
	return p.rng.IntN(n)
}

var _ Source = (*PCG)(nil)
