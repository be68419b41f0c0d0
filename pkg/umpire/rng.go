package umpire

import "math/rand"

// rng is the single PRNG a Game owns for combat draws and production
// tie-breaks. Unlike the package-level singleton this is adapted from,
// it lives on the Game instance itself: every Clone gets its own rng
// seeded independently so that look-ahead via Propose never shares
// mutable state with the game it was cloned from.
type rng struct {
	r *rand.Rand
}

// newRNG seeds a PRNG explicitly. Games constructed without an explicit
// seed still get a deterministic one derived from the zero value of the
// standard source, matching "deterministic given seed and action
// sequence" — callers that want true randomness should derive a seed from
// an external source such as crypto/rand or time themselves.
func newRNG(seed int64) *rng {
	return &rng{r: rand.New(rand.NewSource(seed))}
}

func (g *rng) Float64() float64 {
	return g.r.Float64()
}

func (g *rng) Intn(n int) int {
	return g.r.Intn(n)
}

// clone returns an independent copy of the generator's current state by
// drawing a fresh seed from it; the clone and the original thereafter
// advance independently.
func (g *rng) clone() *rng {
	return newRNG(g.r.Int63())
}
