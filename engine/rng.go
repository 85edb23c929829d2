package engine

import (
	"math/rand"
	"sync"
)

// countingSource counts every draw taken from the underlying source, so a
// restored RNG replays the same stream whatever mix of calls produced it.
type countingSource struct {
	src rand.Source
	n   int64
}

func (c *countingSource) Int63() int64 {
	c.n++
	return c.src.Int63()
}

func (c *countingSource) Seed(seed int64) {
	c.src.Seed(seed)
	c.n = 0
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position is the number of source draws taken, enabling save/restore.
type RNG struct {
	mu   sync.Mutex
	seed int64
	cs   *countingSource
	r    *rand.Rand
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	cs := &countingSource{src: rand.NewSource(seed)}
	return &RNG{seed: seed, cs: cs, r: rand.New(cs)}
}

// Intn returns a uniform int in [0,n).
func (g *RNG) Intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Intn(n)
}

// Float64 returns a uniform float in [0,1).
func (g *RNG) Float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Float64()
}

// Seed returns the seed the RNG was created or last reset with.
func (g *RNG) Seed() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seed
}

// Position returns the number of source draws since creation.
func (g *RNG) Position() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cs.n
}

// Reset reseeds g in place and advances it to position, reproducing the
// exact stream of a saved session. Holders of g see the new stream.
func (g *RNG) Reset(seed int64, position int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seed = seed
	g.cs.Seed(seed)
	for i := int64(0); i < position; i++ {
		g.cs.Int63()
	}
}
