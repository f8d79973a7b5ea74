// Package random provides the seeded pseudo-random source shared by the
// generator, the genetic route search and the shipment simulator.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is the randomness the engine consumes. Implementations must be safe
// for concurrent use.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// PCG is a mutex-guarded PCG generator.
type PCG struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a PCG seeded with seed. A zero seed picks one from the clock.
func New(seed uint64) *PCG {
	return NewStream(seed, 0)
}

// NewStream returns the PCG for stream under seed. Distinct streams of one
// seed are independent sequences, so consumers sharing a seed do not perturb
// each other. Stream 0 is the sequence New returns.
func NewStream(seed, stream uint64) *PCG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &PCG{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15^(stream*0xbf58476d1ce4e5b9)))}
}

func (p *PCG) Float64() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64()
}

func (p *PCG) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// Uniform returns a value in [lo, hi).
func Uniform(s Source, lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Chance reports true with probability p.
func Chance(s Source, p float64) bool {
	return s.Float64() < p
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func Pick[T any](s Source, items []T) T {
	return items[s.IntN(len(items))]
}

// Fixed replays a sequence of Float64 values, cycling when exhausted.
// IntN maps the next value onto [0, n). Intended for tests.
type Fixed struct {
	mu     sync.Mutex
	values []float64
	i      int
}

// NewFixed returns a Fixed source over values.
func NewFixed(values ...float64) *Fixed {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Fixed{values: values}
}

func (f *Fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func (f *Fixed) IntN(n int) int {
	if n <= 0 {
		panic("random: invalid argument to IntN")
	}
	v := int(f.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
