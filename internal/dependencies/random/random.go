package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random provides random choices that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n), or 0 if n <= 0
	Intn(n int) int

	// Shuffle permutes n elements using swap
	Shuffle(n int, swap func(i, j int))
}

// SeededRandom implements Random with a PCG generator. The same seed always
// produces the same sequence of choices.
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a SeededRandom seeded from the current time
func New() *SeededRandom {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// NewSeeded creates a SeededRandom with a fixed seed
func NewSeeded(seed uint64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a random int in [0, n)
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// Shuffle permutes n elements
func (r *SeededRandom) Shuffle(n int, swap func(i, j int)) {
	if n <= 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}
