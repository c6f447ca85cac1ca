package services

import (
	"math/rand"
	"sync"
	"time"
)

// Clock provides the current time. Injected so the engine is deterministic in
// tests and never reads process-wide state.
type Clock interface {
	Now() time.Time
}

// RandomSource provides uniformly distributed draws in [0.0, 1.0).
type RandomSource interface {
	Float64() float64
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// NewRandomSource returns a production RandomSource seeded from the clock.
// math/rand's Rand is not safe for concurrent use, so draws are serialized
// behind a mutex.
func NewRandomSource() RandomSource {
	return &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}
