package core

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the single source of non-determinism for reward amounts,
// mission sampling, option shuffling and rival scores.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// lockedRand guards a *rand.Rand so SSH sessions and background fetches can share one.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand creates a Rand seeded with seed. A zero seed uses the current time.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}

// IntBetween returns a uniform integer in the inclusive range [lo, hi].
func IntBetween(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Clock abstracts the wall clock for daily and weekly boundaries.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// DateLayout is the on-disk format of calendar dates.
const DateLayout = "2006-01-02"

// DateString formats t as YYYY-MM-DD in its own location.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}
