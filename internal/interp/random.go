package interp

import (
	"math/rand/v2"
	"time"
)

// RandSource is the bounded-random collaborator spec §1 places outside
// the core ("a `bounded_random(n)` that returns a uniform integer in
// `[0, n)`"). It is a pluggable interface so tests can inject a
// deterministic source instead of the time-seeded default.
type RandSource interface {
	// BoundedRandom returns a uniform integer in [0, n).
	BoundedRandom(n int64) int64
}

// timeSeededRand backs RandSource with math/rand/v2, seeded once from the
// current time the way qq.c seeds pcg_basic from time(NULL) in main().
type timeSeededRand struct {
	r *rand.Rand
}

// NewTimeSeededRand returns the default RandSource implementation.
func NewTimeSeededRand() RandSource {
	seed := uint64(time.Now().UnixNano())
	return &timeSeededRand{r: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (t *timeSeededRand) BoundedRandom(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return t.r.Int64N(n)
}
