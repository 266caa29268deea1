package breakout

// Rand is the random source consulted when a power-up kind is chosen.
// Implementations must return values in [0, n).
type Rand interface {
	IntN(n int) int
}

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a simple LCG (Linear Congruential Generator).
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// IntN returns a random int in [0, n).
func (r *SimpleRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are better distributed than the low ones.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// State returns the generator state for snapshots.
func (r *SimpleRNG) State() uint64 {
	return r.state
}

// fixedRand replays a fixed sequence; used by tests.
type fixedRand struct {
	seq []int
	pos int
}

func (f *fixedRand) IntN(n int) int {
	if len(f.seq) == 0 || n <= 0 {
		return 0
	}
	v := f.seq[f.pos%len(f.seq)]
	f.pos++
	return v % n
}
