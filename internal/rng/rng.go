// Package rng implements the SplitMix64 generator every musical decision is
// drawn from. Output depends only on the seed and the number of draws.
package rng

const (
	golden = 0x9E3779B97F4A7C15
	mix1   = 0xBF58476D1CE4E5B9
	mix2   = 0x94D049BB133111EB
)

// RNG is a SplitMix64 stream. The zero value is valid but New should be
// used so that seeding matches the rest of the engine.
type RNG struct {
	state uint64
}

func New(seed uint64) RNG {
	return RNG{state: seed + golden}
}

// Uint64 advances the stream and returns the next 64-bit draw.
func (r *RNG) Uint64() uint64 {
	r.state += golden
	z := r.state
	z = (z ^ (z >> 30)) * mix1
	z = (z ^ (z >> 27)) * mix2
	return z ^ (z >> 31)
}

// Uint32 returns the low 32 bits of the next draw.
func (r *RNG) Uint32() uint32 {
	return uint32(r.Uint64())
}

// Float32 returns a value in [0,1) built from the top 24 bits of a 32-bit draw.
func (r *RNG) Float32() float32 {
	return float32(r.Uint32()>>8) * (1.0 / 16777216.0)
}

// Bipolar maps Float32 onto [-1,1).
func (r *RNG) Bipolar() float32 {
	return r.Float32()*2 - 1
}

// Intn returns a draw in [0,n) by reduction of a 32-bit draw. n must be > 0.
func (r *RNG) Intn(n int) int {
	return int(r.Uint32() % uint32(n))
}
