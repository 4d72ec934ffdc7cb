// SPDX-License-Identifier: MIT

package bitsource

// LCG multiplier and increment (Knuth, MMIX).
const (
	LCGMultiplier uint64 = 0x5851F42D4C957F2D
	LCGIncrement  uint64 = 0x14057B7EF767814F
)

// LCG is a 64-bit linear congruential generator: x ← x·a + c (mod 2^64).
//
// It is fast and fully deterministic, which makes it the reference source
// for reproducible tests. It is not cryptographically secure and not
// goroutine-safe.
type LCG struct {
	state uint64
}

// NewLCG returns a generator whose first output is seed·a + c.
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Seed resets the generator state.
func (g *LCG) Seed(v uint64) {
	g.state = v
}

// Next advances the generator and returns the new state.
func (g *LCG) Next() uint64 {
	g.state = g.state*LCGMultiplier + LCGIncrement
	return g.state
}

// Word implements WordSource; it never fails.
func (g *LCG) Word() (uint64, error) {
	return g.Next(), nil
}

// Float64 returns a value in [0, 1) built from the top 53 bits of Next.
func (g *LCG) Float64() float64 {
	return float64(g.Next()>>11) * (1.0 / (1 << 53))
}
