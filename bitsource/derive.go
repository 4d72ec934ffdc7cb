// SPDX-License-Identifier: MIT

package bitsource

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed with a SplitMix64 finalizer. Nearby (parent, stream) pairs map to
// unrelated seeds, so workers seeded with DeriveSeed(s, 0), DeriveSeed(s, 1),
// … draw uncorrelated LCG streams.
//
// Complexity: O(1).
func DeriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// NewStream returns a Buffer over an LCG seeded with DeriveSeed(seed, stream).
func NewStream(seed, stream uint64, opts ...Option) *Buffer {
	return NewBuffer(NewLCG(DeriveSeed(seed, stream)), opts...)
}
