// Package fldr is an exact sampler for discrete distributions given by
// non-negative integer weights: the Fast Loaded Dice Roller.
//
// 🚀 What is fldr?
//
//	A small, dependency-light toolkit that brings together:
//		• roller/    – table construction and the bit-by-bit sampling walk
//		• bitsource/ – LCG, PCG, crypto and io.Reader bit streams
//		• stats/     – histograms, entropy and chi-square goodness of fit
//		• snapshot/  – compressed CBOR persistence of built tables
//		• distfile/  – YAML distribution files validated by JSON Schema
//		• metrics/   – Prometheus counters for bits, draws and restarts
//		• cmd/fldr   – command-line sampler
//
// ✨ Why FLDR?
//
//   - Exact – outcome i is drawn with probability wᵢ/Σw, no floating point
//   - Frugal – expected bits per draw stay within 6 bits of the entropy
//   - Compact – tables of size O(n·log Σw)
//   - Read-only after construction – one Roller serves many goroutines
//
// Quick start:
//
//	r, err := roller.New([]int{1, 2, 3})
//	if err != nil { … }
//	src := bitsource.NewBuffer(bitsource.NewLCG(42))
//	z, err := r.Sample(src) // 0, 1 or 2 with probability 1/6, 2/6, 3/6
//
// See the subpackage docs for construction details and guarantees.
package fldr
