// SPDX-License-Identifier: MIT

// Package bitsource provides the random-bit sources consumed by
// roller.Sample.
//
// Two layers:
//
//	WordSource — produces 64-bit words (LCG, PCG, io.Reader / crypto)
//	Buffer     — owns one word and a bit cursor; hands out bits MSB-first
//
// A Buffer is an ordinary value: every stream has its own cursor, so any
// number of independent streams can run side by side. Nothing in this
// package keeps global state.
//
// Helpers:
//   - Func     — adapt a closure
//   - Locked   — serialize a source shared between goroutines
//   - Counter  — count bits drawn
//   - DeriveSeed / NewStream — independent seeded streams for workers
//
// Determinism: NewBuffer(NewLCG(seed)) with the default 62-bit word width
// reproduces the reference bit stream of the FLDR test vectors.
package bitsource
