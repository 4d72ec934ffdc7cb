// SPDX-License-Identifier: MIT

// Package roller implements the Fast Loaded Dice Roller (FLDR): exact
// sampling from a discrete distribution with non-negative integer weights,
// drawing close to the information-theoretic minimum of random bits.
//
// 🚀 How it works
//
//	Construction pads the weights with a virtual "reject" outcome of
//	weight r = 2^k − m so that the total is a power of two, then lays
//	every weight out bit by bit over k levels of an implicit binary tree
//	(the DDG tree). Two tables encode that tree:
//	  • h[j]    — number of leaves at level j
//	  • H[d][j] — the outcome stored in leaf d of level j (or Unused)
//
//	Sampling walks the tree top-down, one bit per level. Reaching the
//	reject leaf restarts the walk from the root.
//
// ✨ Key properties
//   - Exact: P(i) = weight[i] / Σ weight, no floating point anywhere.
//   - Frugal: expected bits per sample stay within a small constant of
//     the Shannon entropy of the distribution.
//   - Immutable: a built Roller is read-only and safe to share between
//     goroutines without locking. The bit source is the caller's concern.
//
// ⚙️ Usage:
//
//	r, err := roller.New([]int{1, 2, 3})
//	if err != nil {
//	  // errors.Is(err, roller.ErrInvalidDistribution)
//	}
//	buf := bitsource.NewBuffer(bitsource.NewLCG(42))
//	i, err := r.Sample(buf) // i ∈ {0,1,2}, P = 1/6, 2/6, 3/6
//
// Performance:
//
//   - Build:  O(n·k) time, O((n+1)·k) memory, k = ⌈log2 m⌉
//   - Sample: O(1) memory, no allocations; expected O(H + 2) bits
package roller
