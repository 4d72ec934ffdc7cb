// SPDX-License-Identifier: MIT

package roller

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// New builds a Roller for the given weights. Outcome i is later sampled with
// probability weights[i] / Σ weights.
//
// Validation order (first failure wins):
//  1. len(weights) == 0  → ErrEmptyDistribution
//  2. weights[i] < 0     → ErrNegativeWeight
//  3. Σ overflows uint64 → ErrWeightOverflow
//  4. Σ == 0             → ErrZeroTotal
//
// All four match ErrInvalidDistribution. The weights slice is only read.
//
// Complexity: O(n·k) time, O((n+1)·k) memory, where k = BitWidth(Σ).
func New[W constraints.Integer](weights []W) (*Roller, error) {
	if len(weights) == 0 {
		return nil, ErrEmptyDistribution
	}

	ws := make([]uint64, len(weights))
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: weight[%d] = %d", ErrNegativeWeight, i, w)
		}
		ws[i] = uint64(w)
	}

	return newRoller(ws)
}

// NewFunc builds a Roller for n outcomes whose weights are produced by
// weight(0), …, weight(n-1). Each index is queried exactly once, in order.
// A nil weight function is rejected with ErrInvalidDistribution.
func NewFunc(n int, weight func(i int) int64) (*Roller, error) {
	if weight == nil {
		return nil, fmt.Errorf("%w: nil weight function", ErrInvalidDistribution)
	}
	if n <= 0 {
		return nil, ErrEmptyDistribution
	}

	ws := make([]int64, n)
	for i := range ws {
		ws[i] = weight(i)
	}

	return New(ws)
}

// newRoller validates the totals of non-negative weights and builds tables.
func newRoller(ws []uint64) (*Roller, error) {
	var (
		m        uint64
		carry    uint64
		positive int
		last     int
	)
	for i, w := range ws {
		m, carry = bits.Add64(m, w, 0)
		if carry != 0 {
			return nil, fmt.Errorf("%w: at weight[%d]", ErrWeightOverflow, i)
		}
		if w > 0 {
			positive++
			last = i
		}
	}
	if m == 0 {
		return nil, ErrZeroTotal
	}

	r := &Roller{
		n:    len(ws),
		m:    m,
		k:    BitWidth(m),
		sole: noSole,
	}
	// For k == 64 the shift yields 0 and the subtraction wraps to 2^64 − m.
	r.r = (uint64(1) << uint(r.k)) - m
	if positive == 1 {
		r.sole = last
	}

	r.h, r.H = buildTables(ws, r.r, r.k)

	return r, nil
}

// buildTables lays every weight, plus the reject weight at index n, out over
// k levels of the DDG tree.
//
// Column j corresponds to bit position k−1−j. Symbols whose weight has that
// bit set take consecutive rows of the column in index order; the remaining
// rows are Unused.
func buildTables(ws []uint64, reject uint64, k int) (h []int, H []int) {
	n := len(ws)
	h = make([]int, k)
	H = make([]int, (n+1)*k)

	for j := 0; j < k; j++ {
		shift := uint(k - 1 - j)
		d := 0
		for i := 0; i <= n; i++ {
			w := reject
			if i < n {
				w = ws[i]
			}
			if (w>>shift)&1 == 1 {
				H[d*k+j] = i
				d++
			}
		}
		h[j] = d
		for ; d <= n; d++ {
			H[d*k+j] = Unused
		}
	}

	return h, H
}

// levelWeights reassembles every symbol's weight from the tables: a symbol
// found at level j owns bit k−1−j. The reject weight is returned separately.
func (r *Roller) levelWeights() (weights []uint64, reject uint64) {
	weights = make([]uint64, r.n)
	for j := 0; j < r.k; j++ {
		bit := uint64(1) << uint(r.k-1-j)
		for d := 0; d < r.h[j]; d++ {
			z := r.H[d*r.k+j]
			if z == r.n {
				reject |= bit
				continue
			}
			weights[z] |= bit
		}
	}
	return weights, reject
}
