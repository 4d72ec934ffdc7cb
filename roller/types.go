// SPDX-License-Identifier: MIT

package roller

import "fmt"

// Unused marks an empty slot of the H table: rows at or beyond h[j] in
// column j hold no outcome.
const Unused = -1

// noSole is the Roller.sole value when two or more outcomes carry weight.
const noSole = -1

// BitSource supplies one independent, unbiased bit per call.
//
// A false result is bit 0, true is bit 1. Implementations may block (an
// entropy device) or fail (exhausted stream); Sample returns such errors to
// its caller unchanged and never retries.
//
// A single BitSource is not assumed to be goroutine-safe. Give every
// goroutine its own source or wrap a shared one (see bitsource.Locked).
type BitSource interface {
	Bit() (bool, error)
}

// Roller is the immutable product of FLDR construction.
//
// Fields mirror the classic presentation of the algorithm:
//   - n: number of real outcomes; the reject symbol has index n
//   - m: Σ weight, m ≥ 1
//   - k: BitWidth(m), tree depth
//   - r: 2^k − m, weight of the reject symbol
//   - h: k leaf counts, one per level
//   - H: (n+1)×k outcome table, row-major, H[d*k+j]
//
// A Roller never changes after New returns; all methods are safe for
// concurrent use.
type Roller struct {
	n int
	m uint64
	k int
	r uint64

	h []int
	H []int

	// sole is the only outcome with positive weight, or noSole.
	// With n == 1 or r == 0 it is returned without drawing bits.
	sole int
}

// Result describes one instrumented draw (see Trace).
type Result struct {
	// Index is the sampled outcome in [0, n), or -1 on error.
	Index int
	// Bits is the number of bits pulled from the source.
	Bits int
	// Restarts counts how many times the walk hit the reject leaf.
	Restarts int
}

// Tables is a detached copy of the state needed to rebuild a Roller
// without its weight vector. See (*Roller).Tables and FromTables.
type Tables struct {
	N     int
	Total uint64
	// Sole is the only positive-weight outcome, or -1.
	Sole   int
	Levels []int
	// Slots is the (N+1)×len(Levels) H table in row-major order.
	Slots []int
}

// N returns the number of real outcomes.
func (r *Roller) N() int { return r.n }

// Total returns m, the sum of all weights.
func (r *Roller) Total() uint64 { return r.m }

// Depth returns k, the number of tree levels.
func (r *Roller) Depth() int { return r.k }

// RejectWeight returns r = 2^k − m, the padding weight of the reject symbol.
func (r *Roller) RejectWeight() uint64 { return r.r }

// Level returns h[j], the number of leaves at level j, or 0 when j is
// outside [0, k).
func (r *Roller) Level(j int) int {
	if j < 0 || j >= r.k {
		return 0
	}
	return r.h[j]
}

// Levels returns a copy of h.
func (r *Roller) Levels() []int {
	out := make([]int, len(r.h))
	copy(out, r.h)
	return out
}

// Slot returns H[row][level]: a real outcome in [0, n), the reject index n,
// or Unused. Out-of-range coordinates report Unused.
func (r *Roller) Slot(row, level int) int {
	if row < 0 || row > r.n || level < 0 || level >= r.k {
		return Unused
	}
	return r.H[row*r.k+level]
}

// Table returns H as a fresh (n+1)×k matrix.
//
// Complexity: O(n·k) time and memory.
func (r *Roller) Table() [][]int {
	out := make([][]int, r.n+1)
	for d := range out {
		out[d] = make([]int, r.k)
		copy(out[d], r.H[d*r.k:(d+1)*r.k])
	}
	return out
}

// Weight returns the weight of outcome i as encoded in the tables, or 0 for
// an index outside [0, n).
//
// Complexity: O(n·k).
func (r *Roller) Weight(i int) uint64 {
	if i < 0 || i >= r.n {
		return 0
	}
	if r.sole != noSole {
		if i == r.sole {
			return r.m
		}
		return 0
	}
	weights, _ := r.levelWeights()
	return weights[i]
}

// Tables returns a deep copy of the construction state.
func (r *Roller) Tables() Tables {
	slots := make([]int, len(r.H))
	copy(slots, r.H)
	return Tables{
		N:      r.n,
		Total:  r.m,
		Sole:   r.sole,
		Levels: r.Levels(),
		Slots:  slots,
	}
}

// String implements fmt.Stringer.
func (r *Roller) String() string {
	return fmt.Sprintf("fldr.Roller{n=%d, m=%d, k=%d, r=%d}", r.n, r.m, r.k, r.r)
}
