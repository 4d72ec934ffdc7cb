// SPDX-License-Identifier: MIT

package roller

import (
	"math"
	"math/bits"
)

// Verify checks every construction invariant of the tables and returns nil
// when the Roller is sound, or an error wrapping ErrCorruptTables.
//
// Checked, in order:
//   - m ≥ 1, k == BitWidth(m), m + r == 2^k (mod 2^64 when k == 64)
//   - len(h) == k, len(H) == (n+1)·k; with k == 0 only the sole marker matters
//   - h[j] ∈ [0, n+1]; rows < h[j] hold symbols in [0, n], rows ≥ h[j] are Unused
//   - no symbol occupies two rows of the same level
//   - weights reassembled from the tables sum to m and the reject symbol
//     reassembles to r
//   - the sole-outcome marker agrees with the reassembled weights
//
// Complexity: O(n·k) time, O(n) memory.
func (r *Roller) Verify() error {
	if r.n < 1 {
		return corruptf("n = %d, want ≥ 1", r.n)
	}
	if r.m == 0 {
		return corruptf("total weight is zero")
	}
	if want := BitWidth(r.m); r.k != want {
		return corruptf("k = %d, want BitWidth(%d) = %d", r.k, r.m, want)
	}
	if r.m+r.r != uint64(1)<<uint(r.k) {
		return corruptf("m + r = %d + %d is not 2^%d", r.m, r.r, r.k)
	}
	if len(r.h) != r.k {
		return corruptf("len(h) = %d, want %d", len(r.h), r.k)
	}
	if r.k == 0 {
		// m == 1: one outcome carries all the weight and no level exists.
		if len(r.H) != 0 {
			return corruptf("len(H) = %d, want 0", len(r.H))
		}
		if r.sole < 0 || r.sole >= r.n {
			return corruptf("total weight 1 with sole = %d", r.sole)
		}
		return nil
	}
	// (n+1)·k may wrap, so compare by division.
	if len(r.H)%r.k != 0 || len(r.H)/r.k != r.n+1 {
		return corruptf("len(H) = %d, want (%d+1)·%d", len(r.H), r.n, r.k)
	}

	// lastSeen[z] is the last level z was seen on, +1 (0 means never).
	lastSeen := make([]int, r.n+1)
	for j := 0; j < r.k; j++ {
		if r.h[j] < 0 || r.h[j] > r.n+1 {
			return corruptf("h[%d] = %d outside [0, %d]", j, r.h[j], r.n+1)
		}
		for d := 0; d <= r.n; d++ {
			z := r.H[d*r.k+j]
			if d >= r.h[j] {
				if z != Unused {
					return corruptf("H[%d][%d] = %d beyond h[%d] = %d", d, j, z, j, r.h[j])
				}
				continue
			}
			if z < 0 || z > r.n {
				return corruptf("H[%d][%d] = %d outside [0, %d]", d, j, z, r.n)
			}
			if lastSeen[z] == j+1 {
				return corruptf("symbol %d appears twice at level %d", z, j)
			}
			lastSeen[z] = j + 1
		}
	}

	weights, reject := r.levelWeights()
	if reject != r.r {
		return corruptf("reject weight in tables = %d, want %d", reject, r.r)
	}

	var (
		sum      uint64
		carry    uint64
		positive int
		last     int
	)
	for i, w := range weights {
		sum, carry = bits.Add64(sum, w, 0)
		if carry != 0 {
			return corruptf("weights in tables overflow uint64")
		}
		if w > 0 {
			positive++
			last = i
		}
	}

	switch {
	case positive >= 2:
		if r.sole != noSole {
			return corruptf("sole outcome %d set but %d outcomes carry weight", r.sole, positive)
		}
	case positive == 1:
		if r.sole != last {
			return corruptf("sole outcome = %d, tables say %d", r.sole, last)
		}
	default:
		// A lone weight equal to 2^k has no bit inside the k levels.
		if r.sole < 0 || r.sole >= r.n {
			return corruptf("no weighted outcome in tables and sole = %d", r.sole)
		}
		if r.r != 0 {
			return corruptf("hidden sole weight requires r = 0, got %d", r.r)
		}
		sum = r.m
	}
	if sum != r.m {
		return corruptf("weights in tables sum to %d, want %d", sum, r.m)
	}

	return nil
}

// FromTables rebuilds a Roller from a Tables value, typically one decoded from
// a snapshot, and verifies it. The input slices are copied.
//
// Returns an error wrapping ErrCorruptTables if any invariant fails.
//
// Complexity: O(n·k).
func FromTables(t Tables) (*Roller, error) {
	if t.N < 1 || t.N == math.MaxInt {
		return nil, corruptf("n = %d outside [1, MaxInt)", t.N)
	}
	if k := len(t.Levels); k > 64 {
		return nil, corruptf("%d levels, want ≤ 64", k)
	} else if k > 0 && t.N >= len(t.Slots) {
		return nil, corruptf("n = %d with only %d slots", t.N, len(t.Slots))
	}
	if t.Sole < noSole || t.Sole >= t.N {
		return nil, corruptf("sole = %d outside [-1, %d)", t.Sole, t.N)
	}

	r := &Roller{
		n:    t.N,
		m:    t.Total,
		k:    len(t.Levels),
		h:    make([]int, len(t.Levels)),
		H:    make([]int, len(t.Slots)),
		sole: t.Sole,
	}
	r.r = (uint64(1) << uint(r.k)) - r.m
	copy(r.h, t.Levels)
	copy(r.H, t.Slots)

	if err := r.Verify(); err != nil {
		return nil, err
	}

	return r, nil
}
