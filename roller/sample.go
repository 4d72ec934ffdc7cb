// SPDX-License-Identifier: MIT

package roller

// Sample draws one outcome in [0, n) using bits from src.
//
// Walk (c = level, d = offset among the unresolved nodes of level c):
//  1. b ← src.Bit()
//  2. d ← 2d + (1 − b)   — bit 0 adds one, bit 1 adds zero
//  3. d < h[c]: z ← H[d][c]; z < n resolves the draw, z == n (reject)
//     restarts the walk at c = d = 0
//  4. otherwise d ← d − h[c], c ← c + 1
//
// The bit mapping in step 2 fixes which bit pattern yields which outcome;
// changing it changes every recorded sequence.
//
// Two cases return without touching src, which may then be nil: n == 1, and
// a single positive weight equal to 2^k (r == 0), whose only bit lies above
// the k levels. Any other single-weight distribution walks the tables like
// the general case, so a shared bit stream advances identically.
//
// On error Sample returns -1 and the bit source's error unchanged.
//
// Complexity: O(1) memory; expected bits within a constant of the entropy.
func (r *Roller) Sample(src BitSource) (int, error) {
	res, err := r.walk(src)
	return res.Index, err
}

// Trace is Sample with accounting: it reports the bits consumed and the
// number of rejection restarts. For equal bit streams Trace and Sample
// consume the same bits and return the same index.
func (r *Roller) Trace(src BitSource) (Result, error) {
	return r.walk(src)
}

// SampleN fills dst with independent draws. It stops at the first bit-source
// error, leaving the remaining entries of dst untouched.
func (r *Roller) SampleN(src BitSource, dst []int) error {
	for i := range dst {
		z, err := r.Sample(src)
		if err != nil {
			return err
		}
		dst[i] = z
	}
	return nil
}

func (r *Roller) walk(src BitSource) (Result, error) {
	if r.bitless() {
		return Result{Index: r.sole}, nil
	}
	if src == nil {
		return Result{Index: -1}, ErrNilSource
	}

	res := Result{Index: -1}
	c, d := 0, 0
	for {
		b, err := src.Bit()
		if err != nil {
			return res, err
		}
		res.Bits++

		d = 2 * d
		if !b {
			d++
		}

		if d < r.h[c] {
			z := r.H[d*r.k+c]
			if z < r.n {
				res.Index = z
				return res, nil
			}
			res.Restarts++
			c, d = 0, 0
			continue
		}

		d -= r.h[c]
		c++
	}
}

// bitless reports whether every draw resolves to r.sole without a bit.
func (r *Roller) bitless() bool {
	return r.sole != noSole && (r.n == 1 || r.r == 0)
}
