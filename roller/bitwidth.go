// SPDX-License-Identifier: MIT

package roller

// bitWidthMasks select the upper half of the still-unexamined part of the
// word at each halving step: 32, 16, 8, 4, 2 and 1 bits wide.
var bitWidthMasks = [6]uint64{
	0xFFFFFFFF00000000,
	0x00000000FFFF0000,
	0x000000000000FF00,
	0x00000000000000F0,
	0x000000000000000C,
	0x0000000000000002,
}

// BitWidth returns the smallest k such that 2^k ≥ m, i.e. ⌈log2 m⌉.
//
// BitWidth(1) == 0, BitWidth(2) == 1, BitWidth(3) == 2, BitWidth(1<<63+1) == 64.
//
// The search is branch-light and constant time: it starts with 1 when m is not
// a power of two, then binary-searches the position of the highest set bit by
// testing successively narrower masks and shifting the found width away.
//
// m == 0 has no meaningful answer; BitWidth(0) returns 0 and callers must
// reject an empty total before relying on the result.
//
// Complexity: O(1).
func BitWidth(m uint64) int {
	k := 0
	if m&(m-1) != 0 {
		k = 1
	}

	shift := 32
	for _, mask := range bitWidthMasks {
		s := 0
		if m&mask != 0 {
			s = shift
		}
		k += s
		m >>= uint(s)
		shift >>= 1
	}

	return k
}
