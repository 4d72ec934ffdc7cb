// SPDX-License-Identifier: MIT
// Package: fldr/roller
//
// errors.go — sentinel errors for the roller package.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • Two-level hierarchy: each distribution-shape sentinel is defined by
//     wrapping ErrInvalidDistribution, so errors.Is matches both the exact
//     cause and the umbrella.
//   • Further context (offending index, table cell) is wrapped around a
//     sentinel with %w at the call site.
//   • Sampling never panics; bit-source errors are returned unchanged.

package roller

import (
	"errors"
	"fmt"
)

// ErrInvalidDistribution is the umbrella error for every weight vector that
// cannot be turned into a Roller.
var ErrInvalidDistribution = errors.New("roller: invalid distribution")

var (
	// ErrEmptyDistribution indicates a weight sequence of length zero.
	ErrEmptyDistribution = fmt.Errorf("%w: empty weight sequence", ErrInvalidDistribution)

	// ErrNegativeWeight indicates that at least one weight is below zero.
	ErrNegativeWeight = fmt.Errorf("%w: negative weight", ErrInvalidDistribution)

	// ErrZeroTotal indicates that all weights are zero, so no outcome has
	// positive probability.
	ErrZeroTotal = fmt.Errorf("%w: total weight is zero", ErrInvalidDistribution)

	// ErrWeightOverflow indicates that the weight sum does not fit in 64 bits.
	ErrWeightOverflow = fmt.Errorf("%w: total weight overflows uint64", ErrInvalidDistribution)
)

// ErrCorruptTables is returned by Verify and FromTables when the h/H tables
// violate a construction invariant (e.g. restored from a damaged snapshot).
var ErrCorruptTables = errors.New("roller: corrupt tables")

// ErrNilSource is returned when Sample needs bits but no BitSource was given.
var ErrNilSource = errors.New("roller: bit source is nil")

// corruptf wraps ErrCorruptTables with a formatted detail message.
func corruptf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorruptTables, fmt.Sprintf(format, args...))
}
