// SPDX-License-Identifier: MIT

// Package stats checks sampled outcomes against the integer weights that
// produced them: histograms, Shannon entropy and Pearson's chi-square
// goodness-of-fit test.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrEmpty indicates an empty input or a zero total.
	ErrEmpty = errors.New("stats: empty input")

	// ErrDimensionMismatch indicates observed and expected vectors of different lengths.
	ErrDimensionMismatch = errors.New("stats: dimension mismatch")

	// ErrOutOfRange indicates a sample outside [0, n).
	ErrOutOfRange = errors.New("stats: sample out of range")
)

// Histogram counts how often each outcome in [0, n) occurs in samples.
func Histogram(samples []int, n int) ([]uint64, error) {
	if n <= 0 {
		return nil, ErrEmpty
	}
	counts := make([]uint64, n)
	for i, s := range samples {
		if s < 0 || s >= n {
			return nil, fmt.Errorf("%w: samples[%d] = %d, n = %d", ErrOutOfRange, i, s, n)
		}
		counts[s]++
	}
	return counts, nil
}

// Entropy returns the Shannon entropy, in bits, of the distribution
// proportional to weights. Zero weights contribute nothing; an all-zero or
// empty vector has entropy 0.
func Entropy(weights []uint64) float64 {
	p := toFloats(weights)
	total := floats.Sum(p)
	if total == 0 {
		return 0
	}
	floats.Scale(1/total, p)
	return stat.Entropy(p) / math.Ln2
}

// Result is the outcome of a chi-square goodness-of-fit test.
type Result struct {
	// Statistic is Σ (O−E)²/E over categories with positive weight.
	Statistic float64
	// DF is the degrees of freedom: positive-weight categories minus one.
	DF int
	// PValue is P(χ²_DF ≥ Statistic). Small values reject the fit.
	PValue float64
}

// ChiSquare tests observed counts against the distribution proportional to
// weights. A count in a zero-weight category is impossible under the model
// and yields Statistic = +Inf, PValue = 0; DF is still reported.
//
// Complexity: O(n).
func ChiSquare(observed, weights []uint64) (Result, error) {
	if len(observed) != len(weights) {
		return Result{}, fmt.Errorf("%w: %d observed vs %d weights", ErrDimensionMismatch, len(observed), len(weights))
	}

	obs, ws := toFloats(observed), toFloats(weights)
	total, wsum := floats.Sum(obs), floats.Sum(ws)
	if total == 0 || wsum == 0 {
		return Result{}, ErrEmpty
	}

	var (
		res        Result
		categories int
		impossible bool
	)
	for i, w := range ws {
		if w > 0 {
			categories++
		} else if obs[i] > 0 {
			impossible = true
		}
	}
	res.DF = categories - 1
	if impossible {
		res.Statistic = math.Inf(1)
		return res, nil
	}

	for i, w := range ws {
		if w == 0 {
			continue
		}
		e := total * w / wsum
		res.Statistic += (obs[i] - e) * (obs[i] - e) / e
	}
	if res.DF == 0 {
		res.PValue = 1
		return res, nil
	}
	res.PValue = distuv.ChiSquared{K: float64(res.DF)}.Survival(res.Statistic)

	return res, nil
}

func toFloats(xs []uint64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
