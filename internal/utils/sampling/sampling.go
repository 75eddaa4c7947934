// Package sampling provides the small numeric helpers shared by the profile
// generator and analyzer: radius grids, element-wise cubes and nearest-value
// lookups.
package sampling

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Descending returns n values evenly spaced from 1 down to 1/n inclusive.
// The center (z=0) is never sampled. n must be positive.
func Descending(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{1}
	}
	grid := floats.Span(make([]float64, n), 1, 1/float64(n))
	// Span interpolates; pin the endpoints so callers can rely on them exactly.
	grid[0], grid[n-1] = 1, 1/float64(n)
	return grid
}

// Cubes returns a new slice holding x^3 for every element of xs.
func Cubes(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x * x * x
	}
	return out
}

// ArgMinAbsDiff returns the first index i minimizing |xs[i] - target|, or -1
// when xs is empty. NaN entries never win.
func ArgMinAbsDiff(xs []float64, target float64) int {
	if len(xs) == 0 {
		return -1
	}
	diffs := make([]float64, len(xs))
	for i, x := range xs {
		d := math.Abs(x - target)
		if math.IsNaN(d) {
			d = math.Inf(1)
		}
		diffs[i] = d
	}
	return floats.MinIdx(diffs)
}

// Sum returns the sum of xs.
func Sum(xs []float64) float64 {
	return floats.Sum(xs)
}
