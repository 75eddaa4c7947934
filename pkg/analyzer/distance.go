package analyzer

import (
	"fmt"
	"math"

	"github.com/planetary-interiors/density-profiler/pkg/core"
)

// HarmonicDistance returns the normalized distance between two sets of gravity
// harmonics:
//
//	sqrt( Σ ((a[i] - b[i]) / (uncertainties[i]·a[i]))² )
//
// uncertainties are relative to a, so each is scaled by the matching
// coefficient of a before use. All three sequences must have equal length.
//
// A zero coefficient in a gives a zero scaled uncertainty; the resulting term
// is +Inf (or NaN when b matches it exactly) and propagates into the result.
func HarmonicDistance(a, b, uncertainties []float64) (float64, error) {
	if len(a) != len(b) || len(a) != len(uncertainties) {
		return 0, fmt.Errorf("%w: model_a has %d coefficients, model_b %d, uncertainties %d",
			core.ErrLengthMismatch, len(a), len(b), len(uncertainties))
	}
	var sum float64
	for i := range a {
		sigma := uncertainties[i] * a[i]
		term := (a[i] - b[i]) / sigma
		sum += term * term
	}
	return math.Sqrt(sum), nil
}
