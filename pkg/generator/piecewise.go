package generator

import (
	"fmt"

	"github.com/planetary-interiors/density-profiler/internal/utils/sampling"
	"github.com/planetary-interiors/density-profiler/pkg/core"
)

// quadratic is rho(z) = a*z^2 + b*z + c.
type quadratic struct {
	a, b, c float64
}

func (q quadratic) at(z float64) float64 {
	return q.a*z*z + q.b*z + q.c
}

// segments holds the solved upper envelope, lower envelope and core laws.
type segments struct {
	z1, z2             float64
	upper, lower, core quadratic
}

func (s segments) at(z float64) float64 {
	switch {
	case z > s.z1:
		return s.upper.at(z)
	case z > s.z2:
		return s.lower.at(z)
	default:
		return s.core.at(z)
	}
}

// solveSegments fits each segment through its two boundary densities given
// its curvature. Zero-width segments cannot be solved.
func solveSegments(x core.Descriptor) (segments, error) {
	a1, a2, a3 := x.Curvatures()
	z1, z2 := x.Breakpoints()
	d10, d11, d21, d22, d32, d33 := x.BreakpointDensities()

	switch {
	case z1 == 1:
		return segments{}, fmt.Errorf("%w: upper breakpoint z1 coincides with the surface", core.ErrDegenerateBreakpoints)
	case z1 == z2:
		return segments{}, fmt.Errorf("%w: z1 == z2 == %g leaves the lower envelope with zero width", core.ErrDegenerateBreakpoints, z1)
	case z2 == 0:
		return segments{}, fmt.Errorf("%w: lower breakpoint z2 coincides with the center", core.ErrDegenerateBreakpoints)
	}

	// upper envelope: d10 at z=1, d11 at z1
	b1 := (d11-d10)/(z1-1) - a1*(z1+1)
	c1 := d10 - a1 - b1

	// lower envelope: d21 at z1, d22 at z2
	b2 := (d22-d21)/(z2-z1) - a2*(z2+z1)
	c2 := d21 - a2*z1*z1 - b2*z1

	// core: d32 at z2, d33 at z=0
	b3 := (d32-d33)/z2 - a3*z2
	c3 := d33

	return segments{
		z1:    z1,
		z2:    z2,
		upper: quadratic{a: a1, b: b1, c: c1},
		lower: quadratic{a: a2, b: b2, c: c2},
		core:  quadratic{a: a3, b: b3, c: c3},
	}, nil
}

// BuildPiecewiseQuadratic returns an n-sample density profile from the
// piecewise-quadratic descriptor x (see core.Descriptor).
//
// The radii are normalized (r / R) and evenly spaced from 1 down to 1/n; the
// center itself is not sampled. Densities are in the units of x. Rescaling
// the radii to real units is left to the caller.
//
// Inputs close to, but not exactly at, a degenerate configuration can produce
// NaN or Inf densities; those are returned as is.
func BuildPiecewiseQuadratic(n int, x []float64) (*core.DensityProfile, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: sample count must be positive, got %d", core.ErrInvalidArgument, n)
	}
	desc, err := core.DescriptorFromSlice(x)
	if err != nil {
		return nil, err
	}
	return buildFromDescriptor(n, desc)
}

func buildFromDescriptor(n int, x core.Descriptor) (*core.DensityProfile, error) {
	segs, err := solveSegments(x)
	if err != nil {
		return nil, err
	}
	zvec := sampling.Descending(n)
	dvec := make([]float64, n)
	for k, z := range zvec {
		dvec[k] = segs.at(z)
	}
	return core.NewDensityProfile(zvec, dvec)
}
