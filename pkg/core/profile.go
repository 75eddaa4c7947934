package core

import (
	"fmt"
)

// DensityProfile is an ordered set of (mean radius, density) samples.
// Radii are strictly decreasing, so index 0 is the outer surface and the last
// index is the sample closest to the center. A profile never changes once
// constructed; methods that "modify" it return a new profile.
type DensityProfile struct {
	radii     []float64
	densities []float64
}

// NewDensityProfile validates and copies the given samples.
func NewDensityProfile(radii, densities []float64) (*DensityProfile, error) {
	if len(radii) == 0 {
		return nil, fmt.Errorf("%w: profile must have at least one sample", ErrInvalidArgument)
	}
	if len(radii) != len(densities) {
		return nil, fmt.Errorf("%w: %d radii but %d densities", ErrLengthMismatch, len(radii), len(densities))
	}
	for k := 1; k < len(radii); k++ {
		if !(radii[k] < radii[k-1]) {
			return nil, fmt.Errorf("%w: radii must be strictly decreasing, got r[%d]=%g after r[%d]=%g",
				ErrInvalidArgument, k, radii[k], k-1, radii[k-1])
		}
	}
	return newProfile(clone(radii), clone(densities)), nil
}

// newProfile takes ownership of the slices without validation.
func newProfile(radii, densities []float64) *DensityProfile {
	return &DensityProfile{radii: radii, densities: densities}
}

// Len returns the number of samples.
func (p *DensityProfile) Len() int {
	return len(p.radii)
}

// Radii returns a copy of the sample radii, outer surface first.
func (p *DensityProfile) Radii() []float64 {
	return clone(p.radii)
}

// Densities returns a copy of the sample densities.
func (p *DensityProfile) Densities() []float64 {
	return clone(p.densities)
}

// Radius returns the radius of sample i.
func (p *DensityProfile) Radius(i int) float64 {
	return p.radii[i]
}

// Density returns the density of sample i.
func (p *DensityProfile) Density(i int) float64 {
	return p.densities[i]
}

// OuterRadius returns the radius of the outermost sample.
func (p *DensityProfile) OuterRadius() float64 {
	return p.radii[0]
}

// InnerRadius returns the radius of the sample closest to the center.
func (p *DensityProfile) InnerRadius() float64 {
	return p.radii[len(p.radii)-1]
}

// Scaled returns a new profile with every radius multiplied by factor.
// Densities are unchanged. factor must be positive.
func (p *DensityProfile) Scaled(factor float64) (*DensityProfile, error) {
	if !(factor > 0) {
		return nil, fmt.Errorf("%w: scale factor must be positive, got %g", ErrInvalidArgument, factor)
	}
	radii := make([]float64, len(p.radii))
	for i, r := range p.radii {
		radii[i] = r * factor
	}
	return newProfile(radii, clone(p.densities)), nil
}

// WithDensities returns a new profile on the same radius grid with the given
// densities.
func (p *DensityProfile) WithDensities(densities []float64) (*DensityProfile, error) {
	if len(densities) != len(p.radii) {
		return nil, fmt.Errorf("%w: %d radii but %d densities", ErrLengthMismatch, len(p.radii), len(densities))
	}
	return newProfile(clone(p.radii), clone(densities)), nil
}

// HasNegativeDensity reports whether any sample has a density below zero.
func (p *DensityProfile) HasNegativeDensity() bool {
	for _, d := range p.densities {
		if d < 0 {
			return true
		}
	}
	return false
}

func clone(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	return out
}
