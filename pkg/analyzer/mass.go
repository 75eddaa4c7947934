package analyzer

import (
	"fmt"
	"math"

	"github.com/planetary-interiors/density-profiler/internal/utils/sampling"
	"github.com/planetary-interiors/density-profiler/pkg/core"
)

// fourThirdsPi is the volume of a unit sphere.
const fourThirdsPi = 4 * math.Pi / 3

// TotalMass returns the mass implied by a density profile.
//
// radii are the mean radii of constant-density surfaces, outer surface first,
// and densities the density on each of them, both in real units. The outermost
// density jump is taken from vacuum.
func TotalMass(radii, densities []float64) (float64, error) {
	if err := checkSamples(radii, densities); err != nil {
		return 0, err
	}
	cubes := sampling.Cubes(radii)
	jumps := make([]float64, len(densities))
	jumps[0] = densities[0] * cubes[0]
	for k := 1; k < len(densities); k++ {
		jumps[k] = (densities[k] - densities[k-1]) * cubes[k]
	}
	return fourThirdsPi * sampling.Sum(jumps), nil
}

// CumulativeMass returns, for every sample k, the mass inside radii[k].
// Because radii[0] is the outer surface, the first element is the total mass.
func CumulativeMass(radii, densities []float64) ([]float64, error) {
	if err := checkSamples(radii, densities); err != nil {
		return nil, err
	}
	n := len(radii)
	mvec := make([]float64, n)
	// the innermost layer is a full sphere
	mvec[n-1] = fourThirdsPi * densities[n-1] * cube(radii[n-1])
	for k := n - 1; k > 0; k-- {
		mvec[k-1] = mvec[k] + fourThirdsPi*densities[k-1]*(cube(radii[k-1])-cube(radii[k]))
	}
	return mvec, nil
}

// DensitiesFromCumulativeMass recovers shell densities from the enclosed-mass
// sequence produced by CumulativeMass on the same radii.
func DensitiesFromCumulativeMass(radii, cumulative []float64) ([]float64, error) {
	if err := checkSamples(radii, cumulative); err != nil {
		return nil, err
	}
	n := len(radii)
	densities := make([]float64, n)
	densities[n-1] = cumulative[n-1] / (fourThirdsPi * cube(radii[n-1]))
	for k := 0; k < n-1; k++ {
		densities[k] = (cumulative[k] - cumulative[k+1]) / (fourThirdsPi * (cube(radii[k]) - cube(radii[k+1])))
	}
	return densities, nil
}

// ProfileMass is TotalMass for a DensityProfile.
func ProfileMass(p *core.DensityProfile) (float64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: nil profile", core.ErrInvalidArgument)
	}
	return TotalMass(p.Radii(), p.Densities())
}

// ProfileCumulativeMass is CumulativeMass for a DensityProfile.
func ProfileCumulativeMass(p *core.DensityProfile) ([]float64, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil profile", core.ErrInvalidArgument)
	}
	return CumulativeMass(p.Radii(), p.Densities())
}

// NearestMassIndex returns the first index whose enclosed mass is closest to
// target, or -1 for an empty sequence. This is a nearest-sample lookup; no
// interpolation between bracketing samples is attempted.
func NearestMassIndex(cumulative []float64, target float64) int {
	return sampling.ArgMinAbsDiff(cumulative, target)
}

func checkSamples(radii, values []float64) error {
	if len(radii) == 0 {
		return fmt.Errorf("%w: profile must have at least one sample", core.ErrInvalidArgument)
	}
	if len(radii) != len(values) {
		return fmt.Errorf("%w: %d radii but %d values", core.ErrLengthMismatch, len(radii), len(values))
	}
	return nil
}

func cube(x float64) float64 {
	return x * x * x
}
