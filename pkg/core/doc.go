// Package core provides the fundamental data structures shared by the profile
// generator and the profile analyzer.
//
// This package contains the domain types that describe a one-dimensional
// giant-planet interior model:
//
//   - DensityProfile: ordered (mean radius, density) samples, outer surface first
//   - Descriptor: the 11-element parameter vector of a three-segment
//     piecewise-quadratic density law
//   - Error kinds: ErrInvalidArgument, ErrDegenerateBreakpoints, ErrLengthMismatch
//
// Example usage:
//
//	// Wrap existing samples into a validated, immutable profile
//	profile, err := core.NewDensityProfile(radii, densities)
//	if err != nil {
//	    return err
//	}
//
//	// Rescale normalized radii to meters
//	scaled, err := profile.Scaled(planet.MeanRadius)
//
//	// Interpret a raw parameter vector
//	x, err := core.DescriptorFromSlice(params)
//	if err != nil {
//	    return err
//	}
//	d10, d11, d21, d22, d32, d33 := x.BreakpointDensities()
//
// The core package is designed to be:
//   - Immutable (profiles copy on construction and on read)
//   - Free of planet-specific constants (those live in api/v1alpha1)
//   - Independent of logging and metrics
package core
