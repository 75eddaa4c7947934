// Package analyzer derives physical quantities from density profiles and
// compares interior models in gravity-harmonic space.
//
// A profile is treated as a stack of concentric constant-density shells: the
// shell between radii[k+1] and radii[k] has density densities[k], and the
// innermost sample is a full sphere. On that model the package computes
//
//   - TotalMass: (4π/3)·Σ Δρ_k·r_k³, where Δρ_k is the density jump at r_k
//   - CumulativeMass: mass enclosed within every sample radius, summed inside-out
//   - DensitiesFromCumulativeMass: the inverse of CumulativeMass
//   - HarmonicDistance: root-sum-square distance between two J_n sets in units
//     of their relative uncertainties
//   - RhoOfS / RhoOfM: density series normalized for plotting
//
// Example usage:
//
//	mtot, err := analyzer.TotalMass(radii, densities)
//	mvec, err := analyzer.CumulativeMass(radii, densities)
//	// mvec[0] == mtot within rounding
//
//	d, err := analyzer.HarmonicDistance(observed, candidate, relSigmas)
//	log.Info("candidate model", "distance", d)
//
// All functions are pure: inputs are never modified and outputs are freshly
// allocated. CumulativeMass accumulates sequentially from the center outward
// and must not be reordered.
package analyzer
