// Package generator builds one-dimensional radial density profiles for
// giant-planet interior models.
//
// The primitive is BuildPiecewiseQuadratic, which turns an 11-element
// core.Descriptor into N samples of a three-segment piecewise-quadratic
// density law in normalized radius. Each segment is smooth; the density may
// jump at the two breakpoints, which model compositional boundaries.
//
// A Generator wraps the primitive with a planet's constants and produces the
// named model variants:
//
//   - Reference: a fixed Jupiter-fit descriptor, rescaled to real radii
//   - Linear: zero curvatures, breakpoints at 0.8 and 0.2, densities scaled
//     in closed form so the total mass equals the planet's mass
//   - ConstantCore ("type 1"): reference model with a uniform-density core of
//     a requested mass
//   - LinearCore ("type 2"): reference model with a linear-density core of a
//     requested mass that keeps the central density
//
// Example usage:
//
//	gen, err := generator.New(v1alpha1.Jupiter(),
//	    generator.WithSamples(2048),
//	    generator.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//
//	profile, err := gen.LinearCore(10 * earthMass)
//	if err != nil {
//	    return err
//	}
//	mass, err := analyzer.ProfileMass(profile)
//
// Planet constants are injected, never looked up globally, so a different
// planet is a different Generator. A Generator is immutable after New and
// safe for concurrent use.
package generator
