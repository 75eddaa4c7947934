package v1alpha1

import (
	"errors"
	"fmt"
	"math"
)

// GravityHarmonic is one zonal coefficient of a planet's external gravity field.
type GravityHarmonic struct {
	// Degree is the even harmonic degree n of J_n (2, 4, 6, ...).
	Degree int `json:"degree" yaml:"degree"`

	// Value is the dimensionless coefficient J_n.
	Value float64 `json:"value" yaml:"value"`

	// Uncertainty is the absolute 1-sigma uncertainty of Value.
	Uncertainty float64 `json:"uncertainty" yaml:"uncertainty"`
}

// PlanetConstants holds the observed vitals of a planet in SI units.
// Profile builders consume it read-only; nothing in this module mutates it.
type PlanetConstants struct {
	// Name identifies the planet (e.g., "jupiter").
	Name string `json:"name" yaml:"name"`

	// Mass is the planet's mass in kg.
	Mass float64 `json:"mass" yaml:"mass"`

	// MassUncertainty is the 1-sigma uncertainty of Mass in kg.
	MassUncertainty float64 `json:"massUncertainty,omitempty" yaml:"massUncertainty,omitempty"`

	// EquatorialRadius is the equatorial radius at the reference pressure level, in m.
	EquatorialRadius float64 `json:"equatorialRadius" yaml:"equatorialRadius"`

	// MeanRadius is the mean radius of the outer level surface, in m.
	// Normalized profile radii are multiplied by this value.
	MeanRadius float64 `json:"meanRadius" yaml:"meanRadius"`

	// ReferencePressure is the surface pressure at EquatorialRadius, in Pa.
	ReferencePressure float64 `json:"referencePressure,omitempty" yaml:"referencePressure,omitempty"`

	// Q is the rotation parameter w^2*a0^3/(GM), referenced to the equatorial radius.
	Q float64 `json:"q,omitempty" yaml:"q,omitempty"`

	// M is the rotation parameter w^2*s0^3/(GM), referenced to the mean radius.
	M float64 `json:"m,omitempty" yaml:"m,omitempty"`

	// Harmonics lists the observed zonal gravity harmonics in ascending degree.
	Harmonics []GravityHarmonic `json:"harmonics,omitempty" yaml:"harmonics,omitempty"`
}

var (
	errNonPositiveMass   = errors.New("mass must be positive")
	errNonPositiveRadius = errors.New("radii must be positive")
	errRadiusOrder       = errors.New("mean radius must not exceed equatorial radius")
	errHarmonicDegree    = errors.New("harmonic degrees must be even, positive and strictly ascending")
)

// Jupiter returns the observed constants for Jupiter.
//
// Mass: Guillot et al. (1994) Table I. Radii: Seidelmann et al. (2007) table 4,
// at the 1 bar level. Rotation: Hubbard (2013) Table 1, with m = q*(s/a)^3 for a
// typical model (s/a)^3 of 0.935292. Harmonics: Iess et al. (2018) Table 1.
func Jupiter() *PlanetConstants {
	const (
		mass = 1.8986112e27
		q    = 0.088822426
	)
	return &PlanetConstants{
		Name:              "jupiter",
		Mass:              mass,
		MassUncertainty:   4.7e-5 * mass,
		EquatorialRadius:  7.1492e7,
		MeanRadius:        6.9911e7,
		ReferencePressure: 1e5,
		Q:                 q,
		M:                 q * 0.935292,
		Harmonics: []GravityHarmonic{
			{Degree: 2, Value: 14696.572e-6, Uncertainty: 0.014e-6},
			{Degree: 4, Value: -586.609e-6, Uncertainty: 0.004e-6},
			{Degree: 6, Value: 34.198e-6, Uncertainty: 0.009e-6},
			{Degree: 8, Value: -2.426e-6, Uncertainty: 0.025e-6},
			{Degree: 10, Value: 0.172e-6, Uncertainty: 0.069e-6},
		},
	}
}

// Validate checks that the constants are physically usable.
func (p *PlanetConstants) Validate() error {
	if p == nil {
		return fmt.Errorf("planet constants cannot be nil")
	}
	if !(p.Mass > 0) || math.IsInf(p.Mass, 0) {
		return fmt.Errorf("%s: %w, got %g", p.Name, errNonPositiveMass, p.Mass)
	}
	if !(p.MeanRadius > 0) || !(p.EquatorialRadius > 0) {
		return fmt.Errorf("%s: %w, got mean=%g equatorial=%g", p.Name, errNonPositiveRadius, p.MeanRadius, p.EquatorialRadius)
	}
	if p.MeanRadius > p.EquatorialRadius {
		return fmt.Errorf("%s: %w (%g > %g)", p.Name, errRadiusOrder, p.MeanRadius, p.EquatorialRadius)
	}
	prev := 0
	for _, h := range p.Harmonics {
		if h.Degree <= prev || h.Degree%2 != 0 {
			return fmt.Errorf("%s: %w, got J%d after J%d", p.Name, errHarmonicDegree, h.Degree, prev)
		}
		prev = h.Degree
	}
	return nil
}

// MeanDensity returns Mass / (4π/3·MeanRadius³) in kg/m^3.
func (p *PlanetConstants) MeanDensity() float64 {
	return p.Mass / (4 * math.Pi / 3 * math.Pow(p.MeanRadius, 3))
}

// HarmonicValues returns J_n in ascending degree.
func (p *PlanetConstants) HarmonicValues() []float64 {
	out := make([]float64, len(p.Harmonics))
	for i, h := range p.Harmonics {
		out[i] = h.Value
	}
	return out
}

// RelativeUncertainties returns |dJ_n / J_n| in ascending degree. A zero
// coefficient yields +Inf.
func (p *PlanetConstants) RelativeUncertainties() []float64 {
	out := make([]float64, len(p.Harmonics))
	for i, h := range p.Harmonics {
		out[i] = math.Abs(h.Uncertainty / h.Value)
	}
	return out
}

// Harmonic returns the coefficient of the given degree.
func (p *PlanetConstants) Harmonic(degree int) (GravityHarmonic, bool) {
	for _, h := range p.Harmonics {
		if h.Degree == degree {
			return h, true
		}
	}
	return GravityHarmonic{}, false
}

// DeepCopy returns an independent copy of p.
func (p *PlanetConstants) DeepCopy() *PlanetConstants {
	if p == nil {
		return nil
	}
	out := *p
	if p.Harmonics != nil {
		out.Harmonics = make([]GravityHarmonic, len(p.Harmonics))
		copy(out.Harmonics, p.Harmonics)
	}
	return &out
}
