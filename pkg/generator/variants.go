package generator

import (
	"fmt"
	"math"
	"strings"

	"github.com/planetary-interiors/density-profiler/internal/logging"
	"github.com/planetary-interiors/density-profiler/pkg/analyzer"
	"github.com/planetary-interiors/density-profiler/pkg/core"
)

// Variant names a model family the Generator can build.
type Variant string

const (
	VariantReference    Variant = "reference"
	VariantLinear       Variant = "linear"
	VariantConstantCore Variant = "constant-core"
	VariantLinearCore   Variant = "linear-core"
)

// Variants lists every supported variant.
var Variants = []Variant{VariantReference, VariantLinear, VariantConstantCore, VariantLinearCore}

// ParseVariant maps a name onto a Variant. "type1" and "type2" are accepted
// for the constant-core and linear-core models.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(VariantReference):
		return VariantReference, nil
	case string(VariantLinear):
		return VariantLinear, nil
	case string(VariantConstantCore), "type1":
		return VariantConstantCore, nil
	case string(VariantLinearCore), "type2":
		return VariantLinearCore, nil
	default:
		return "", fmt.Errorf("%w: unknown model variant %q", core.ErrInvalidArgument, name)
	}
}

// NeedsCoreMass reports whether the variant is parameterized by a core mass.
func (v Variant) NeedsCoreMass() bool {
	return v == VariantConstantCore || v == VariantLinearCore
}

// Build dispatches to the named variant. coreMass is ignored by variants that
// do not substitute a core.
func (g *Generator) Build(v Variant, coreMass float64) (*core.DensityProfile, error) {
	switch v {
	case VariantReference:
		return g.Reference()
	case VariantLinear:
		return g.Linear()
	case VariantConstantCore:
		return g.ConstantCore(coreMass)
	case VariantLinearCore:
		return g.LinearCore(coreMass)
	default:
		return nil, fmt.Errorf("%w: unknown model variant %q", core.ErrInvalidArgument, v)
	}
}

// linearShape fixes the relative densities of the linear model: zero at the
// surface, small jump at z1=0.8, larger jump at z2=0.2. Linear scales it to the
// planet's mass.
var linearShape = core.Descriptor{
	0, 0, 1,
	0, 0.25, 2.75,
	0, 2, 1,
	0.8, 0.2,
}

// LinearDescriptor returns the linear model's descriptor: all curvatures zero,
// breakpoints at 0.8 and 0.2, and density terms scaled so the profile's total
// mass equals the planet's mass. With zero curvatures the sampled densities,
// and hence the mass, are linear in the density terms, so one evaluation of
// the unit shape gives the scale factor.
func (g *Generator) LinearDescriptor() (core.Descriptor, error) {
	shape, err := g.buildScaled(linearShape)
	if err != nil {
		return core.Descriptor{}, err
	}
	shapeMass, err := analyzer.ProfileMass(shape)
	if err != nil {
		return core.Descriptor{}, err
	}
	if !(shapeMass > 0) {
		return core.Descriptor{}, fmt.Errorf("%w: linear shape has no mass on %d samples", core.ErrInvalidArgument, g.samples)
	}
	scale := g.planet.Mass / shapeMass

	x := linearShape
	for _, i := range []int{core.IdxY10, core.IdxY11, core.IdxY21, core.IdxY22, core.IdxY32, core.IdxY33} {
		x[i] *= scale
	}
	return x, nil
}

// Linear returns the linear model in real units.
func (g *Generator) Linear() (*core.DensityProfile, error) {
	p, err := g.buildLinear()
	g.recorder.RecordBuild(string(VariantLinear), err)
	return p, err
}

func (g *Generator) buildLinear() (*core.DensityProfile, error) {
	x, err := g.LinearDescriptor()
	if err != nil {
		return nil, err
	}
	return g.buildScaled(x)
}

// ConstantCore ("type 1") returns the reference model with every sample inside
// the core radius replaced by a single density, chosen so the core holds
// exactly targetCoreMass.
//
// The core radius Rc is the radius of the first sample whose enclosed mass in
// the reference model is closest to targetCoreMass. The outer samples are left
// alone, so the total mass changes by targetCoreMass minus the reference mass
// enclosed by Rc. If the closest sample is the innermost one the reference
// model is returned unchanged.
func (g *Generator) ConstantCore(targetCoreMass float64) (*core.DensityProfile, error) {
	p, err := g.substituteCore(VariantConstantCore, targetCoreMass, fillConstantCore)
	g.recorder.RecordBuild(string(VariantConstantCore), err)
	return p, err
}

// LinearCore ("type 2") returns the reference model with a linear density ramp
// inside the core radius. The ramp keeps the reference density at the
// innermost sample and its slope is solved so the core holds exactly
// targetCoreMass. The core radius is located as in ConstantCore, so the total
// mass matches the reference model up to the nearest-sample mismatch at Rc.
//
// Small core masses around a dense center can drive the ramp below zero near
// Rc; such densities are returned as is (see core.DensityProfile.HasNegativeDensity).
func (g *Generator) LinearCore(targetCoreMass float64) (*core.DensityProfile, error) {
	p, err := g.substituteCore(VariantLinearCore, targetCoreMass, fillLinearCore)
	g.recorder.RecordBuild(string(VariantLinearCore), err)
	return p, err
}

// coreFill overwrites densities[idx:] so the core inside radii[idx] holds mass.
type coreFill func(radii, densities []float64, idx int, mass float64)

func (g *Generator) substituteCore(v Variant, targetCoreMass float64, fill coreFill) (*core.DensityProfile, error) {
	if math.IsNaN(targetCoreMass) || math.IsInf(targetCoreMass, 0) || targetCoreMass < 0 {
		return nil, fmt.Errorf("%w: core mass must be finite and non-negative, got %g", core.ErrInvalidArgument, targetCoreMass)
	}
	ref, err := g.buildReference()
	if err != nil {
		return nil, err
	}
	// Radii and Densities hand out copies; the reference stays untouched.
	radii, densities := ref.Radii(), ref.Densities()
	mvec, err := analyzer.CumulativeMass(radii, densities)
	if err != nil {
		return nil, err
	}

	idx := analyzer.NearestMassIndex(mvec, targetCoreMass)
	last := len(radii) - 1
	if idx == last {
		g.logger.V(logging.DEBUG).Info("Core smaller than one sample, keeping reference model",
			"variant", v,
			"targetCoreMass", targetCoreMass)
		return ref, nil
	}

	fill(radii, densities, idx, targetCoreMass)
	g.recorder.RecordCoreRadius(string(v), radii[idx]/g.planet.MeanRadius)
	g.logger.V(logging.DEBUG).Info("Substituted core",
		"variant", v,
		"targetCoreMass", targetCoreMass,
		"referenceCoreMass", mvec[idx],
		"coreIndex", idx,
		"coreRadius", radii[idx],
		"centralDensity", densities[last])
	return ref.WithDensities(densities)
}

// fillConstantCore sets rho_c = mass / (4π/3·Rc³) from idx to the center.
func fillConstantCore(radii, densities []float64, idx int, mass float64) {
	rc := radii[idx]
	rhoC := mass / (4 * math.Pi / 3 * rc * rc * rc)
	for k := idx; k < len(densities); k++ {
		densities[k] = rhoC
	}
}

// fillLinearCore sets rho(r_k) = rho0 + s·(r_k - r_inner) from idx to the
// center, where rho0 is the current innermost density. Under the shell model
// the enclosed mass is rho0·(4π/3)·Rc³ + s·W with W = Σ (r_k - r_inner)·V_k,
// which gives s in closed form. W > 0 whenever idx is not the innermost sample.
func fillLinearCore(radii, densities []float64, idx int, mass float64) {
	last := len(radii) - 1
	rInner := radii[last]
	rho0 := densities[last]
	rc := radii[idx]

	var w float64
	for k := idx; k < last; k++ {
		shell := 4 * math.Pi / 3 * (cube(radii[k]) - cube(radii[k+1]))
		w += (radii[k] - rInner) * shell
	}
	slope := (mass - rho0*4*math.Pi/3*rc*rc*rc) / w
	for k := idx; k <= last; k++ {
		densities[k] = rho0 + slope*(radii[k]-rInner)
	}
}

func cube(x float64) float64 {
	return x * x * x
}
