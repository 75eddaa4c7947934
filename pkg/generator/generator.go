package generator

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/planetary-interiors/density-profiler/api/v1alpha1"
	"github.com/planetary-interiors/density-profiler/pkg/core"
)

// DefaultSamples is the number of radial samples in every variant unless
// WithSamples says otherwise.
const DefaultSamples = 1024

// ReferenceDescriptor is the empirically fit Jupiter baseline. Its total mass
// is within a few tenths of a percent of Jupiter's at DefaultSamples.
var ReferenceDescriptor = core.Descriptor{
	-1300, 0, 1180,    // a1, y10, y11
	-2600, 260, 2050,  // a2, y21, y22
	-6000, 3500, 2400, // a3, y32, y33
	0.77, 0.15,        // z1, z2
}

// Recorder receives build outcomes. internal/metrics provides a Prometheus
// implementation.
type Recorder interface {
	// RecordBuild counts a finished build; a non-nil err is a failure.
	RecordBuild(variant string, err error)
	// RecordCoreRadius reports the normalized radius of a substituted core.
	RecordCoreRadius(variant string, z float64)
}

type noopRecorder struct{}

func (noopRecorder) RecordBuild(string, error)        {}
func (noopRecorder) RecordCoreRadius(string, float64) {}

// Generator builds the named model variants for one planet.
type Generator struct {
	planet    *v1alpha1.PlanetConstants
	samples   int
	reference core.Descriptor
	logger    logr.Logger
	recorder  Recorder
}

// Option configures a Generator.
type Option func(*Generator)

// WithSamples sets the number of radial samples.
func WithSamples(n int) Option {
	return func(g *Generator) { g.samples = n }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger logr.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithRecorder sets the build recorder. A nil recorder is ignored.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithReferenceDescriptor replaces the baseline descriptor used by Reference
// and by the core-substitution variants.
func WithReferenceDescriptor(x core.Descriptor) Option {
	return func(g *Generator) { g.reference = x }
}

// New creates a Generator for the given planet. The constants are copied, so
// later changes by the caller do not affect the Generator.
func New(planet *v1alpha1.PlanetConstants, opts ...Option) (*Generator, error) {
	if err := planet.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidArgument, err)
	}
	g := &Generator{
		planet:    planet.DeepCopy(),
		samples:   DefaultSamples,
		reference: ReferenceDescriptor,
		logger:    logr.Discard(),
		recorder:  noopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.samples <= 0 {
		return nil, fmt.Errorf("%w: sample count must be positive, got %d", core.ErrInvalidArgument, g.samples)
	}
	return g, nil
}

// Planet returns a copy of the constants the Generator was built with.
func (g *Generator) Planet() *v1alpha1.PlanetConstants {
	return g.planet.DeepCopy()
}

// Samples returns the number of radial samples per profile.
func (g *Generator) Samples() int {
	return g.samples
}

// Reference returns the baseline model in real units: radii in meters,
// densities in kg/m^3.
func (g *Generator) Reference() (*core.DensityProfile, error) {
	p, err := g.buildReference()
	g.recorder.RecordBuild(string(VariantReference), err)
	return p, err
}

func (g *Generator) buildReference() (*core.DensityProfile, error) {
	return g.buildScaled(g.reference)
}

// buildScaled builds x on the Generator's grid and rescales by the mean radius.
func (g *Generator) buildScaled(x core.Descriptor) (*core.DensityProfile, error) {
	normalized, err := buildFromDescriptor(g.samples, x)
	if err != nil {
		return nil, err
	}
	return normalized.Scaled(g.planet.MeanRadius)
}
