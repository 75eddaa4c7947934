package generator

import (
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/planetary-interiors/density-profiler/api/v1alpha1"
	"github.com/planetary-interiors/density-profiler/internal/logging"
	"github.com/planetary-interiors/density-profiler/pkg/analyzer"
	"github.com/planetary-interiors/density-profiler/pkg/core"
)

const earthMass = 5.9722e24

// fakeRecorder counts builds per variant.
type fakeRecorder struct {
	mu       sync.Mutex
	builds   map[string]int
	failures map[string]int
	radii    map[string]float64
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		builds:   make(map[string]int),
		failures: make(map[string]int),
		radii:    make(map[string]float64),
	}
}

func (f *fakeRecorder) RecordBuild(variant string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.failures[variant]++
		return
	}
	f.builds[variant]++
}

func (f *fakeRecorder) RecordCoreRadius(variant string, z float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.radii[variant] = z
}

func mustMass(p *core.DensityProfile) float64 {
	m, err := analyzer.ProfileMass(p)
	Expect(err).NotTo(HaveOccurred())
	return m
}

func mustCumulative(p *core.DensityProfile) []float64 {
	mvec, err := analyzer.ProfileCumulativeMass(p)
	Expect(err).NotTo(HaveOccurred())
	return mvec
}

var _ = Describe("Generator", func() {
	var (
		jupiter  *v1alpha1.PlanetConstants
		gen      *Generator
		recorder *fakeRecorder
	)

	BeforeEach(func() {
		var err error
		jupiter = v1alpha1.Jupiter()
		recorder = newFakeRecorder()
		gen, err = New(jupiter, WithLogger(logging.NewTestLogger()), WithRecorder(recorder))
		Expect(err).NotTo(HaveOccurred())
	})

	Context("construction", func() {
		It("should reject missing or invalid constants", func() {
			_, err := New(nil)
			Expect(err).To(MatchError(core.ErrInvalidArgument))

			bad := v1alpha1.Jupiter()
			bad.Mass = -1
			_, err = New(bad)
			Expect(err).To(MatchError(core.ErrInvalidArgument))
		})

		It("should reject a non-positive sample count", func() {
			_, err := New(jupiter, WithSamples(0))
			Expect(err).To(MatchError(core.ErrInvalidArgument))
		})

		It("should copy the injected constants", func() {
			jupiter.MeanRadius = 1
			Expect(gen.Planet().MeanRadius).To(Equal(6.9911e7))
			Expect(gen.Samples()).To(Equal(DefaultSamples))
		})

		It("should ignore a nil recorder", func() {
			g, err := New(jupiter, WithRecorder(nil))
			Expect(err).NotTo(HaveOccurred())
			_, err = g.Reference()
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("reference model", func() {
		It("should span the planet's mean radius", func() {
			p, err := gen.Reference()
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Len()).To(Equal(DefaultSamples))
			Expect(p.OuterRadius()).To(Equal(jupiter.MeanRadius))
			Expect(p.InnerRadius()).To(BeNumerically("~", jupiter.MeanRadius/DefaultSamples, 1e-6))
		})

		It("should approximately match the planet's mass", func() {
			p, err := gen.Reference()
			Expect(err).NotTo(HaveOccurred())
			Expect(mustMass(p) / jupiter.Mass).To(BeNumerically("~", 1, 0.01))
		})

		It("should have non-negative densities that never decrease inward", func() {
			p, err := gen.Reference()
			Expect(err).NotTo(HaveOccurred())
			Expect(p.HasNegativeDensity()).To(BeFalse())
			d := p.Densities()
			for k := 1; k < len(d); k++ {
				Expect(d[k]).To(BeNumerically(">=", d[k-1]))
			}
		})

		It("should honor an overriding descriptor", func() {
			x := ReferenceDescriptor
			x[core.IdxY33] += 1000
			g, err := New(jupiter, WithReferenceDescriptor(x))
			Expect(err).NotTo(HaveOccurred())
			p, err := g.Reference()
			Expect(err).NotTo(HaveOccurred())
			base, err := gen.Reference()
			Expect(err).NotTo(HaveOccurred())
			Expect(mustMass(p)).To(BeNumerically(">", mustMass(base)))
		})

		It("should fail on a degenerate overriding descriptor", func() {
			x := ReferenceDescriptor
			x[core.IdxZ2] = x[core.IdxZ1]
			g, err := New(jupiter, WithReferenceDescriptor(x), WithRecorder(recorder))
			Expect(err).NotTo(HaveOccurred())
			_, err = g.Reference()
			Expect(err).To(MatchError(core.ErrDegenerateBreakpoints))
			_, err = g.ConstantCore(earthMass)
			Expect(err).To(MatchError(core.ErrDegenerateBreakpoints))
			Expect(recorder.failures[string(VariantReference)]).To(Equal(1))
			Expect(recorder.failures[string(VariantConstantCore)]).To(Equal(1))
		})

		It("should be recorded", func() {
			_, err := gen.Reference()
			Expect(err).NotTo(HaveOccurred())
			Expect(recorder.builds[string(VariantReference)]).To(Equal(1))
		})
	})

	Context("linear model", func() {
		It("should use straight segments with breakpoints at 0.8 and 0.2", func() {
			x, err := gen.LinearDescriptor()
			Expect(err).NotTo(HaveOccurred())
			a1, a2, a3 := x.Curvatures()
			Expect([]float64{a1, a2, a3}).To(Equal([]float64{0, 0, 0}))
			z1, z2 := x.Breakpoints()
			Expect(z1).To(Equal(0.8))
			Expect(z2).To(Equal(0.2))
		})

		It("should match the planet's mass exactly", func() {
			p, err := gen.Linear()
			Expect(err).NotTo(HaveOccurred())
			Expect(mustMass(p)).To(BeNumerically("~", jupiter.Mass, 1e-12*jupiter.Mass))
			Expect(p.HasNegativeDensity()).To(BeFalse())
			Expect(p.OuterRadius()).To(Equal(jupiter.MeanRadius))
		})

		It("should match the mass for any sample count", func() {
			for _, n := range []int{16, 333, 4096} {
				g, err := New(jupiter, WithSamples(n))
				Expect(err).NotTo(HaveOccurred())
				p, err := g.Linear()
				Expect(err).NotTo(HaveOccurred())
				Expect(p.Len()).To(Equal(n))
				Expect(mustMass(p)).To(BeNumerically("~", jupiter.Mass, 1e-12*jupiter.Mass))
			}
		})

		It("should follow the planet it was built for", func() {
			planet := v1alpha1.Jupiter()
			planet.Name = "half-jupiter"
			planet.Mass /= 2
			g, err := New(planet)
			Expect(err).NotTo(HaveOccurred())
			p, err := g.Linear()
			Expect(err).NotTo(HaveOccurred())
			Expect(mustMass(p)).To(BeNumerically("~", planet.Mass, 1e-12*planet.Mass))
		})
	})

	Context("core substitution", func() {
		var (
			ref     *core.DensityProfile
			refMass float64
			refCum  []float64
		)

		BeforeEach(func() {
			var err error
			ref, err = gen.Reference()
			Expect(err).NotTo(HaveOccurred())
			refMass = mustMass(ref)
			refCum = mustCumulative(ref)
		})

		DescribeTable("a zero core mass keeps the reference model",
			func(build func(float64) (*core.DensityProfile, error)) {
				p, err := build(0)
				Expect(err).NotTo(HaveOccurred())
				Expect(p.Radii()).To(Equal(ref.Radii()))
				Expect(p.Densities()).To(Equal(ref.Densities()))
			},
			Entry("constant core", func(m float64) (*core.DensityProfile, error) { return gen.ConstantCore(m) }),
			Entry("linear core", func(m float64) (*core.DensityProfile, error) { return gen.LinearCore(m) }),
		)

		DescribeTable("invalid core masses are rejected",
			func(mass float64) {
				_, err := gen.ConstantCore(mass)
				Expect(err).To(MatchError(core.ErrInvalidArgument))
				_, err = gen.LinearCore(mass)
				Expect(err).To(MatchError(core.ErrInvalidArgument))
			},
			Entry("negative", -earthMass),
			Entry("NaN", math.NaN()),
			Entry("infinite", math.Inf(1)),
		)

		It("should leave the outer region untouched", func() {
			mc := 10 * earthMass
			idx := analyzer.NearestMassIndex(refCum, mc)
			Expect(idx).To(BeNumerically(">", 0))
			Expect(idx).To(BeNumerically("<", ref.Len()-1))

			for _, build := range []func(float64) (*core.DensityProfile, error){gen.ConstantCore, gen.LinearCore} {
				p, err := build(mc)
				Expect(err).NotTo(HaveOccurred())
				Expect(p.Radii()).To(Equal(ref.Radii()))
				Expect(p.Densities()[:idx]).To(Equal(ref.Densities()[:idx]))
			}
		})

		It("should not modify the reference model", func() {
			before := ref.Densities()
			_, err := gen.ConstantCore(30 * earthMass)
			Expect(err).NotTo(HaveOccurred())
			_, err = gen.LinearCore(30 * earthMass)
			Expect(err).NotTo(HaveOccurred())
			Expect(ref.Densities()).To(Equal(before))
			again, err := gen.Reference()
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Densities()).To(Equal(before))
		})

		Context("with a constant-density core", func() {
			It("should fill the core with one density holding the target mass", func() {
				mc := 10 * earthMass
				idx := analyzer.NearestMassIndex(refCum, mc)
				p, err := gen.ConstantCore(mc)
				Expect(err).NotTo(HaveOccurred())

				d := p.Densities()
				rc := p.Radius(idx)
				rhoC := mc / (4 * math.Pi / 3 * rc * rc * rc)
				for k := idx; k < len(d); k++ {
					Expect(d[k]).To(Equal(d[idx]))
				}
				Expect(d[idx]).To(BeNumerically("~", rhoC, 1e-9*rhoC))

				cum := mustCumulative(p)
				Expect(cum[idx]).To(BeNumerically("~", mc, 1e-9*mc))
			})

			It("should shift the total mass by the core mass difference", func() {
				for _, mc := range []float64{earthMass, 10 * earthMass, 1e26, 5e26} {
					idx := analyzer.NearestMassIndex(refCum, mc)
					p, err := gen.ConstantCore(mc)
					Expect(err).NotTo(HaveOccurred())
					shift := mustMass(p) - refMass
					Expect(shift).To(BeNumerically("~", mc-refCum[idx], 1e-10*refMass))
				}
			})

			It("should record the normalized core radius", func() {
				mc := 10 * earthMass
				idx := analyzer.NearestMassIndex(refCum, mc)
				_, err := gen.ConstantCore(mc)
				Expect(err).NotTo(HaveOccurred())
				Expect(recorder.radii[string(VariantConstantCore)]).To(BeNumerically("~", ref.Radius(idx)/jupiter.MeanRadius, 1e-12))
				Expect(recorder.builds[string(VariantConstantCore)]).To(Equal(1))
			})
		})

		Context("with a linear-density core", func() {
			It("should keep the central density", func() {
				p, err := gen.LinearCore(10 * earthMass)
				Expect(err).NotTo(HaveOccurred())
				last := p.Len() - 1
				Expect(p.Density(last)).To(Equal(ref.Density(last)))
			})

			It("should ramp linearly in radius and hold the target mass", func() {
				mc := 10 * earthMass
				idx := analyzer.NearestMassIndex(refCum, mc)
				p, err := gen.LinearCore(mc)
				Expect(err).NotTo(HaveOccurred())

				last := p.Len() - 1
				slope := (p.Density(idx) - p.Density(last)) / (p.Radius(idx) - p.Radius(last))
				for k := idx; k < last; k++ {
					want := p.Density(last) + slope*(p.Radius(k)-p.Radius(last))
					Expect(p.Density(k)).To(BeNumerically("~", want, 1e-6))
				}
				cum := mustCumulative(p)
				Expect(cum[idx]).To(BeNumerically("~", mc, 1e-9*mc))
				Expect(p.HasNegativeDensity()).To(BeFalse())
			})

			It("should preserve the total mass up to the nearest-sample mismatch", func() {
				for _, mc := range []float64{earthMass, 10 * earthMass, 1e26, 5e26, 1e27} {
					Expect(mc).To(BeNumerically("<=", refMass))
					p, err := gen.LinearCore(mc)
					Expect(err).NotTo(HaveOccurred())
					Expect(mustMass(p)).To(BeNumerically("~", refMass, 1e-3*refMass))
				}
			})

			It("should preserve the total mass exactly when the target falls on a sample", func() {
				for _, idx := range []int{200, 512, 900} {
					mc := refCum[idx]
					p, err := gen.LinearCore(mc)
					Expect(err).NotTo(HaveOccurred())
					Expect(mustMass(p)).To(BeNumerically("~", refMass, 1e-10*refMass))
				}
			})
		})
	})

	Context("variant dispatch", func() {
		DescribeTable("ParseVariant",
			func(name string, want Variant, wantErr bool) {
				got, err := ParseVariant(name)
				if wantErr {
					Expect(err).To(MatchError(core.ErrInvalidArgument))
					return
				}
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want))
			},
			Entry("reference", "reference", VariantReference, false),
			Entry("linear", "Linear", VariantLinear, false),
			Entry("constant core", "constant-core", VariantConstantCore, false),
			Entry("type 1 alias", "type1", VariantConstantCore, false),
			Entry("linear core", " linear-core ", VariantLinearCore, false),
			Entry("type 2 alias", "TYPE2", VariantLinearCore, false),
			Entry("unknown", "polytrope", Variant(""), true),
		)

		It("should build every variant", func() {
			for _, v := range Variants {
				p, err := gen.Build(v, 10*earthMass)
				Expect(err).NotTo(HaveOccurred(), string(v))
				Expect(p.Len()).To(Equal(DefaultSamples))
				Expect(recorder.builds[string(v)]).To(Equal(1), string(v))
			}
			Expect(VariantConstantCore.NeedsCoreMass()).To(BeTrue())
			Expect(VariantReference.NeedsCoreMass()).To(BeFalse())
		})

		It("should reject an unknown variant", func() {
			_, err := gen.Build(Variant("polytrope"), 0)
			Expect(err).To(MatchError(core.ErrInvalidArgument))
		})
	})

	Context("concurrent use", func() {
		It("should build identical profiles from many goroutines", func() {
			want, err := gen.LinearCore(10 * earthMass)
			Expect(err).NotTo(HaveOccurred())

			var wg sync.WaitGroup
			results := make([][]float64, 8)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					defer GinkgoRecover()
					p, err := gen.LinearCore(10 * earthMass)
					Expect(err).NotTo(HaveOccurred())
					results[i] = p.Densities()
				}(i)
			}
			wg.Wait()
			for _, got := range results {
				Expect(got).To(Equal(want.Densities()))
			}
		})
	})
})
