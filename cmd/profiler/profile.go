package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planetary-interiors/density-profiler/pkg/analyzer"
	"github.com/planetary-interiors/density-profiler/pkg/core"
	"github.com/planetary-interiors/density-profiler/pkg/generator"
)

// Plot series selectable with --series.
const (
	seriesNone   = "none"
	seriesRadius = "radius"
	seriesMass   = "mass"
)

type profileReport struct {
	Planet          string           `json:"planet" yaml:"planet"`
	Variant         string           `json:"variant" yaml:"variant"`
	Samples         int              `json:"samples" yaml:"samples"`
	CoreMass        float64          `json:"coreMass,omitempty" yaml:"coreMass,omitempty"`
	TotalMass       float64          `json:"totalMass" yaml:"totalMass"`
	MassRatio       float64          `json:"massRatio" yaml:"massRatio"`
	NegativeDensity bool             `json:"negativeDensity,omitempty" yaml:"negativeDensity,omitempty"`
	Radii           []float64        `json:"radii" yaml:"radii"`
	Densities       []float64        `json:"densities" yaml:"densities"`
	CumulativeMass  []float64        `json:"cumulativeMass" yaml:"cumulativeMass"`
	Series          *analyzer.Series `json:"series,omitempty" yaml:"series,omitempty"`
}

func newProfileCmd(a *app) *cobra.Command {
	var series string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Build a density profile and print its samples",
		Example: `  profiler profile --variant linear-core --core-mass 6e25 --samples 1024 -o json
  profiler profile --variant reference --series mass`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := generator.ParseVariant(a.cfg.Variant)
			if err != nil {
				return err
			}
			report, err := a.buildReport(v, series)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&series, "series", seriesNone, "include a plot series: none, radius or mass")
	return cmd
}

func (a *app) buildReport(v generator.Variant, series string) (*profileReport, error) {
	g, err := a.generator()
	if err != nil {
		return nil, err
	}
	p, err := g.Build(v, a.cfg.CoreMass)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s profile: %w", v, err)
	}
	mvec, err := analyzer.ProfileCumulativeMass(p)
	if err != nil {
		return nil, err
	}

	report := &profileReport{
		Planet:          a.planet.Name,
		Variant:         string(v),
		Samples:         p.Len(),
		TotalMass:       mvec[0],
		MassRatio:       mvec[0] / a.planet.Mass,
		NegativeDensity: p.HasNegativeDensity(),
		Radii:           p.Radii(),
		Densities:       p.Densities(),
		CumulativeMass:  mvec,
	}
	if v.NeedsCoreMass() {
		report.CoreMass = a.cfg.CoreMass
	}
	report.Series, err = plotSeries(p, series)
	if err != nil {
		return nil, err
	}

	if report.NegativeDensity {
		a.logger.Info("Profile has negative densities",
			"variant", v,
			"coreMass", a.cfg.CoreMass)
	}
	a.logger.Info("Built profile",
		"planet", report.Planet,
		"variant", v,
		"samples", report.Samples,
		"massRatio", report.MassRatio)
	return report, nil
}

func plotSeries(p *core.DensityProfile, series string) (*analyzer.Series, error) {
	switch series {
	case "", seriesNone:
		return nil, nil
	case seriesRadius:
		return analyzer.RhoOfS(p)
	case seriesMass:
		return analyzer.RhoOfM(p)
	default:
		return nil, fmt.Errorf("%w: unknown series %q", core.ErrInvalidArgument, series)
	}
}
