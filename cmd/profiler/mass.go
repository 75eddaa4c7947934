package main

import (
	"github.com/spf13/cobra"

	"github.com/planetary-interiors/density-profiler/pkg/analyzer"
	"github.com/planetary-interiors/density-profiler/pkg/generator"
)

type massEntry struct {
	Variant   string  `json:"variant" yaml:"variant"`
	TotalMass float64 `json:"totalMass" yaml:"totalMass"`
	MassRatio float64 `json:"massRatio" yaml:"massRatio"`
	Error     string  `json:"error,omitempty" yaml:"error,omitempty"`
}

type massReport struct {
	Planet     string      `json:"planet" yaml:"planet"`
	PlanetMass float64     `json:"planetMass" yaml:"planetMass"`
	Samples    int         `json:"samples" yaml:"samples"`
	CoreMass   float64     `json:"coreMass,omitempty" yaml:"coreMass,omitempty"`
	Variants   []massEntry `json:"variants" yaml:"variants"`
}

func newMassCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "mass",
		Short: "Report the total mass of one or every model variant",
		Example: `  profiler mass --variant reference
  profiler mass --all --core-mass 6e25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variants := generator.Variants
			if !all {
				v, err := generator.ParseVariant(a.cfg.Variant)
				if err != nil {
					return err
				}
				variants = []generator.Variant{v}
			}
			report, err := a.massReport(variants)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "report every variant")
	return cmd
}

// massReport builds each variant in turn. A failed variant is reported in
// its entry and does not stop the others.
func (a *app) massReport(variants []generator.Variant) (*massReport, error) {
	g, err := a.generator()
	if err != nil {
		return nil, err
	}
	report := &massReport{
		Planet:     a.planet.Name,
		PlanetMass: a.planet.Mass,
		Samples:    g.Samples(),
		CoreMass:   a.cfg.CoreMass,
	}
	for _, v := range variants {
		entry := massEntry{Variant: string(v)}
		p, err := g.Build(v, a.cfg.CoreMass)
		if err == nil {
			entry.TotalMass, err = analyzer.ProfileMass(p)
		}
		if err != nil {
			a.logger.Error(err, "Failed to compute variant mass", "variant", v)
			entry.Error = err.Error()
		} else {
			entry.MassRatio = entry.TotalMass / a.planet.Mass
		}
		report.Variants = append(report.Variants, entry)
	}
	return report, nil
}
