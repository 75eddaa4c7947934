package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planetary-interiors/density-profiler/pkg/analyzer"
	"github.com/planetary-interiors/density-profiler/pkg/core"
)

type distanceReport struct {
	Planet        string    `json:"planet" yaml:"planet"`
	ModelA        []float64 `json:"modelA" yaml:"modelA"`
	ModelB        []float64 `json:"modelB" yaml:"modelB"`
	Uncertainties []float64 `json:"uncertainties" yaml:"uncertainties"`
	Distance      float64   `json:"distance" yaml:"distance"`
}

func newDistanceCmd(a *app) *cobra.Command {
	var modelA, modelB, uncertainties []float64
	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Compare two sets of gravity harmonics",
		Long: `distance reports the uncertainty-weighted distance between two sets of
zonal gravity harmonics J2, J4, ... given in ascending degree. --model-b and
--uncertainties default to the planet's observed harmonics and their relative
uncertainties.`,
		Example: `  profiler distance --model-a 14696.5e-6,-586.6e-6,34.2e-6,-2.4e-6,0.17e-6`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(modelA) == 0 {
				return fmt.Errorf("%w: --model-a is required", core.ErrInvalidArgument)
			}
			if len(modelB) == 0 {
				modelB = a.planet.HarmonicValues()
			}
			if len(uncertainties) == 0 {
				uncertainties = a.planet.RelativeUncertainties()
			}
			d, err := analyzer.HarmonicDistance(modelA, modelB, uncertainties)
			if err != nil {
				return err
			}
			a.recorder.ObserveHarmonicDistance(d)
			a.logger.Info("Compared harmonics",
				"planet", a.planet.Name,
				"degrees", len(modelA),
				"distance", d)
			return a.write(cmd.OutOrStdout(), &distanceReport{
				Planet:        a.planet.Name,
				ModelA:        modelA,
				ModelB:        modelB,
				Uncertainties: uncertainties,
				Distance:      d,
			})
		},
	}
	cmd.Flags().Float64SliceVar(&modelA, "model-a", nil, "harmonics of the compared model, ascending degree")
	cmd.Flags().Float64SliceVar(&modelB, "model-b", nil, "harmonics to compare against (default: observed)")
	cmd.Flags().Float64SliceVar(&uncertainties, "uncertainties", nil, "relative uncertainties of model-a (default: observed)")
	return cmd
}
