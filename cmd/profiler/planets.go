package main

import (
	"github.com/spf13/cobra"

	"github.com/planetary-interiors/density-profiler/api/v1alpha1"
)

func newPlanetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "planets",
		Short: "List the planets the catalog can resolve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out []*v1alpha1.PlanetConstants
			for _, name := range a.catalog.Names() {
				p, err := a.catalog.Resolve(name)
				if err != nil {
					a.logger.Info("Skipping unresolvable planet", "planet", name, "error", err)
					continue
				}
				out = append(out, p)
			}
			return a.write(cmd.OutOrStdout(), out)
		},
	}
}
