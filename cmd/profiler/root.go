package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/planetary-interiors/density-profiler/api/v1alpha1"
	"github.com/planetary-interiors/density-profiler/internal/config"
	"github.com/planetary-interiors/density-profiler/internal/logging"
	"github.com/planetary-interiors/density-profiler/internal/metrics"
	"github.com/planetary-interiors/density-profiler/pkg/generator"
)

// app carries the state shared by every subcommand after the root pre-run.
type app struct {
	cfg      config.Config
	logger   logr.Logger
	catalog  config.PlanetCatalog
	planet   *v1alpha1.PlanetConstants
	registry *prometheus.Registry
	recorder *metrics.Recorder
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logr.Discard()}

	root := &cobra.Command{
		Use:   "profiler",
		Short: "Build and analyze giant-planet interior density profiles",
		Long: `profiler builds radial density profiles for giant planets from a
piecewise-quadratic parameterization and reports their mass and comparisons
of gravity harmonics.

Settings are read from flags, PROFILER_* environment variables and an optional
YAML config file, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.flushMetrics()
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newProfileCmd(a),
		newMassCmd(a),
		newDistanceCmd(a),
		newPlanetsCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.NewLogger(cfg.LoggingOptions())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger.WithName("profiler")

	a.catalog, err = cfg.Catalog(a.logger.WithName("catalog"))
	if err != nil {
		return err
	}
	a.planet, err = a.catalog.Resolve(cfg.Planet)
	if err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	a.recorder, err = metrics.NewRecorder(a.registry)
	if err != nil {
		return err
	}

	a.logger.V(logging.DEBUG).Info("Loaded configuration",
		"planet", a.planet.Name,
		"samples", cfg.Samples,
		"variant", cfg.Variant,
		"constantsFile", cfg.ConstantsFile)
	return nil
}

func (a *app) generator() (*generator.Generator, error) {
	return generator.New(a.planet,
		generator.WithSamples(a.cfg.Samples),
		generator.WithLogger(a.logger.WithName("generator")),
		generator.WithRecorder(a.recorder))
}

func (a *app) flushMetrics() error {
	if a.cfg.MetricsFile == "" || a.registry == nil {
		return nil
	}
	f, err := os.Create(a.cfg.MetricsFile)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	if err := metrics.WriteText(f, a.registry); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// write encodes v in the configured output format.
func (a *app) write(w io.Writer, v any) error {
	switch a.cfg.Output {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}
