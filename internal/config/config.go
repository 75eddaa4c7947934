// Package config loads profiler settings and the planet catalog.
//
// Settings come from, in increasing precedence: built-in defaults, an optional
// config file, PROFILER_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/planetary-interiors/density-profiler/internal/logging"
	"github.com/planetary-interiors/density-profiler/pkg/generator"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PROFILER"

// Output encodings.
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Keys shared by flags, environment variables and config files.
const (
	KeyConfigFile    = "config"
	KeyPlanet        = "planet"
	KeyConstantsFile = "constants-file"
	KeySamples       = "samples"
	KeyVariant       = "variant"
	KeyCoreMass      = "core-mass"
	KeyLogLevel      = "log-level"
	KeyLogFormat     = "log-format"
	KeyOutput        = "output"
	KeyMetricsFile   = "metrics-file"
)

// Config holds the resolved profiler settings.
type Config struct {
	// Planet names the planet to model; see PlanetCatalog.Resolve.
	Planet string `mapstructure:"planet"`

	// ConstantsFile is an optional YAML planet catalog.
	ConstantsFile string `mapstructure:"constants-file"`

	// Samples is the number of radial samples per profile.
	Samples int `mapstructure:"samples"`

	// Variant is the model variant to build.
	Variant string `mapstructure:"variant"`

	// CoreMass is the target core mass in kg for the core variants.
	CoreMass float64 `mapstructure:"core-mass"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`

	// Output is OutputYAML or OutputJSON.
	Output string `mapstructure:"output"`

	// MetricsFile, when set, receives a Prometheus text dump after each run.
	MetricsFile string `mapstructure:"metrics-file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Planet:    "jupiter",
		Samples:   generator.DefaultSamples,
		Variant:   string(generator.VariantReference),
		LogLevel:  "info",
		LogFormat: logging.FormatConsole,
		Output:    OutputYAML,
	}
}

// RegisterFlags adds the profiler flags to fs with Default values.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyConfigFile, "", "path to a YAML config file")
	fs.String(KeyPlanet, d.Planet, "planet to model")
	fs.String(KeyConstantsFile, d.ConstantsFile, "YAML planet catalog overriding the built-in constants")
	fs.Int(KeySamples, d.Samples, "number of radial samples")
	fs.String(KeyVariant, d.Variant, "model variant: reference, linear, constant-core or linear-core")
	fs.Float64(KeyCoreMass, d.CoreMass, "target core mass in kg for the core variants")
	fs.String(KeyLogLevel, d.LogLevel, "log level: error, info, debug or trace")
	fs.String(KeyLogFormat, d.LogFormat, "log format: json or console")
	fs.StringP(KeyOutput, "o", d.Output, "output encoding: yaml or json")
	fs.String(KeyMetricsFile, d.MetricsFile, "write Prometheus metrics in text format to this file")
}

// Load resolves the settings. flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyConfigFile, "")
	v.SetDefault(KeyPlanet, d.Planet)
	v.SetDefault(KeyConstantsFile, d.ConstantsFile)
	v.SetDefault(KeySamples, d.Samples)
	v.SetDefault(KeyVariant, d.Variant)
	v.SetDefault(KeyCoreMass, d.CoreMass)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyMetricsFile, d.MetricsFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Planet) == "" {
		errs = append(errs, errors.New("planet must be set"))
	}
	if c.Samples <= 0 {
		errs = append(errs, fmt.Errorf("samples must be positive, got %d", c.Samples))
	}
	if _, err := generator.ParseVariant(c.Variant); err != nil {
		errs = append(errs, err)
	}
	if math.IsNaN(c.CoreMass) || math.IsInf(c.CoreMass, 0) || c.CoreMass < 0 {
		errs = append(errs, fmt.Errorf("core-mass must be finite and >= 0, got %g", c.CoreMass))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != logging.FormatJSON && c.LogFormat != logging.FormatConsole {
		errs = append(errs, fmt.Errorf("log-format must be %q or %q, got %q", logging.FormatJSON, logging.FormatConsole, c.LogFormat))
	}
	if c.Output != OutputYAML && c.Output != OutputJSON {
		errs = append(errs, fmt.Errorf("output must be %q or %q, got %q", OutputYAML, OutputJSON, c.Output))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// LoggingOptions returns the logger settings.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.LogLevel, Format: c.LogFormat}
}

// Catalog loads ConstantsFile, or returns an empty catalog of built-ins when
// it is unset.
func (c *Config) Catalog(logger logr.Logger) (PlanetCatalog, error) {
	if c.ConstantsFile == "" {
		return make(PlanetCatalog), nil
	}
	return LoadPlanetCatalog(c.ConstantsFile, logger)
}
