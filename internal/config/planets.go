package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"

	"github.com/planetary-interiors/density-profiler/api/v1alpha1"
	"github.com/planetary-interiors/density-profiler/internal/logging"
)

// GlobalDefaultsKey is the catalog entry applied beneath every planet.
const GlobalDefaultsKey = "default"

// ErrUnknownPlanet is returned by Resolve for a name that is neither built in
// nor present in the catalog.
var ErrUnknownPlanet = errors.New("unknown planet")

// builtinPlanets are resolvable without a catalog.
var builtinPlanets = map[string]func() *v1alpha1.PlanetConstants{
	"jupiter": v1alpha1.Jupiter,
}

// PlanetOverride is one catalog entry. Unset fields inherit from the defaults
// entry and then from the built-in constants of the same name, if any.
type PlanetOverride struct {
	// Name is the planet the entry applies to. It defaults to the entry key.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	Mass              *float64 `yaml:"mass,omitempty" json:"mass,omitempty"`
	MassUncertainty   *float64 `yaml:"massUncertainty,omitempty" json:"massUncertainty,omitempty"`
	EquatorialRadius  *float64 `yaml:"equatorialRadius,omitempty" json:"equatorialRadius,omitempty"`
	MeanRadius        *float64 `yaml:"meanRadius,omitempty" json:"meanRadius,omitempty"`
	ReferencePressure *float64 `yaml:"referencePressure,omitempty" json:"referencePressure,omitempty"`
	Q                 *float64 `yaml:"q,omitempty" json:"q,omitempty"`
	M                 *float64 `yaml:"m,omitempty" json:"m,omitempty"`

	// Harmonics replaces the whole harmonic list when non-empty.
	Harmonics []v1alpha1.GravityHarmonic `yaml:"harmonics,omitempty" json:"harmonics,omitempty"`
}

// PlanetCatalog maps lower-case planet names, plus GlobalDefaultsKey, to
// their overrides.
type PlanetCatalog map[string]PlanetOverride

// OverrideFromConstants returns an override that sets every field of p.
func OverrideFromConstants(p *v1alpha1.PlanetConstants) PlanetOverride {
	o := PlanetOverride{
		Name:              p.Name,
		Mass:              ptr.To(p.Mass),
		MassUncertainty:   ptr.To(p.MassUncertainty),
		EquatorialRadius:  ptr.To(p.EquatorialRadius),
		MeanRadius:        ptr.To(p.MeanRadius),
		ReferencePressure: ptr.To(p.ReferencePressure),
		Q:                 ptr.To(p.Q),
		M:                 ptr.To(p.M),
	}
	if len(p.Harmonics) > 0 {
		o.Harmonics = append([]v1alpha1.GravityHarmonic(nil), p.Harmonics...)
	}
	return o
}

// Validate checks the fields that are set.
func (o *PlanetOverride) Validate() error {
	if o.Mass != nil && !isPositive(*o.Mass) {
		return fmt.Errorf("mass must be positive, got %g", *o.Mass)
	}
	if o.MassUncertainty != nil && !isNonNegative(*o.MassUncertainty) {
		return fmt.Errorf("massUncertainty must be >= 0, got %g", *o.MassUncertainty)
	}
	if o.EquatorialRadius != nil && !isPositive(*o.EquatorialRadius) {
		return fmt.Errorf("equatorialRadius must be positive, got %g", *o.EquatorialRadius)
	}
	if o.MeanRadius != nil && !isPositive(*o.MeanRadius) {
		return fmt.Errorf("meanRadius must be positive, got %g", *o.MeanRadius)
	}
	if o.ReferencePressure != nil && !isNonNegative(*o.ReferencePressure) {
		return fmt.Errorf("referencePressure must be >= 0, got %g", *o.ReferencePressure)
	}
	prev := 0
	for _, h := range o.Harmonics {
		if h.Degree <= prev || h.Degree%2 != 0 {
			return fmt.Errorf("harmonic degrees must be even and ascending, got J%d after J%d", h.Degree, prev)
		}
		if math.IsNaN(h.Value) || math.IsInf(h.Value, 0) {
			return fmt.Errorf("J%d must be finite, got %g", h.Degree, h.Value)
		}
		prev = h.Degree
	}
	return nil
}

// Apply writes the set fields of o onto p.
func (o PlanetOverride) Apply(p *v1alpha1.PlanetConstants) {
	p.Mass = ptr.Deref(o.Mass, p.Mass)
	p.MassUncertainty = ptr.Deref(o.MassUncertainty, p.MassUncertainty)
	p.EquatorialRadius = ptr.Deref(o.EquatorialRadius, p.EquatorialRadius)
	p.MeanRadius = ptr.Deref(o.MeanRadius, p.MeanRadius)
	p.ReferencePressure = ptr.Deref(o.ReferencePressure, p.ReferencePressure)
	p.Q = ptr.Deref(o.Q, p.Q)
	p.M = ptr.Deref(o.M, p.M)
	if len(o.Harmonics) > 0 {
		p.Harmonics = append([]v1alpha1.GravityHarmonic(nil), o.Harmonics...)
	}
}

// ParsePlanetCatalog parses catalog entries keyed by an arbitrary label. Each
// value is a YAML PlanetOverride. The GlobalDefaultsKey entry holds values
// shared by every planet.
//
// Entries are visited in key order. Entries that fail to parse or validate are
// logged and skipped; when two entries name the same planet the first key wins.
func ParsePlanetCatalog(data map[string]string, logger logr.Logger) PlanetCatalog {
	out := make(PlanetCatalog)
	if data == nil {
		return out
	}
	nameToKey := make(map[string]string)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var entry PlanetOverride
		if err := yaml.Unmarshal([]byte(data[key]), &entry); err != nil {
			logger.Info("Failed to parse planet catalog entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if err := entry.Validate(); err != nil {
			logger.Info("Invalid planet catalog entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if key == GlobalDefaultsKey {
			out[GlobalDefaultsKey] = entry
			continue
		}

		if entry.Name == "" {
			entry.Name = key
		}
		name := normalizeName(entry.Name)
		if name == GlobalDefaultsKey {
			logger.Info("Planet catalog entry uses the reserved defaults name, skipping",
				"key", key)
			continue
		}
		if winner, exists := nameToKey[name]; exists {
			logger.Info("Duplicate planet found in catalog - first key wins",
				"planet", name,
				"winningKey", winner,
				"duplicateKey", key)
			continue
		}
		nameToKey[name] = key
		out[name] = entry
	}

	logger.V(logging.DEBUG).Info("Parsed planet catalog",
		"planetCount", len(nameToKey),
		"hasDefaults", out.hasDefaults())

	return out
}

// LoadPlanetCatalog reads a YAML file whose top-level keys are catalog entry
// labels and parses it with ParsePlanetCatalog.
func LoadPlanetCatalog(path string, logger logr.Logger) (PlanetCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read planet catalog: %w", err)
	}
	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse planet catalog %s: %w", path, err)
	}
	data := make(map[string]string, len(nodes))
	for key, node := range nodes {
		encoded, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("failed to re-encode planet catalog entry %q: %w", key, err)
		}
		data[key] = string(encoded)
	}
	return ParsePlanetCatalog(data, logger), nil
}

// Names returns the planets resolvable through the catalog, built-ins
// included, in sorted order.
func (c PlanetCatalog) Names() []string {
	seen := make(map[string]bool)
	for name := range builtinPlanets {
		seen[name] = true
	}
	for name := range c {
		if name != GlobalDefaultsKey {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns validated constants for name: the built-in constants (if
// any), then the defaults entry, then the planet's own entry.
func (c PlanetCatalog) Resolve(name string) (*v1alpha1.PlanetConstants, error) {
	key := normalizeName(name)
	entry, inCatalog := c[key]
	builtin, isBuiltin := builtinPlanets[key]
	if key == GlobalDefaultsKey || (!inCatalog && !isBuiltin) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlanet, name)
	}

	p := &v1alpha1.PlanetConstants{Name: key}
	if isBuiltin {
		p = builtin()
	}
	if defaults, ok := c[GlobalDefaultsKey]; ok {
		defaults.Apply(p)
	}
	if inCatalog {
		entry.Apply(p)
		p.Name = entry.Name
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("planet %q resolved to invalid constants: %w", name, err)
	}
	return p, nil
}

func (c PlanetCatalog) hasDefaults() bool {
	_, ok := c[GlobalDefaultsKey]
	return ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func isPositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

func isNonNegative(x float64) bool {
	return x >= 0 && !math.IsInf(x, 0)
}
