// Package metrics exposes Prometheus collectors for profile construction and
// model comparison.
package metrics

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/planetary-interiors/density-profiler/pkg/core"
)

const namespace = "profiler"

// Failure reasons used as the "reason" label.
const (
	ReasonInvalidArgument       = "invalid_argument"
	ReasonDegenerateBreakpoints = "degenerate_breakpoints"
	ReasonLengthMismatch        = "length_mismatch"
	ReasonOther                 = "other"
)

// Recorder holds the profiler's collectors. The zero value is not usable; use
// NewRecorder.
type Recorder struct {
	profilesBuilt     *prometheus.CounterVec
	profileFailures   *prometheus.CounterVec
	coreRadius        *prometheus.GaugeVec
	harmonicDistances prometheus.Histogram
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		profilesBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profiles_built_total",
			Help:      "Number of density profiles built, by model variant.",
		}, []string{"variant"}),
		profileFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_failures_total",
			Help:      "Number of failed profile builds, by model variant and reason.",
		}, []string{"variant", "reason"}),
		coreRadius: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "core_radius_normalized",
			Help:      "Normalized radius of the last substituted core, by model variant.",
		}, []string{"variant"}),
		harmonicDistances: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "harmonic_distance",
			Help:      "Normalized distance between compared gravity-harmonic sets.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 16),
		}),
	}
	for _, c := range []prometheus.Collector{r.profilesBuilt, r.profileFailures, r.coreRadius, r.harmonicDistances} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return r, nil
}

// RecordBuild counts a finished build; a non-nil err counts as a failure.
func (r *Recorder) RecordBuild(variant string, err error) {
	if err != nil {
		r.profileFailures.WithLabelValues(variant, Reason(err)).Inc()
		return
	}
	r.profilesBuilt.WithLabelValues(variant).Inc()
}

// RecordCoreRadius sets the normalized core radius of the last build.
func (r *Recorder) RecordCoreRadius(variant string, z float64) {
	r.coreRadius.WithLabelValues(variant).Set(z)
}

// ObserveHarmonicDistance records a comparison result. Non-finite distances
// are dropped.
func (r *Recorder) ObserveHarmonicDistance(d float64) {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return
	}
	r.harmonicDistances.Observe(d)
}

// Reason maps an error onto a failure label.
func Reason(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		return ReasonInvalidArgument
	case errors.Is(err, core.ErrDegenerateBreakpoints):
		return ReasonDegenerateBreakpoints
	case errors.Is(err, core.ErrLengthMismatch):
		return ReasonLengthMismatch
	default:
		return ReasonOther
	}
}

// WriteText writes every metric family in g to w in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
