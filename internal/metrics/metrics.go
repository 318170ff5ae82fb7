package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Generator outcomes
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeDisabled = "disabled"
	OutcomeCached   = "cached"
)

// Observer captures telemetry for inference and statement generation
type Observer interface {
	RecordInference(mode string)
	RecordGeneration(duration time.Duration, outcome string)
}

// PrometheusObserver exports the counters to Prometheus
type PrometheusObserver struct {
	profiles          *prometheus.CounterVec
	generatorRequests *prometheus.CounterVec
	generatorDuration prometheus.Histogram
}

// NewPrometheusObserver registers the mindshift collectors. Collectors that
// are already registered (tests, repeated wiring) are reused.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		profiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindshift",
			Name:      "profiles_inferred_total",
			Help:      "Profiles resolved, by scoring mode.",
		}, []string{"mode"}),
		generatorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindshift",
			Name:      "generator_requests_total",
			Help:      "Statement generator calls, by outcome.",
		}, []string{"outcome"}),
		generatorDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mindshift",
			Name:      "generator_duration_seconds",
			Help:      "Latency of statement generator calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	var err error
	if o.profiles, err = register(reg, o.profiles); err != nil {
		return nil, err
	}
	if o.generatorRequests, err = register(reg, o.generatorRequests); err != nil {
		return nil, err
	}
	if o.generatorDuration, err = register(reg, o.generatorDuration); err != nil {
		return nil, err
	}
	return o, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}

func (o *PrometheusObserver) RecordInference(mode string) {
	if o == nil {
		return
	}
	o.profiles.WithLabelValues(mode).Inc()
}

func (o *PrometheusObserver) RecordGeneration(duration time.Duration, outcome string) {
	if o == nil {
		return
	}
	o.generatorRequests.WithLabelValues(outcome).Inc()
	if outcome != OutcomeCached && outcome != OutcomeDisabled {
		o.generatorDuration.Observe(duration.Seconds())
	}
}

type nopObserver struct{}

func (nopObserver) RecordInference(string) {}

func (nopObserver) RecordGeneration(time.Duration, string) {}

// Nop discards everything
func Nop() Observer { return nopObserver{} }
