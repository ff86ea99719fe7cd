// Package metrics exposes the run's Prometheus metrics: one histogram
// per evaluation phase plus a search outcome counter, registered
// against a private registry so a -metrics-addr run never collides with
// metrics some embedding process already registered on the default
// registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Phase identifies one timed stage of a run.
type Phase string

const (
	PhaseLoadRules Phase = "load_rules"
	PhaseBuild     Phase = "build"
	PhaseUpdate    Phase = "update"
	PhaseLoadTrace Phase = "load_trace"
	PhaseSearch    Phase = "search"
)

// Metrics is the run's metric set. A nil *Metrics is usable: every
// method is a no-op on a nil receiver, matching the teacher's
// enable/disable switch without needing a separate noop implementation.
type Metrics struct {
	reg            *prometheus.Registry
	phaseDuration  *prometheus.HistogramVec
	searchOutcomes *prometheus.CounterVec
	throughput     prometheus.Gauge
}

// New builds a Metrics backed by a fresh, private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reg: reg,
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pceval_phase_duration_seconds",
			Help:    "Duration of each evaluation phase.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 14),
		}, []string{"phase", "engine"}),
		searchOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pceval_search_outcomes_total",
			Help: "Search results broken down by match/no-match/mismatch.",
		}, []string{"outcome"}),
		throughput: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pceval_search_packets_per_second",
			Help: "Packets per second achieved by the last search phase.",
		}),
	}
	reg.MustRegister(m.phaseDuration, m.searchOutcomes, m.throughput)
	return m
}

// ObservePhase records a phase's wall-clock duration in seconds.
func (m *Metrics) ObservePhase(phase Phase, engine string, seconds float64) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(string(phase), engine).Observe(seconds)
}

// IncSearchOutcome increments the counter for one search outcome:
// "match", "no_match", or "mismatch".
func (m *Metrics) IncSearchOutcome(outcome string) {
	if m == nil {
		return
	}
	m.searchOutcomes.WithLabelValues(outcome).Inc()
}

// SetThroughput records the search phase's packets-per-second figure.
func (m *Metrics) SetThroughput(pps float64) {
	if m == nil {
		return
	}
	m.throughput.Set(pps)
}

// Serve starts a /metrics HTTP endpoint on addr. It blocks until the
// listener fails or the process exits; callers run it in its own
// goroutine and only when --metrics-addr was given.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}
