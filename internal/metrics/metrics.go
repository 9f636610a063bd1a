// Package metrics exposes Prometheus counters for provider routing.
package metrics

import (
	"net/http"
	"time"

	"github.com/dusk-indust/agentchain/internal/llm"
	"github.com/dusk-indust/agentchain/internal/orchestrator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Compile-time interface check.
var (
	_ llm.Observer             = (*Metrics)(nil)
	_ orchestrator.RunObserver = (*Metrics)(nil)
)

// Metrics records provider attempts and route results.
type Metrics struct {
	ProviderAttempts *prometheus.CounterVec
	ProviderLatency  *prometheus.HistogramVec
	Routes           *prometheus.CounterVec
	PipelineRuns     *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ProviderAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentchain_provider_attempts_total",
				Help: "Provider calls by provider and result",
			},
			[]string{"provider", "result"},
		),
		ProviderLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agentchain_provider_latency_seconds",
				Help:    "Provider call latency in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"provider"},
		),
		Routes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentchain_routes_total",
				Help: "Routed prompts by result",
			},
			[]string{"result"},
		),
		PipelineRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentchain_pipeline_runs_total",
				Help: "Plan/execute/synthesize runs by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) ObserveAttempt(provider llm.Identity, result string, elapsed time.Duration) {
	m.ProviderAttempts.WithLabelValues(string(provider), result).Inc()
	m.ProviderLatency.WithLabelValues(string(provider)).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRoute(result string) {
	m.Routes.WithLabelValues(result).Inc()
}

// ObserveRun counts a finished pipeline run.
func (m *Metrics) ObserveRun(err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.PipelineRuns.WithLabelValues(result).Inc()
}

// WriteFile writes the collectors gathered by g to path in the text
// exposition format, for node_exporter's textfile collector.
func WriteFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

// Handler serves the collectors gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
