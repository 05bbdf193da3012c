// Package metrics exposes Prometheus collectors for provider calls, retries,
// pipeline stages and audio assembly.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storycast/internal/domain"
	"storycast/internal/retry"
)

const namespace = "storycast"

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	providerCalls    *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	retries          *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec
	episodes         *prometheus.CounterVec
	audioFallbacks   prometheus.Counter
	journeyChoices   *prometheus.CounterVec
}

// New registers every collector on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		providerCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Total number of calls to external providers.",
		}, []string{"provider", "operation", "outcome"}),
		providerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Duration of external provider calls.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"provider", "operation"}),
		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retry_events_total",
			Help:      "Retry executor events by operation and type.",
		}, []string{"operation", "event"}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of episode pipeline stages.",
			Buckets:   []float64{.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"stage", "outcome"}),
		episodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episodes_finished_total",
			Help:      "Episodes that reached a terminal status.",
		}, []string{"format", "status"}),
		audioFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_assembly_fallbacks_total",
			Help:      "Times audio assembly degraded to plain concatenation.",
		}),
		journeyChoices: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journey_choices_total",
			Help:      "Journey choice submissions by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveCall(provider, operation string, elapsed time.Duration, err error) {
	m.providerCalls.WithLabelValues(provider, operation, outcome(err)).Inc()
	m.providerDuration.WithLabelValues(provider, operation).Observe(elapsed.Seconds())
}

// RetryObserver counts executor events.
func (m *Metrics) RetryObserver() retry.Observer {
	return func(ev retry.Event) {
		m.retries.WithLabelValues(ev.Operation, string(ev.Type)).Inc()
	}
}

func (m *Metrics) ObserveStage(stage domain.Stage, elapsed time.Duration, err error) {
	m.stageDuration.WithLabelValues(string(stage), outcome(err)).Observe(elapsed.Seconds())
}

func (m *Metrics) EpisodeFinished(format domain.Format, status domain.Status) {
	m.episodes.WithLabelValues(string(format), string(status)).Inc()
}

func (m *Metrics) AudioFallback(error) {
	m.audioFallbacks.Inc()
}

func (m *Metrics) JourneyChoice(outcome string) {
	m.journeyChoices.WithLabelValues(outcome).Inc()
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeSuccess
}
