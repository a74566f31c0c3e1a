// Package metrics exports Prometheus collectors for HTTP traffic and coaching activity.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mindcoach"

// Metrics holds the service's collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	quizzesScored   prometheus.Counter
	coachMatches    *prometheus.CounterVec
	matchConfidence prometheus.Histogram
	stateEvents     *prometheus.CounterVec
	stateCache      *prometheus.CounterVec
	emailsSent      *prometheus.CounterVec
	publishFailures prometheus.Counter
}

// New registers all collectors, plus Go runtime and process collectors, on a fresh registry
func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quizzesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quizzes_scored_total",
			Help:      "Quiz submissions converted into construct scores.",
		}),
		coachMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coach_matches_total",
			Help:      "Coach matches by primary archetype.",
		}, []string{"primary"}),
		matchConfidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_confidence",
			Help:      "Confidence of the primary archetype in each match.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 120, 150},
		}),
		stateEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_events_total",
			Help:      "App state transitions applied, by event.",
		}, []string{"event"}),
		stateCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_cache_lookups_total",
			Help:      "State cache lookups by result.",
		}, []string{"result"}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "digest_emails_total",
			Help:      "Weekly digest e-mails by outcome.",
		}, []string{"outcome"}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Domain events that could not be published.",
		}),
	}

	collectorList := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration, m.quizzesScored, m.coachMatches, m.matchConfidence,
		m.stateEvents, m.stateCache, m.emailsSent, m.publishFailures,
	}
	for _, c := range collectorList {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// QuizScored counts a scored submission
func (m *Metrics) QuizScored() {
	if m == nil {
		return
	}
	m.quizzesScored.Inc()
}

// CoachMatched counts a match and records its primary confidence
func (m *Metrics) CoachMatched(primary string, confidence int) {
	if m == nil {
		return
	}
	m.coachMatches.WithLabelValues(primary).Inc()
	m.matchConfidence.Observe(float64(confidence))
}

// StateEvent counts an applied state transition
func (m *Metrics) StateEvent(name string) {
	if m == nil {
		return
	}
	m.stateEvents.WithLabelValues(name).Inc()
}

// CacheLookup records a state cache hit or miss
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.stateCache.WithLabelValues(result).Inc()
}

// EmailSent records a digest e-mail outcome: sent, skipped or failed
func (m *Metrics) EmailSent(outcome string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(outcome).Inc()
}

// PublishFailed counts an event that could not be published
func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}
