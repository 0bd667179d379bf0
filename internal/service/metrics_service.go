package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	schedulerRuns       *prometheus.CounterVec
	schedulerBacktracks prometheus.Counter

	proposalHits   prometheus.Counter
	proposalMisses prometheus.Counter

	rateLimited *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	schedulerRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_runs_total",
		Help: "Timetable generation attempts by outcome",
	}, []string{"outcome"})

	schedulerBacktracks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_backtracks_total",
		Help: "Total backtracking steps taken by the timetable solver",
	})

	proposalHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "proposal_store_hits_total",
		Help: "Total proposal lookups that found a live proposal",
	})

	proposalMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "proposal_store_misses_total",
		Help: "Total proposal lookups that missed or hit an expired entry",
	})

	rateLimited := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limited_requests_total",
		Help: "Requests rejected by the per-client rate limiter",
	}, []string{"tier"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, schedulerRuns, schedulerBacktracks, proposalHits, proposalMisses, rateLimited, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:            registry,
		handler:             handler,
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		schedulerRuns:       schedulerRuns,
		schedulerBacktracks: schedulerBacktracks,
		proposalHits:        proposalHits,
		proposalMisses:      proposalMisses,
		rateLimited:         rateLimited,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordSchedulerRun counts a generation attempt and its backtracking cost.
func (m *MetricsService) RecordSchedulerRun(success bool, backtracks int) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.schedulerRuns.WithLabelValues(outcome).Inc()
	if backtracks > 0 {
		m.schedulerBacktracks.Add(float64(backtracks))
	}
}

// RecordProposalLookup tracks proposal store hit/miss counts.
func (m *MetricsService) RecordProposalLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.proposalHits.Inc()
	} else {
		m.proposalMisses.Inc()
	}
}

// RecordRateLimited counts a rejected request for the given tier.
func (m *MetricsService) RecordRateLimited(tier string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(tier).Inc()
}
