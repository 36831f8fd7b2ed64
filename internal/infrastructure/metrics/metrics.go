// Package metrics exposes Prometheus collectors for use cases, HTTP traffic
// and scheduled jobs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sprintly"

type Metrics struct {
	registry *prometheus.Registry

	useCaseRuns      *prometheus.CounterVec
	useCaseDurations *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDurations    *prometheus.HistogramVec
	jobRuns          *prometheus.CounterVec
	jobItems         *prometheus.CounterVec
	dashboardCache   *prometheus.CounterVec
}

// New builds a private registry so tests can create independent instances.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		useCaseRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "usecase",
			Name:      "executions_total",
			Help:      "Use case executions, labeled by use case and outcome",
		}, []string{"usecase", "outcome"}),
		useCaseDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "usecase",
			Name:      "duration_seconds",
			Help:      "Duration of use case executions",
			Buckets:   prometheus.DefBuckets,
		}, []string{"usecase"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, labeled by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Scheduled job executions, labeled by job and outcome",
		}, []string{"job", "outcome"}),
		jobItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_items_total",
			Help:      "Items processed by scheduled jobs",
		}, []string{"job"}),
		dashboardCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "cache_lookups_total",
			Help:      "Dashboard cache lookups, labeled by result",
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.useCaseRuns,
		m.useCaseDurations,
		m.httpRequests,
		m.httpDurations,
		m.jobRuns,
		m.jobItems,
		m.dashboardCache,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveUseCase(name string, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.useCaseRuns.WithLabelValues(name, outcome).Inc()
	m.useCaseDurations.WithLabelValues(name).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDurations.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveJob(job string, items int, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.jobRuns.WithLabelValues(job, outcome).Inc()
	if items > 0 {
		m.jobItems.WithLabelValues(job).Add(float64(items))
	}
}

func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.dashboardCache.WithLabelValues(result).Inc()
}
