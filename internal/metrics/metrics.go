package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the API process's Prometheus collectors. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	runsTotal         *prometheus.CounterVec
	runDuration       prometheus.Histogram
	unmetEnergy       *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simulation_runs_total",
			Help: "Total simulation runs by weather scenario and outcome.",
		}, []string{"weather", "outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "simulation_run_duration_seconds",
			Help:    "Histogram of simulation run durations.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		unmetEnergy: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "simulation_unmet_energy_gwh",
			Help:    "Unmet energy per completed run.",
			Buckets: []float64{0, 1, 10, 50, 100, 250, 500, 1000},
		}, []string{"weather"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "result_cache_hits_total",
			Help: "Total result cache hits observed.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "result_cache_misses_total",
			Help: "Total result cache misses observed.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.runsTotal,
		m.runDuration,
		m.unmetEnergy,
		m.cacheHits,
		m.cacheMisses,
	)
	return m
}

// Middleware records request counts and durations by route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Run records one simulation. unmetGWh is ignored for failed runs.
func (m *Metrics) Run(weather string, duration time.Duration, unmetGWh float64, err error) {
	if m == nil {
		return
	}
	m.runDuration.Observe(duration.Seconds())
	if err != nil {
		m.runsTotal.WithLabelValues(weather, "error").Inc()
		return
	}
	m.runsTotal.WithLabelValues(weather, "ok").Inc()
	m.unmetEnergy.WithLabelValues(weather).Observe(unmetGWh)
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// Gatherer exposes the registry for tests and custom exporters.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
