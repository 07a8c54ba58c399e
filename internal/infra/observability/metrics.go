package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the Lexanova API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	simulatorRuns   *prometheus.CounterVec
	bookings        *prometheus.CounterVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
}

// SimulatorStats is a snapshot of simulator usage counters, served by
// GET /v1/metrics/simulators.
type SimulatorStats struct {
	IncomeTax       int64 `json:"income_tax"`
	Donation        int64 `json:"donation"`
	RealEstateGains int64 `json:"real_estate_gains"`
	SecuritiesGains int64 `json:"securities_gains"`
	BareOwnership   int64 `json:"bare_ownership"`
	CEHR            int64 `json:"cehr"`
	Total           int64 `json:"total"`
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lexanova_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		simulatorRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexanova_simulator_runs_total",
				Help: "Total tax simulator computations by simulator.",
			},
			[]string{"simulator"},
		),
		bookings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexanova_bookings_total",
				Help: "Total booking attempts by outcome.",
			},
			[]string{"outcome"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexanova_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexanova_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lexanova_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrSimulatorRun increments the run counter for a simulator.
func (m *Metrics) IncrSimulatorRun(simulator string) {
	m.simulatorRuns.WithLabelValues(simulator).Inc()
}

// IncrBooking increments the booking counter with an outcome label
// (created, conflict, rejected).
func (m *Metrics) IncrBooking(outcome string) {
	m.bookings.WithLabelValues(outcome).Inc()
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// GetSimulatorStats returns a snapshot of the simulator usage counters.
func (m *Metrics) GetSimulatorStats() *SimulatorStats {
	s := &SimulatorStats{
		IncomeTax:       getCounterValue(m.simulatorRuns, "income_tax"),
		Donation:        getCounterValue(m.simulatorRuns, "donation"),
		RealEstateGains: getCounterValue(m.simulatorRuns, "real_estate_gains"),
		SecuritiesGains: getCounterValue(m.simulatorRuns, "securities_gains"),
		BareOwnership:   getCounterValue(m.simulatorRuns, "bare_ownership"),
		CEHR:            getCounterValue(m.simulatorRuns, "cehr"),
	}
	s.Total = s.IncomeTax + s.Donation + s.RealEstateGains + s.SecuritiesGains + s.BareOwnership + s.CEHR
	return s
}

// getCounterValue extracts the current value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) int64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return int64(*m.Counter.Value)
	}
	return 0
}
