// Package metrics exposes Prometheus instrumentation for the auth core.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the service layer and the sweeper report to.
type Recorder interface {
	// ProtocolOutcome records one finished protocol operation.
	ProtocolOutcome(op, outcome string, d time.Duration)
	// SessionsSwept records one sweep of the session store.
	SessionsSwept(n int, err error)
	// HTTPRateLimited records a request rejected by the transport limiter.
	HTTPRateLimited()
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	outcomes    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	swept       prometheus.Counter
	sweepErrors prometheus.Counter
	rateLimited prometheus.Counter
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zkjournal_auth_operations_total",
			Help: "Protocol operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zkjournal_auth_operation_seconds",
			Help:    "Protocol operation latency as seen by the caller, padding included.",
			Buckets: []float64{.1, .25, .3, .35, .5, 1, 2.5, 5},
		}, []string{"op"}),
		swept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zkjournal_sessions_swept_total",
			Help: "Expired sessions removed by the sweeper.",
		}),
		sweepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zkjournal_session_sweep_errors_total",
			Help: "Failed session sweeps.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zkjournal_http_rate_limited_total",
			Help: "HTTP requests rejected by the per-address limiter.",
		}),
	}
	reg.MustRegister(c.outcomes, c.latency, c.swept, c.sweepErrors, c.rateLimited)
	return c
}

// ProtocolOutcome implements Recorder.
func (c *Collector) ProtocolOutcome(op, outcome string, d time.Duration) {
	c.outcomes.WithLabelValues(op, outcome).Inc()
	c.latency.WithLabelValues(op).Observe(d.Seconds())
}

// SessionsSwept implements Recorder.
func (c *Collector) SessionsSwept(n int, err error) {
	if err != nil {
		c.sweepErrors.Inc()
		return
	}
	c.swept.Add(float64(n))
}

// HTTPRateLimited implements Recorder.
func (c *Collector) HTTPRateLimited() { c.rateLimited.Inc() }

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop discards everything.
type Noop struct{}

func (Noop) ProtocolOutcome(string, string, time.Duration) {}
func (Noop) SessionsSwept(int, error)                       {}
func (Noop) HTTPRateLimited()                               {}
