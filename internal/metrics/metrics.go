package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes
const (
	OutcomeOK        = "ok"
	OutcomeAuthRetry = "auth_retry"
	OutcomeError     = "error"
)

// Registry holds the service collectors on a private prometheus registry
type Registry struct {
	reg              *prometheus.Registry
	UpstreamRequests *prometheus.CounterVec
	RowsReturned     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewRegistry creates and registers all collectors
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	upstream := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockview_upstream_requests_total",
		Help: "Calls made to vendor endpoints by source and outcome.",
	}, []string{"source", "outcome"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockview_rows_returned_total",
		Help: "Normalized rows returned per pipeline.",
	}, []string{"pipeline"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stockview_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})

	r.MustRegister(upstream, rows, duration)
	return &Registry{
		reg:              r,
		UpstreamRequests: upstream,
		RowsReturned:     rows,
		RequestDuration:  duration,
	}
}

// ObserveUpstream counts one vendor call. Safe on a nil registry.
func (r *Registry) ObserveUpstream(source, outcome string) {
	if r == nil {
		return
	}
	r.UpstreamRequests.WithLabelValues(source, outcome).Inc()
}

// ObserveRows counts rows returned by a pipeline. Safe on a nil registry.
func (r *Registry) ObserveRows(pipeline string, n int) {
	if r == nil {
		return
	}
	r.RowsReturned.WithLabelValues(pipeline).Add(float64(n))
}

// Handler serves the registry in the prometheus exposition format
func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
