package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveUpstream(t *testing.T) {
	r := NewRegistry()

	r.ObserveUpstream("ordertime", OutcomeOK)
	r.ObserveUpstream("ordertime", OutcomeOK)
	r.ObserveUpstream("ordertime", OutcomeAuthRetry)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.UpstreamRequests.WithLabelValues("ordertime", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.UpstreamRequests.WithLabelValues("ordertime", OutcomeAuthRetry)))
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.ObserveUpstream("report", OutcomeError)
		r.ObserveRows("report", 3)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.ObserveRows("live", 5)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `stockview_rows_returned_total{pipeline="live"} 5`)
}
