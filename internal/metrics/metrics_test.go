package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfmap/pkg/reconciler"
)

func TestCollectorLoads(t *testing.T) {
	c := New()

	c.ObserveSource("primary", 30, 10*time.Millisecond, nil)
	c.ObserveSource("secondary", 0, 5*time.Millisecond, errors.New("boom"))
	c.ObserveLoad(reconciler.ResultStatistics{Unified: 30, Matched: 4, Categories: 2}, 20*time.Millisecond)
	c.ObserveLoadFailure(time.Millisecond, errors.New("primary down"))

	assert.Equal(t, float64(30), testutil.ToFloat64(c.sourceRecords.WithLabelValues("primary")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.sourceFailures.WithLabelValues("secondary")))
	assert.Equal(t, float64(30), testutil.ToFloat64(c.catalogBooks))
	assert.Equal(t, float64(4), testutil.ToFloat64(c.catalogMatched))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.categories))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.loadFailures))
}

func TestCollectorHTTP(t *testing.T) {
	c := New()
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/books", nil))
	}
	assert.Equal(t, float64(3), testutil.ToFloat64(c.httpRequests.WithLabelValues("418", "get")))

	c.ObserveFilter(12)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "shelfmap_http_requests_total")
	assert.Contains(t, string(body), "shelfmap_filter_results_count 1")
}
