package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLifecycleEvent(t *testing.T) {
	before := testutil.ToFloat64(lifecycleEvents.WithLabelValues(EventInvoicePaid))
	RecordLifecycleEvent(EventInvoicePaid, 1)
	RecordLifecycleEvent(EventInvoicePaid, 0)
	assert.Equal(t, before+1, testutil.ToFloat64(lifecycleEvents.WithLabelValues(EventInvoicePaid)))
}

func TestRequestStarted(t *testing.T) {
	done := RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(httpInFlight))
	done(http.MethodGet, "/api/properties", http.StatusOK)
	assert.Equal(t, 0.0, testutil.ToFloat64(httpInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/properties", "200")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordJobRun("overdue_invoices", 20*time.Millisecond, true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "propertymanager_jobs_runs_total")
}
