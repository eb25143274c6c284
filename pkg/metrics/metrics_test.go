package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterTwice(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(appointmentOps.WithLabelValues("create", "conflict"))
	IncAppointment("create", "conflict")
	assert.Equal(t, before+1, testutil.ToFloat64(appointmentOps.WithLabelValues("create", "conflict")))

	beforeHTTP := testutil.ToFloat64(httpRequests.WithLabelValues("/api/x", "GET", "200"))
	ObserveHTTP("/api/x", "GET", 200, 5*time.Millisecond)
	assert.Equal(t, beforeHTTP+1, testutil.ToFloat64(httpRequests.WithLabelValues("/api/x", "GET", "200")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	Register()
	IncAppointment("cancel", "ok")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "donor_booking_appointment_operations_total"))
}
