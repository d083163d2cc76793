package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-scheduler/internal/delivery/http/handler"
	"clinic-scheduler/internal/delivery/http/middleware"

	"github.com/stretchr/testify/assert"
)

func newTestRouter() http.Handler {
	r := NewRouter(
		handler.NewAuthHandler(nil, nil, nil, nil),
		handler.NewPersonHandler(nil, nil),
		handler.NewAppointmentHandler(nil),
		handler.NewFacilityHandler(nil, nil),
		handler.NewAuditLogHandler(nil),
		middleware.NewAuthMiddleware(nil, nil),
		middleware.NewCORSMiddleware([]string{"https://clinic.example"}),
	)
	return r.Setup()
}

func TestRouterPreflight(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/appointments/123", nil)
	req.Header.Set("Origin", "https://clinic.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestRouterHealthAndAuthGate(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit-logs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
