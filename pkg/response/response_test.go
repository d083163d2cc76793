package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeta(t *testing.T) {
	assert.Equal(t, 3, NewMeta(1, 10, 21).TotalPages)
	assert.Equal(t, 2, NewMeta(1, 10, 20).TotalPages)
	assert.Equal(t, 0, NewMeta(1, 10, 0).TotalPages)
	assert.Equal(t, 1, NewMeta(1, 0, 5).TotalPages)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		write   func(http.ResponseWriter)
		status  int
		message string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "") }, http.StatusBadRequest, "Bad request"},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "slot taken") }, http.StatusConflict, "slot taken"},
		{"unavailable", func(w http.ResponseWriter) { ServiceUnavailable(w, "") }, http.StatusServiceUnavailable, "Service temporarily unavailable"},
		{"validation", func(w http.ResponseWriter) { ValidationError(w, map[string]string{"Email": "Email is required"}) }, http.StatusBadRequest, "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestServiceUnavailableSetsRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	ServiceUnavailable(rec, "busy")
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
