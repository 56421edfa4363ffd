package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "Created", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "Created", body.Message)
	assert.Equal(t, map[string]interface{}{"id": "1"}, body.Data)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		write   func(w http.ResponseWriter)
		code    int
		message string
	}{
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "This time slot is already booked.") }, http.StatusConflict, "This time slot is already booked."},
		{"conflict default", func(w http.ResponseWriter) { Conflict(w, "") }, http.StatusConflict, "Conflict"},
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "") }, http.StatusBadRequest, "Bad request"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "") }, http.StatusNotFound, "Resource not found"},
		{"forbidden", func(w http.ResponseWriter) { Forbidden(w, "") }, http.StatusForbidden, "Forbidden"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "") }, http.StatusUnauthorized, "Unauthorized"},
		{"internal", func(w http.ResponseWriter) { InternalServerError(w, "") }, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			assert.Equal(t, tt.code, rec.Code)
			body := decode(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"day": "Invalid day selected."})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, map[string]interface{}{"day": "Invalid day selected."}, body.Error)
}
