package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveLogged(t *testing.T, status int) map[string]any {
	t.Helper()
	logBuffer := new(bytes.Buffer)
	logger := slog.New(slog.NewJSONHandler(logBuffer, nil))

	r := chi.NewRouter()
	r.Use(StructuredLogger(logger))
	r.Get("/view-loan/{loanID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("body"))
	})

	req := httptest.NewRequest(http.MethodGet, "/view-loan/42", nil)
	req.RemoteAddr = "192.0.2.1:12345"
	req.Header.Set("User-Agent", "TestAgent/1.0")
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-123"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, status, rr.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &entry), "Failed to unmarshal log output")
	return entry
}

func TestStructuredLogger(t *testing.T) {
	entry := serveLogged(t, http.StatusAccepted)

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Served request", entry["msg"])
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/view-loan/42", entry["path"])
	assert.Equal(t, "/view-loan/{loanID}", entry["route"])
	assert.Equal(t, "192.0.2.1:12345", entry["remote_addr"])
	assert.Equal(t, "TestAgent/1.0", entry["user_agent"])
	assert.Equal(t, float64(http.StatusAccepted), entry["status"])
	assert.Equal(t, float64(4), entry["bytes_written"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Contains(t, entry, "latency_ms")
}

func TestStructuredLogger_LevelByStatus(t *testing.T) {
	assert.Equal(t, "WARN", serveLogged(t, http.StatusNotFound)["level"])
	assert.Equal(t, "ERROR", serveLogged(t, http.StatusInternalServerError)["level"])
}
