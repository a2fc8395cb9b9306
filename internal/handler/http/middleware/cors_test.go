package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsHandler(buf *bytes.Buffer) http.Handler {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = append(cfg.AllowedOrigins, "https://Admin.Example.com/")
	cfg.Logger = slog.New(slog.NewJSONHandler(buf, nil))
	return CORS(cfg)(okHandler())
}

func TestCORS_AllowedOrigin(t *testing.T) {
	var logs bytes.Buffer
	req := httptest.NewRequest(http.MethodPost, "/api/news", nil)
	req.Header.Set("Origin", "http://localhost:5188")
	rec := httptest.NewRecorder()

	corsHandler(&logs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5188", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, logs.String())
}

func TestCORS_NormalizedMatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/news/x", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	rec := httptest.NewRecorder()

	corsHandler(&bytes.Buffer{}).ServeHTTP(rec, req)

	assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/news", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	rec := httptest.NewRecorder()

	corsHandler(&bytes.Buffer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, POST, PUT, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization, X-Request-ID", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	var logs bytes.Buffer
	req := httptest.NewRequest(http.MethodOptions, "/api/news", nil)
	req.Header.Set("Origin", "https://evil.example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()

	corsHandler(&logs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "request passes through to the next handler")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, logs.String(), "origin not allowed")
}

func TestCORS_NoOriginHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	corsHandler(&bytes.Buffer{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Vary"))
}
