package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"newsdesk/pkg/security/csp"
)

func serveWithHeaders(cfg SecurityHeadersConfig, path string) *httptest.ResponseRecorder {
	h := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestSecurityHeaders_PolicyByPath(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig()

	tests := []struct {
		path string
		want string
	}{
		{path: "/api/news/123", want: csp.Strict().String()},
		{path: "/api/health", want: csp.Strict().String()},
		{path: "/swagger/index.html", want: csp.SwaggerUI().String()},
		{path: "/swagger", want: csp.Strict().String()},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := serveWithHeaders(cfg, tt.path)
			assert.Equal(t, tt.want, rr.Header().Get(csp.HeaderEnforce))
			assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
		})
	}
}

func TestSecurityHeaders_LongestPrefixWins(t *testing.T) {
	cfg := SecurityHeadersConfig{
		Default: csp.Strict(),
		PathPolicies: map[string]csp.Policy{
			"/docs/":     csp.New().DefaultSrc("'self'"),
			"/docs/raw/": csp.New().DefaultSrc("'none'"),
		},
	}

	assert.Equal(t, "default-src 'self'", serveWithHeaders(cfg, "/docs/a").Header().Get(csp.HeaderEnforce))
	assert.Equal(t, "default-src 'none'", serveWithHeaders(cfg, "/docs/raw/a").Header().Get(csp.HeaderEnforce))
}

func TestSecurityHeaders_ReportOnly(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig()
	cfg.ReportOnly = true

	rr := serveWithHeaders(cfg, "/api/news")
	assert.Empty(t, rr.Header().Get(csp.HeaderEnforce))
	assert.Equal(t, csp.Strict().String(), rr.Header().Get(csp.HeaderReportOnly))
}

func TestSecurityHeaders_EmptyPolicySkipsCSP(t *testing.T) {
	rr := serveWithHeaders(SecurityHeadersConfig{}, "/api/news")
	assert.Empty(t, rr.Header().Get(csp.HeaderEnforce))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}
