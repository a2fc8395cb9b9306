package middleware

import (
	"net/http"
	"sort"
	"strings"

	"newsdesk/pkg/security/csp"
)

// SecurityHeadersConfig selects the CSP sent for a request path. The longest
// matching prefix in PathPolicies wins; Default applies otherwise.
type SecurityHeadersConfig struct {
	Default      csp.Policy
	PathPolicies map[string]csp.Policy
	ReportOnly   bool
}

// DefaultSecurityHeadersConfig serves the strict policy everywhere except
// the Swagger UI.
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		Default: csp.Strict(),
		PathPolicies: map[string]csp.Policy{
			"/swagger/": csp.SwaggerUI(),
		},
	}
}

type compiledPolicy struct {
	prefix string
	header string
	value  string
}

// SecurityHeaders sets the Content-Security-Policy plus the usual
// anti-sniffing and anti-framing headers. Policies are serialized once.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	compile := func(prefix string, p csp.Policy) compiledPolicy {
		p = p.ReportOnly(cfg.ReportOnly)
		return compiledPolicy{prefix: prefix, header: p.HeaderName(), value: p.String()}
	}

	paths := make([]compiledPolicy, 0, len(cfg.PathPolicies))
	for prefix, p := range cfg.PathPolicies {
		paths = append(paths, compile(prefix, p))
	}
	sort.Slice(paths, func(i, j int) bool { return len(paths[i].prefix) > len(paths[j].prefix) })
	fallback := compile("", cfg.Default)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy := fallback
			for _, p := range paths {
				if strings.HasPrefix(r.URL.Path, p.prefix) {
					policy = p
					break
				}
			}

			h := w.Header()
			if policy.value != "" {
				h.Set(policy.header, policy.value)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")

			next.ServeHTTP(w, r)
		})
	}
}
