package auth

import (
	"log/slog"
	"net/http"
	"time"

	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/metrics"
)

// RequireAdmin rejects requests that do not resolve to an administrator and
// stores the actor in the request context otherwise.
func RequireAdmin(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := logging.WithRequestID(r.Context(), logging.FromContext(r.Context()))

			actor, err := authn.Authenticate(r)
			if err != nil {
				metrics.RecordAuth(authn.Name(), "unauthenticated", time.Since(start))
				logger.Warn("authentication failed",
					slog.String("authenticator", authn.Name()),
					slog.String("reason", err.Error()))
				w.Header().Set("WWW-Authenticate", `Bearer realm="newsdesk"`)
				respond.Error(w, http.StatusUnauthorized, ErrUnauthenticated)
				return
			}
			if !actor.IsAdmin() {
				metrics.RecordAuth(authn.Name(), "forbidden", time.Since(start))
				logger.Warn("admin access denied",
					slog.String("actor_id", actor.ID.String()),
					slog.String("role", actor.Role),
					slog.String("method", r.Method))
				respond.Error(w, http.StatusForbidden, ErrForbidden)
				return
			}

			metrics.RecordAuth(authn.Name(), "success", time.Since(start))
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
