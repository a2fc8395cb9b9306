package metrics

import (
	"time"
)

// RecordNewsOperation records the outcome and latency of a news use case.
// Result should be "success", "not_found" or "error".
func RecordNewsOperation(operation, result string, duration time.Duration) {
	NewsOperationsTotal.WithLabelValues(operation, result).Inc()
	NewsOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnections mirrors sql.DBStats into the pool gauges.
func UpdateDBConnections(open, idle int) {
	DBConnectionsOpen.Set(float64(open))
	DBConnectionsIdle.Set(float64(idle))
}

// RecordRateLimited counts a request rejected by the named limiter.
func RecordRateLimited(limiter string) {
	RateLimitRejectedTotal.WithLabelValues(limiter).Inc()
}

// SetCircuitBreakerState publishes a breaker state as 0 (closed),
// 1 (half-open) or 2 (open).
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordAuth records one authentication attempt.
func RecordAuth(authenticator, result string, duration time.Duration) {
	AuthRequestsTotal.WithLabelValues(authenticator, result).Inc()
	AuthDuration.Observe(duration.Seconds())
}
