// Package http holds the cross-cutting HTTP pieces of the API server:
// request logging, panic recovery, body limits, timeouts, metrics and the
// health probes. Feature handlers live in sub-packages.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"newsdesk/internal/handler/http/respond"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"

	dbHealthy    = "healthy"
	dbUnhealthy  = "unhealthy"
	dbNotPresent = "not_configured"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status         string     `json:"status"`
	Database       string     `json:"database"`
	CircuitBreaker string     `json:"circuit_breaker,omitempty"`
	Version        string     `json:"version,omitempty"`
	Timestamp      string     `json:"timestamp"`
	Pool           *PoolStats `json:"pool,omitempty"`
}

// PoolStats is the subset of sql.DBStats worth exposing.
type PoolStats struct {
	MaxOpen  int   `json:"max_open_connections"`
	Open     int   `json:"open_connections"`
	InUse    int   `json:"in_use"`
	Idle     int   `json:"idle"`
	WaitCnt  int64 `json:"wait_count"`
	WaitMsec int64 `json:"wait_duration_ms"`
}

// BreakerState reports the repository circuit breaker, e.g. "closed".
type BreakerState interface {
	StateName() string
}

// HealthHandler reports database reachability. DB is nil when the server
// runs on the in-memory store; the report is then always ok.
type HealthHandler struct {
	DB      *sql.DB
	Breaker BreakerState
	Version string
	Now     func() time.Time
}

// ServeHTTP ヘルスチェック
// @Summary      ヘルスチェック
// @Description  データベースへの疎通を確認します
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	resp := HealthResponse{
		Status:    statusOK,
		Database:  dbNotPresent,
		Version:   h.Version,
		Timestamp: now().UTC().Format(time.RFC3339),
	}
	if h.Breaker != nil {
		resp.CircuitBreaker = h.Breaker.StateName()
	}

	code := http.StatusOK
	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			resp.Status = statusDegraded
			resp.Database = dbUnhealthy
			code = http.StatusServiceUnavailable
		} else {
			resp.Database = dbHealthy
			s := h.DB.Stats()
			resp.Pool = &PoolStats{
				MaxOpen:  s.MaxOpenConnections,
				Open:     s.OpenConnections,
				InUse:    s.InUse,
				Idle:     s.Idle,
				WaitCnt:  s.WaitCount,
				WaitMsec: s.WaitDuration.Milliseconds(),
			}
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, resp)
}

// ReadyHandler is the readiness probe: 200 once the database answers a ping.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// LiveHandler is the liveness probe. It never touches dependencies.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
