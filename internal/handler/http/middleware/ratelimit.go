package middleware

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/observability/metrics"
)

var errRateLimited = errors.New("rate limit exceeded")

// RateLimiter is a token bucket per client IP.
type RateLimiter struct {
	name      string
	rps       rate.Limit
	burst     int
	extractor IPExtractor
	now       func() time.Time

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows rps requests per second per IP with the given burst.
// name labels the rejection metric. A nil extractor means RemoteAddr.
func NewRateLimiter(name string, rps float64, burst int, extractor IPExtractor) *RateLimiter {
	if extractor == nil {
		extractor = RemoteAddrExtractor{}
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		name:      name,
		rps:       rate.Limit(rps),
		burst:     burst,
		extractor: extractor,
		now:       time.Now,
		clients:   make(map[string]*client),
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := rl.extractor.ExtractIP(r)
		if err != nil {
			// 抽出できないクライアントは1つのバケットにまとめる
			slog.Warn("rate limiter: cannot extract client IP",
				slog.String("remote_addr", r.RemoteAddr),
				slog.Any("error", err))
			ip = "unknown"
		}

		res := rl.reserve(ip)
		if !res.OK() {
			rl.reject(w, r, ip, time.Second)
			return
		}
		if delay := res.DelayFrom(rl.now()); delay > 0 {
			res.CancelAt(rl.now())
			rl.reject(w, r, ip, delay)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) reject(w http.ResponseWriter, r *http.Request, ip string, retry time.Duration) {
	metrics.RecordRateLimited(rl.name)
	slog.Warn("rate limit exceeded",
		slog.String("limiter", rl.name),
		slog.String("ip", ip),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
	respond.Error(w, http.StatusTooManyRequests, errRateLimited)
}

func (rl *RateLimiter) reserve(ip string) *rate.Reservation {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.ReserveN(now, 1)
}

// Cleanup forgets clients idle for longer than idle.
func (rl *RateLimiter) Cleanup(idle time.Duration) int {
	cutoff := rl.now().Add(-idle)
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Cleanup(2 * interval); n > 0 {
				slog.Debug("rate limiter: cleanup completed",
					slog.String("limiter", rl.name),
					slog.Int("removed", n))
			}
		}
	}
}
