package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/observability/metrics"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func post(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/news", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	clk := &clock{t: time.Date(2025, 10, 26, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter("test-burst", 1, 2, nil)
	rl.now = clk.now
	h := rl.Middleware(okHandler())

	rejected := metrics.RateLimitRejectedTotal.WithLabelValues("test-burst")
	before := testutil.ToFloat64(rejected)

	assert.Equal(t, http.StatusOK, post(h, "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusOK, post(h, "192.0.2.1:1001").Code)

	rec := post(h, "192.0.2.1:1002")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
	assert.Equal(t, before+1, testutil.ToFloat64(rejected))

	// 別のIPは独立したバケット
	assert.Equal(t, http.StatusOK, post(h, "198.51.100.7:2000").Code)

	clk.advance(time.Second)
	assert.Equal(t, http.StatusOK, post(h, "192.0.2.1:1003").Code)
}

func TestRateLimiter_RejectedRequestsDoNotConsumeTokens(t *testing.T) {
	clk := &clock{t: time.Date(2025, 10, 26, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter("test-cancel", 1, 1, nil)
	rl.now = clk.now
	h := rl.Middleware(okHandler())

	require.Equal(t, http.StatusOK, post(h, "192.0.2.9:1").Code)
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusTooManyRequests, post(h, "192.0.2.9:1").Code)
	}

	clk.advance(time.Second)
	assert.Equal(t, http.StatusOK, post(h, "192.0.2.9:1").Code)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	clk := &clock{t: time.Date(2025, 10, 26, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter("test-cleanup", 10, 10, nil)
	rl.now = clk.now
	h := rl.Middleware(okHandler())

	post(h, "192.0.2.1:1")
	clk.advance(5 * time.Minute)
	post(h, "192.0.2.2:1")

	assert.Equal(t, 1, rl.Cleanup(time.Minute))
	rl.mu.Lock()
	_, kept := rl.clients["192.0.2.2"]
	rl.mu.Unlock()
	assert.True(t, kept)
}

func TestRateLimiter_RunStopsOnCancel(t *testing.T) {
	rl := NewRateLimiter("test-run", 1, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRateLimiter_UnknownClientsShareBucket(t *testing.T) {
	rl := NewRateLimiter("test-unknown", 0.001, 1, nil)
	h := rl.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, post(h, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(h, "garbage").Code)
}
