package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordNewsOperation(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		result    string
	}{
		{name: "create success", operation: "create", result: "success"},
		{name: "update not found", operation: "update", result: "not_found"},
		{name: "get error", operation: "get", result: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := NewsOperationsTotal.WithLabelValues(tt.operation, tt.result)
			before := testutil.ToFloat64(counter)

			RecordNewsOperation(tt.operation, tt.result, 15*time.Millisecond)

			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestRecordDBQuery(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordDBQuery("news_get_by_id", 3*time.Millisecond)
		RecordDBQuery("news_update", 0)
	})
}

func TestUpdateDBConnections(t *testing.T) {
	UpdateDBConnections(7, 3)

	assert.Equal(t, float64(7), testutil.ToFloat64(DBConnectionsOpen))
	assert.Equal(t, float64(3), testutil.ToFloat64(DBConnectionsIdle))
}

func TestRecordRateLimited(t *testing.T) {
	c := RateLimitRejectedTotal.WithLabelValues("write")
	before := testutil.ToFloat64(c)

	RecordRateLimited("write")
	RecordRateLimited("write")

	assert.Equal(t, before+2, testutil.ToFloat64(c))
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("news-repository", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("news-repository")))

	SetCircuitBreakerState("news-repository", 0)
	assert.Equal(t, float64(0), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("news-repository")))
}

func TestRecordHTTPRequest(t *testing.T) {
	c := HTTPRequestsTotal.WithLabelValues("POST", "/api/news", "201")
	before := testutil.ToFloat64(c)

	RecordHTTPRequest("POST", "/api/news", "201", 20*time.Millisecond, 128, 512)

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestRecordAuth(t *testing.T) {
	c := AuthRequestsTotal.WithLabelValues("jwt", "forbidden")
	before := testutil.ToFloat64(c)

	RecordAuth("jwt", "forbidden", time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
