package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/fitcalc/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fakeRateLimiter struct {
	allowed int
	err     error
	keys    []string
}

func (f *fakeRateLimiter) Allow(_ context.Context, key string, _ redis_rate.Limit) (*redis_rate.Result, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	return &redis_rate.Result{Allowed: f.allowed, RetryAfter: time.Second}, nil
}

func TestRateLimit(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	limiter := &fakeRateLimiter{allowed: 1}
	rr := httptest.NewRecorder()
	RateLimit(limiter, "login", 15, metricsManager)(next).ServeHTTP(rr, httptest.NewRequest("POST", "/a/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"login"}, limiter.keys)

	limiter.allowed = 0
	rr = httptest.NewRecorder()
	RateLimit(limiter, "login", 15, metricsManager)(next).ServeHTTP(rr, httptest.NewRequest("POST", "/a/login", nil))
	assert.Equal(t, http.StatusTooEarly, rr.Code)
	assert.Contains(t, rr.Body.String(), "retry after")
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))

	limiter.err = errors.New("redis down")
	rr = httptest.NewRecorder()
	RateLimit(limiter, "login", 15, nil)(next).ServeHTTP(rr, httptest.NewRequest("POST", "/a/login", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(0, 2) // no refill, burst of two

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	// other clients have their own bucket
	assert.True(t, l.Allow("2.2.2.2"))

	assert.Equal(t, 0, l.Sweep(time.Now()))
	assert.Equal(t, 2, l.Sweep(time.Now().Add(time.Hour)))
	// forgotten client starts over
	assert.True(t, l.Allow("1.1.1.1"))
}

func TestRequestMetrics(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	rr := httptest.NewRecorder()
	RequestMetrics(metricsManager)(next).ServeHTTP(rr, httptest.NewRequest("POST", "/calculators/bmi/calculate", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues("POST", "422")))
}
