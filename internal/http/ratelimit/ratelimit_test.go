package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareAllowsWithinBurst(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 3, time.Minute, nil)
	handler := l.Middleware()(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
		req.RemoteAddr = "10.1.2.3:5000"
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.RemoteAddr = "10.1.2.3:5000"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestMiddlewareTracksPerIP(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1, time.Minute, nil)
	handler := l.Middleware()(okHandler())

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.RemoteAddr = "10.1.2.3:5000"
	handler.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	exhausted := httptest.NewRecorder()
	handler.ServeHTTP(exhausted, req)
	assert.Equal(t, http.StatusTooManyRequests, exhausted.Code)

	other := httptest.NewRecorder()
	otherReq := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	otherReq.RemoteAddr = "10.9.9.9:5000"
	handler.ServeHTTP(other, otherReq)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestClientIPHonorsTrustedProxies(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1, time.Minute, []string{"10.0.0.0/8"})

	// From a trusted proxy the forwarded header names the client.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", l.clientIP(req))

	// From anywhere else the header is ignored.
	req.RemoteAddr = "198.51.100.4:443"
	assert.Equal(t, "198.51.100.4", l.clientIP(req))
}

func TestClientIPRealIPFallback(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1, time.Minute, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	req.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", l.clientIP(req))

	req.Header.Del("X-Real-IP")
	assert.Equal(t, "192.0.2.10", l.clientIP(req))
}
