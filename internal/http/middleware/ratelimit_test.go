package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(rps, burst, KeyByClientIP())
	r.Use(rl.Handler())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func hit(r *gin.Engine, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	r := newLimitedRouter(100, 5)

	for i := 0; i < 5; i++ {
		if w := hit(r, "203.0.113.7:1234"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
}

func TestRateLimiterBlocksBeyondBurst(t *testing.T) {
	// A replenish rate near zero makes the test deterministic.
	r := newLimitedRouter(0.0001, 2)

	hit(r, "203.0.113.7:1234")
	hit(r, "203.0.113.7:1234")

	w := hit(r, "203.0.113.7:1234")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
	body := w.Body.String()
	if !strings.Contains(body, "rate_limited") || !strings.Contains(body, "rate limit exceeded") {
		t.Errorf("body = %s", body)
	}
}

func TestRateLimiterKeysByClientIP(t *testing.T) {
	r := newLimitedRouter(0.0001, 1)

	if w := hit(r, "203.0.113.7:1234"); w.Code != http.StatusOK {
		t.Fatalf("first ip: status = %d", w.Code)
	}
	if w := hit(r, "203.0.113.7:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("first ip again: status = %d, want 429", w.Code)
	}
	// A different client gets its own bucket.
	if w := hit(r, "198.51.100.9:4321"); w.Code != http.StatusOK {
		t.Fatalf("second ip: status = %d, want 200", w.Code)
	}
}

func TestNewRateLimiterCoercesBurst(t *testing.T) {
	rl := NewRateLimiter(1, 0, KeyByClientIP())
	if rl.burst != 1 {
		t.Errorf("burst = %d, want coerced 1", rl.burst)
	}
}
