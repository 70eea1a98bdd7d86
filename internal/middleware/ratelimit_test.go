package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests under the limit", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)
		defer rl.Stop()

		for i := 0; i < 3; i++ {
			if !rl.allow("1.2.3.4") {
				t.Fatalf("request %d should be allowed", i+1)
			}
		}
	})

	t.Run("blocks requests over the limit", func(t *testing.T) {
		rl := NewRateLimiter(2, time.Minute)
		defer rl.Stop()

		rl.allow("1.2.3.4")
		rl.allow("1.2.3.4")
		if rl.allow("1.2.3.4") {
			t.Error("third request should be blocked")
		}
	})

	t.Run("limits are per client", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)
		defer rl.Stop()

		rl.allow("1.2.3.4")
		if !rl.allow("5.6.7.8") {
			t.Error("a different client should not be affected")
		}
	})

	t.Run("middleware returns 429 when blocked", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)
		defer rl.Stop()

		inner, _ := okHandler()
		handler := rl.Middleware(inner)

		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "9.9.9.9:1234"

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("first request: got %d, want 200", rr.Code)
		}

		rr = httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusTooManyRequests {
			t.Errorf("second request: got %d, want 429", rr.Code)
		}
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *http.Request)
		want   string
	}{
		{
			"x-forwarded-for single",
			func(r *http.Request) { r.Header.Set("X-Forwarded-For", "10.0.0.1") },
			"10.0.0.1",
		},
		{
			"x-forwarded-for multiple takes first",
			func(r *http.Request) { r.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2") },
			"10.0.0.1",
		},
		{
			"x-real-ip",
			func(r *http.Request) { r.Header.Set("X-Real-IP", "10.0.0.3") },
			"10.0.0.3",
		},
		{
			"remote addr strips port",
			func(r *http.Request) { r.RemoteAddr = "10.0.0.4:5678" },
			"10.0.0.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP: got %q, want %q", got, tt.want)
			}
		})
	}
}
