package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/securitysvcs/auth-service/internal/infrastructure/redis"
	appctx "github.com/securitysvcs/auth-service/internal/pkg/context"
	"github.com/securitysvcs/auth-service/internal/transport/http/response"
)

func TestRequestID_MintsAndEchoes(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = appctx.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatalf("request id missing from context")
	}
	if rec.Header().Get(HeaderXRequestID) != seen {
		t.Fatalf("response header %q != context id %q", rec.Header().Get(HeaderXRequestID), seen)
	}
}

func TestRequestID_HonorsInbound(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = appctx.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderXRequestID, "req-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "req-123" {
		t.Fatalf("expected inbound id to win, got %q", seen)
	}
}

func newTestLimiter(t *testing.T) RateLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return redis.NewFixedWindowLimiter(redis.NewFromRedis(rdb))
}

func TestRateLimitFixedWindow_BlocksFourthAttempt(t *testing.T) {
	limiter := newTestLimiter(t)

	h := RateLimitFixedWindow(limiter, FixedWindowConfig{
		RouteKey: "login",
		Limit:    3,
		Window:   time.Minute,
	}, response.WriteError)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/auth/v1/login", nil)
	req.RemoteAddr = "10.1.2.3:5000"

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRateLimitFixedWindow_NilLimiterFailsOpen(t *testing.T) {
	t.Parallel()

	h := RateLimitFixedWindow(nil, FixedWindowConfig{RouteKey: "login", Limit: 1}, response.WriteError)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("nil limiter must not block, got %d", rec.Code)
		}
	}
}

func TestInternalAuth(t *testing.T) {
	t.Parallel()

	h := InternalAuth("s3cret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing secret should be 401, got %d", rec.Code)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Internal-Secret", "s3cret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid secret should pass, got %d", rec.Code)
	}
}

func TestInternalAuth_EmptySecretRefuses(t *testing.T) {
	t.Parallel()

	h := InternalAuth("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("empty secret is a misconfiguration, got %d", rec.Code)
	}
}
