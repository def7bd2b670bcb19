package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimitedRouter(t *testing.T, limiter *RateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doLogin(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("E2E_MODE", "")

	t.Run("allows requests up to the limit and rejects the rest", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		router := newLimitedRouter(t, NewRateLimiterWithConfig(client, 3, time.Minute))

		for i := 0; i < 3; i++ {
			if code := doLogin(router); code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i+1, code)
			}
		}
		if code := doLogin(router); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after the limit, got %d", code)
		}
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		router := newLimitedRouter(t, NewRateLimiterWithConfig(client, 1, time.Minute))

		if code := doLogin(router); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if code := doLogin(router); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", code)
		}

		mr.FastForward(2 * time.Minute)

		if code := doLogin(router); code != http.StatusOK {
			t.Fatalf("expected 200 after window expiry, got %d", code)
		}
	})

	t.Run("fails open when redis is unavailable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		router := newLimitedRouter(t, NewRateLimiterWithConfig(client, 1, time.Minute))
		mr.Close()

		if code := doLogin(router); code != http.StatusOK {
			t.Fatalf("expected 200 when redis is down, got %d", code)
		}
	})

	t.Run("skipped in the test environment", func(t *testing.T) {
		t.Setenv("ENV", "test")

		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		router := newLimitedRouter(t, NewRateLimiterWithConfig(client, 1, time.Minute))

		for i := 0; i < 5; i++ {
			if code := doLogin(router); code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i+1, code)
			}
		}
	})
}
