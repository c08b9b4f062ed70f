package middleware

import (
	"bytes"
	"credit-engine/internal/config"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisRateLimiter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg := config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1}

	t.Run("missing client disables limiting", func(t *testing.T) {
		handler := NewRedisRateLimiter(cfg, nil, logger).Middleware(okHandler())
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestFrom("127.0.0.1:1"))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("unreachable redis fails open", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
			MaxRetries:  -1,
		})
		t.Cleanup(func() { _ = client.Close() })

		handler := NewRedisRateLimiter(cfg, client, logger).Middleware(okHandler())
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestFrom("127.0.0.1:1"))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("window capacity prefers burst", func(t *testing.T) {
		rl := NewRedisRateLimiter(config.RateLimitConfig{Enabled: true, RPS: 5, Burst: 12}, redis.NewClient(&redis.Options{}), logger)
		assert.Equal(t, int64(12), rl.limit())

		rl.cfg.Burst = 0
		assert.Equal(t, int64(5), rl.limit())
	})
}
