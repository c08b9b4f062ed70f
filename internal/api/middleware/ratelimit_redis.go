package middleware

import (
	"credit-engine/internal/config"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisWindow = time.Second

// RedisRateLimiter counts requests per client IP in fixed one-second
// windows shared by every replica pointing at the same Redis.
type RedisRateLimiter struct {
	client *redis.Client
	cfg    config.RateLimitConfig
	logger *slog.Logger
}

func NewRedisRateLimiter(cfg config.RateLimitConfig, client *redis.Client, logger *slog.Logger) *RedisRateLimiter {
	logger = logger.With("component", "RedisRateLimiter")
	if cfg.Enabled && client == nil {
		logger.Warn("Rate limiting enabled but no Redis client provided; disabling.")
		cfg.Enabled = false
	}
	return &RedisRateLimiter{client: client, cfg: cfg, logger: logger}
}

func (rl *RedisRateLimiter) limit() int64 {
	// Burst is the window capacity when set, otherwise the sustained rate.
	if rl.cfg.Burst > 0 {
		return int64(rl.cfg.Burst)
	}
	return int64(rl.cfg.RPS)
}

func (rl *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := clientIP(r)
		key := fmt.Sprintf("ratelimit:%s", ip)

		pipe := rl.client.Pipeline()
		incr := pipe.Incr(ctx, key)
		ttl := pipe.TTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			// Fail open.
			rl.logger.ErrorContext(ctx, "Redis pipeline failed during rate limiting check", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		if t := ttl.Val(); t == -1 || t == -2 {
			if err := rl.client.Expire(ctx, key, redisWindow).Err(); err != nil {
				rl.logger.ErrorContext(ctx, "Failed to set rate limit key expiry", "error", err, "key", key)
			}
		}

		if count := incr.Val(); count > rl.limit() {
			rl.logger.WarnContext(ctx, "Rate limit exceeded", "ip", ip, "count", count, "limit", rl.limit())
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(redisWindow.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"code":    "RATE_LIMITED",
					"message": "Rate limit exceeded",
				},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
