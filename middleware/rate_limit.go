package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"AdminBackend/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Counter increments a windowed counter and returns the new value.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter is a fixed-window counter: the key expires one window after its first hit.
type RedisCounter struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCounter(rdb *redis.Client, prefix string) *RedisCounter {
	return &RedisCounter{rdb: rdb, prefix: prefix}
}

// Incr creates the key with its expiry and increments it in one transaction, so a key
// never exists without a TTL.
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = r.prefix + key
	var incr *redis.IntCmd
	if _, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		return nil
	}); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimit allows limit requests per client ip per window. Without a counter, or when
// the counter fails, requests pass through.
func RateLimit(counter Counter, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		count, err := counter.Incr(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > limit {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
