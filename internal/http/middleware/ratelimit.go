package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// RateLimiter implements fixed-window limits backed by Redis INCR/EXPIRE.
// The client is injected at startup; with a nil client every check fails open,
// keeping the server available when Redis is down or not configured.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// PerIP limits by client address. key format: rl:<window_seconds>:<ip>
func (l *RateLimiter) PerIP(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		l.check(c, "rl:"+strconv.FormatInt(int64(window.Seconds()), 10)+":"+c.ClientIP(),
			maxRequests, window)
	}
}

// PerUser limits by authenticated user. Requires the JWT middleware first.
func (l *RateLimiter) PerUser(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get("user_id")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		uid, _ := userID.(string)
		l.check(c, "url:"+strconv.FormatInt(int64(window.Seconds()), 10)+":"+uid,
			maxRequests, window)
	}
}

func (l *RateLimiter) check(c *gin.Context, key string, maxRequests int, window time.Duration) {
	if l.rdb == nil {
		c.Next()
		return
	}

	ctx := context.Background()
	val, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		// fail-open on Redis errors, flag it for debugging
		c.Header("X-RateLimit-Error", "redis-error")
		c.Next()
		return
	}

	if val == 1 {
		l.rdb.Expire(ctx, key, window)
	}

	if val > int64(maxRequests) {
		RLBlocked.WithLabelValues(c.FullPath()).Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	RLRequests.WithLabelValues(c.FullPath()).Inc()
	c.Next()
}
