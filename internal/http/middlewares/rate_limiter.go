package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a fixed window per client key, counted in redis so
// the limit holds across replicas.
type RateLimiter struct {
	rdb    *redis.Client
	window time.Duration
	limit  int
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
	}
}

// Middleware returns a gin.HandlerFunc that enforces the limit for a derived key.

func (rl *RateLimiter) Middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			// fallback to IP if key cannot be derived
			key = clientIP(c)
		}

		ctx := c.Request.Context()

		count, err := rl.rdb.Incr(ctx, "ratelimit:"+key).Result()

		if err != nil {
			// redis being down must not take the API with it
			c.Next()
			return
		}

		// NX applies the window TTL only when the key has none, which both
		// starts a fresh window and heals a key orphaned by a crash between
		// INCR and EXPIRE; without it such a key would never expire and the
		// client would stay blocked forever.
		_, err = rl.rdb.ExpireNX(ctx, "ratelimit:"+key, rl.window).Result()

		if err != nil {
			// a key whose TTL cannot be guaranteed must not block anyone
			c.Next()
			return
		}

		if count > int64(rl.limit) {
			ttl, _ := rl.rdb.TTL(ctx, "ratelimit:"+key).Result()

			retryAfter := int(ttl.Seconds())

			if retryAfter < 0 {
				retryAfter = 0
			}

			c.Header("Retry-After", strconv.Itoa(retryAfter))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again shortly.",
			})

			return
		}

		c.Next()
	}
}

// KeyByIP rate limits by client IP; every endpoint here is unauthenticated
// or identified only by request body, so IP is the usable key.
func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	// gin's ClientIP respects X-Forwarded-For / X-Real-IP if configured.
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)

	if err == nil && host != "" {
		return host
	}

	return ip
}
