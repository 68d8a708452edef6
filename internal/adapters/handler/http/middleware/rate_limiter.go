package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

const rateLimitPrefix = "kanso:ratelimit:"

// unlimitedPaths are probed by infrastructure and never throttled.
var unlimitedPaths = []string{"/health", "/metrics", "/swagger/"}

// RateLimiterMiddleware allows limit requests per client IP within a fixed
// window. The counter and its expiry are set in one MULTI so a crash between
// them cannot leave a key without TTL. It fails open when Redis errors.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration, logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentRateLimit)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range unlimitedPaths {
			if path == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)) {
				c.Next()
				return
			}
		}

		ctx := c.Request.Context()
		key := rateLimitPrefix + c.ClientIP()

		var (
			incr *redis.IntCmd
			pttl *redis.DurationCmd
		)
		_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, window)
			pttl = pipe.PTTL(ctx, key)
			return nil
		})
		if err != nil {
			logger.WarnContext(ctx, "redis error, rate limiter skipped", log.FieldError, err)
			c.Next()
			return
		}

		count := incr.Val()
		ttl := pttl.Val()
		if ttl <= 0 {
			ttl = window
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(limit) {
			retry := int(ttl.Round(time.Second).Seconds())
			c.Header("Retry-After", strconv.Itoa(retry))
			logger.DebugContext(ctx, "request throttled", log.FieldClientIP, c.ClientIP(), log.FieldPath, path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many requests, slow down",
				"retryAfterS": retry,
			})
			return
		}

		c.Next()
	}
}
