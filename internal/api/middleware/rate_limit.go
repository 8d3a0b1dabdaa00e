package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/logging"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles clients with fixed-window counters in redis.
// Windows are keyed by tier, client IP and window start, so counters expire
// on their own and no cleanup pass is needed.
type RateLimiter struct {
	rdb *redis.Client
	log logging.Logger
}

func NewRateLimiter(rdb *redis.Client, log logging.Logger) *RateLimiter {
	return &RateLimiter{rdb: rdb, log: log}
}

// Limit allows at most max requests per window for each client within the
// named tier. When redis is unreachable the limiter fails open: a cache
// outage must not take the API down with it.
func (l *RateLimiter) Limit(tier string, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := windowKey(tier, clientIP(r), time.Now(), window)

			pipe := l.rdb.Pipeline()
			incr := pipe.Incr(r.Context(), key)
			pipe.Expire(r.Context(), key, window)
			if _, err := pipe.Exec(r.Context()); err != nil {
				l.log.Warn(r.Context(), "rate limiter unavailable, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			count := incr.Val()
			remaining := int64(max) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("RateLimit-Limit", strconv.Itoa(max))
			w.Header().Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(max) {
				common.RespondWithError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func windowKey(tier, ip string, now time.Time, window time.Duration) string {
	windowStart := now.Unix() / int64(window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%s:%d", tier, ip, windowStart)
}

// clientIP trusts RemoteAddr, which the RealIP middleware has already
// rewritten from X-Forwarded-For / X-Real-IP when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
