package middleware

import (
	"net/http"
	"time"

	"github.com/mernshopper/shopper-backend/internal/database"
	"github.com/mernshopper/shopper-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the sliding window for the per-IP counter
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window
	RateLimitMaxRequests = 60
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
)

// RateLimit provides Redis-backed per-IP rate limiting. This is a blanket
// abuse guard on the whole router, not login-attempt throttling. If Redis is
// unavailable the request is allowed (fail open).
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := RateLimitKeyPrefix + clientip.RealClientIP(r)

		count, err := database.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, key, RateLimitWindow)
		}

		if count > RateLimitMaxRequests {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message":"Too many requests. Please try again later."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
