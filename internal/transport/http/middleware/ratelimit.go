package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/culturalite/backend/internal/domain"
	"github.com/culturalite/backend/internal/infrastructure/redis"
	"github.com/culturalite/backend/internal/logger"
	"github.com/culturalite/backend/internal/transport/http/response"
)

// RateLimit enforces a per-client fixed-window limit on a route group.
// A nil limiter (redis down at startup) disables enforcement; at request
// time limiter errors fail open so the auth endpoints stay reachable.
func RateLimit(limiter *redis.FixedWindowLimiter, scope string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("rl:%s:%s", scope, clientIP(r))
			d, err := limiter.AllowFixedWindow(r.Context(), key, limit, window)
			if err != nil {
				logger.WithCtx(r.Context()).Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.Allowed {
				retry := int(d.RetryAfter.Round(time.Second).Seconds())
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				response.WriteError(w, r, domain.ErrRateLimited(scope))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the address set by the RealIP middleware, falling back
// to the raw remote address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
