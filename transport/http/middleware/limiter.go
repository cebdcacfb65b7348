package middleware

import (
	"net"
	"net/http"
	"rentro/shared"
	"rentro/shared/cache"
	"rentro/shared/constant"
	"rentro/transport/http/response"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests per client in fixed redis windows. When redis is
// unavailable the count moves to an in-process token bucket with the same budget.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			var count int
			err := a.cache.Get(r.Context(), cacheKey, &count)

			switch {
			case err == nil:
				count++
			case cache.IsMiss(err):
				count = 1
			default:
				a.serveLocal(w, r, next, cacheKey)

				return
			}

			if count > maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			if err = a.cache.Save(r.Context(), cacheKey, count, windowSecs); err != nil {
				a.serveLocal(w, r, next, cacheKey)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) serveLocal(w http.ResponseWriter, r *http.Request, next http.Handler, key string) {
	if !a.local.allow(key) {
		response.WithRequestLimitExceeded(w)

		return
	}

	next.ServeHTTP(w, r)
}

type localLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLocalLimiter(maxRequests, windowSeconds int) *localLimiter {
	limit := rate.Inf
	if maxRequests > 0 && windowSeconds > 0 {
		limit = rate.Limit(float64(maxRequests) / float64(windowSeconds))
	}

	return &localLimiter{limit: limit, burst: max(maxRequests, 1)}
}

func (l *localLimiter) allow(key string) bool {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter).Allow() //nolint:forcetypeassert
	}

	actual, loaded := l.limiters.LoadOrStore(key, rate.NewLimiter(l.limit, l.burst))
	if !loaded {
		log.Warn().Str("key", key).Msg("rate limiter cache unavailable, limiting in process")
	}

	return actual.(*rate.Limiter).Allow() //nolint:forcetypeassert
}

func userAgent(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
