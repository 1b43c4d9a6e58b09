package middleware

import (
	"net"
	"net/http"
	"strconv"

	"hotel/shared"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

const cacheKeyRateLimit = "limiter"

// RateLimit allows MaxRequests per client in a fixed window of WindowSeconds. A client is
// its address plus user agent. When the counter cannot be reached the request goes through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	settings := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !settings.Enable || settings.MaxRequests <= 0 || settings.WindowSeconds <= 0 {
			return next
		}

		limit := strconv.Itoa(settings.MaxRequests)
		window := strconv.Itoa(settings.WindowSeconds)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count, err := a.cache.Increment(r.Context(), shared.BuildCacheKey(cacheKeyRateLimit, clientKey(r)), settings.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			remaining := max(0, int64(settings.MaxRequests)-count)

			w.Header().Set(constant.RequestHeaderRateLimit, limit)
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(remaining, 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, window)

			if count > int64(settings.MaxRequests) {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP expects chi's RealIP to have already folded X-Forwarded-For and X-Real-IP into
// RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func clientKey(r *http.Request) string {
	digest := xxhash.New()
	_, _ = digest.WriteString(clientIP(r))
	_, _ = digest.WriteString("|")
	_, _ = digest.WriteString(r.Header.Get(constant.RequestHeaderUserAgent))

	return strconv.FormatUint(digest.Sum64(), 16)
}
