package api

import (
	"log/slog"
	"net"
	"net/http"

	domainerrors "github.com/framearchive/framearchive/internal/errors"
	"github.com/framearchive/framearchive/internal/http/response"
	"github.com/framearchive/framearchive/internal/metrics"
	"github.com/framearchive/framearchive/internal/ratelimit"
)

const msgRateLimited = "Too many requests. Please try again later."

// RateLimitMiddleware limits state-changing requests per client IP and answers
// 429 once a client's burst is spent. Safe methods pass through untouched.
// m may be nil.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			key := getClientIP(r)
			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"path", r.URL.Path,
				)
				if m != nil {
					m.ObserveRateLimited(r.Method)
				}
				response.HandleError(w, domainerrors.RateLimited(msgRateLimited), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// getClientIP returns the host part of RemoteAddr. Forwarded headers are only
// honored through middleware.RealIP, which the server installs when proxy
// headers are trusted.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
