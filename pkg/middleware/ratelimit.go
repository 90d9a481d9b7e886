package middleware

import (
	"net/http"
	"time"

	"inscovia/pkg/utils"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RateLimitByIP caps requests per client IP within a sliding window. A non-positive
// limit disables it.
func RateLimitByIP(requests int, window time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("Rate limit exceeded",
				zap.String("path", r.URL.Path),
				zap.String("ip", r.RemoteAddr),
			)
			utils.ResponseTooManyRequests(w, "Too many requests, please try again later")
		}),
	)
}
