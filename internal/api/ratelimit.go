package api

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aitoolsdash/dashboard/internal/ratelimit"
)

// codeRateLimited is returned with 429 responses.
const codeRateLimited = "RATE_LIMITED"

// rateLimitMiddleware rejects requests from a client IP that has used up its
// budget. RealIP has already rewritten RemoteAddr from proxy headers.
func rateLimitMiddleware(api huma.API, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := clientIP(ctx.RemoteAddr())
		if !limiter.Allow(key) {
			logger.Warn("Rate limit exceeded",
				"ip", key,
				"path", ctx.URL().Path,
			)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		next(ctx)
	}
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
