package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/salesverse/salesverse-backend-go/internal/handler/http/response"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit throttles callers per client IP. formatted uses the limiter
// notation, e.g. "100-M" for 100 requests a minute.
func RateLimit(formatted string) (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)
	mw := stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("rate limit reached", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
			response.TooManyRequests(w, "Too many requests, slow down")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("rate limiter failed", "error", err)
			response.InternalServerError(w, "An unexpected error occurred")
		}),
	)
	return mw.Handler, nil
}
