package http

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"

	"github.com/vadimbarashkov/shortlink/internal/ratelimit"
	"github.com/vadimbarashkov/shortlink/pkg/response"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRetryAfter         = "Retry-After"
)

// clientKey identifies the requester by IP. It relies on middleware.RealIP
// having already replaced RemoteAddr when the request came through a proxy.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfterSeconds(res ratelimit.Result) string {
	secs := int(math.Ceil(res.ResetAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// rateLimit admits requests through limiter keyed by client IP. When the
// limiter itself fails the request is rejected.
func rateLimit(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	const op = "http.rateLimit"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			res, err := limiter.Allow(r.Context(), key)
			if err != nil {
				httplog.LogEntry(r.Context()).Error("rate limiter failed, rejecting request",
					slog.Group(op, slog.String("client", key), slog.Any("err", err)),
				)

				w.Header().Set(headerRetryAfter, "1")
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.TooManyRequests)
				return
			}

			w.Header().Set(headerRateLimitLimit, strconv.Itoa(res.Limit))
			w.Header().Set(headerRateLimitRemaining, strconv.Itoa(res.Remaining))

			if !res.Allowed {
				w.Header().Set(headerRetryAfter, retryAfterSeconds(res))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.TooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
