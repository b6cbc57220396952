// Package http provides the HTTP delivery layer for the URL shortener service.
// This package contains the HTTP handlers and related types used for processing
// incoming requests, validating input, admitting redirects and formatting responses.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vadimbarashkov/shortlink/internal/ratelimit"
	"github.com/vadimbarashkov/shortlink/pkg/middleware/metrics"
	"github.com/vadimbarashkov/shortlink/pkg/middleware/recoverer"
)

const metricsNamespace = "shortlink"

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the URL shortener API.
// Only the redirect route is subject to limiter.
func NewRouter(logger *httplog.Logger, urlUseCase urlUseCase, limiter ratelimit.Limiter) *chi.Mux {
	r := chi.NewRouter()
	m := metrics.New(metricsNamespace)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		ExposedHeaders:   []string{headerRateLimitLimit, headerRateLimitRemaining, headerRetryAfter},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer.New(logger.Logger))
	r.Use(m.Middleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	r.Get("/health", handleHealth)
	r.Handle("/metrics", m.Handler())

	h := newURLHandler(urlUseCase, validator.New())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Route("/shorten", func(r chi.Router) {
			r.Post("/", h.shortenURL)

			r.Route("/{shortCode}", func(r chi.Router) {
				r.Get("/", h.getURL)
				r.Put("/", h.modifyURL)
				r.Delete("/", h.deactivateURL)
				r.Get("/stats", h.getURLStats)
			})
		})
	})

	r.With(rateLimit(limiter)).Get("/{shortCode}", h.redirect)

	return r
}
