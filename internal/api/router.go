// Package api assembles the HTTP surface: one chi router carrying the
// catalog, membership, lending and analytics handlers behind the shared
// middleware chain.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"libraledger/internal/analytics"
	"libraledger/internal/catalog"
	"libraledger/internal/httpx"
	"libraledger/internal/lending"
	"libraledger/internal/membership"
)

// Handlers groups the per-domain handlers the router mounts.
type Handlers struct {
	Catalog    *catalog.Handler
	Membership *membership.Handler
	Lending    *lending.Handler
	Analytics  *analytics.Handler
}

// Options tunes the router middleware.
type Options struct {
	Logger         *slog.Logger
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the API router.
func NewRouter(handlers Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if opts.Logger != nil {
		r.Use(requestLogger(opts.Logger))
	}
	if opts.RateLimitRPS > 0 {
		r.Use(httpx.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	}

	r.Get("/health", handleHealth)

	handlers.Catalog.Routes(r)
	handlers.Membership.Routes(r)
	handlers.Lending.Routes(r)
	handlers.Analytics.Routes(r)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httpx.OK(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger emits one structured line per request with the chi request id
// attached, so log lines and traces can be tied back to a caller.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
