package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"limelink-mcp/internal/metrics"
	"limelink-mcp/internal/middleware"
)

const (
	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxBodyBytes   = 1 << 20 // 1 MB
)

type Options struct {
	RequestTimeout time.Duration // applies to POST /mcp only
	MaxBodyBytes   int64
}

// SetupRouter mounts the MCP transport on /mcp next to /healthz and /metrics.
// GET /mcp is a long-lived event stream, so only POST is bounded in time.
func SetupRouter(r *chi.Mux, baseLogger *zap.Logger, mcpHandler http.Handler, opts Options) {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer())

	// routes
	r.Route("/mcp", func(r chi.Router) {
		r.With(
			middleware.Timeout(opts.RequestTimeout),
			middleware.MaxBodySize(opts.MaxBodyBytes),
		).Post("/", mcpHandler.ServeHTTP)
		r.Get("/", mcpHandler.ServeHTTP)
		r.Delete("/", mcpHandler.ServeHTTP)
	})

	// health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}
