package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/faqdex/internal/metrics"
)

// RouterConfig holds the HTTP surface settings.
type RouterConfig struct {
	APIKeys         []string
	ClientPerMinute int
	GlobalPerMinute int
}

// NewRouter mounts the API routes and middleware chain.
func NewRouter(s *Server, cfg RouterConfig, logger *zap.Logger) http.Handler {
	limiter := NewRateLimiter(cfg.ClientPerMinute, cfg.GlobalPerMinute)

	r := gochi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chimiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(BearerAuthMiddleware(cfg.APIKeys))
	r.Use(metrics.Middleware())
	r.Use(limiter.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})

	r.Post("/api/chat", s.Chat)
	r.Get("/api/documents", s.ListDocuments)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	return r
}
