// Package api provides the HTTP API server and handlers for the Frame Archive catalog.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	domainerrors "github.com/framearchive/framearchive/internal/errors"
	"github.com/framearchive/framearchive/internal/http/response"
	"github.com/framearchive/framearchive/internal/metrics"
	"github.com/framearchive/framearchive/internal/ratelimit"
)

// Options carries the transport settings the server needs.
type Options struct {
	AllowedOrigins []string
	// RateLimiter guards state-changing requests. Nil disables rate limiting.
	RateLimiter *ratelimit.KeyedRateLimiter
	// Metrics records request metrics and serves /metrics. Nil disables both.
	Metrics *metrics.Metrics
	// Pinger backs the database component of /health.
	Pinger Pinger
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *Services
	router   *chi.Mux
	api      huma.API
	limiter  *ratelimit.KeyedRateLimiter
	metrics  *metrics.Metrics
	pinger   Pinger
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		services: services,
		router:   router,
		limiter:  opts.RateLimiter,
		metrics:  opts.Metrics,
		pinger:   opts.Pinger,
		logger:   logger,
	}

	s.setupMiddleware(opts.AllowedOrigins, opts.TrustProxyHeaders)

	humaConfig := huma.DefaultConfig("Frame Archive API", "1.0.0")
	humaConfig.Info.Description = "Catalog of interactive frames with a legacy card responder."
	// Responses keep the exact JSON shape clients expect, without a $schema link.
	humaConfig.CreateHooks = nil

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(allowedOrigins []string, trustProxyHeaders bool) {
	s.router.Use(middleware.RequestID)
	if trustProxyHeaders {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.metrics, s.logger))
	}

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.HandleError(w, domainerrors.NotFound("Not found"), s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, "Method not allowed", s.logger)
	})
}

// setupRoutes registers every operation.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerLegacyRoutes()
	s.registerRegistrationRoutes()
	s.registerRenderRoutes()
	s.registerLoaderRoutes()
	s.registerPreviewRoutes()

	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
}
