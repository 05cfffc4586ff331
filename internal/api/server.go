// Package api exposes the dashboard catalog to the local front-end as a JSON API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aitoolsdash/dashboard/internal/backup"
	"github.com/aitoolsdash/dashboard/internal/ratelimit"
	"github.com/aitoolsdash/dashboard/internal/service"
	"github.com/aitoolsdash/dashboard/internal/store"
)

// Services groups the business services used by the API server.
type Services struct {
	Catalog *service.CatalogService
	Search  *service.SearchService
	Backup  *backup.Service
}

// Options configures the HTTP surface.
type Options struct {
	Version        string
	AllowedOrigins []string

	// RestoreLimiter throttles the endpoints that rewrite the catalog or
	// write backup files, keyed by client IP. Nil disables throttling.
	RestoreLimiter *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger

	restoreLimit huma.Middlewares
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	api := humachi.New(router, newHumaConfig(opts.Version))
	RegisterErrorHandler()

	s := &Server{
		store:    st,
		services: services,
		router:   router,
		api:      api,
		logger:   logger,
	}
	if opts.RestoreLimiter != nil {
		s.restoreLimit = huma.Middlewares{rateLimitMiddleware(api, opts.RestoreLimiter, logger)}
	}
	s.registerRoutes()

	return s
}

func newHumaConfig(version string) huma.Config {
	config := huma.DefaultConfig("AI Tools Dashboard API", version)
	config.Info.Description = "Local catalog of AI tools, prompts and categories"
	config.Transformers = append(config.Transformers, EnvelopeTransformer)
	return config
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerCategoryRoutes()
	s.registerToolRoutes()
	s.registerPromptRoutes()
	s.registerViewRoutes()
	s.registerSearchRoutes()
	s.registerBackupRoutes()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, mainly for OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
