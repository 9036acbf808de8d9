// Package api provides the HTTP API server and handlers for the Plateful
// application.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/media/images"
	"github.com/platefulapp/plateful-server/internal/metrics"
	"github.com/platefulapp/plateful-server/internal/ratelimit"
	"github.com/platefulapp/plateful-server/internal/service"
	"github.com/platefulapp/plateful-server/internal/store"
)

// Services bundles the service layer dependencies of the HTTP handlers.
type Services struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Tags        *service.TagService
	Ingredients *service.IngredientService
	Recipes     *service.RecipeService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         store.Store
	services      *Services
	images        *images.Storage
	metrics       *metrics.Metrics
	loginLimiter  *ratelimit.KeyedRateLimiter
	maxUploadSize int64
	router        *chi.Mux
	api           huma.API
	logger        *logger.Logger
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(
	store store.Store,
	services *Services,
	imageStorage *images.Storage,
	m *metrics.Metrics,
	loginLimiter *ratelimit.KeyedRateLimiter,
	maxUploadSize int64,
	log *logger.Logger,
) *Server {
	s := &Server{
		store:         store,
		services:      services,
		images:        imageStorage,
		metrics:       m,
		loginLimiter:  loginLimiter,
		maxUploadSize: maxUploadSize,
		router:        chi.NewRouter(),
		logger:        log,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Plateful API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerTagRoutes()
	s.registerIngredientRoutes()
	s.registerRecipeRoutes()
	s.registerImageRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the underlying huma API, used by tests.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
}
