// Package api provides the HTTP API server and handlers for BookHaven.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookhaven/bookhaven-server/internal/catalog"
	"github.com/bookhaven/bookhaven-server/internal/query"
	"github.com/bookhaven/bookhaven-server/internal/ratelimit"
	"github.com/bookhaven/bookhaven-server/internal/service"
	"github.com/bookhaven/bookhaven-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store          *store.Store
	authService    *service.AuthService
	bookService    *service.BookService
	reviewService  *service.ReviewService
	profileService *service.ProfileService
	catalogService *catalog.Service
	planner        *query.Planner
	authLimiter    *ratelimit.KeyedRateLimiter
	router         *chi.Mux
	logger         *slog.Logger
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(
	store *store.Store,
	authService *service.AuthService,
	bookService *service.BookService,
	reviewService *service.ReviewService,
	profileService *service.ProfileService,
	catalogService *catalog.Service,
	authLimiter *ratelimit.KeyedRateLimiter,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:          store,
		authService:    authService,
		bookService:    bookService,
		reviewService:  reviewService,
		profileService: profileService,
		catalogService: catalogService,
		planner:        query.NewPlanner(),
		authLimiter:    authLimiter,
		router:         chi.NewRouter(),
		logger:         logger,
	}

	s.setupMiddleware()

	RegisterErrorHandler()
	api := humachi.New(s.router, huma.DefaultConfig("BookHaven API", "1.0.0"))
	s.RegisterRoutes(api)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(authMiddleware(s.authService))
	s.router.Use(rateLimitMiddleware(s.authLimiter, "/api/v1/auth/", s.logger))
}

// RegisterRoutes registers every operation on the given API. Split out from
// NewServer so tests can register against a humatest API.
func (s *Server) RegisterRoutes(api huma.API) {
	s.registerHealthRoutes(api)
	s.registerAuthRoutes(api)
	s.registerCatalogRoutes(api)
	s.registerBookRoutes(api)
	s.registerReviewRoutes(api)
	s.registerProfileRoutes(api)
}
