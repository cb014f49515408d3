package rest

import (
	"net/http"

	"movieportal/application/commands/bus"
	querybus "movieportal/application/queries/bus"
	"movieportal/interfaces/http/rest/handlers"
	"movieportal/interfaces/http/rest/middleware"
	apperrors "movieportal/pkg/errors"
	"movieportal/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	collector  *observability.Collector
	validator  middleware.TokenValidator
	adminID    string
	logger     *zap.Logger
}

// Options are the optional router collaborators. A nil Collector disables
// /metrics and a nil Validator ignores bearer tokens.
type Options struct {
	Collector   *observability.Collector
	Validator   middleware.TokenValidator
	AdminUserID string
	Debug       bool
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
	opts Options,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     apperrors.NewErrorHandler(logger, opts.Debug),
		collector:  opts.Collector,
		validator:  opts.Validator,
		adminID:    opts.AdminUserID,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware. The error middleware sits outside CORS so even a
	// recovered panic carries the cross-origin headers set before it.
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.CORS())
	router.Use(rt.errors.Middleware)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.collector))
	router.Use(middleware.Principal(rt.adminID, rt.validator, rt.errors, rt.logger))

	router.NotFound(rt.routeNotFound)
	router.MethodNotAllowed(rt.routeNotFound)

	router.Get("/health", rt.healthCheck)
	if rt.collector != nil {
		router.Method(http.MethodGet, "/metrics", rt.collector.Handler())
	}

	movieHandler := handlers.NewMovieHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
	reviewHandler := handlers.NewReviewHandler(rt.commandBus, rt.queryBus, rt.errors)
	router.Route("/movies", func(r chi.Router) {
		r.Get("/", movieHandler.ListMovies)
		r.Post("/", movieHandler.CreateMovie)
		r.Get("/{id}", movieHandler.GetMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)

		r.Get("/{id}/reviews", reviewHandler.ListReviews)
		r.Post("/{id}/reviews", reviewHandler.AddReview)
	})

	userHandler := handlers.NewUserHandler(rt.commandBus, rt.queryBus, rt.errors)
	router.Route("/users/{id}", func(r chi.Router) {
		r.Get("/", userHandler.GetUser)
		r.Put("/", userHandler.UpdateUser)
		r.Get("/movies", userHandler.ListUserMovies)
		r.Post("/watchlist", userHandler.AddToWatchlist)
		r.Delete("/watchlist/{movieId}", userHandler.RemoveFromWatchlist)
	})

	router.Post("/presigned-url", handlers.NewUploadHandler(rt.commandBus, rt.errors).IssueUploadURL)

	return router
}

// routeNotFound answers unmatched paths and methods alike
func (rt *Router) routeNotFound(w http.ResponseWriter, r *http.Request) {
	rt.errors.HandleStatus(w, r, http.StatusNotFound, "Route not found")
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
