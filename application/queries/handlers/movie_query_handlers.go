package handlers

import (
	"context"
	"fmt"

	"movieportal/application/ports"
	"movieportal/application/queries"
	"movieportal/application/queries/bus"
	"movieportal/domain/config"
	"movieportal/domain/core/entities"
	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"

	"go.uber.org/zap"
)

// MovieQueryHandler serves every movie read
type MovieQueryHandler struct {
	movies ports.MovieRepository
	config *config.DomainConfig
	logger *zap.Logger
}

// NewMovieQueryHandler creates a new movie query handler
func NewMovieQueryHandler(movies ports.MovieRepository, cfg *config.DomainConfig, logger *zap.Logger) *MovieQueryHandler {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &MovieQueryHandler{
		movies: movies,
		config: cfg,
		logger: logger,
	}
}

// Handle implements bus.QueryHandler for GetMovieQuery, ListMoviesQuery and
// ListUserMoviesQuery.
func (h *MovieQueryHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	switch q := query.(type) {
	case queries.GetMovieQuery:
		return h.GetMovie(ctx, q)
	case queries.ListMoviesQuery:
		return h.ListMovies(ctx, q)
	case queries.ListUserMoviesQuery:
		return h.ListUserMovies(ctx, q)
	default:
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
}

// GetMovie returns one movie. Reads are open to every principal.
func (h *MovieQueryHandler) GetMovie(ctx context.Context, q queries.GetMovieQuery) (*entities.Movie, error) {
	return h.movies.GetByID(ctx, q.MovieID)
}

// ListMovies pages through all movies, or one genre in rating order
func (h *MovieQueryHandler) ListMovies(ctx context.Context, q queries.ListMoviesQuery) (*queries.MovieListResult, error) {
	page := h.clamp(q.Page)

	var (
		result *ports.MoviePage
		err    error
	)
	if q.Genre != "" {
		result, err = h.movies.ListByGenre(ctx, q.Genre, page)
	} else {
		result, err = h.movies.List(ctx, page)
	}
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Movies listed",
		zap.String("genre", q.Genre),
		zap.Int("count", len(result.Items)),
	)
	return queries.NewMovieListResult(result.Items, result.NextToken), nil
}

// ListUserMovies pages through one owner's movies
func (h *MovieQueryHandler) ListUserMovies(ctx context.Context, q queries.ListUserMoviesQuery) (*queries.MovieListResult, error) {
	if !q.Principal.CanActOn(q.UserID) {
		return nil, apperrors.NewForbiddenError("not allowed to list this user's movies")
	}

	result, err := h.movies.ListByUser(ctx, q.UserID, h.clamp(q.Page))
	if err != nil {
		return nil, err
	}
	return queries.NewMovieListResult(result.Items, result.NextToken), nil
}

func (h *MovieQueryHandler) clamp(page common.PageRequest) common.PageRequest {
	page.Limit = h.config.ClampPageSize(page.Limit)
	return page
}
