package handlers

import (
	"context"
	"fmt"

	"movieportal/application/ports"
	"movieportal/application/queries"
	"movieportal/application/queries/bus"
	"movieportal/domain/config"
	"movieportal/domain/core/entities"
	apperrors "movieportal/pkg/errors"
)

// GetUserHandler returns profiles
type GetUserHandler struct {
	users ports.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(users ports.UserRepository) *GetUserHandler {
	return &GetUserHandler{users: users}
}

// Handle implements bus.QueryHandler
func (h *GetUserHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetUserQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	if !q.Principal.CanActOn(q.UserID) {
		return nil, apperrors.NewForbiddenError("not allowed to read this user")
	}

	user, err := h.users.GetByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// ListReviewsHandler pages through a movie's reviews
type ListReviewsHandler struct {
	movies  ports.MovieRepository
	reviews ports.ReviewRepository
	config  *config.DomainConfig
}

// NewListReviewsHandler creates a new list reviews handler
func NewListReviewsHandler(movies ports.MovieRepository, reviews ports.ReviewRepository, cfg *config.DomainConfig) *ListReviewsHandler {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &ListReviewsHandler{movies: movies, reviews: reviews, config: cfg}
}

// Handle implements bus.QueryHandler
func (h *ListReviewsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListReviewsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	if _, err := h.movies.GetByID(ctx, q.MovieID); err != nil {
		return nil, err
	}

	page := q.Page
	page.Limit = h.config.ClampPageSize(page.Limit)
	result, err := h.reviews.ListByMovie(ctx, q.MovieID, page)
	if err != nil {
		return nil, err
	}

	out := &queries.ReviewListResult{Reviews: result.Items, Count: len(result.Items)}
	if out.Reviews == nil {
		out.Reviews = []*entities.Review{}
	}
	if result.NextToken != "" {
		out.NextToken = &result.NextToken
	}
	return out, nil
}
