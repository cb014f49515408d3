package queries

import (
	"movieportal/domain/core/entities"
	"movieportal/pkg/auth"
	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"
)

// GetMovieQuery represents a query to get a single movie
type GetMovieQuery struct {
	MovieID string
}

// Validate validates the GetMovieQuery
func (q GetMovieQuery) Validate() error {
	if q.MovieID == "" {
		return apperrors.NewValidationError("movie ID is required")
	}
	return nil
}

// ListMoviesQuery lists every movie, or one genre when Genre is set
type ListMoviesQuery struct {
	Genre string
	Page  common.PageRequest
}

// Validate validates the ListMoviesQuery
func (q ListMoviesQuery) Validate() error {
	if q.Page.Limit < 0 {
		return apperrors.NewValidationError("limit must not be negative")
	}
	return nil
}

// ListUserMoviesQuery lists the movies one user recorded
type ListUserMoviesQuery struct {
	UserID    string
	Principal auth.Principal
	Page      common.PageRequest
}

// Validate validates the ListUserMoviesQuery
func (q ListUserMoviesQuery) Validate() error {
	if q.UserID == "" {
		return apperrors.NewValidationError("user ID is required")
	}
	if q.Page.Limit < 0 {
		return apperrors.NewValidationError("limit must not be negative")
	}
	return nil
}

// MovieListResult is the listing envelope. NextToken is null once the
// listing is exhausted.
type MovieListResult struct {
	Movies    []*entities.Movie `json:"movies"`
	Count     int               `json:"count"`
	NextToken *string           `json:"nextToken"`
}

// NewMovieListResult wraps one page of movies
func NewMovieListResult(items []*entities.Movie, nextToken string) *MovieListResult {
	if items == nil {
		items = []*entities.Movie{}
	}
	r := &MovieListResult{Movies: items, Count: len(items)}
	if nextToken != "" {
		r.NextToken = &nextToken
	}
	return r
}
