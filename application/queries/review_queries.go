package queries

import (
	"movieportal/domain/core/entities"
	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"
)

// ListReviewsQuery lists the reviews of one movie
type ListReviewsQuery struct {
	MovieID string
	Page    common.PageRequest
}

// Validate validates the ListReviewsQuery
func (q ListReviewsQuery) Validate() error {
	if q.MovieID == "" {
		return apperrors.NewValidationError("movie ID is required")
	}
	if q.Page.Limit < 0 {
		return apperrors.NewValidationError("limit must not be negative")
	}
	return nil
}

// ReviewListResult is the review listing envelope
type ReviewListResult struct {
	Reviews   []*entities.Review `json:"reviews"`
	Count     int                `json:"count"`
	NextToken *string            `json:"nextToken"`
}
