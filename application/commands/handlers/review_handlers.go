package handlers

import (
	"context"
	"fmt"

	"movieportal/application/commands"
	"movieportal/application/commands/bus"
	"movieportal/domain/core/entities"
	"movieportal/domain/events"

	"go.uber.org/zap"
)

// AddReviewHandler attaches reviews to movies
type AddReviewHandler struct {
	deps Dependencies
}

// NewAddReviewHandler creates a new add review handler
func NewAddReviewHandler(deps Dependencies) *AddReviewHandler {
	return &AddReviewHandler{deps: deps.withDefaults()}
}

// Handle implements bus.CommandHandler
func (h *AddReviewHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.AddReviewCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	d := h.deps

	if _, err := d.Movies.GetByID(ctx, c.MovieID); err != nil {
		return nil, err
	}

	now := d.Clock.Now()
	review := &entities.Review{
		ID:        d.NewID(),
		MovieID:   c.MovieID,
		UserID:    c.Principal.UserID,
		Rating:    *c.Rating,
		Comment:   c.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.Reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	fields := []zap.Field{zap.String("movieId", c.MovieID), zap.String("reviewId", review.ID)}
	publishEvent(ctx, d, events.NewReviewAdded(review), fields)

	d.Logger.Info("Review added", fields...)
	return review, nil
}
