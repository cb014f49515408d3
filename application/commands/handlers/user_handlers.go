package handlers

import (
	"context"
	"fmt"

	"movieportal/application/commands"
	"movieportal/application/commands/bus"
	"movieportal/domain/core/entities"
	apperrors "movieportal/pkg/errors"

	"go.uber.org/zap"
)

// UpdateUserHandler handles profile updates. Profiles are provisioned by the
// identity provider, so the first update creates the stored profile.
type UpdateUserHandler struct {
	deps Dependencies
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(deps Dependencies) *UpdateUserHandler {
	return &UpdateUserHandler{deps: deps.withDefaults()}
}

// Handle implements bus.CommandHandler
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.UpdateUserCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	if !c.Principal.CanActOn(c.UserID) {
		return nil, apperrors.NewForbiddenError("not allowed to modify this user")
	}

	user, err := h.deps.Users.Update(ctx, c.UserID, c.Changes(), h.deps.Clock.Now())
	if err != nil {
		return nil, err
	}

	h.deps.Logger.Info("User updated", zap.String("userId", c.UserID))
	return user.Profile(), nil
}

// AddToWatchlistHandler adds movies to watchlists
type AddToWatchlistHandler struct {
	deps Dependencies
}

// NewAddToWatchlistHandler creates a new add to watchlist handler
func NewAddToWatchlistHandler(deps Dependencies) *AddToWatchlistHandler {
	return &AddToWatchlistHandler{deps: deps.withDefaults()}
}

// Handle implements bus.CommandHandler
func (h *AddToWatchlistHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.AddToWatchlistCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	if !c.Principal.CanActOn(c.UserID) {
		return nil, apperrors.NewForbiddenError("not allowed to modify this watchlist")
	}

	// The movie has to exist, whoever owns it.
	if _, err := h.deps.Movies.GetByID(ctx, c.MovieID); err != nil {
		return nil, err
	}

	now := h.deps.Clock.Now()
	user, err := h.deps.Users.GetByID(ctx, c.UserID)
	if apperrors.IsNotFound(err) {
		user = entities.NewUser(c.UserID, now)
	} else if err != nil {
		return nil, err
	}

	if user.AddToWatchlist(c.MovieID, now) {
		if err := h.deps.Users.Save(ctx, user); err != nil {
			return nil, err
		}
	}

	h.deps.Logger.Debug("Watchlist entry added",
		zap.String("userId", c.UserID),
		zap.String("movieId", c.MovieID),
	)
	return user.Profile(), nil
}

// RemoveFromWatchlistHandler removes movies from watchlists
type RemoveFromWatchlistHandler struct {
	deps Dependencies
}

// NewRemoveFromWatchlistHandler creates a new remove from watchlist handler
func NewRemoveFromWatchlistHandler(deps Dependencies) *RemoveFromWatchlistHandler {
	return &RemoveFromWatchlistHandler{deps: deps.withDefaults()}
}

// Handle implements bus.CommandHandler
func (h *RemoveFromWatchlistHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.RemoveFromWatchlistCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	if !c.Principal.CanActOn(c.UserID) {
		return nil, apperrors.NewForbiddenError("not allowed to modify this watchlist")
	}

	user, err := h.deps.Users.GetByID(ctx, c.UserID)
	if err != nil {
		return nil, err
	}

	if user.RemoveFromWatchlist(c.MovieID, h.deps.Clock.Now()) {
		if err := h.deps.Users.Save(ctx, user); err != nil {
			return nil, err
		}
	}
	return user.Profile(), nil
}
