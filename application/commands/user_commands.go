package commands

import (
	"movieportal/domain/core/entities"
	"movieportal/pkg/auth"
	apperrors "movieportal/pkg/errors"
	"movieportal/pkg/utils"
)

// UpdateUserCommand is a partial profile update
type UpdateUserCommand struct {
	UserID         string         `json:"-" validate:"required"`
	Principal      auth.Principal `json:"-" validate:"-"`
	Username       *string        `json:"username,omitempty" validate:"omitempty,min=1,max=100"`
	Email          *string        `json:"email,omitempty" validate:"omitempty,email"`
	FavoriteGenres *[]string      `json:"favoriteGenres,omitempty" validate:"omitempty,max=50,dive,min=1,max=100"`
}

// Validate rejects updates that carry no recognized field
func (c UpdateUserCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	if c.Changes().IsEmpty() {
		return apperrors.NewValidationError("no updatable fields provided")
	}
	return nil
}

// Changes returns the partial update carried by the command
func (c UpdateUserCommand) Changes() entities.UserChanges {
	return entities.UserChanges{
		Username:       c.Username,
		Email:          c.Email,
		FavoriteGenres: c.FavoriteGenres,
	}
}

// AddToWatchlistCommand adds a movie to a user's watchlist
type AddToWatchlistCommand struct {
	UserID    string         `json:"-" validate:"required"`
	Principal auth.Principal `json:"-" validate:"-"`
	MovieID   string         `json:"movieId" validate:"required"`
}

// Validate validates the AddToWatchlistCommand
func (c AddToWatchlistCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// RemoveFromWatchlistCommand removes a movie from a user's watchlist
type RemoveFromWatchlistCommand struct {
	UserID    string         `validate:"required"`
	Principal auth.Principal `validate:"-"`
	MovieID   string         `validate:"required"`
}

// Validate validates the RemoveFromWatchlistCommand
func (c RemoveFromWatchlistCommand) Validate() error {
	return utils.ValidateStruct(c)
}
