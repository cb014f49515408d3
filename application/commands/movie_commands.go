package commands

import (
	"time"

	"movieportal/domain/core/entities"
	"movieportal/pkg/auth"
	apperrors "movieportal/pkg/errors"
	"movieportal/pkg/utils"
)

// CreateMovieCommand represents the command to create a new movie
type CreateMovieCommand struct {
	Principal   auth.Principal `json:"-" validate:"-"`
	Title       string         `json:"title" validate:"required,max=500"`
	Year        *int           `json:"year,omitempty" validate:"omitempty,gte=1878,lte=2100"`
	Genre       *string        `json:"genre,omitempty" validate:"omitempty,min=1,max=100"`
	Director    *string        `json:"director,omitempty" validate:"omitempty,max=200"`
	Synopsis    *string        `json:"synopsis,omitempty" validate:"omitempty,max=5000"`
	Rating      *float64       `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	WatchedDate *time.Time     `json:"watchedDate,omitempty"`
	ImageURL    *string        `json:"imageUrl,omitempty" validate:"omitempty,max=2048"`
	Actors      []string       `json:"actors,omitempty" validate:"omitempty,max=200,dive,max=200"`
}

// Validate validates the CreateMovieCommand
func (c CreateMovieCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateMovieCommand is a partial update: only non-nil fields are written
type UpdateMovieCommand struct {
	MovieID     string         `json:"-" validate:"required"`
	Principal   auth.Principal `json:"-" validate:"-"`
	Title       *string        `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Year        *int           `json:"year,omitempty" validate:"omitempty,gte=1878,lte=2100"`
	Genre       *string        `json:"genre,omitempty" validate:"omitempty,min=1,max=100"`
	Director    *string        `json:"director,omitempty" validate:"omitempty,max=200"`
	Synopsis    *string        `json:"synopsis,omitempty" validate:"omitempty,max=5000"`
	Rating      *float64       `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	WatchedDate *time.Time     `json:"watchedDate,omitempty"`
	ImageURL    *string        `json:"imageUrl,omitempty" validate:"omitempty,max=2048"`
	Actors      *[]string      `json:"actors,omitempty" validate:"omitempty,max=200,dive,max=200"`
}

// Validate rejects updates that carry no recognized field
func (c UpdateMovieCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	if c.Changes().IsEmpty() {
		return apperrors.NewValidationError("no updatable fields provided")
	}
	return nil
}

// Changes returns the partial update carried by the command
func (c UpdateMovieCommand) Changes() entities.MovieChanges {
	return entities.MovieChanges{
		Title:       c.Title,
		Year:        c.Year,
		Genre:       c.Genre,
		Director:    c.Director,
		Synopsis:    c.Synopsis,
		Rating:      c.Rating,
		WatchedDate: c.WatchedDate,
		ImageURL:    c.ImageURL,
		Actors:      c.Actors,
	}
}

// DeleteMovieCommand removes a movie and, best effort, its image
type DeleteMovieCommand struct {
	MovieID   string         `validate:"required"`
	Principal auth.Principal `validate:"-"`
}

// Validate validates the DeleteMovieCommand
func (c DeleteMovieCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteMovieResult is returned after a successful delete
type DeleteMovieResult struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
