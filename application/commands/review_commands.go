package commands

import (
	"movieportal/pkg/auth"
	"movieportal/pkg/utils"
)

// AddReviewCommand attaches a review to an existing movie
type AddReviewCommand struct {
	MovieID   string         `json:"-" validate:"required"`
	Principal auth.Principal `json:"-" validate:"-"`
	Rating    *float64       `json:"rating" validate:"required,gte=0,lte=10"`
	Comment   string         `json:"comment,omitempty" validate:"max=2000"`
}

// Validate validates the AddReviewCommand
func (c AddReviewCommand) Validate() error {
	return utils.ValidateStruct(c)
}
