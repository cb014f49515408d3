package commands

import (
	"strings"
	"testing"

	apperrors "movieportal/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestCreateMovieCommand_Validate(t *testing.T) {
	year := func(y int) *int { return &y }
	rating := func(r float64) *float64 { return &r }

	tests := []struct {
		name    string
		cmd     CreateMovieCommand
		wantErr bool
	}{
		{"valid minimal", CreateMovieCommand{Title: "Alien"}, false},
		{"missing title", CreateMovieCommand{}, true},
		{"title too long", CreateMovieCommand{Title: strings.Repeat("x", 501)}, true},
		{"year too early", CreateMovieCommand{Title: "a", Year: year(1700)}, true},
		{"rating above ten", CreateMovieCommand{Title: "a", Rating: rating(10.5)}, true},
		{"rating zero", CreateMovieCommand{Title: "a", Rating: rating(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr {
				assert.True(t, apperrors.IsValidation(err), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateMovieCommand_Validate_RejectsEmptyUpdate(t *testing.T) {
	err := UpdateMovieCommand{MovieID: "m1"}.Validate()

	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "no updatable fields provided")
}

func TestUpdateMovieCommand_Validate_EmptyActorListIsAChange(t *testing.T) {
	actors := []string{}

	err := UpdateMovieCommand{MovieID: "m1", Actors: &actors}.Validate()

	assert.NoError(t, err)
}

func TestUpdateUserCommand_Validate(t *testing.T) {
	bad := "not-an-email"

	assert.True(t, apperrors.IsValidation(UpdateUserCommand{UserID: "u1"}.Validate()))
	assert.True(t, apperrors.IsValidation(UpdateUserCommand{UserID: "u1", Email: &bad}.Validate()))
}

func TestAddReviewCommand_Validate_RequiresRating(t *testing.T) {
	assert.True(t, apperrors.IsValidation(AddReviewCommand{MovieID: "m1"}.Validate()))
}
