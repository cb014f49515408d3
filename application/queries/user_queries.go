package queries

import (
	"movieportal/pkg/auth"
	apperrors "movieportal/pkg/errors"
)

// GetUserQuery fetches a profile. Only the owner or an admin may read it.
type GetUserQuery struct {
	UserID    string
	Principal auth.Principal
}

// Validate validates the GetUserQuery
func (q GetUserQuery) Validate() error {
	if q.UserID == "" {
		return apperrors.NewValidationError("user ID is required")
	}
	return nil
}
