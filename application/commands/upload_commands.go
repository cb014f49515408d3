package commands

import (
	"movieportal/pkg/auth"
	"movieportal/pkg/utils"
)

// IssueUploadURLCommand requests a short-lived upload URL for one asset
type IssueUploadURLCommand struct {
	Principal   auth.Principal `json:"-" validate:"-"`
	Filename    string         `json:"filename" validate:"required,max=255"`
	ContentType string         `json:"contentType,omitempty" validate:"omitempty,max=255"`
}

// Validate validates the IssueUploadURLCommand
func (c IssueUploadURLCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UploadURLResult is the issued URL and the key the object will live under
type UploadURLResult struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}
