package handlers

import (
	"context"
	"fmt"

	"movieportal/application/commands"
	"movieportal/application/commands/bus"
	"movieportal/domain/core/valueobjects"
	apperrors "movieportal/pkg/errors"

	"go.uber.org/zap"
)

// IssueUploadURLHandler presigns asset uploads
type IssueUploadURLHandler struct {
	deps Dependencies
}

// NewIssueUploadURLHandler creates a new upload URL handler
func NewIssueUploadURLHandler(deps Dependencies) *IssueUploadURLHandler {
	return &IssueUploadURLHandler{deps: deps.withDefaults()}
}

// Handle implements bus.CommandHandler
func (h *IssueUploadURLHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.IssueUploadURLCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	d := h.deps

	key, err := valueobjects.NewUploadKey(d.Config.UploadKeyPrefix, c.Principal.UserID, c.Filename)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	contentType := c.ContentType
	if contentType == "" {
		contentType = d.Config.DefaultContentType
	}

	url, err := d.Assets.PresignUpload(ctx, key.String(), contentType, d.Config.UploadURLExpiry)
	if err != nil {
		return nil, apperrors.NewExternalError("asset_store", err)
	}

	d.Logger.Debug("Upload URL issued",
		zap.String("key", key.String()),
		zap.String("userId", c.Principal.UserID),
	)
	return &commands.UploadURLResult{
		UploadURL: url,
		Key:       key.String(),
		ExpiresIn: int(d.Config.UploadURLExpiry.Seconds()),
	}, nil
}
