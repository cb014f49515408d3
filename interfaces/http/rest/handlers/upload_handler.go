package handlers

import (
	"net/http"

	"movieportal/application/commands"
	"movieportal/application/commands/bus"
	"movieportal/pkg/auth"
	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"
)

// UploadHandler issues presigned upload URLs
type UploadHandler struct {
	commandBus *bus.CommandBus
	errors     *apperrors.ErrorHandler
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(commandBus *bus.CommandBus, errs *apperrors.ErrorHandler) *UploadHandler {
	return &UploadHandler{commandBus: commandBus, errors: errs}
}

// IssueUploadURL handles POST /presigned-url
func (h *UploadHandler) IssueUploadURL(w http.ResponseWriter, r *http.Request) {
	var cmd commands.IssueUploadURLCommand
	if err := common.ParseJSONBody(r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.Principal = auth.PrincipalFromContext(r.Context())

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
