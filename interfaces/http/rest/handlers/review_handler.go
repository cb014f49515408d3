package handlers

import (
	"net/http"

	"movieportal/application/commands"
	"movieportal/application/commands/bus"
	"movieportal/application/queries"
	querybus "movieportal/application/queries/bus"
	"movieportal/pkg/auth"
	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"

	"github.com/go-chi/chi/v5"
)

// ReviewHandler handles review requests
type ReviewHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errs *apperrors.ErrorHandler) *ReviewHandler {
	return &ReviewHandler{commandBus: commandBus, queryBus: queryBus, errors: errs}
}

// AddReview handles POST /movies/{id}/reviews
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var cmd commands.AddReviewCommand
	if err := common.ParseJSONBody(r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.MovieID = chi.URLParam(r, "id")
	cmd.Principal = auth.PrincipalFromContext(r.Context())

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, result)
}

// ListReviews handles GET /movies/{id}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	page, err := common.ExtractPageRequest(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListReviewsQuery{
		MovieID: chi.URLParam(r, "id"),
		Page:    page,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
