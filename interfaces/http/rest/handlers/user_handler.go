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

// UserHandler handles profile, watchlist and per-user listing requests.
// Every route is restricted to the user themself or an admin.
type UserHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
}

// NewUserHandler creates a new user handler
func NewUserHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errs *apperrors.ErrorHandler) *UserHandler {
	return &UserHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errs,
	}
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetUserQuery{
		UserID:    chi.URLParam(r, "id"),
		Principal: auth.PrincipalFromContext(r.Context()),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateUser handles PUT /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateUserCommand
	if err := common.ParseJSONBody(r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.UserID = chi.URLParam(r, "id")
	cmd.Principal = auth.PrincipalFromContext(r.Context())

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ListUserMovies handles GET /users/{id}/movies
func (h *UserHandler) ListUserMovies(w http.ResponseWriter, r *http.Request) {
	page, err := common.ExtractPageRequest(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListUserMoviesQuery{
		UserID:    chi.URLParam(r, "id"),
		Principal: auth.PrincipalFromContext(r.Context()),
		Page:      page,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// AddToWatchlist handles POST /users/{id}/watchlist
func (h *UserHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var cmd commands.AddToWatchlistCommand
	if err := common.ParseJSONBody(r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.UserID = chi.URLParam(r, "id")
	cmd.Principal = auth.PrincipalFromContext(r.Context())

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// RemoveFromWatchlist handles DELETE /users/{id}/watchlist/{movieId}
func (h *UserHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	result, err := h.commandBus.Send(r.Context(), commands.RemoveFromWatchlistCommand{
		UserID:    chi.URLParam(r, "id"),
		Principal: auth.PrincipalFromContext(r.Context()),
		MovieID:   chi.URLParam(r, "movieId"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
