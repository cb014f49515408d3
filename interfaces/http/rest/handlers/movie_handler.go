package handlers

import (
	"net/http"
	"strings"

	"movieportal/application/commands"
	"movieportal/application/commands/bus"
	"movieportal/application/queries"
	querybus "movieportal/application/queries/bus"
	"movieportal/pkg/auth"
	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MovieHandler handles movie-related HTTP requests
type MovieHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
) *MovieHandler {
	return &MovieHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errs,
		logger:     logger,
	}
}

// ListMovies handles GET /movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	page, err := common.ExtractPageRequest(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListMoviesQuery{
		Genre: strings.TrimSpace(r.URL.Query().Get("genre")),
		Page:  page,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// CreateMovie handles POST /movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var cmd commands.CreateMovieCommand
	if err := common.ParseJSONBody(r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.Principal = auth.PrincipalFromContext(r.Context())

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, result)
}

// GetMovie handles GET /movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetMovieQuery{
		MovieID: chi.URLParam(r, "id"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateMovie handles PUT /movies/{id}. Only fields present in the body
// are changed.
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateMovieCommand
	if err := common.ParseJSONBody(r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if cmd.Title != nil {
		t := strings.TrimSpace(*cmd.Title)
		cmd.Title = &t
	}
	cmd.MovieID = chi.URLParam(r, "id")
	cmd.Principal = auth.PrincipalFromContext(r.Context())

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteMovie handles DELETE /movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	result, err := h.commandBus.Send(r.Context(), commands.DeleteMovieCommand{
		MovieID:   chi.URLParam(r, "id"),
		Principal: auth.PrincipalFromContext(r.Context()),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
