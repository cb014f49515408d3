package handlers

import (
	"context"
	"fmt"

	"movieportal/application/commands"
	"movieportal/application/commands/bus"
	"movieportal/application/services"
	"movieportal/domain/core/entities"
	"movieportal/domain/events"
	apperrors "movieportal/pkg/errors"

	"go.uber.org/zap"
)

// CreateMovieHandler handles movie creation
type CreateMovieHandler struct {
	deps Dependencies
}

// NewCreateMovieHandler creates a new create movie handler
func NewCreateMovieHandler(deps Dependencies) *CreateMovieHandler {
	return &CreateMovieHandler{deps: deps.withDefaults()}
}

// Handle implements bus.CommandHandler
func (h *CreateMovieHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.CreateMovieCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.Create(ctx, c)
}

// Create writes the record, then enqueues enrichment and publishes the
// notification. A failed side effect fails the call but the record stays.
func (h *CreateMovieHandler) Create(ctx context.Context, cmd commands.CreateMovieCommand) (*entities.Movie, error) {
	d := h.deps
	movie := entities.NewMovie(d.NewID(), cmd.Principal.UserID, cmd.Title, d.Clock.Now())
	movie.Year = cmd.Year
	movie.Genre = cmd.Genre
	movie.Director = cmd.Director
	movie.Synopsis = cmd.Synopsis
	movie.Rating = cmd.Rating
	movie.ImageURL = cmd.ImageURL
	if cmd.WatchedDate != nil {
		movie.WatchedDate = cmd.WatchedDate.UTC()
	}
	if cmd.Actors != nil {
		movie.Actors = append([]string{}, cmd.Actors...)
	}

	if err := d.Movies.Create(ctx, movie); err != nil {
		return nil, err
	}
	d.Metrics.MovieCreated()

	fields := []zap.Field{zap.String("movieId", movie.ID)}

	job := entities.NewEnrichmentJob(movie, d.Config.EnrichmentAction)
	if err := d.Effects.Run(ctx, services.EffectEnqueueEnrichment, fields, func(ctx context.Context) error {
		return d.Queue.Enqueue(ctx, job)
	}); err != nil {
		return nil, err
	}

	if err := d.Effects.Run(ctx, services.EffectPublishNotification, fields, func(ctx context.Context) error {
		return d.Notify.PublishNewMovie(ctx, movie)
	}); err != nil {
		return nil, err
	}

	publishEvent(ctx, d, events.NewMovieCreated(movie, cmd.Principal.UserID), fields)

	d.Logger.Info("Movie created",
		zap.String("movieId", movie.ID),
		zap.String("userId", movie.UserID),
	)
	return movie, nil
}

// UpdateMovieHandler handles partial movie updates
type UpdateMovieHandler struct {
	deps Dependencies
}

// NewUpdateMovieHandler creates a new update movie handler
func NewUpdateMovieHandler(deps Dependencies) *UpdateMovieHandler {
	return &UpdateMovieHandler{deps: deps.withDefaults()}
}

// Handle implements bus.CommandHandler
func (h *UpdateMovieHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.UpdateMovieCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.Update(ctx, c)
}

// Update applies the present fields. A title or year change re-enqueues
// enrichment with the record as stored after the write.
func (h *UpdateMovieHandler) Update(ctx context.Context, cmd commands.UpdateMovieCommand) (*entities.Movie, error) {
	d := h.deps

	current, err := d.Movies.GetByID(ctx, cmd.MovieID)
	if err != nil {
		return nil, err
	}
	if !cmd.Principal.CanActOn(current.UserID) {
		return nil, apperrors.NewForbiddenError("not allowed to modify this movie")
	}

	changes := cmd.Changes()
	updated, err := d.Movies.Update(ctx, cmd.MovieID, changes, d.Clock.Now())
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{zap.String("movieId", updated.ID)}

	if changes.AffectsIdentity(current) {
		job := entities.NewEnrichmentJob(updated, d.Config.EnrichmentAction)
		if err := d.Effects.Run(ctx, services.EffectEnqueueEnrichment, fields, func(ctx context.Context) error {
			return d.Queue.Enqueue(ctx, job)
		}); err != nil {
			return nil, err
		}
	}

	publishEvent(ctx, d, events.NewMovieUpdated(updated, cmd.Principal.UserID), fields)

	d.Logger.Info("Movie updated",
		zap.String("movieId", updated.ID),
		zap.String("userId", cmd.Principal.UserID),
	)
	return updated, nil
}

// DeleteMovieHandler handles movie deletion
type DeleteMovieHandler struct {
	deps Dependencies
}

// NewDeleteMovieHandler creates a new delete movie handler
func NewDeleteMovieHandler(deps Dependencies) *DeleteMovieHandler {
	return &DeleteMovieHandler{deps: deps.withDefaults()}
}

// Handle implements bus.CommandHandler
func (h *DeleteMovieHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DeleteMovieCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}
	return h.Delete(ctx, c)
}

// Delete removes the record, then tries to remove its image. Image cleanup
// never fails the call.
func (h *DeleteMovieHandler) Delete(ctx context.Context, cmd commands.DeleteMovieCommand) (*commands.DeleteMovieResult, error) {
	d := h.deps

	movie, err := d.Movies.GetByID(ctx, cmd.MovieID)
	if err != nil {
		return nil, err
	}
	if !cmd.Principal.CanActOn(movie.UserID) {
		return nil, apperrors.NewForbiddenError("not allowed to delete this movie")
	}

	if err := d.Movies.Delete(ctx, cmd.MovieID); err != nil {
		return nil, err
	}
	d.Metrics.MovieDeleted()

	fields := []zap.Field{zap.String("movieId", movie.ID)}

	if movie.ImageURL != nil {
		if key, ok := d.Assets.KeyFromReference(*movie.ImageURL); ok {
			_ = d.Effects.Run(ctx, services.EffectDeleteAsset, append(fields, zap.String("key", key)), func(ctx context.Context) error {
				return d.Assets.Delete(ctx, key)
			})
		}
	}

	publishEvent(ctx, d, events.NewMovieDeleted(movie, cmd.Principal.UserID, d.Clock.Now()), fields)

	d.Logger.Info("Movie deleted",
		zap.String("movieId", movie.ID),
		zap.String("userId", cmd.Principal.UserID),
	)
	return &commands.DeleteMovieResult{Message: "Movie deleted", ID: movie.ID}, nil
}

func publishEvent(ctx context.Context, d Dependencies, event events.DomainEvent, fields []zap.Field) {
	if d.Events == nil {
		return
	}
	_ = d.Effects.Run(ctx, services.EffectPublishChangeEvent, fields, func(ctx context.Context) error {
		return d.Events.Publish(ctx, event)
	})
}
