package handlers

import (
	"movieportal/application/ports"
	"movieportal/application/services"
	"movieportal/domain/config"
	"movieportal/pkg/observability"
	"movieportal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dependencies is everything the movie command handlers share. Nil Clock and
// NewID fall back to the system clock and random UUIDs.
type Dependencies struct {
	Movies  ports.MovieRepository
	Users   ports.UserRepository
	Reviews ports.ReviewRepository
	Queue   ports.EnrichmentQueue
	Notify  ports.Notifier
	Assets  ports.AssetStore
	Events  ports.EventBus

	Effects *services.SideEffects
	Metrics *observability.Collector
	Config  *config.DomainConfig
	Clock   utils.Clock
	NewID   func() string
	Logger  *zap.Logger
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Clock == nil {
		d.Clock = utils.SystemClock{}
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Config == nil {
		d.Config = config.DefaultDomainConfig()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Effects == nil {
		d.Effects = services.NewSideEffects(nil, d.Metrics, d.Logger)
	}
	return d
}
