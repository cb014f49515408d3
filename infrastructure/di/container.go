package di

import (
	"net/http"

	"movieportal/application/commands/bus"
	"movieportal/application/ports"
	querybus "movieportal/application/queries/bus"
	"movieportal/infrastructure/config"
	"movieportal/interfaces/http/rest"
	"movieportal/interfaces/worker"
	"movieportal/pkg/auth"
	"movieportal/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all API dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Movies     ports.MovieRepository
	Users      ports.UserRepository
	Reviews    ports.ReviewRepository
	Queue      ports.EnrichmentQueue
	Notifier   ports.Notifier
	Assets     ports.AssetStore
	EventBus   ports.EventBus
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Collector  *observability.Collector
	Tracer     *observability.Tracer
	Validator  *auth.JWTValidator
}

// Handler builds the HTTP handler serving the portal API
func (c *Container) Handler() http.Handler {
	opts := rest.Options{
		Collector:   c.Collector,
		AdminUserID: c.Config.AdminUserID,
		Debug:       c.Config.IsDevelopment(),
	}
	if c.Validator != nil {
		opts.Validator = c.Validator
	}

	return rest.NewRouter(c.CommandBus, c.QueryBus, c.Logger, opts).Setup()
}

// WorkerContainer holds the enrichment worker dependencies
type WorkerContainer struct {
	Config   *config.Config
	Logger   *zap.Logger
	Consumer *worker.Consumer
}
