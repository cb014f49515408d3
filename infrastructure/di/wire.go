//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"movieportal/infrastructure/config"

	"github.com/google/wire"
)

// AWSSet provides the AWS SDK clients
var AWSSet = wire.NewSet(
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideSQSClient,
	ProvideSNSClient,
	ProvideS3Client,
	ProvideEventBridgeClient,
)

// SuperSet is the main provider set containing all API providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	AWSSet,
	ProvideDomainConfig,
	ProvideMovieRepository,
	ProvideUserRepository,
	ProvideReviewRepository,
	ProvideEnrichmentQueue,
	ProvideNotifier,
	ProvideAssetStore,
	ProvideEventBus,
	ProvideCollector,
	ProvideTracer,
	ProvideSideEffects,
	ProvideJWTValidator,
	ProvideHandlerDependencies,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// WorkerSet provides the enrichment worker
var WorkerSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideSQSClient,
	ProvideCloudWatchClient,
	ProvideJobSource,
	ProvideScraper,
	ProvidePortalToken,
	ProvidePortalClient,
	ProvideWorkerMetrics,
	ProvideConsumer,
	wire.Struct(new(WorkerContainer), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}

// InitializeWorker creates the enrichment worker
func InitializeWorker(ctx context.Context, cfg *config.Config) (*WorkerContainer, func(), error) {
	wire.Build(WorkerSet)
	return nil, nil, nil // Wire will replace this
}
