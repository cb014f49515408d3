package di

import (
	"context"
	"fmt"
	"net/http"

	"movieportal/application/commands"
	"movieportal/application/commands/bus"
	commandhandlers "movieportal/application/commands/handlers"
	"movieportal/application/ports"
	"movieportal/application/queries"
	querybus "movieportal/application/queries/bus"
	queryhandlers "movieportal/application/queries/handlers"
	"movieportal/application/services"
	domainconfig "movieportal/domain/config"
	"movieportal/infrastructure/config"
	"movieportal/infrastructure/enrichment"
	"movieportal/infrastructure/messaging/eventbridge"
	messagingmemory "movieportal/infrastructure/messaging/memory"
	"movieportal/infrastructure/messaging/sns"
	"movieportal/infrastructure/messaging/sqs"
	"movieportal/infrastructure/persistence/dynamodb"
	persistencememory "movieportal/infrastructure/persistence/memory"
	"movieportal/infrastructure/storage/minio"
	storagememory "movieportal/infrastructure/storage/memory"
	"movieportal/infrastructure/storage/s3"
	"movieportal/interfaces/worker"
	"movieportal/pkg/auth"
	"movieportal/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ProvideLogger creates the process logger. With LOG_FILE set, entries are
// also written as JSON to a rotating file.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, nil, err
	}

	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			zcfg.Level,
		)
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	cleanup := func() {
		_ = logger.Sync()
	}
	return logger, cleanup, nil
}

// ProvideAWSConfig creates AWS configuration. With tracing on, every SDK
// call is recorded as an X-Ray subsegment.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}
	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideSQSClient creates an SQS client
func ProvideSQSClient(awsCfg aws.Config) *awssqs.Client {
	return awssqs.NewFromConfig(awsCfg)
}

// ProvideSNSClient creates an SNS client
func ProvideSNSClient(awsCfg aws.Config) *awssns.Client {
	return awssns.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideDomainConfig returns the business rules
func ProvideDomainConfig() *domainconfig.DomainConfig {
	return domainconfig.DefaultDomainConfig()
}

// ProvideMovieRepository creates the movie repository
func ProvideMovieRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.MovieRepository {
	if cfg.UsesMemory() {
		return persistencememory.NewMovieRepository()
	}
	return dynamodb.NewMovieRepository(client, dynamodb.MovieTableConfig{
		TableName:  cfg.MoviesTable,
		GenreIndex: cfg.GenreIndex,
		UserIndex:  cfg.UserIndex,
	}, logger)
}

// ProvideUserRepository creates the user repository
func ProvideUserRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.UserRepository {
	if cfg.UsesMemory() {
		return persistencememory.NewUserRepository()
	}
	return dynamodb.NewUserRepository(client, cfg.UsersTable, logger)
}

// ProvideReviewRepository creates the review repository
func ProvideReviewRepository(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.ReviewRepository {
	if cfg.UsesMemory() {
		return persistencememory.NewReviewRepository()
	}
	return dynamodb.NewReviewRepository(client, cfg.ReviewsTable, logger)
}

// ProvideEnrichmentQueue creates the enrichment job producer
func ProvideEnrichmentQueue(cfg *config.Config, client *awssqs.Client, logger *zap.Logger) ports.EnrichmentQueue {
	if cfg.UsesMemory() {
		return &messagingmemory.Queue{}
	}
	return sqs.NewEnrichmentQueue(client, cfg.EnrichmentQueueURL, logger)
}

// ProvideNotifier creates the new-movie notifier
func ProvideNotifier(cfg *config.Config, client *awssns.Client, domainCfg *domainconfig.DomainConfig, logger *zap.Logger) ports.Notifier {
	if cfg.UsesMemory() {
		return &messagingmemory.Notifier{}
	}
	return sns.NewNotifier(client, cfg.NotificationTopicARN, domainCfg, logger)
}

// ProvideAssetStore creates the image store
func ProvideAssetStore(cfg *config.Config, client *awss3.Client, domainCfg *domainconfig.DomainConfig, logger *zap.Logger) (ports.AssetStore, error) {
	switch {
	case cfg.UsesMemory():
		bucket := cfg.AssetBucket
		if bucket == "" {
			bucket = "movieportal-assets"
		}
		return storagememory.NewAssetStore(bucket, domainCfg.UploadKeyPrefix), nil
	case cfg.AssetBackend == config.AssetBackendMinIO:
		store, err := minio.NewAssetStore(minio.Config{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.AssetBucket,
			Region:    cfg.AWSRegion,
			Prefix:    domainCfg.UploadKeyPrefix,
		}, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return s3.NewAssetStore(client, cfg.AssetBucket, cfg.AWSRegion, domainCfg.UploadKeyPrefix, logger), nil
	}
}

// ProvideEventBus creates the change event publisher. Without a bus name
// change events are not published.
func ProvideEventBus(cfg *config.Config, client *awseventbridge.Client, logger *zap.Logger) ports.EventBus {
	if cfg.UsesMemory() {
		return &messagingmemory.EventBus{}
	}
	if cfg.EventBusName == "" {
		return nil
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideCollector creates the Prometheus collector, or nil when metrics
// are disabled.
func ProvideCollector(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector(cfg.MetricsNamespace)
}

// ProvideTracer creates the tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("movieportal", cfg.EnableTracing)
}

// ProvideSideEffects creates the side-effect runner
func ProvideSideEffects(tracer *observability.Tracer, collector *observability.Collector, logger *zap.Logger) *services.SideEffects {
	var recorder services.FailureRecorder
	if collector != nil {
		recorder = collector
	}
	return services.NewSideEffects(tracer, recorder, logger)
}

// ProvideJWTValidator creates the bearer token validator, or nil when no
// secret is configured.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.JWTSecret == "" {
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideHandlerDependencies gathers what the command handlers share
func ProvideHandlerDependencies(
	movies ports.MovieRepository,
	users ports.UserRepository,
	reviews ports.ReviewRepository,
	queue ports.EnrichmentQueue,
	notifier ports.Notifier,
	assets ports.AssetStore,
	eventBus ports.EventBus,
	effects *services.SideEffects,
	collector *observability.Collector,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) commandhandlers.Dependencies {
	return commandhandlers.Dependencies{
		Movies:  movies,
		Users:   users,
		Reviews: reviews,
		Queue:   queue,
		Notify:  notifier,
		Assets:  assets,
		Events:  eventBus,
		Effects: effects,
		Metrics: collector,
		Config:  domainCfg,
		Logger:  logger,
	}
}

// ProvideCommandBus creates and configures the command bus
func ProvideCommandBus(deps commandhandlers.Dependencies, collector *observability.Collector, logger *zap.Logger) (*bus.CommandBus, error) {
	middlewares := []bus.Middleware{bus.LoggingMiddleware(logger)}
	if collector != nil {
		middlewares = append(middlewares, bus.MetricsMiddleware(collector))
	}
	commandBus := bus.NewCommandBus(middlewares...)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateMovieCommand{}, commandhandlers.NewCreateMovieHandler(deps)},
		{commands.UpdateMovieCommand{}, commandhandlers.NewUpdateMovieHandler(deps)},
		{commands.DeleteMovieCommand{}, commandhandlers.NewDeleteMovieHandler(deps)},
		{commands.UpdateUserCommand{}, commandhandlers.NewUpdateUserHandler(deps)},
		{commands.AddToWatchlistCommand{}, commandhandlers.NewAddToWatchlistHandler(deps)},
		{commands.RemoveFromWatchlistCommand{}, commandhandlers.NewRemoveFromWatchlistHandler(deps)},
		{commands.AddReviewCommand{}, commandhandlers.NewAddReviewHandler(deps)},
		{commands.IssueUploadURLCommand{}, commandhandlers.NewIssueUploadURLHandler(deps)},
	}
	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, reg.handler); err != nil {
			return nil, fmt.Errorf("failed to register command handler: %w", err)
		}
	}

	return commandBus, nil
}

// ProvideQueryBus creates and configures the query bus
func ProvideQueryBus(
	movies ports.MovieRepository,
	users ports.UserRepository,
	reviews ports.ReviewRepository,
	collector *observability.Collector,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	if collector != nil {
		queryBus = queryBus.WithMetrics(collector)
	}

	movieQueries := queryhandlers.NewMovieQueryHandler(movies, domainCfg, logger)
	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetMovieQuery{}, movieQueries},
		{queries.ListMoviesQuery{}, movieQueries},
		{queries.ListUserMoviesQuery{}, movieQueries},
		{queries.GetUserQuery{}, queryhandlers.NewGetUserHandler(users)},
		{queries.ListReviewsQuery{}, queryhandlers.NewListReviewsHandler(movies, reviews, domainCfg)},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return nil, fmt.Errorf("failed to register query handler: %w", err)
		}
	}

	return queryBus, nil
}

// PortalToken is the bearer token the worker presents to the portal API
type PortalToken string

// ProvidePortalToken uses API_TOKEN, or mints an admin token with the JWT
// secret.
func ProvidePortalToken(cfg *config.Config) (PortalToken, error) {
	if cfg.Worker.APIToken != "" {
		return PortalToken(cfg.Worker.APIToken), nil
	}
	if cfg.JWTSecret == "" {
		return "", fmt.Errorf("API_TOKEN or JWT_SECRET is required")
	}

	generator, err := auth.NewJWTGenerator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
	if err != nil {
		return "", err
	}
	token, err := generator.GenerateToken(cfg.AdminUserID, "")
	if err != nil {
		return "", err
	}
	return PortalToken(token), nil
}

// ProvideJobSource creates the worker side of the enrichment queue
func ProvideJobSource(cfg *config.Config, client *awssqs.Client, logger *zap.Logger) (*sqs.EnrichmentQueue, error) {
	if cfg.EnrichmentQueueURL == "" {
		return nil, fmt.Errorf("ENRICHMENT_QUEUE_URL is required")
	}
	return sqs.NewEnrichmentQueue(client, cfg.EnrichmentQueueURL, logger), nil
}

// ProvideScraper creates the metadata scraper
func ProvideScraper(cfg *config.Config, logger *zap.Logger) (*enrichment.Scraper, error) {
	if cfg.Worker.MetadataURLTemplate == "" {
		return nil, fmt.Errorf("METADATA_URL_TEMPLATE is required")
	}

	selectors := enrichment.DefaultSelectors()
	if cfg.Worker.SelectorDirector != "" {
		selectors.Director = cfg.Worker.SelectorDirector
	}
	if cfg.Worker.SelectorSynopsis != "" {
		selectors.Synopsis = cfg.Worker.SelectorSynopsis
	}
	if cfg.Worker.SelectorActors != "" {
		selectors.Actors = cfg.Worker.SelectorActors
	}

	return enrichment.NewScraper(enrichment.ScraperConfig{
		URLTemplate: cfg.Worker.MetadataURLTemplate,
		Selectors:   selectors,
	}, nil, logger), nil
}

// ProvidePortalClient creates the portal API client
func ProvidePortalClient(cfg *config.Config, token PortalToken) *enrichment.PortalClient {
	return enrichment.NewPortalClient(cfg.Worker.PortalAPIURL, string(token), &http.Client{})
}

// ProvideWorkerMetrics creates the CloudWatch job metrics
func ProvideWorkerMetrics(cfg *config.Config, client *awscloudwatch.Client, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics(cfg.MetricsNamespace, nil, logger)
	}
	return observability.NewMetrics(cfg.MetricsNamespace, client, logger)
}

// ProvideConsumer creates the enrichment worker
func ProvideConsumer(
	cfg *config.Config,
	jobs *sqs.EnrichmentQueue,
	scraper *enrichment.Scraper,
	portal *enrichment.PortalClient,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *worker.Consumer {
	return worker.NewConsumer(jobs, scraper, portal, metrics, worker.Config{
		WaitSeconds: int32(cfg.Worker.PollWait.Seconds()),
	}, logger)
}
