package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"

	AssetBackendS3    = "s3"
	AssetBackendMinIO = "minio"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion            string
	StoreBackend         string
	MoviesTable          string
	UsersTable           string
	ReviewsTable         string
	GenreIndex           string
	UserIndex            string
	EnrichmentQueueURL   string
	NotificationTopicARN string
	EventBusName         string

	// Asset storage
	AssetBackend   string
	AssetBucket    string
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Authentication
	AdminUserID string
	JWTSecret   string
	JWTIssuer   string

	// Logging
	LogLevel string
	LogFile  string

	// Feature flags
	EnableMetrics    bool
	EnableTracing    bool
	MetricsNamespace string

	Worker WorkerConfig
}

// WorkerConfig configures the enrichment worker
type WorkerConfig struct {
	PortalAPIURL        string
	APIToken            string
	MetadataURLTemplate string
	SelectorDirector    string
	SelectorSynopsis    string
	SelectorActors      string
	PollWait            time.Duration
}

// LoadConfig loads the API configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWorkerConfig loads the enrichment worker configuration. The worker
// talks to the portal over HTTP, so table and bucket settings are ignored.
func LoadWorkerConfig() (*Config, error) {
	cfg := load()
	if err := cfg.ValidateWorker(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load() *Config {
	moviesTable := getEnv("MOVIES_TABLE", "")
	reviewsDefault := ""
	if moviesTable != "" {
		reviewsDefault = moviesTable + "-reviews"
	}

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:            getEnv("AWS_REGION", "us-east-1"),
		StoreBackend:         strings.ToLower(getEnv("STORE_BACKEND", BackendDynamoDB)),
		MoviesTable:          moviesTable,
		UsersTable:           getEnv("USERS_TABLE", ""),
		ReviewsTable:         getEnv("REVIEWS_TABLE", reviewsDefault),
		GenreIndex:           getEnv("GENRE_INDEX", "GenreIndex"),
		UserIndex:            getEnv("USER_INDEX", "UserIndex"),
		EnrichmentQueueURL:   getEnv("ENRICHMENT_QUEUE_URL", ""),
		NotificationTopicARN: getEnv("NOTIFICATION_TOPIC_ARN", ""),
		EventBusName:         getEnv("EVENT_BUS_NAME", ""),

		AssetBackend:   strings.ToLower(getEnv("ASSET_BACKEND", AssetBackendS3)),
		AssetBucket:    getEnv("ASSET_BUCKET", ""),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		IsLambda:           getEnv("AWS_LAMBDA_FUNCTION_NAME", "") != "",
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		AdminUserID: getEnv("ADMIN_USER_ID", "admin"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "movieportal"),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", ""),
		EnableMetrics:    getEnvBool("ENABLE_METRICS", true),
		EnableTracing:    getEnvBool("ENABLE_TRACING", false),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "movieportal"),

		Worker: WorkerConfig{
			PortalAPIURL:        getEnv("PORTAL_API_URL", "http://localhost:8080"),
			APIToken:            getEnv("API_TOKEN", ""),
			MetadataURLTemplate: getEnv("METADATA_URL_TEMPLATE", ""),
			SelectorDirector:    getEnv("SELECTOR_DIRECTOR", ""),
			SelectorSynopsis:    getEnv("SELECTOR_SYNOPSIS", ""),
			SelectorActors:      getEnv("SELECTOR_ACTORS", ""),
			PollWait:            getEnvDuration("WORKER_POLL_WAIT", 20*time.Second),
		},
	}

	return cfg
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
		return nil
	case BackendDynamoDB:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q", BackendDynamoDB, BackendMemory)
	}

	required := []struct {
		name  string
		value string
	}{
		{"MOVIES_TABLE", c.MoviesTable},
		{"USERS_TABLE", c.UsersTable},
		{"ENRICHMENT_QUEUE_URL", c.EnrichmentQueueURL},
		{"NOTIFICATION_TOPIC_ARN", c.NotificationTopicARN},
		{"ASSET_BUCKET", c.AssetBucket},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	switch c.AssetBackend {
	case AssetBackendS3:
	case AssetBackendMinIO:
		if c.MinIOEndpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required")
		}
	default:
		return fmt.Errorf("ASSET_BACKEND must be %q or %q", AssetBackendS3, AssetBackendMinIO)
	}

	return nil
}

// ValidateWorker checks the settings the enrichment worker needs
func (c *Config) ValidateWorker() error {
	if c.EnrichmentQueueURL == "" {
		return fmt.Errorf("ENRICHMENT_QUEUE_URL is required")
	}
	if c.Worker.MetadataURLTemplate == "" {
		return fmt.Errorf("METADATA_URL_TEMPLATE is required")
	}
	if c.Worker.APIToken == "" && c.JWTSecret == "" {
		return fmt.Errorf("API_TOKEN or JWT_SECRET is required")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesMemory reports whether every AWS collaborator is replaced in-process
func (c *Config) UsesMemory() bool {
	return c.StoreBackend == BackendMemory
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("20s") or whole seconds ("20")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
