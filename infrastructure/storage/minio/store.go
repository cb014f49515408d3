package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"movieportal/application/ports"
	"movieportal/infrastructure/storage"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Config holds the MinIO connection settings
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
	Prefix    string
}

// ObjectAPI is the subset of the MinIO client the store uses
type ObjectAPI interface {
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var _ ObjectAPI = (*minio.Client)(nil)

// AssetStore implements ports.AssetStore on a MinIO server, for local
// development without S3.
type AssetStore struct {
	client ObjectAPI
	ref    storage.Reference
	logger *zap.Logger
}

// NewAssetStore connects to the MinIO endpoint in cfg
func NewAssetStore(cfg Config, logger *zap.Logger) (*AssetStore, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.Info("MinIO client initialized",
		zap.String("endpoint", endpoint),
		zap.String("bucket", cfg.Bucket),
		zap.Bool("useSSL", cfg.UseSSL),
	)
	return NewAssetStoreWithAPI(client, endpoint, cfg.Bucket, cfg.Prefix, logger), nil
}

// NewAssetStoreWithAPI creates a store on an explicit client
func NewAssetStoreWithAPI(client ObjectAPI, endpoint, bucket, prefix string, logger *zap.Logger) *AssetStore {
	return &AssetStore{
		client: client,
		ref: storage.Reference{
			Bucket:    bucket,
			Prefix:    prefix,
			PathHosts: []string{endpoint},
		},
		logger: logger,
	}
}

var _ ports.AssetStore = (*AssetStore)(nil)

// PresignUpload returns a URL that accepts one PUT of key. MinIO does not
// sign the content type, so contentType is advisory here.
func (s *AssetStore) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.ref.Bucket, key, expiry)
	if err != nil {
		s.logger.Error("Failed to generate presigned URL", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return u.String(), nil
}

// KeyFromReference implements ports.AssetStore
func (s *AssetStore) KeyFromReference(ref string) (string, bool) {
	return s.ref.KeyFromReference(ref)
}

// Delete removes key. MinIO reports success for missing keys.
func (s *AssetStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.ref.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	s.logger.Debug("Asset deleted", zap.String("key", key))
	return nil
}
