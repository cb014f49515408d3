package s3

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movieportal/application/ports"
	"movieportal/infrastructure/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// ObjectAPI is the subset of the S3 client the store uses
type ObjectAPI interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// PresignAPI is the subset of the S3 presign client the store uses
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

var (
	_ ObjectAPI  = (*s3.Client)(nil)
	_ PresignAPI = (*s3.PresignClient)(nil)
)

// AssetStore implements ports.AssetStore on S3
type AssetStore struct {
	client  ObjectAPI
	presign PresignAPI
	ref     storage.Reference
	logger  *zap.Logger
}

// NewAssetStore creates a store for bucket. region is used to recognize the
// bucket's public URLs.
func NewAssetStore(client *s3.Client, bucket, region, prefix string, logger *zap.Logger) *AssetStore {
	return NewAssetStoreWithAPI(client, s3.NewPresignClient(client), bucket, region, prefix, logger)
}

// NewAssetStoreWithAPI creates a store on explicit clients
func NewAssetStoreWithAPI(client ObjectAPI, presign PresignAPI, bucket, region, prefix string, logger *zap.Logger) *AssetStore {
	return &AssetStore{
		client:  client,
		presign: presign,
		ref:     BucketReference(bucket, region, prefix),
		logger:  logger,
	}
}

var _ ports.AssetStore = (*AssetStore)(nil)

// BucketReference lists the S3 endpoints objects of bucket are served from
func BucketReference(bucket, region, prefix string) storage.Reference {
	ref := storage.Reference{
		Bucket:       bucket,
		Prefix:       prefix,
		VirtualHosts: []string{bucket + ".s3.amazonaws.com"},
		PathHosts:    []string{"s3.amazonaws.com"},
	}
	if region != "" {
		ref.VirtualHosts = append(ref.VirtualHosts,
			fmt.Sprintf("%s.s3.%s.amazonaws.com", bucket, region),
			fmt.Sprintf("%s.s3-%s.amazonaws.com", bucket, region),
		)
		ref.PathHosts = append(ref.PathHosts, fmt.Sprintf("s3.%s.amazonaws.com", region))
	}
	return ref
}

// PresignUpload returns a URL that accepts one PUT of key
func (s *AssetStore) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.ref.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return req.URL, nil
}

// KeyFromReference implements ports.AssetStore
func (s *AssetStore) KeyFromReference(ref string) (string, bool) {
	return s.ref.KeyFromReference(ref)
}

// Delete removes key. A key that is already gone is not an error.
func (s *AssetStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.ref.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound") {
			s.logger.Debug("Asset already removed", zap.String("key", key))
			return nil
		}
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}
