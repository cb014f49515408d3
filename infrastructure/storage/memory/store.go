// Package memory is an in-process asset store for local runs and tests
package memory

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"movieportal/application/ports"
	"movieportal/infrastructure/storage"
)

// AssetStore records issued uploads and deletions. Presigned URLs point at
// a fake host and cannot be used.
type AssetStore struct {
	mu      sync.Mutex
	ref     storage.Reference
	objects map[string]struct{}
	deleted []string

	// DeleteErr, when set, is returned by Delete
	DeleteErr error
}

// NewAssetStore creates a store for bucket
func NewAssetStore(bucket, prefix string) *AssetStore {
	return &AssetStore{
		ref: storage.Reference{
			Bucket:       bucket,
			Prefix:       prefix,
			VirtualHosts: []string{bucket + ".assets.local"},
		},
		objects: make(map[string]struct{}),
	}
}

var _ ports.AssetStore = (*AssetStore)(nil)

// PresignUpload records key as uploaded
func (s *AssetStore) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = struct{}{}
	q := url.Values{}
	q.Set("content-type", contentType)
	q.Set("expires", fmt.Sprintf("%d", int(expiry.Seconds())))
	return fmt.Sprintf("https://%s.assets.local/%s?%s", s.ref.Bucket, key, q.Encode()), nil
}

// KeyFromReference implements ports.AssetStore
func (s *AssetStore) KeyFromReference(ref string) (string, bool) {
	return s.ref.KeyFromReference(ref)
}

// Delete records the deletion, or returns DeleteErr if set
func (s *AssetStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

// Deleted returns the keys deleted so far
func (s *AssetStore) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.deleted...)
}
