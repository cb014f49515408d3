// Package mocks provides testify mocks of the application ports.
package mocks

import (
	"context"
	"time"

	"movieportal/application/ports"
	"movieportal/domain/core/entities"
	"movieportal/domain/events"
	"movieportal/pkg/common"

	"github.com/stretchr/testify/mock"
)

// MockMovieRepository is a mock implementation of ports.MovieRepository
type MockMovieRepository struct {
	mock.Mock
}

var _ ports.MovieRepository = (*MockMovieRepository)(nil)

func (m *MockMovieRepository) Create(ctx context.Context, movie *entities.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id string) (*entities.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Movie), args.Error(1)
}

func (m *MockMovieRepository) Update(ctx context.Context, id string, changes entities.MovieChanges, now time.Time) (*entities.Movie, error) {
	args := m.Called(ctx, id, changes, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Movie), args.Error(1)
}

func (m *MockMovieRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovieRepository) List(ctx context.Context, page common.PageRequest) (*ports.MoviePage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.MoviePage), args.Error(1)
}

func (m *MockMovieRepository) ListByGenre(ctx context.Context, genre string, page common.PageRequest) (*ports.MoviePage, error) {
	args := m.Called(ctx, genre, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.MoviePage), args.Error(1)
}

func (m *MockMovieRepository) ListByUser(ctx context.Context, userID string, page common.PageRequest) (*ports.MoviePage, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.MoviePage), args.Error(1)
}

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, userID string, changes entities.UserChanges, now time.Time) (*entities.User, error) {
	args := m.Called(ctx, userID, changes, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// MockReviewRepository is a mock implementation of ports.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

var _ ports.ReviewRepository = (*MockReviewRepository)(nil)

func (m *MockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByMovie(ctx context.Context, movieID string, page common.PageRequest) (*ports.ReviewPage, error) {
	args := m.Called(ctx, movieID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ReviewPage), args.Error(1)
}

// MockEnrichmentQueue is a mock implementation of ports.EnrichmentQueue
type MockEnrichmentQueue struct {
	mock.Mock
}

var _ ports.EnrichmentQueue = (*MockEnrichmentQueue)(nil)

func (m *MockEnrichmentQueue) Enqueue(ctx context.Context, job entities.EnrichmentJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockNotifier is a mock implementation of ports.Notifier
type MockNotifier struct {
	mock.Mock
}

var _ ports.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) PublishNewMovie(ctx context.Context, movie *entities.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

// MockAssetStore is a mock implementation of ports.AssetStore
type MockAssetStore struct {
	mock.Mock
}

var _ ports.AssetStore = (*MockAssetStore)(nil)

func (m *MockAssetStore) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockAssetStore) KeyFromReference(ref string) (string, bool) {
	args := m.Called(ref)
	return args.String(0), args.Bool(1)
}

func (m *MockAssetStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockEventBus is a mock implementation of ports.EventBus
type MockEventBus struct {
	mock.Mock
}

var _ ports.EventBus = (*MockEventBus)(nil)

func (m *MockEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
