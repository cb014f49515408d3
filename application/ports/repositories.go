package ports

import (
	"context"
	"time"

	"movieportal/domain/core/entities"
	"movieportal/domain/events"
	"movieportal/pkg/common"
)

// MoviePage is one page of a movie listing. An empty NextToken means the
// listing is exhausted.
type MoviePage struct {
	Items     []*entities.Movie
	NextToken string
}

// ReviewPage is one page of a review listing
type ReviewPage struct {
	Items     []*entities.Review
	NextToken string
}

// MovieRepository persists movie records. Lookups of unknown ids return a
// NOT_FOUND AppError.
type MovieRepository interface {
	Create(ctx context.Context, movie *entities.Movie) error
	GetByID(ctx context.Context, id string) (*entities.Movie, error)
	// Update writes only the present fields plus updatedAt and returns the
	// record as stored afterwards.
	Update(ctx context.Context, id string, changes entities.MovieChanges, now time.Time) (*entities.Movie, error)
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, page common.PageRequest) (*MoviePage, error)
	// ListByGenre enumerates a genre in ascending rating order
	ListByGenre(ctx context.Context, genre string, page common.PageRequest) (*MoviePage, error)
	ListByUser(ctx context.Context, userID string, page common.PageRequest) (*MoviePage, error)
}

// UserRepository persists user profiles
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*entities.User, error)
	Save(ctx context.Context, user *entities.User) error
	Update(ctx context.Context, userID string, changes entities.UserChanges, now time.Time) (*entities.User, error)
}

// ReviewRepository persists reviews
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	ListByMovie(ctx context.Context, movieID string, page common.PageRequest) (*ReviewPage, error)
}

// EnrichmentQueue hands jobs to the out-of-process enrichment worker
type EnrichmentQueue interface {
	Enqueue(ctx context.Context, job entities.EnrichmentJob) error
}

// Notifier fans out "movie added" notifications
type Notifier interface {
	PublishNewMovie(ctx context.Context, movie *entities.Movie) error
}

// AssetStore issues upload URLs for, and removes, movie images
type AssetStore interface {
	PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	// KeyFromReference returns the object key if ref points into this store
	KeyFromReference(ref string) (string, bool)
	Delete(ctx context.Context, key string) error
}

// EventBus publishes change events for downstream consumers
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}
