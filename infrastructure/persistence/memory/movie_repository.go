// Package memory holds in-process repositories for local runs and tests.
// Listings follow the same cursor and ordering contract as the DynamoDB
// repositories, including the sparse genre index.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"movieportal/application/ports"
	"movieportal/domain/core/entities"
	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"
)

// MovieRepository is a map-backed ports.MovieRepository
type MovieRepository struct {
	mu     sync.RWMutex
	movies map[string]*entities.Movie
}

// NewMovieRepository creates an empty repository
func NewMovieRepository() *MovieRepository {
	return &MovieRepository{movies: make(map[string]*entities.Movie)}
}

var _ ports.MovieRepository = (*MovieRepository)(nil)

// Create stores a new movie
func (r *MovieRepository) Create(ctx context.Context, movie *entities.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.movies[movie.ID]; exists {
		return apperrors.NewConflictError("movie " + movie.ID + " already exists")
	}
	r.movies[movie.ID] = movie.Clone()
	return nil
}

// GetByID loads one movie
func (r *MovieRepository) GetByID(ctx context.Context, id string) (*entities.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Movie")
	}
	return m.Clone(), nil
}

// Update applies changes to a stored movie
func (r *MovieRepository) Update(ctx context.Context, id string, changes entities.MovieChanges, now time.Time) (*entities.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Movie")
	}
	changes.ApplyTo(m, now)
	return m.Clone(), nil
}

// Delete removes a movie
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.movies, id)
	return nil
}

// List pages through all movies in id order
func (r *MovieRepository) List(ctx context.Context, page common.PageRequest) (*ports.MoviePage, error) {
	after, err := resumePoint(page, common.KindScan, []string{"id"}, nil)
	if err != nil {
		return nil, err
	}

	items := r.collect(func(*entities.Movie) bool { return true })
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return paginate(items, page.Limit, common.KindScan,
		func(m *entities.Movie) bool { return after == nil || m.ID > str(after["id"]) },
		func(m *entities.Movie) map[string]interface{} {
			return map[string]interface{}{"id": m.ID}
		},
	)
}

// ListByGenre pages through one genre in ascending rating order. Movies
// without a rating are skipped.
func (r *MovieRepository) ListByGenre(ctx context.Context, genre string, page common.PageRequest) (*ports.MoviePage, error) {
	kind := common.GenreKind(genre)
	after, err := resumePoint(page, kind, []string{"id", "genre", "rating"}, map[string]string{"genre": genre})
	if err != nil {
		return nil, err
	}

	items := r.collect(func(m *entities.Movie) bool {
		return m.Genre != nil && *m.Genre == genre && m.Rating != nil
	})
	sort.Slice(items, func(i, j int) bool {
		if *items[i].Rating != *items[j].Rating {
			return *items[i].Rating < *items[j].Rating
		}
		return items[i].ID < items[j].ID
	})

	return paginate(items, page.Limit, kind,
		func(m *entities.Movie) bool {
			if after == nil {
				return true
			}
			rating, _ := after["rating"].(float64)
			if *m.Rating != rating {
				return *m.Rating > rating
			}
			return m.ID > str(after["id"])
		},
		func(m *entities.Movie) map[string]interface{} {
			return map[string]interface{}{"id": m.ID, "genre": genre, "rating": *m.Rating}
		},
	)
}

// ListByUser pages through one owner's movies in creation order
func (r *MovieRepository) ListByUser(ctx context.Context, userID string, page common.PageRequest) (*ports.MoviePage, error) {
	kind := common.UserKind(userID)
	after, err := resumePoint(page, kind, []string{"id", "userId", "createdAt"}, map[string]string{"userId": userID})
	if err != nil {
		return nil, err
	}

	items := r.collect(func(m *entities.Movie) bool { return m.UserID == userID })
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	var afterTime time.Time
	if after != nil {
		t, err := time.Parse(time.RFC3339Nano, str(after["createdAt"]))
		if err != nil {
			return nil, apperrors.NewValidationError("invalid nextToken")
		}
		afterTime = t
	}

	return paginate(items, page.Limit, kind,
		func(m *entities.Movie) bool {
			if after == nil {
				return true
			}
			if !m.CreatedAt.Equal(afterTime) {
				return m.CreatedAt.After(afterTime)
			}
			return m.ID > str(after["id"])
		},
		func(m *entities.Movie) map[string]interface{} {
			return map[string]interface{}{
				"id":        m.ID,
				"userId":    userID,
				"createdAt": m.CreatedAt.Format(time.RFC3339Nano),
			}
		},
	)
}

func (r *MovieRepository) collect(keep func(*entities.Movie) bool) []*entities.Movie {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		if keep(m) {
			out = append(out, m.Clone())
		}
	}
	return out
}

func paginate(sorted []*entities.Movie, limit int, kind string, isAfter func(*entities.Movie) bool, keyOf func(*entities.Movie) map[string]interface{}) (*ports.MoviePage, error) {
	page := &ports.MoviePage{Items: []*entities.Movie{}}
	for i, m := range sorted {
		if !isAfter(m) {
			continue
		}
		page.Items = append(page.Items, m)
		if len(page.Items) == limit {
			if i < len(sorted)-1 {
				token, err := common.EncodeCursor(kind, keyOf(m))
				if err != nil {
					return nil, err
				}
				page.NextToken = token
			}
			break
		}
	}
	return page, nil
}
