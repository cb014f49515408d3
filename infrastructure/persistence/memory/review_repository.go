package memory

import (
	"context"
	"sort"
	"sync"

	"movieportal/application/ports"
	"movieportal/domain/core/entities"
	"movieportal/pkg/common"
)

// ReviewRepository is a map-backed ports.ReviewRepository
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string][]entities.Review
}

// NewReviewRepository creates an empty repository
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[string][]entities.Review)}
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

// Create stores a review
func (r *ReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reviews[review.MovieID] = append(r.reviews[review.MovieID], *review)
	return nil
}

// ListByMovie pages through one movie's reviews in id order
func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID string, page common.PageRequest) (*ports.ReviewPage, error) {
	kind := common.ReviewsKind(movieID)
	after, err := resumePoint(page, kind, []string{"movieId", "id"}, map[string]string{"movieId": movieID})
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	sorted := append([]entities.Review{}, r.reviews[movieID]...)
	r.mu.RUnlock()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	out := &ports.ReviewPage{Items: []*entities.Review{}}
	for i := range sorted {
		rv := sorted[i]
		if after != nil && rv.ID <= str(after["id"]) {
			continue
		}
		out.Items = append(out.Items, &rv)
		if len(out.Items) == page.Limit {
			if i < len(sorted)-1 {
				token, err := common.EncodeCursor(kind, map[string]interface{}{"movieId": movieID, "id": rv.ID})
				if err != nil {
					return nil, err
				}
				out.NextToken = token
			}
			break
		}
	}
	return out, nil
}
