package memory

import (
	"context"
	"sync"
	"time"

	"movieportal/application/ports"
	"movieportal/domain/core/entities"
	apperrors "movieportal/pkg/errors"
)

// UserRepository is a map-backed ports.UserRepository
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

// NewUserRepository creates an empty repository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entities.User)}
}

var _ ports.UserRepository = (*UserRepository)(nil)

// GetByID loads one profile
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("User")
	}
	return copyUser(u), nil
}

// Save writes the whole profile
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.UserID] = *copyUser(*user)
	return nil
}

// Update applies changes, creating the profile if needed
func (r *UserRepository) Update(ctx context.Context, userID string, changes entities.UserChanges, now time.Time) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		u = *entities.NewUser(userID, now)
	}
	changes.ApplyTo(&u, now)
	r.users[userID] = *copyUser(u)
	return copyUser(u), nil
}

func copyUser(u entities.User) *entities.User {
	u.FavoriteGenres = append([]string{}, u.FavoriteGenres...)
	u.Watchlist = append([]string{}, u.Watchlist...)
	return &u
}
