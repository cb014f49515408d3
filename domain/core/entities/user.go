package entities

import "time"

// User is the stored profile. PasswordHash never leaves the store: it has no
// JSON name and profiles are returned through UserProfile.
type User struct {
	UserID         string    `json:"userId" dynamodbav:"userId"`
	Username       string    `json:"username" dynamodbav:"username"`
	Email          string    `json:"email" dynamodbav:"email"`
	FavoriteGenres []string  `json:"favoriteGenres" dynamodbav:"favoriteGenres"`
	Watchlist      []string  `json:"watchlist" dynamodbav:"watchlist"`
	PasswordHash   string    `json:"-" dynamodbav:"passwordHash,omitempty"`
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewUser creates an empty profile, used when a watchlist is touched before
// the profile exists.
func NewUser(userID string, now time.Time) *User {
	return &User{
		UserID:         userID,
		Username:       userID,
		FavoriteGenres: []string{},
		Watchlist:      []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AddToWatchlist appends movieID unless it is already listed.
// It returns false when nothing changed.
func (u *User) AddToWatchlist(movieID string, now time.Time) bool {
	for _, id := range u.Watchlist {
		if id == movieID {
			return false
		}
	}
	u.Watchlist = append(u.Watchlist, movieID)
	u.UpdatedAt = now
	return true
}

// RemoveFromWatchlist drops movieID, keeping the order of the rest
func (u *User) RemoveFromWatchlist(movieID string, now time.Time) bool {
	kept := make([]string, 0, len(u.Watchlist))
	for _, id := range u.Watchlist {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(u.Watchlist) {
		return false
	}
	u.Watchlist = kept
	u.UpdatedAt = now
	return true
}

// Profile strips credentials and normalizes list fields for responses
func (u *User) Profile() UserProfile {
	p := UserProfile{
		UserID:         u.UserID,
		Username:       u.Username,
		Email:          u.Email,
		FavoriteGenres: append([]string{}, u.FavoriteGenres...),
		Watchlist:      append([]string{}, u.Watchlist...),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	return p
}

// UserProfile is the only user shape that is ever serialized to a caller
type UserProfile struct {
	UserID         string    `json:"userId"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FavoriteGenres []string  `json:"favoriteGenres"`
	Watchlist      []string  `json:"watchlist"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserChanges is a partial profile update
type UserChanges struct {
	Username       *string
	Email          *string
	FavoriteGenres *[]string
}

// IsEmpty reports whether no updatable field is present
func (c UserChanges) IsEmpty() bool {
	return c.Username == nil && c.Email == nil && c.FavoriteGenres == nil
}

// ApplyTo writes the present fields onto u
func (c UserChanges) ApplyTo(u *User, now time.Time) {
	if c.Username != nil {
		u.Username = *c.Username
	}
	if c.Email != nil {
		u.Email = *c.Email
	}
	if c.FavoriteGenres != nil {
		u.FavoriteGenres = append([]string{}, (*c.FavoriteGenres)...)
	}
	u.UpdatedAt = now
}
