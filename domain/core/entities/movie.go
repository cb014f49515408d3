package entities

import (
	"time"
)

// Movie is the persisted movie record. The same shape is used for the API
// body, the DynamoDB item and the enrichment snapshot.
type Movie struct {
	ID          string    `json:"id" dynamodbav:"id"`
	UserID      string    `json:"userId" dynamodbav:"userId"`
	Title       string    `json:"title" dynamodbav:"title"`
	Year        *int      `json:"year,omitempty" dynamodbav:"year,omitempty"`
	Genre       *string   `json:"genre,omitempty" dynamodbav:"genre,omitempty"`
	Director    *string   `json:"director,omitempty" dynamodbav:"director,omitempty"`
	Synopsis    *string   `json:"synopsis,omitempty" dynamodbav:"synopsis,omitempty"`
	Rating      *float64  `json:"rating,omitempty" dynamodbav:"rating,omitempty"`
	WatchedDate time.Time `json:"watchedDate" dynamodbav:"watchedDate"`
	ImageURL    *string   `json:"imageUrl,omitempty" dynamodbav:"imageUrl,omitempty"`
	Actors      []string  `json:"actors" dynamodbav:"actors"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewMovie builds a movie with its server-assigned identity and timestamps.
// watchedDate falls back to the creation time and actors to an empty list.
func NewMovie(id, userID, title string, now time.Time) *Movie {
	return &Movie{
		ID:          id,
		UserID:      userID,
		Title:       title,
		WatchedDate: now,
		Actors:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOwnedBy reports whether userID recorded the movie
func (m *Movie) IsOwnedBy(userID string) bool {
	return m.UserID == userID
}

// Normalize restores invariants lost in storage round trips (an empty list
// may come back as NULL).
func (m *Movie) Normalize() *Movie {
	if m.Actors == nil {
		m.Actors = []string{}
	}
	return m
}

// Clone returns a deep copy so callers can keep a snapshot
func (m *Movie) Clone() *Movie {
	c := *m
	c.Year = cloneInt(m.Year)
	c.Genre = cloneString(m.Genre)
	c.Director = cloneString(m.Director)
	c.Synopsis = cloneString(m.Synopsis)
	c.Rating = cloneFloat(m.Rating)
	c.ImageURL = cloneString(m.ImageURL)
	c.Actors = append([]string{}, m.Actors...)
	return &c
}

// MovieChanges is a partial update. A nil field is left untouched.
type MovieChanges struct {
	Title       *string
	Year        *int
	Genre       *string
	Director    *string
	Synopsis    *string
	Rating      *float64
	WatchedDate *time.Time
	ImageURL    *string
	Actors      *[]string
}

// IsEmpty reports whether no updatable field is present
func (c MovieChanges) IsEmpty() bool {
	return c.Title == nil && c.Year == nil && c.Genre == nil && c.Director == nil &&
		c.Synopsis == nil && c.Rating == nil && c.WatchedDate == nil &&
		c.ImageURL == nil && c.Actors == nil
}

// AffectsIdentity reports whether the change alters the title or year of
// current, which is what enrichment results are keyed on.
func (c MovieChanges) AffectsIdentity(current *Movie) bool {
	if c.Title != nil && *c.Title != current.Title {
		return true
	}
	if c.Year != nil && (current.Year == nil || *current.Year != *c.Year) {
		return true
	}
	return false
}

// ApplyTo writes the present fields onto m and refreshes updatedAt
func (c MovieChanges) ApplyTo(m *Movie, now time.Time) {
	if c.Title != nil {
		m.Title = *c.Title
	}
	if c.Year != nil {
		m.Year = cloneInt(c.Year)
	}
	if c.Genre != nil {
		m.Genre = cloneString(c.Genre)
	}
	if c.Director != nil {
		m.Director = cloneString(c.Director)
	}
	if c.Synopsis != nil {
		m.Synopsis = cloneString(c.Synopsis)
	}
	if c.Rating != nil {
		m.Rating = cloneFloat(c.Rating)
	}
	if c.WatchedDate != nil {
		m.WatchedDate = *c.WatchedDate
	}
	if c.ImageURL != nil {
		m.ImageURL = cloneString(c.ImageURL)
	}
	if c.Actors != nil {
		m.Actors = append([]string{}, (*c.Actors)...)
	}
	m.UpdatedAt = now
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
