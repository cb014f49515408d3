package events

import (
	"time"

	"movieportal/domain/core/entities"
)

// SourceAPI identifies change events emitted by the portal API
const SourceAPI = "movieportal.api"

// Event types
const (
	TypeMovieCreated = "movie.created"
	TypeMovieUpdated = "movie.updated"
	TypeMovieDeleted = "movie.deleted"
	TypeReviewAdded  = "review.added"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// MovieChanged is raised when a movie is created or updated. It carries the
// record as stored after the write.
type MovieChanged struct {
	BaseEvent
	UserID string          `json:"user_id"`
	Movie  *entities.Movie `json:"movie"`
}

// NewMovieCreated creates a movie.created event
func NewMovieCreated(movie *entities.Movie, actor string) MovieChanged {
	return newMovieChanged(TypeMovieCreated, movie, actor, movie.CreatedAt)
}

// NewMovieUpdated creates a movie.updated event
func NewMovieUpdated(movie *entities.Movie, actor string) MovieChanged {
	return newMovieChanged(TypeMovieUpdated, movie, actor, movie.UpdatedAt)
}

func newMovieChanged(eventType string, movie *entities.Movie, actor string, at time.Time) MovieChanged {
	return MovieChanged{
		BaseEvent: BaseEvent{
			AggregateID: movie.ID,
			EventType:   eventType,
			Timestamp:   at,
			Version:     1,
		},
		UserID: actor,
		Movie:  movie.Clone(),
	}
}

// MovieDeleted is raised when a movie record is removed
type MovieDeleted struct {
	BaseEvent
	UserID   string `json:"user_id"`
	OwnerID  string `json:"owner_id"`
	ImageURL string `json:"image_url,omitempty"`
}

// NewMovieDeleted creates a movie.deleted event
func NewMovieDeleted(movie *entities.Movie, actor string, at time.Time) MovieDeleted {
	e := MovieDeleted{
		BaseEvent: BaseEvent{
			AggregateID: movie.ID,
			EventType:   TypeMovieDeleted,
			Timestamp:   at,
			Version:     1,
		},
		UserID:  actor,
		OwnerID: movie.UserID,
	}
	if movie.ImageURL != nil {
		e.ImageURL = *movie.ImageURL
	}
	return e
}

// ReviewAdded is raised when a review is attached to a movie
type ReviewAdded struct {
	BaseEvent
	UserID string           `json:"user_id"`
	Review *entities.Review `json:"review"`
}

// NewReviewAdded creates a review.added event keyed by the reviewed movie
func NewReviewAdded(review *entities.Review) ReviewAdded {
	r := *review
	return ReviewAdded{
		BaseEvent: BaseEvent{
			AggregateID: review.MovieID,
			EventType:   TypeReviewAdded,
			Timestamp:   review.CreatedAt,
			Version:     1,
		},
		UserID: review.UserID,
		Review: &r,
	}
}
