// Package memory holds recording messaging adapters for local runs and
// tests. Each one can be told to fail.
package memory

import (
	"context"
	"sync"

	"movieportal/application/ports"
	"movieportal/domain/core/entities"
	"movieportal/domain/events"
)

// Queue records enqueued jobs
type Queue struct {
	mu   sync.Mutex
	jobs []entities.EnrichmentJob
	Err  error
}

var _ ports.EnrichmentQueue = (*Queue)(nil)

// Enqueue records job, or returns Err if set
func (q *Queue) Enqueue(ctx context.Context, job entities.EnrichmentJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

// Jobs returns the jobs enqueued so far
func (q *Queue) Jobs() []entities.EnrichmentJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]entities.EnrichmentJob{}, q.jobs...)
}

// Notifier records notified movies
type Notifier struct {
	mu     sync.Mutex
	movies []*entities.Movie
	Err    error
}

var _ ports.Notifier = (*Notifier)(nil)

// PublishNewMovie records movie, or returns Err if set
func (n *Notifier) PublishNewMovie(ctx context.Context, movie *entities.Movie) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.movies = append(n.movies, movie.Clone())
	return nil
}

// Published returns the movies notified so far
func (n *Notifier) Published() []*entities.Movie {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*entities.Movie{}, n.movies...)
}

// EventBus records published events
type EventBus struct {
	mu     sync.Mutex
	events []events.DomainEvent
	Err    error
}

var _ ports.EventBus = (*EventBus)(nil)

// Publish records event, or returns Err if set
func (b *EventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	b.events = append(b.events, event)
	return nil
}

// Events returns the events published so far
func (b *EventBus) Events() []events.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.DomainEvent{}, b.events...)
}
