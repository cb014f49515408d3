// Package worker drains the enrichment queue, fills in missing movie
// details and writes them back through the portal API.
package worker

import (
	"context"
	"errors"
	"time"

	"movieportal/domain/core/entities"
	"movieportal/infrastructure/enrichment"
	"movieportal/infrastructure/messaging/sqs"

	"go.uber.org/zap"
)

// Outcomes a job can end with
const (
	OutcomeEnriched   = "enriched"
	OutcomeSkipped    = "skipped"
	OutcomeSuperseded = "superseded"
	OutcomeGone       = "gone"
	OutcomeMalformed  = "malformed"
	OutcomeFailed     = "failed"
)

// JobSource delivers and acknowledges jobs
type JobSource interface {
	Receive(ctx context.Context, maxMessages, waitSeconds int32) ([]sqs.Delivery, error)
	Ack(ctx context.Context, receiptHandle string) error
}

// MetadataSource looks movie details up
type MetadataSource interface {
	Lookup(ctx context.Context, title string, year *int) (enrichment.Details, error)
}

// Portal reads and patches movies
type Portal interface {
	GetMovie(ctx context.Context, id string) (*entities.Movie, error)
	UpdateMovie(ctx context.Context, id string, patch enrichment.Patch) error
}

// OutcomeRecorder counts processed jobs
type OutcomeRecorder interface {
	RecordJobOutcome(ctx context.Context, outcome string, duration time.Duration)
}

// Config tunes the polling loop
type Config struct {
	BatchSize   int32
	WaitSeconds int32
	// ErrorBackoff is how long to pause after a failed receive
	ErrorBackoff time.Duration
}

// Consumer processes enrichment jobs
type Consumer struct {
	jobs     JobSource
	metadata MetadataSource
	portal   Portal
	metrics  OutcomeRecorder
	cfg      Config
	logger   *zap.Logger
}

// NewConsumer creates a new consumer
func NewConsumer(jobs JobSource, metadata MetadataSource, portal Portal, metrics OutcomeRecorder, cfg Config, logger *zap.Logger) *Consumer {
	if cfg.BatchSize <= 0 || cfg.BatchSize > 10 {
		cfg.BatchSize = 10
	}
	if cfg.WaitSeconds < 0 || cfg.WaitSeconds > 20 {
		cfg.WaitSeconds = 20
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = 5 * time.Second
	}
	return &Consumer{
		jobs:     jobs,
		metadata: metadata,
		portal:   portal,
		metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run polls until ctx is cancelled
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("Enrichment worker started",
		zap.Int32("batchSize", c.cfg.BatchSize),
		zap.Int32("waitSeconds", c.cfg.WaitSeconds),
	)

	for {
		if ctx.Err() != nil {
			c.logger.Info("Enrichment worker stopped")
			return nil
		}

		if _, err := c.PollOnce(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.logger.Error("Failed to receive jobs", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(c.cfg.ErrorBackoff):
			}
		}
	}
}

// PollOnce receives one batch and processes it. It returns how many
// deliveries were received.
func (c *Consumer) PollOnce(ctx context.Context) (int, error) {
	deliveries, err := c.jobs.Receive(ctx, c.cfg.BatchSize, c.cfg.WaitSeconds)
	if err != nil {
		return 0, err
	}

	for _, d := range deliveries {
		start := time.Now()
		outcome, ack := c.Process(ctx, d)
		if c.metrics != nil {
			c.metrics.RecordJobOutcome(ctx, outcome, time.Since(start))
		}
		if !ack {
			continue
		}
		if err := c.jobs.Ack(ctx, d.ReceiptHandle); err != nil {
			c.logger.Warn("Failed to acknowledge job",
				zap.String("messageId", d.MessageID),
				zap.Error(err),
			)
		}
	}
	return len(deliveries), nil
}

// Process handles one delivery. ack is false when the job should be
// redelivered.
func (c *Consumer) Process(ctx context.Context, d sqs.Delivery) (outcome string, ack bool) {
	logger := c.logger.With(zap.String("messageId", d.MessageID))

	if d.Err != nil || d.Job.MovieID == "" {
		logger.Warn("Dropping malformed job", zap.Error(d.Err))
		return OutcomeMalformed, true
	}
	job := d.Job
	logger = logger.With(zap.String("movieId", job.MovieID))

	current, err := c.portal.GetMovie(ctx, job.MovieID)
	if errors.Is(err, enrichment.ErrMovieGone) {
		logger.Info("Movie deleted before enrichment")
		return OutcomeGone, true
	}
	if err != nil {
		logger.Error("Failed to load movie", zap.Error(err))
		return OutcomeFailed, false
	}

	if job.IsSupersededBy(current) {
		logger.Info("Dropping superseded job")
		return OutcomeSuperseded, true
	}

	details, err := c.metadata.Lookup(ctx, current.Title, current.Year)
	if errors.Is(err, enrichment.ErrNoMetadata) {
		logger.Info("No metadata for movie", zap.String("title", current.Title))
		return OutcomeSkipped, true
	}
	if err != nil {
		logger.Error("Metadata lookup failed", zap.Error(err))
		return OutcomeFailed, false
	}

	patch := BuildPatch(current, details)
	if patch.IsEmpty() {
		return OutcomeSkipped, true
	}

	if err := c.portal.UpdateMovie(ctx, job.MovieID, patch); err != nil {
		if errors.Is(err, enrichment.ErrMovieGone) {
			return OutcomeGone, true
		}
		logger.Error("Failed to write enrichment", zap.Error(err))
		return OutcomeFailed, false
	}

	logger.Info("Movie enriched")
	return OutcomeEnriched, true
}

// BuildPatch keeps only the details current is missing. Fields a user has
// filled in are never overwritten.
func BuildPatch(current *entities.Movie, details enrichment.Details) enrichment.Patch {
	var p enrichment.Patch
	if details.Director != "" && (current.Director == nil || *current.Director == "") {
		v := details.Director
		p.Director = &v
	}
	if details.Synopsis != "" && (current.Synopsis == nil || *current.Synopsis == "") {
		v := details.Synopsis
		p.Synopsis = &v
	}
	if len(details.Actors) > 0 && len(current.Actors) == 0 {
		v := append([]string{}, details.Actors...)
		p.Actors = &v
	}
	return p
}
