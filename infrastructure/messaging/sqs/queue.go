package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"movieportal/application/ports"
	"movieportal/domain/core/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
)

// API is the subset of the SQS client the queue uses
type API interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

var _ API = (*sqs.Client)(nil)

// EnrichmentQueue sends and receives enrichment jobs
type EnrichmentQueue struct {
	client   API
	queueURL string
	logger   *zap.Logger
}

// NewEnrichmentQueue creates a queue bound to queueURL
func NewEnrichmentQueue(client API, queueURL string, logger *zap.Logger) *EnrichmentQueue {
	return &EnrichmentQueue{
		client:   client,
		queueURL: queueURL,
		logger:   logger,
	}
}

var _ ports.EnrichmentQueue = (*EnrichmentQueue)(nil)

// Enqueue sends one job
func (q *EnrichmentQueue) Enqueue(ctx context.Context, job entities.EnrichmentJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal enrichment job: %w", err)
	}

	out, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"action": {
				DataType:    aws.String("String"),
				StringValue: aws.String(job.Action),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send enrichment job: %w", err)
	}

	q.logger.Debug("Enrichment job enqueued",
		zap.String("movieId", job.MovieID),
		zap.String("messageId", aws.ToString(out.MessageId)),
	)
	return nil
}

// Delivery is a received job plus the handle needed to acknowledge it
type Delivery struct {
	Job           entities.EnrichmentJob
	ReceiptHandle string
	MessageID     string
	// Err is set when the body could not be decoded
	Err error
}

// Receive long-polls for up to maxMessages jobs
func (q *EnrichmentQueue) Receive(ctx context.Context, maxMessages, waitSeconds int32) ([]Delivery, error) {
	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     waitSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to receive enrichment jobs: %w", err)
	}

	deliveries := make([]Delivery, 0, len(out.Messages))
	for _, msg := range out.Messages {
		d := Delivery{
			ReceiptHandle: aws.ToString(msg.ReceiptHandle),
			MessageID:     aws.ToString(msg.MessageId),
		}
		if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &d.Job); err != nil {
			d.Err = fmt.Errorf("malformed enrichment job: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

// Ack deletes a processed message
func (q *EnrichmentQueue) Ack(ctx context.Context, receiptHandle string) error {
	if _, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	}); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
