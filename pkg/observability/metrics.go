package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchAPI is the part of the CloudWatch client the worker needs
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

var _ CloudWatchAPI = (*cloudwatch.Client)(nil)

// Metrics publishes worker metrics to CloudWatch. With a nil client every
// call is a no-op.
type Metrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordJobOutcome counts one processed enrichment job by outcome
func (m *Metrics) RecordJobOutcome(ctx context.Context, outcome string, duration time.Duration) {
	if m == nil || m.client == nil {
		return
	}

	now := time.Now()
	dims := []types.Dimension{
		{
			Name:  aws.String("Outcome"),
			Value: aws.String(outcome),
		},
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("EnrichmentJobs"),
				Dimensions: dims,
				Value:      aws.Float64(1),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(now),
			},
			{
				MetricName: aws.String("EnrichmentLatency"),
				Dimensions: dims,
				Value:      aws.Float64(float64(duration.Milliseconds())),
				Unit:       types.StandardUnitMilliseconds,
				Timestamp:  aws.Time(now),
			},
		},
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		// Metrics never fail the job.
		m.logger.Warn("Failed to send metrics", zap.Error(err))
	}
}
