package dynamodb

import (
	"context"
	"fmt"

	"movieportal/application/ports"
	"movieportal/domain/core/entities"
	"movieportal/pkg/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ReviewRepository implements ports.ReviewRepository. Items are keyed by
// movieId (partition) and id (sort).
type ReviewRepository struct {
	client    API
	tableName string
	logger    *zap.Logger
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(client API, tableName string, logger *zap.Logger) *ReviewRepository {
	return &ReviewRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

// Create stores a review
func (r *ReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	av, err := attributevalue.MarshalMap(review)
	if err != nil {
		return fmt.Errorf("failed to marshal review: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		return storeError("create review", err)
	}
	return nil
}

// ListByMovie pages through one movie's reviews
func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID string, page common.PageRequest) (*ports.ReviewPage, error) {
	kind := common.ReviewsKind(movieID)
	start, err := startKey(page, kind, []string{"movieId", "id"}, map[string]string{"movieId": movieID})
	if err != nil {
		return nil, err
	}

	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("movieId").Equal(expression.Value(movieID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(int32(page.Limit)),
		ExclusiveStartKey:         start,
	})
	if err != nil {
		return nil, storeError("query reviews", err)
	}

	reviews := make([]*entities.Review, 0, len(result.Items))
	for _, item := range result.Items {
		var rv entities.Review
		if err := attributevalue.UnmarshalMap(item, &rv); err != nil {
			r.logger.Warn("Skipping unreadable review item", zap.Error(err))
			continue
		}
		reviews = append(reviews, &rv)
	}

	token, err := nextToken(kind, result.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}
	return &ports.ReviewPage{Items: reviews, NextToken: token}, nil
}
