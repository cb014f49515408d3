package dynamodb

import (
	"context"
	"fmt"
	"time"

	"movieportal/application/ports"
	"movieportal/domain/core/entities"
	apperrors "movieportal/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository implements ports.UserRepository on DynamoDB. The table is
// keyed by userId.
type UserRepository struct {
	client    API
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client API, tableName string, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func userKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}

// GetByID loads one profile
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       userKey(userID),
	})
	if err != nil {
		return nil, storeError("get user", err)
	}
	if len(result.Item) == 0 {
		return nil, apperrors.NewNotFoundError("User")
	}
	return unmarshalUser(result.Item)
}

// Save writes the whole profile
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	av, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save user", zap.String("userId", user.UserID), zap.Error(err))
		return storeError("save user", err)
	}
	return nil
}

// Update writes the present fields, creating the profile if it does not
// exist yet.
func (r *UserRepository) Update(ctx context.Context, userID string, changes entities.UserChanges, now time.Time) (*entities.User, error) {
	update := expression.Set(expression.Name("updatedAt"), expression.Value(now)).
		Set(expression.Name("createdAt"), expression.IfNotExists(expression.Name("createdAt"), expression.Value(now)))

	if changes.Username != nil {
		update = update.Set(expression.Name("username"), expression.Value(*changes.Username))
	} else {
		update = update.Set(expression.Name("username"), expression.IfNotExists(expression.Name("username"), expression.Value(userID)))
	}
	if changes.Email != nil {
		update = update.Set(expression.Name("email"), expression.Value(*changes.Email))
	}
	if changes.FavoriteGenres != nil {
		update = update.Set(expression.Name("favoriteGenres"), expression.Value(append([]string{}, (*changes.FavoriteGenres)...)))
	} else {
		update = update.Set(expression.Name("favoriteGenres"), expression.IfNotExists(expression.Name("favoriteGenres"), expression.Value([]string{})))
	}
	update = update.Set(expression.Name("watchlist"), expression.IfNotExists(expression.Name("watchlist"), expression.Value([]string{})))

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       userKey(userID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, storeError("update user", err)
	}
	return unmarshalUser(result.Attributes)
}

func unmarshalUser(item map[string]types.AttributeValue) (*entities.User, error) {
	var user entities.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	if user.FavoriteGenres == nil {
		user.FavoriteGenres = []string{}
	}
	if user.Watchlist == nil {
		user.Watchlist = []string{}
	}
	return &user, nil
}
