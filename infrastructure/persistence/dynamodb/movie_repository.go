package dynamodb

import (
	"context"
	"fmt"
	"time"

	"movieportal/application/ports"
	"movieportal/domain/core/entities"
	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// MovieTableConfig names the movie table and its indexes
type MovieTableConfig struct {
	TableName  string
	GenreIndex string // partition key genre, sort key rating
	UserIndex  string // partition key userId, sort key createdAt
}

// MovieRepository implements ports.MovieRepository on DynamoDB
type MovieRepository struct {
	client API
	cfg    MovieTableConfig
	logger *zap.Logger
}

// NewMovieRepository creates a new MovieRepository
func NewMovieRepository(client API, cfg MovieTableConfig, logger *zap.Logger) *MovieRepository {
	if cfg.GenreIndex == "" {
		cfg.GenreIndex = "GenreIndex"
	}
	if cfg.UserIndex == "" {
		cfg.UserIndex = "UserIndex"
	}
	return &MovieRepository{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

var _ ports.MovieRepository = (*MovieRepository)(nil)

func movieKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// Create stores a new movie. Identifiers are never overwritten.
func (r *MovieRepository) Create(ctx context.Context, movie *entities.Movie) error {
	av, err := attributevalue.MarshalMap(movie)
	if err != nil {
		return fmt.Errorf("failed to marshal movie: %w", err)
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.Name("id").AttributeNotExists()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build expression: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.cfg.TableName),
		Item:                     av,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		if isConditionFailed(err) {
			return apperrors.NewConflictError(fmt.Sprintf("movie %s already exists", movie.ID))
		}
		r.logger.Error("Failed to save movie", zap.String("movieId", movie.ID), zap.Error(err))
		return storeError("create movie", err)
	}
	return nil
}

// GetByID loads one movie
func (r *MovieRepository) GetByID(ctx context.Context, id string) (*entities.Movie, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.cfg.TableName),
		Key:       movieKey(id),
	})
	if err != nil {
		return nil, storeError("get movie", err)
	}
	if len(result.Item) == 0 {
		return nil, apperrors.NewNotFoundError("Movie")
	}

	var movie entities.Movie
	if err := attributevalue.UnmarshalMap(result.Item, &movie); err != nil {
		return nil, fmt.Errorf("failed to unmarshal movie: %w", err)
	}
	return movie.Normalize(), nil
}

// Update sets the present fields and updatedAt in one conditional write and
// returns the stored record.
func (r *MovieRepository) Update(ctx context.Context, id string, changes entities.MovieChanges, now time.Time) (*entities.Movie, error) {
	update := expression.Set(expression.Name("updatedAt"), expression.Value(now))
	set := func(name string, value interface{}) {
		update = update.Set(expression.Name(name), expression.Value(value))
	}
	if changes.Title != nil {
		set("title", *changes.Title)
	}
	if changes.Year != nil {
		set("year", *changes.Year)
	}
	if changes.Genre != nil {
		set("genre", *changes.Genre)
	}
	if changes.Director != nil {
		set("director", *changes.Director)
	}
	if changes.Synopsis != nil {
		set("synopsis", *changes.Synopsis)
	}
	if changes.Rating != nil {
		set("rating", *changes.Rating)
	}
	if changes.WatchedDate != nil {
		set("watchedDate", changes.WatchedDate.UTC())
	}
	if changes.ImageURL != nil {
		set("imageUrl", *changes.ImageURL)
	}
	if changes.Actors != nil {
		set("actors", append([]string{}, (*changes.Actors)...))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.Name("id").AttributeExists()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.cfg.TableName),
		Key:                       movieKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return nil, apperrors.NewNotFoundError("Movie")
		}
		return nil, storeError("update movie", err)
	}

	var movie entities.Movie
	if err := attributevalue.UnmarshalMap(result.Attributes, &movie); err != nil {
		return nil, fmt.Errorf("failed to unmarshal movie: %w", err)
	}
	return movie.Normalize(), nil
}

// Delete removes a movie. Deleting a missing id is not an error here; the
// caller has already loaded the record.
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.cfg.TableName),
		Key:       movieKey(id),
	})
	if err != nil {
		return storeError("delete movie", err)
	}
	return nil
}

// List scans the whole table
func (r *MovieRepository) List(ctx context.Context, page common.PageRequest) (*ports.MoviePage, error) {
	start, err := startKey(page, common.KindScan, []string{"id"}, nil)
	if err != nil {
		return nil, err
	}

	result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:         aws.String(r.cfg.TableName),
		Limit:             aws.Int32(int32(page.Limit)),
		ExclusiveStartKey: start,
	})
	if err != nil {
		return nil, storeError("scan movies", err)
	}
	return r.toPage(common.KindScan, result.Items, result.LastEvaluatedKey)
}

// ListByGenre queries the genre index in ascending rating order. Movies
// without a rating are not in the index.
func (r *MovieRepository) ListByGenre(ctx context.Context, genre string, page common.PageRequest) (*ports.MoviePage, error) {
	kind := common.GenreKind(genre)
	return r.queryIndex(ctx, r.cfg.GenreIndex, "genre", genre, kind, []string{"id", "genre", "rating"}, page)
}

// ListByUser queries the owner index in creation order
func (r *MovieRepository) ListByUser(ctx context.Context, userID string, page common.PageRequest) (*ports.MoviePage, error) {
	kind := common.UserKind(userID)
	return r.queryIndex(ctx, r.cfg.UserIndex, "userId", userID, kind, []string{"id", "userId", "createdAt"}, page)
}

func (r *MovieRepository) queryIndex(ctx context.Context, index, attr, value, kind string, allowed []string, page common.PageRequest) (*ports.MoviePage, error) {
	start, err := startKey(page, kind, allowed, map[string]string{attr: value})
	if err != nil {
		return nil, err
	}

	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(attr).Equal(expression.Value(value))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.cfg.TableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(true),
		Limit:                     aws.Int32(int32(page.Limit)),
		ExclusiveStartKey:         start,
	})
	if err != nil {
		r.logger.Error("Failed to query index", zap.String("index", index), zap.Error(err))
		return nil, storeError("query "+index, err)
	}
	return r.toPage(kind, result.Items, result.LastEvaluatedKey)
}

func (r *MovieRepository) toPage(kind string, items []map[string]types.AttributeValue, lastKey map[string]types.AttributeValue) (*ports.MoviePage, error) {
	movies := make([]*entities.Movie, 0, len(items))
	for _, item := range items {
		var m entities.Movie
		if err := attributevalue.UnmarshalMap(item, &m); err != nil {
			r.logger.Warn("Skipping unreadable movie item", zap.Error(err))
			continue
		}
		movies = append(movies, m.Normalize())
	}

	token, err := nextToken(kind, lastKey)
	if err != nil {
		return nil, err
	}
	return &ports.MoviePage{Items: movies, NextToken: token}, nil
}
