package handlers

import (
	"context"
	"testing"

	"movieportal/application/ports"
	"movieportal/application/ports/mocks"
	"movieportal/application/queries"
	"movieportal/domain/core/entities"
	"movieportal/pkg/auth"
	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMovieQueryHandler_ListMovies_DefaultLimit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	movies := new(mocks.MockMovieRepository)
	movies.On("List", ctx, common.PageRequest{Limit: 50}).Return(&ports.MoviePage{}, nil)

	handler := NewMovieQueryHandler(movies, nil, zap.NewNop())

	// Act
	result, err := handler.ListMovies(ctx, queries.ListMoviesQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Movies)
	assert.Nil(t, result.NextToken)
	movies.AssertExpectations(t)
}

func TestMovieQueryHandler_ListMovies_ClampsLimit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	movies := new(mocks.MockMovieRepository)
	movies.On("List", ctx, common.PageRequest{Limit: 1000, NextToken: "tok"}).
		Return(&ports.MoviePage{Items: []*entities.Movie{{ID: "a"}}, NextToken: "next"}, nil)

	handler := NewMovieQueryHandler(movies, nil, zap.NewNop())

	// Act
	result, err := handler.ListMovies(ctx, queries.ListMoviesQuery{Page: common.PageRequest{Limit: 5000, NextToken: "tok"}})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	require.NotNil(t, result.NextToken)
	assert.Equal(t, "next", *result.NextToken)
}

func TestMovieQueryHandler_ListMovies_ByGenre(t *testing.T) {
	// Arrange
	ctx := context.Background()
	movies := new(mocks.MockMovieRepository)
	movies.On("ListByGenre", ctx, "Drama", common.PageRequest{Limit: 10}).Return(&ports.MoviePage{}, nil)

	handler := NewMovieQueryHandler(movies, nil, zap.NewNop())

	// Act
	_, err := handler.Handle(ctx, queries.ListMoviesQuery{Genre: "Drama", Page: common.PageRequest{Limit: 10}})

	// Assert
	require.NoError(t, err)
	movies.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	movies.AssertExpectations(t)
}

func TestMovieQueryHandler_ListUserMovies_Forbidden(t *testing.T) {
	// Arrange
	movies := new(mocks.MockMovieRepository)
	handler := NewMovieQueryHandler(movies, nil, zap.NewNop())

	// Act
	_, err := handler.ListUserMovies(context.Background(), queries.ListUserMoviesQuery{
		UserID:    "user-2",
		Principal: auth.NewPrincipal("user-1", "admin"),
	})

	// Assert
	assert.True(t, apperrors.IsForbidden(err))
}

func TestMovieQueryHandler_ListUserMovies_Admin(t *testing.T) {
	// Arrange
	ctx := context.Background()
	movies := new(mocks.MockMovieRepository)
	movies.On("ListByUser", ctx, "user-2", common.PageRequest{Limit: 50}).Return(&ports.MoviePage{}, nil)

	handler := NewMovieQueryHandler(movies, nil, zap.NewNop())

	// Act
	_, err := handler.ListUserMovies(ctx, queries.ListUserMoviesQuery{
		UserID:    "user-2",
		Principal: auth.NewPrincipal("admin", "admin"),
	})

	// Assert
	assert.NoError(t, err)
	movies.AssertExpectations(t)
}

func TestGetUserHandler_Handle_StripsCredentials(t *testing.T) {
	// Arrange
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	user := &entities.User{UserID: "user-1", Username: "ripley", PasswordHash: "hash"}
	users.On("GetByID", ctx, "user-1").Return(user, nil)

	handler := NewGetUserHandler(users)

	// Act
	result, err := handler.Handle(ctx, queries.GetUserQuery{UserID: "user-1", Principal: auth.NewPrincipal("user-1", "")})

	// Assert
	require.NoError(t, err)
	profile := result.(entities.UserProfile)
	assert.Equal(t, "ripley", profile.Username)
	assert.Equal(t, []string{}, profile.Watchlist)
}

func TestGetUserHandler_Handle_Forbidden(t *testing.T) {
	users := new(mocks.MockUserRepository)
	handler := NewGetUserHandler(users)

	_, err := handler.Handle(context.Background(), queries.GetUserQuery{UserID: "user-1", Principal: auth.NewPrincipal("", "")})

	assert.True(t, apperrors.IsForbidden(err))
}

func TestListReviewsHandler_Handle_UnknownMovie(t *testing.T) {
	// Arrange
	ctx := context.Background()
	movies := new(mocks.MockMovieRepository)
	reviews := new(mocks.MockReviewRepository)
	movies.On("GetByID", ctx, "missing").Return(nil, apperrors.NewNotFoundError("Movie"))

	handler := NewListReviewsHandler(movies, reviews, nil)

	// Act
	_, err := handler.Handle(ctx, queries.ListReviewsQuery{MovieID: "missing"})

	// Assert
	assert.True(t, apperrors.IsNotFound(err))
	reviews.AssertNotCalled(t, "ListByMovie", mock.Anything, mock.Anything, mock.Anything)
}

func TestListReviewsHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	movies := new(mocks.MockMovieRepository)
	reviews := new(mocks.MockReviewRepository)
	movies.On("GetByID", ctx, "movie-1").Return(&entities.Movie{ID: "movie-1"}, nil)
	reviews.On("ListByMovie", ctx, "movie-1", common.PageRequest{Limit: 50}).
		Return(&ports.ReviewPage{Items: []*entities.Review{{ID: "r1"}, {ID: "r2"}}}, nil)

	handler := NewListReviewsHandler(movies, reviews, nil)

	// Act
	result, err := handler.Handle(ctx, queries.ListReviewsQuery{MovieID: "movie-1"})

	// Assert
	require.NoError(t, err)
	list := result.(*queries.ReviewListResult)
	assert.Equal(t, 2, list.Count)
	assert.Nil(t, list.NextToken)
}
