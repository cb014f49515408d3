package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"movieportal/application/commands"
	"movieportal/domain/core/entities"
	"movieportal/pkg/auth"
	apperrors "movieportal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()

	cmd := commands.UpdateUserCommand{UserID: "user-1", Principal: owner(), Username: strPtr("ripley")}
	stored := entities.NewUser("user-1", testNow)
	stored.Username = "ripley"
	stored.PasswordHash = "secret"

	td.users.On("Update", ctx, "user-1", cmd.Changes(), testNow).Return(stored, nil)

	handler := NewUpdateUserHandler(deps)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	profile, ok := result.(entities.UserProfile)
	require.True(t, ok)
	assert.Equal(t, "ripley", profile.Username)
	td.users.AssertExpectations(t)
}

func TestUpdateUserHandler_Handle_OtherUserForbidden(t *testing.T) {
	// Arrange
	td, deps := newTestDeps()
	handler := NewUpdateUserHandler(deps)

	// Act
	_, err := handler.Handle(context.Background(), commands.UpdateUserCommand{
		UserID:    "user-2",
		Principal: owner(),
		Username:  strPtr("x"),
	})

	// Assert
	assert.True(t, apperrors.IsForbidden(err))
	td.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddToWatchlistHandler_Handle_CreatesProfile(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()

	td.movies.On("GetByID", ctx, "movie-1").Return(storedMovie(), nil)
	td.users.On("GetByID", ctx, "user-1").Return(nil, apperrors.NewNotFoundError("User"))
	td.users.On("Save", ctx, mock.MatchedBy(func(u *entities.User) bool {
		return u.UserID == "user-1" && len(u.Watchlist) == 1 && u.Watchlist[0] == "movie-1"
	})).Return(nil)

	handler := NewAddToWatchlistHandler(deps)

	// Act
	result, err := handler.Handle(ctx, commands.AddToWatchlistCommand{UserID: "user-1", Principal: owner(), MovieID: "movie-1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"movie-1"}, result.(entities.UserProfile).Watchlist)
	td.users.AssertExpectations(t)
}

func TestAddToWatchlistHandler_Handle_IsIdempotent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()

	user := entities.NewUser("user-1", testNow.Add(-time.Hour))
	user.Watchlist = []string{"movie-1"}

	td.movies.On("GetByID", ctx, "movie-1").Return(storedMovie(), nil)
	td.users.On("GetByID", ctx, "user-1").Return(user, nil)

	handler := NewAddToWatchlistHandler(deps)

	// Act
	result, err := handler.Handle(ctx, commands.AddToWatchlistCommand{UserID: "user-1", Principal: owner(), MovieID: "movie-1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"movie-1"}, result.(entities.UserProfile).Watchlist)
	td.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddToWatchlistHandler_Handle_UnknownMovie(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()

	td.movies.On("GetByID", ctx, "missing").Return(nil, apperrors.NewNotFoundError("Movie"))

	handler := NewAddToWatchlistHandler(deps)

	// Act
	_, err := handler.Handle(ctx, commands.AddToWatchlistCommand{UserID: "user-1", Principal: owner(), MovieID: "missing"})

	// Assert
	assert.True(t, apperrors.IsNotFound(err))
	td.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAddToWatchlistHandler_Handle_StoreFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()

	td.movies.On("GetByID", ctx, "movie-1").Return(storedMovie(), nil)
	td.users.On("GetByID", ctx, "user-1").Return(nil, apperrors.NewDatabaseError("get user", errors.New("throttled")))

	handler := NewAddToWatchlistHandler(deps)

	// Act
	_, err := handler.Handle(ctx, commands.AddToWatchlistCommand{UserID: "user-1", Principal: owner(), MovieID: "movie-1"})

	// Assert
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDatabase))
}

func TestRemoveFromWatchlistHandler_Handle_KeepsOrder(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()

	user := entities.NewUser("user-1", testNow.Add(-time.Hour))
	user.Watchlist = []string{"a", "b", "c"}

	td.users.On("GetByID", ctx, "user-1").Return(user, nil)
	td.users.On("Save", ctx, mock.AnythingOfType("*entities.User")).Return(nil)

	handler := NewRemoveFromWatchlistHandler(deps)

	// Act
	result, err := handler.Handle(ctx, commands.RemoveFromWatchlistCommand{UserID: "user-1", Principal: owner(), MovieID: "b"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, result.(entities.UserProfile).Watchlist)
	td.users.AssertExpectations(t)
}

func TestRemoveFromWatchlistHandler_Handle_AbsentMovieIsNoop(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()

	user := entities.NewUser("user-1", testNow)
	user.Watchlist = []string{"a"}

	td.users.On("GetByID", ctx, "user-1").Return(user, nil)

	handler := NewRemoveFromWatchlistHandler(deps)

	// Act
	_, err := handler.Handle(ctx, commands.RemoveFromWatchlistCommand{UserID: "user-1", Principal: owner(), MovieID: "zzz"})

	// Assert
	require.NoError(t, err)
	td.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddReviewHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()
	deps.NewID = func() string { return "review-1" }

	td.movies.On("GetByID", ctx, "movie-1").Return(storedMovie(), nil)
	td.reviews.On("Create", ctx, mock.AnythingOfType("*entities.Review")).Return(nil)
	td.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	handler := NewAddReviewHandler(deps)

	// Act
	result, err := handler.Handle(ctx, commands.AddReviewCommand{
		MovieID:   "movie-1",
		Principal: auth.NewPrincipal("critic", "admin"),
		Rating:    floatPtr(7),
		Comment:   "Tense",
	})

	// Assert
	require.NoError(t, err)
	review := result.(*entities.Review)
	assert.Equal(t, "review-1", review.ID)
	assert.Equal(t, "critic", review.UserID)
	assert.Equal(t, 7.0, review.Rating)
	assert.Equal(t, testNow, review.CreatedAt)
	td.reviews.AssertExpectations(t)
}

func TestAddReviewHandler_Handle_UnknownMovie(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()

	td.movies.On("GetByID", ctx, "missing").Return(nil, apperrors.NewNotFoundError("Movie"))

	handler := NewAddReviewHandler(deps)

	// Act
	_, err := handler.Handle(ctx, commands.AddReviewCommand{MovieID: "missing", Principal: owner(), Rating: floatPtr(5)})

	// Assert
	assert.True(t, apperrors.IsNotFound(err))
	td.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIssueUploadURLHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()

	td.assets.On("PresignUpload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "uploads/user-1/") && strings.HasSuffix(key, "-poster.png")
	}), "image/jpeg", 5*time.Minute).Return("https://signed.example.com/put", nil)

	handler := NewIssueUploadURLHandler(deps)

	// Act
	result, err := handler.Handle(ctx, commands.IssueUploadURLCommand{Principal: owner(), Filename: "../../poster.png"})

	// Assert
	require.NoError(t, err)
	upload := result.(*commands.UploadURLResult)
	assert.Equal(t, "https://signed.example.com/put", upload.UploadURL)
	assert.Equal(t, 300, upload.ExpiresIn)
	assert.NotContains(t, upload.Key, "..")
	td.assets.AssertExpectations(t)
}

func TestIssueUploadURLHandler_Handle_PresignFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	td, deps := newTestDeps()

	td.assets.On("PresignUpload", ctx, mock.Anything, "image/png", mock.Anything).Return("", errors.New("no credentials"))

	handler := NewIssueUploadURLHandler(deps)

	// Act
	_, err := handler.Handle(ctx, commands.IssueUploadURLCommand{Principal: owner(), Filename: "a.png", ContentType: "image/png"})

	// Assert
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}
