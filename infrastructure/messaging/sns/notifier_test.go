package sns

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"movieportal/domain/core/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sns.PublishOutput), args.Error(1)
}

func TestSubject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "New Movie Added: Heat", max: 100, want: "New Movie Added: Heat"},
		{name: "line breaks", in: "a\r\nb\nc\rd", max: 100, want: "a b c d"},
		{name: "truncated", in: "abcdef", max: 3, want: "abc"},
		{name: "multibyte", in: "Amélie", max: 3, want: "Amé"},
		{name: "no limit", in: "abcdef", max: 0, want: "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subject(tt.in, tt.max))
		})
	}
}

func TestNotifier_PublishNewMovie(t *testing.T) {
	ctx := context.Background()
	api := new(mockAPI)
	movie := entities.NewMovie("m1", "u1", strings.Repeat("x", 200), time.Now())

	var sent *sns.PublishInput
	api.On("Publish", ctx, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*sns.PublishInput) }).
		Return(&sns.PublishOutput{MessageId: aws.String("id")}, nil)

	n := NewNotifier(api, "arn:aws:sns:us-east-1:123:movies", nil, zap.NewNop())
	require.NoError(t, n.PublishNewMovie(ctx, movie))

	require.NotNil(t, sent)
	assert.Equal(t, "arn:aws:sns:us-east-1:123:movies", aws.ToString(sent.TopicArn))
	assert.Len(t, aws.ToString(sent.Subject), 100)
	assert.True(t, strings.HasPrefix(aws.ToString(sent.Subject), "New Movie Added: "))

	var body Message
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(sent.Message)), &body))
	assert.Equal(t, "NEW_MOVIE_ADDED", body.Type)
	assert.Equal(t, "m1", body.Movie.ID)
}

func TestNotifier_PublishFailure(t *testing.T) {
	ctx := context.Background()
	api := new(mockAPI)
	api.On("Publish", ctx, mock.Anything).Return(nil, errors.New("denied"))

	n := NewNotifier(api, "arn", nil, zap.NewNop())
	err := n.PublishNewMovie(ctx, entities.NewMovie("m1", "u1", "Heat", time.Now()))

	assert.ErrorContains(t, err, "denied")
}
