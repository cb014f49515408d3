package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingCommand struct{ invalid bool }

func (c pingCommand) Validate() error {
	if c.invalid {
		return errors.New("invalid ping")
	}
	return nil
}

type otherCommand struct{}

func (otherCommand) Validate() error { return nil }

type recorder struct {
	calls map[string]int
}

func (r *recorder) CommandExecuted(command, status string) {
	r.calls[command+":"+status]++
}

func TestCommandBus_Send(t *testing.T) {
	rec := &recorder{calls: map[string]int{}}
	b := NewCommandBus(LoggingMiddleware(zap.NewNop()), MetricsMiddleware(rec))

	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return "pong", nil
	})))

	result, err := b.Send(context.Background(), pingCommand{})

	require.NoError(t, err)
	assert.Equal(t, "pong", result)
	assert.Equal(t, 1, rec.calls["pingCommand:success"])
}

func TestCommandBus_Send_ValidationRunsFirst(t *testing.T) {
	called := false
	b := NewCommandBus()
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		called = true
		return nil, nil
	})))

	_, err := b.Send(context.Background(), pingCommand{invalid: true})

	assert.EqualError(t, err, "invalid ping")
	assert.False(t, called)
}

func TestCommandBus_RegisterTwice(t *testing.T) {
	b := NewCommandBus()
	h := CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) { return nil, nil })

	require.NoError(t, b.Register(pingCommand{}, h))
	assert.Error(t, b.Register(pingCommand{}, h))
}

func TestCommandBus_Send_UnknownCommand(t *testing.T) {
	_, err := NewCommandBus().Send(context.Background(), otherCommand{})

	assert.Error(t, err)
}
