package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoQuery struct{ value string }

func (q echoQuery) Validate() error {
	if q.value == "" {
		return errors.New("value is required")
	}
	return nil
}

type queryRecorder struct {
	calls map[string]int
}

func (r *queryRecorder) QueryExecuted(query, status string) {
	r.calls[query+":"+status]++
}

func TestQueryBus_Ask(t *testing.T) {
	rec := &queryRecorder{calls: map[string]int{}}
	b := NewQueryBus().WithMetrics(rec)

	require.NoError(t, b.Register(echoQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		if q.(echoQuery).value == "fail" {
			return nil, errors.New("boom")
		}
		return q.(echoQuery).value, nil
	})))

	result, err := b.Ask(context.Background(), echoQuery{value: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", result)

	_, err = b.Ask(context.Background(), echoQuery{value: "fail"})
	assert.Error(t, err)

	assert.Equal(t, 1, rec.calls["echoQuery:success"])
	assert.Equal(t, 1, rec.calls["echoQuery:failure"])
}

func TestQueryBus_Ask_InvalidQuery(t *testing.T) {
	b := NewQueryBus()

	_, err := b.Ask(context.Background(), echoQuery{})

	assert.EqualError(t, err, "value is required")
}
