package services

import (
	"context"
	"errors"
	"testing"

	apperrors "movieportal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingRecorder struct {
	failures map[string]int
}

func (r *countingRecorder) SideEffectFailed(effect string) {
	if r.failures == nil {
		r.failures = make(map[string]int)
	}
	r.failures[effect]++
}

func TestSideEffects_Run_FatalFailureIsSurfaced(t *testing.T) {
	recorder := &countingRecorder{}
	effects := NewSideEffects(nil, recorder, zap.NewNop())

	err := effects.Run(context.Background(), EffectEnqueueEnrichment, nil, func(context.Context) error {
		return errors.New("queue unavailable")
	})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	assert.Empty(t, recorder.failures)
}

func TestSideEffects_Run_BestEffortFailureIsLoggedAndCounted(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	recorder := &countingRecorder{}
	effects := NewSideEffects(nil, recorder, zap.New(core))

	err := effects.Run(context.Background(), EffectDeleteAsset, []zap.Field{zap.String("key", "uploads/a.jpg")}, func(context.Context) error {
		return errors.New("access denied")
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, recorder.failures[string(EffectDeleteAsset)])
	entries := logs.FilterMessage("Side effect failed, continuing").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "best_effort", entries[0].ContextMap()["policy"])
		assert.Equal(t, "uploads/a.jpg", entries[0].ContextMap()["key"])
	}
}

func TestSideEffects_Run_Success(t *testing.T) {
	effects := NewSideEffects(nil, nil, zap.NewNop())
	called := false

	err := effects.Run(context.Background(), EffectPublishNotification, nil, func(context.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestSideEffects_PolicyFor(t *testing.T) {
	effects := NewSideEffects(nil, nil, zap.NewNop())

	assert.Equal(t, Fatal, effects.PolicyFor(EffectEnqueueEnrichment))
	assert.Equal(t, Fatal, effects.PolicyFor(EffectPublishNotification))
	assert.Equal(t, BestEffort, effects.PolicyFor(EffectDeleteAsset))
	assert.Equal(t, BestEffort, effects.PolicyFor(EffectPublishChangeEvent))
	assert.Equal(t, Fatal, effects.PolicyFor(Effect("unknown")))

	effects.WithPolicies(map[Effect]FailurePolicy{EffectEnqueueEnrichment: BestEffort})
	assert.Equal(t, BestEffort, effects.PolicyFor(EffectEnqueueEnrichment))
}
