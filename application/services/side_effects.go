package services

import (
	"context"

	apperrors "movieportal/pkg/errors"
	"movieportal/pkg/observability"

	"go.uber.org/zap"
)

// Effect names a side effect triggered after a record write
type Effect string

const (
	EffectEnqueueEnrichment   Effect = "enqueue_enrichment"
	EffectPublishNotification Effect = "publish_notification"
	EffectDeleteAsset         Effect = "delete_asset"
	EffectPublishChangeEvent  Effect = "publish_change_event"
)

// FailurePolicy decides what a side-effect failure does to the request
type FailurePolicy int

const (
	// Fatal failures fail the request. The record write that preceded the
	// side effect is not rolled back.
	Fatal FailurePolicy = iota
	// BestEffort failures are logged and counted, never surfaced.
	BestEffort
)

func (p FailurePolicy) String() string {
	if p == BestEffort {
		return "best_effort"
	}
	return "fatal"
}

// DefaultPolicies is the failure policy of every side effect
var DefaultPolicies = map[Effect]FailurePolicy{
	EffectEnqueueEnrichment:   Fatal,
	EffectPublishNotification: Fatal,
	EffectDeleteAsset:         BestEffort,
	EffectPublishChangeEvent:  BestEffort,
}

// FailureRecorder counts swallowed failures
type FailureRecorder interface {
	SideEffectFailed(effect string)
}

// SideEffects runs side effects under their failure policy
type SideEffects struct {
	policies map[Effect]FailurePolicy
	tracer   *observability.Tracer
	recorder FailureRecorder
	logger   *zap.Logger
}

// NewSideEffects creates a runner using DefaultPolicies
func NewSideEffects(tracer *observability.Tracer, recorder FailureRecorder, logger *zap.Logger) *SideEffects {
	return &SideEffects{
		policies: DefaultPolicies,
		tracer:   tracer,
		recorder: recorder,
		logger:   logger,
	}
}

// WithPolicies replaces the policy table
func (s *SideEffects) WithPolicies(policies map[Effect]FailurePolicy) *SideEffects {
	s.policies = policies
	return s
}

// PolicyFor returns the policy of effect. Unlisted effects are fatal.
func (s *SideEffects) PolicyFor(effect Effect) FailurePolicy {
	if p, ok := s.policies[effect]; ok {
		return p
	}
	return Fatal
}

// Run executes fn and applies the effect's failure policy to its error
func (s *SideEffects) Run(ctx context.Context, effect Effect, fields []zap.Field, fn func(context.Context) error) error {
	err := s.tracer.TraceFunction(ctx, string(effect), fn)
	if err == nil {
		return nil
	}

	policy := s.PolicyFor(effect)
	s.tracer.AddAnnotation(ctx, "failed_effect", string(effect))
	logFields := append([]zap.Field{
		zap.String("effect", string(effect)),
		zap.String("policy", policy.String()),
		zap.Error(err),
	}, fields...)

	if policy == BestEffort {
		s.logger.Warn("Side effect failed, continuing", logFields...)
		if s.recorder != nil {
			s.recorder.SideEffectFailed(string(effect))
		}
		return nil
	}

	s.logger.Error("Side effect failed", logFields...)
	return apperrors.NewExternalError(string(effect), err)
}
