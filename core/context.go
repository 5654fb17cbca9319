package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/qixiboss/gaitscore/schema"
)

// ErrEmptyStore is returned when an analysis is requested on a store without frames.
var ErrEmptyStore = errors.New("joint frame store is empty")

// AnalysisContext is the immutable input of one analysis run.
type AnalysisContext struct {
	store    *schema.FrameStore
	params   schema.AnalysisParams
	policies schema.PolicySet
	source   string
}

// NewAnalysisContext validates the inputs and builds an AnalysisContext.
// A nil policy set selects the defaults.
func NewAnalysisContext(store *schema.FrameStore, params schema.AnalysisParams, policies schema.PolicySet, source string) (*AnalysisContext, error) {
	if store.Len() == 0 {
		return nil, ErrEmptyStore
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if policies == nil {
		policies = schema.DefaultPolicies()
	}
	for key, p := range policies {
		if !key.IsScored() {
			return nil, fmt.Errorf("%w: no metric named %q", schema.ErrInvalidParams, key)
		}
		if p.Weight < 0 {
			return nil, fmt.Errorf("%w: weight for %s must be non-negative, got %v", schema.ErrInvalidParams, key, p.Weight)
		}
	}
	return &AnalysisContext{
		store:    store,
		params:   params,
		policies: policies.Clone(),
		source:   source,
	}, nil
}

// Store returns the frame store.
func (a *AnalysisContext) Store() *schema.FrameStore { return a.store }

// Params returns the analysis parameters.
func (a *AnalysisContext) Params() schema.AnalysisParams { return a.params }

// Policies returns a copy of the scoring policies.
func (a *AnalysisContext) Policies() schema.PolicySet { return a.policies.Clone() }

// Source returns the name of the input the store was loaded from.
func (a *AnalysisContext) Source() string { return a.source }

// Context keys for orchestration options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	sessionUUIDKey    contextKey = "sessionUUID"
)

// WithSuppressHeader marks the context so orchestration skips its progress logging.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	suppress, ok := ctx.Value(suppressHeaderKey).(bool)
	return ok && suppress
}

// withSessionUUID fixes the session id that Analyze stamps on its result
func withSessionUUID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionUUIDKey, id)
}

// sessionUUIDFromContext returns the fixed session id, or a fresh one
func sessionUUIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionUUIDKey).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
