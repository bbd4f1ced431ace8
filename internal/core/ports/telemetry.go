package ports

import (
	"context"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan signals which workspaces a prune will retain.
	EmitPlan(ctx context.Context, workspaces []string)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	Attributes map[string]any
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithAttribute sets an attribute on the span when it starts.
func WithAttribute(key string, value any) SpanOption {
	return func(c *SpanConfig) {
		if c.Attributes == nil {
			c.Attributes = make(map[string]any)
		}
		c.Attributes[key] = value
	}
}

// Reporter is the abstraction for progress output.
// It decouples span collection from presentation.
type Reporter interface {
	// OnPlan is called once the set of retained workspaces is known.
	OnPlan(workspaces []string)

	// OnStepStart is called when a span starts.
	OnStepStart(id, parentID, name string, start time.Time)

	// OnStepComplete is called when a span ends. err is nil on success.
	OnStepComplete(id string, end time.Time, err error)
}
