// Package telemetry adapts OpenTelemetry tracing to ports.Tracer.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/pnprune/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// errStepFailed is reported for failed spans that carry no message.
var errStepFailed = errors.New("step failed")

// Bridge is a span processor turning closure and prune spans into Reporter
// steps. A span's ID is its step ID and its parent span is the parent step.
type Bridge struct {
	reporter ports.Reporter
}

// NewBridge returns a Bridge reporting to reporter. A nil reporter drops all spans.
func NewBridge(reporter ports.Reporter) *Bridge {
	return &Bridge{reporter: reporter}
}

// OnStart reports the start of a step.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	id, ok := stepID(s.SpanContext())
	if !ok || b.reporter == nil {
		return
	}
	parentID, _ := stepID(s.Parent())
	b.reporter.OnStepStart(id, parentID, s.Name(), s.StartTime())
}

// OnEnd reports the completion of a step and its failure, if any.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	id, ok := stepID(s.SpanContext())
	if !ok || b.reporter == nil {
		return
	}
	b.reporter.OnStepComplete(id, s.EndTime(), stepError(s))
}

// ForceFlush does nothing; steps are reported synchronously.
func (b *Bridge) ForceFlush(context.Context) error { return nil }

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error { return nil }

func stepID(sc trace.SpanContext) (string, bool) {
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

// stepError returns nil unless the span failed. The message of the last
// recorded exception wins over the status description.
func stepError(s sdktrace.ReadOnlySpan) error {
	if s.Status().Code != codes.Error {
		return nil
	}

	events := s.Events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Name != semconv.ExceptionEventName {
			continue
		}
		for _, attr := range events[i].Attributes {
			if attr.Key == semconv.ExceptionMessageKey && attr.Value.AsString() != "" {
				return errors.New(attr.Value.AsString())
			}
		}
	}

	if desc := s.Status().Description; desc != "" {
		return errors.New(desc)
	}
	return errStepFailed
}
