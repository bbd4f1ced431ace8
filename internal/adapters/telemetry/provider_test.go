package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.trai.ch/pnprune/internal/adapters/telemetry"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/pnprune/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_ReportsSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)

	var parentID, childParentID string
	gomock.InOrder(
		reporter.EXPECT().OnStepStart(gomock.Any(), "", "prune", gomock.Any()).
			Do(func(id, _, _ string, _ time.Time) { parentID = id }),
		reporter.EXPECT().OnStepStart(gomock.Any(), gomock.Any(), "apps/web", gomock.Any()).
			Do(func(_, parent, _ string, _ time.Time) { childParentID = parent }),
		reporter.EXPECT().OnStepComplete(gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())),
		reporter.EXPECT().OnStepComplete(gomock.Any(), gomock.Any(), nil),
	)

	tracer := telemetry.NewOTelTracer("test", reporter)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	ctx, root := tracer.Start(context.Background(), "prune", ports.WithAttribute("pnprune.docker", true))
	_, child := tracer.Start(ctx, "apps/web")
	child.SetAttribute("pnprune.packages", 3)
	child.RecordError(errors.New("package not found in lockfile"))
	child.End()
	root.End()

	require.NotEmpty(t, parentID)
	assert.Equal(t, parentID, childParentID)
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().OnStepStart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	reporter.EXPECT().OnStepComplete(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	reporter.EXPECT().OnPlan([]string{".", "apps/web"}).Times(1)

	tracer := telemetry.NewOTelTracer("test", reporter)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	ctx, span := tracer.Start(context.Background(), "prune")
	tracer.EmitPlan(ctx, []string{".", "apps/web"})
	span.End()
}

func TestOTelTracer_NilReporter(t *testing.T) {
	tracer := telemetry.NewOTelTracer("test", nil)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	require.NotPanics(t, func() {
		ctx, span := tracer.Start(context.Background(), "prune")
		tracer.EmitPlan(ctx, []string{"apps/web"})
		span.End()
	})
}

func TestToAttribute(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  attribute.KeyValue
	}{
		{"string", "apps/web", attribute.String("k", "apps/web")},
		{"int", 3, attribute.Int("k", 3)},
		{"int64", int64(4), attribute.Int64("k", 4)},
		{"float", 1.5, attribute.Float64("k", 1.5)},
		{"bool", true, attribute.Bool("k", true)},
		{"slice", []string{"a", "b"}, attribute.StringSlice("k", []string{"a", "b"})},
		{"fallback", struct{ N int }{N: 1}, attribute.String("k", "{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, telemetry.ToAttribute("k", tt.value))
		})
	}
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "prune", ports.WithAttribute("k", "v"))
	assert.Equal(t, ctx, got)

	require.NotPanics(t, func() {
		span.SetAttribute("k", 1)
		span.RecordError(errors.New("boom"))
		span.End()
		tracer.EmitPlan(ctx, []string{"apps/web"})
	})
}
