package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/infrastructure/config"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func TestStartServiceSpan_NamesAndAttributes(t *testing.T) {
	recorder := setupTestTracer(t)

	ctx, span := StartServiceSpan(context.Background(), "enrollment", "enroll",
		WithAttribute(SpanAttrCourseID, "c-1"))
	SetAttributes(span, SpanAttrStudentID, "s-1")
	span.End()

	assert.NotEmpty(t, GetTraceID(ctx))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "enrollment.enroll", spans[0].Name())

	attrs := spans[0].Attributes()
	keys := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		keys[string(attr.Key)] = attr.Value.AsString()
	}
	assert.Equal(t, "c-1", keys[SpanAttrCourseID])
	assert.Equal(t, "s-1", keys[SpanAttrStudentID])
}

func TestRecordError_SetsErrorStatus(t *testing.T) {
	recorder := setupTestTracer(t)

	_, span := StartSpan(context.Background(), "course.publish")
	RecordError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.Len(t, spans[0].Events(), 1)
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))
}
