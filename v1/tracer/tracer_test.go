package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newRecordingTracer() (*Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewWithProvider(tp), recorder
}

func TestNewClient_WithoutExport(t *testing.T) {
	tr, err := NewClient(Config{ServiceName: "svc", AppEnv: "test"})
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestStartSpan_RecordsErrorAndAttributes(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "consume")
	tr.SetAttributes(span, map[string]interface{}{
		"queue":       "jobs",
		"attempt":     2,
		"redelivered": true,
		"tag":         uint64(7),
		"other":       []string{"a"},
	})
	tr.RecordErrorOnSpan(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "consume", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "jobs", attrs["queue"].AsString())
	assert.Equal(t, int64(2), attrs["attempt"].AsInt64())
	assert.True(t, attrs["redelivered"].AsBool())
	assert.Equal(t, int64(7), attrs["tag"].AsInt64())
	assert.Equal(t, "[a]", attrs["other"].AsString())
}

func TestSetAttributes_EmptyIsNoop(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "noop")
	tr.SetAttributes(span, nil)
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Empty(t, recorder.Ended()[0].Attributes())
}

func TestCarrierRoundTrip_ContinuesTrace(t *testing.T) {
	tr, recorder := newRecordingTracer()

	ctx, parent := tr.StartSpan(context.Background(), "publish")
	carrier := tr.GetCarrier(ctx)
	parent.End()
	require.Contains(t, carrier, "traceparent")

	remote := tr.SetCarrierOnContext(context.Background(), carrier)
	assert.Equal(t, parent.SpanContext().TraceID(), trace.SpanContextFromContext(remote).TraceID())

	_, child := tr.StartSpan(remote, "consume")
	child.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, parent.SpanContext().TraceID(), ended[1].SpanContext().TraceID())
	assert.Equal(t, parent.SpanContext().SpanID(), ended[1].Parent().SpanID())
}

func TestShutdown_NilTracer(t *testing.T) {
	var tr *Tracer
	assert.NoError(t, tr.Shutdown(context.Background()))
}
