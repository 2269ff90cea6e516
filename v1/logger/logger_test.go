package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(tracing bool) (*LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &LoggerClient{Zap: zap.New(core), tracingEnabled: tracing}, logs
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel(Debug))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(Info))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(Warning))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(Error))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestLoggerWritesErrorAndFields(t *testing.T) {
	log, logs := newObservedLogger(false)

	log.Error("bind failed", errors.New("boom"), map[string]interface{}{
		"queue": "ingest",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "bind failed", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, "ingest", fields["queue"])
}

func TestLoggerLaterFieldMapsWin(t *testing.T) {
	log, logs := newObservedLogger(false)

	log.Info("state", nil,
		map[string]interface{}{"state": "connecting"},
		map[string]interface{}{"state": "connected"},
	)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "connected", logs.All()[0].ContextMap()["state"])
}

func TestContextLoggingAddsTraceIDs(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "consume")
	defer span.End()

	t.Run("tracing enabled", func(t *testing.T) {
		log, logs := newObservedLogger(true)
		log.InfoWithContext(ctx, "handled", nil, nil)

		fields := logs.All()[0].ContextMap()
		assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
		assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
	})

	t.Run("tracing disabled", func(t *testing.T) {
		log, logs := newObservedLogger(false)
		log.WarnWithContext(ctx, "handled", nil, nil)

		fields := logs.All()[0].ContextMap()
		assert.NotContains(t, fields, "trace_id")
		assert.NotContains(t, fields, "span_id")
	})

	t.Run("no span in context", func(t *testing.T) {
		log, logs := newObservedLogger(true)
		log.ErrorWithContext(context.Background(), "handled", nil, nil)
		log.DebugWithContext(context.Background(), "handled", nil, nil)

		for _, entry := range logs.All() {
			assert.NotContains(t, entry.ContextMap(), "trace_id")
		}
	})
}
