package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	retrieved := FromContext(ctx)
	assert.Equal(t, logger, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()

	retrieved := FromContext(ctx)
	assert.NotNil(t, retrieved, "should return no-op logger, not nil")
}

func TestFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), LoggerKey, "not-a-logger")

	retrieved := FromContext(ctx)
	assert.NotNil(t, retrieved)
	assert.NotPanics(t, func() {
		retrieved.Info("test")
	})
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	ctx, enriched := WithRequestID(ctx, logger, "req-123")

	assert.NotNil(t, enriched)
	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Equal(t, enriched, FromContext(ctx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestMultipleWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	ctx, _ = WithRequestID(ctx, logger, "first")
	ctx, _ = WithRequestID(ctx, logger, "second")

	// Latest value wins
	assert.Equal(t, "second", GetRequestID(ctx))
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	logger := FromContext(context.Background())

	assert.NotPanics(t, func() {
		logger.Info("test message")
		logger.Debug("debug message")
		logger.Warn("warn message")
		logger.Error("error message")
		logger.With(zap.String("key", "value")).Info("with field")
	})
}

// createContextWithSpan creates a context carrying an active span.
func createContextWithSpan(t *testing.T) (context.Context, trace.Span) {
	t.Helper()
	tp := noop.NewTracerProvider()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("test-tracer")
	return tracer.Start(context.Background(), "test-span")
}

func TestWithTraceContext_NoSpan(t *testing.T) {
	baseLogger := zap.NewNop()
	ctx := context.Background()

	enrichedLogger := WithTraceContext(ctx, baseLogger)

	// Without a span the logger comes back unchanged
	assert.Equal(t, baseLogger, enrichedLogger)
}

func TestWithTraceContext_WithSpan(t *testing.T) {
	baseLogger := zap.NewNop()
	ctx, span := createContextWithSpan(t)
	defer span.End()

	enrichedLogger := WithTraceContext(ctx, baseLogger)

	// The noop span carries an invalid context, so enrichment may be a
	// no-op, but it must never panic or return nil
	assert.NotNil(t, enrichedLogger)
}

func TestL_ReturnsContextLogger(t *testing.T) {
	cl := L(context.Background())

	assert.NotNil(t, cl)
	assert.NotNil(t, cl.ctx)
	assert.NotNil(t, cl.logger)
}

func TestL_WithLoggerInContext(t *testing.T) {
	baseLogger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := WithContext(context.Background(), baseLogger)
	cl := L(ctx)

	assert.Equal(t, baseLogger, cl.logger)
}

func TestWithLogger_UsesProvidedLogger(t *testing.T) {
	baseLogger, err := NewForEnvironment("development")
	require.NoError(t, err)

	cl := WithLogger(context.Background(), baseLogger)

	assert.Equal(t, baseLogger, cl.logger)
}

func TestContextLogger_With(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	ctx := context.Background()
	cl := WithLogger(ctx, baseLogger)

	childCl := cl.With(zap.String("key", "value"))

	assert.NotNil(t, childCl)
	assert.Equal(t, ctx, childCl.ctx)
	assert.NotEqual(t, baseLogger, childCl.logger)
}

func TestContextLogger_LogLevels(t *testing.T) {
	cl := WithLogger(context.Background(), zap.NewNop())

	assert.NotPanics(t, func() {
		cl.Debug("debug message")
		cl.Info("info message")
		cl.Warn("warn message")
		cl.Error("error message")
	})
}

func TestContextLogger_Zap(t *testing.T) {
	cl := WithLogger(context.Background(), zap.NewNop())

	zapLogger := cl.Zap()

	assert.NotNil(t, zapLogger)
	assert.NotPanics(t, func() {
		zapLogger.Info("test")
	})
}

func TestContextLogger_EnrichesWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, baseLogger, "req-123")
	ctx = WithContext(ctx, baseLogger)

	cl := L(ctx)
	cl.Info("anticipation created", zap.String("creator_id", "abc"))

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-123"`)
	assert.Contains(t, output, `"creator_id":"abc"`)
	assert.Contains(t, output, `"msg":"anticipation created"`)
}

func TestContextLogger_EmptyContextFields(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	cl := WithLogger(context.Background(), baseLogger)
	cl.Info("test")

	// Absent context fields never show up as empty strings
	output := buf.String()
	assert.Contains(t, output, `"msg":"test"`)
	assert.NotContains(t, output, `"request_id":""`)
	assert.NotContains(t, output, `"trace_id":""`)
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := &ContextLogger{
		ctx:    context.Background(),
		logger: nil,
	}

	assert.NotPanics(t, func() {
		cl.Info("test")
	})
}

func TestContextLogger_WithChaining(t *testing.T) {
	cl := WithLogger(context.Background(), zap.NewNop()).
		With(zap.String("field1", "value1")).
		With(zap.String("field2", "value2"))

	assert.NotNil(t, cl)
	assert.NotPanics(t, func() {
		cl.Info("chained test")
	})
}
