package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestInitLogger_DefaultLevelIsInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	InitLogger("bedfinder", "production")

	assert.Equal(t, zerolog.InfoLevel, LoggerFromContext(context.Background()).GetLevel())
}

func TestInitLogger_LevelFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	InitLogger("bedfinder", "production")

	assert.Equal(t, zerolog.DebugLevel, LoggerFromContext(context.Background()).GetLevel())
}

func TestInitLogger_IgnoresInvalidLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "shouting")
	InitLogger("bedfinder", "production")

	assert.Equal(t, zerolog.InfoLevel, LoggerFromContext(context.Background()).GetLevel())
}

func TestLoggerFromContext_AddsTraceAndSpanIDs(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	InitLogger("bedfinder", "production")

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01},
		SpanID:     trace.SpanID{0x02},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	var buf bytes.Buffer
	logger := LoggerFromContext(ctx).Output(&buf)
	logger.Info().Msg("ping")

	assert.Contains(t, buf.String(), `"trace_id":"01000000000000000000000000000000"`)
	assert.Contains(t, buf.String(), `"span_id":"0200000000000000"`)
}

func TestLoggerFromContext_NoSpanOmitsTraceFields(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	InitLogger("bedfinder", "production")

	var buf bytes.Buffer
	logger := LoggerFromContext(context.Background()).Output(&buf)
	logger.Info().Msg("ping")

	assert.NotContains(t, buf.String(), "trace_id")
	assert.Contains(t, buf.String(), `"service":"bedfinder"`)
}
