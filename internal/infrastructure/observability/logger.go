package observability

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// serviceLogger is the process-wide logger. It starts usable so packages
// that log before InitLogger runs still produce output.
var serviceLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogger configures the process-wide logger. The level comes from
// LOG_LEVEL (default info). Development gets a human-readable console
// writer; everything else logs JSON with caller info.
func InitLogger(serviceName, env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			level = parsed
		}
	}

	var out io.Writer = os.Stdout
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if env != "development" {
		ctx = ctx.Caller()
	}

	serviceLogger = ctx.Str("service", serviceName).Logger()
}

// LoggerFromContext returns the service logger enriched with the trace and
// span ids of the active span, when the context carries one.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	logger := serviceLogger

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		logger = logger.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return &logger
}
