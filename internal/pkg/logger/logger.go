package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the process-wide root logger. Init must be called once at
// startup before any component logs.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the root logger with the service name so that log lines
// from different deployables can be told apart in aggregated output.
func Init(serviceName string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// Ctx returns a logger correlated with the trace recorded on ctx, if any.
// Use it for all per-request logging so log lines can be joined with spans.
func Ctx(ctx context.Context) *zerolog.Logger {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return &Logger
	}
	l := Logger.With().Str("trace_id", sc.TraceID().String()).Logger()
	return &l
}
