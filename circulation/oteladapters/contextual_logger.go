package oteladapters

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// SlogBridgeLogger implements circulation.ContextualLogger with a *slog.Logger.
// Built with NewSlogBridgeLogger it writes through the global OpenTelemetry LoggerProvider,
// which attaches the trace and span IDs found in the context to every record.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a SlogBridgeLogger backed by the otelslog bridge.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithHandler creates a SlogBridgeLogger writing to handler as-is, without trace correlation.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

// OTelLogger implements circulation.ContextualLogger by emitting records directly to an OpenTelemetry log.Logger.
type OTelLogger struct {
	logger log.Logger
}

// NewOTelLogger creates an OTelLogger.
func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityDebug, msg, args...)
}

func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityInfo, msg, args...)
}

func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityWarn, msg, args...)
}

func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityError, msg, args...)
}

// emit reads args as slog-style key/value pairs; a trailing key without a value and non-string keys are dropped.
func (l *OTelLogger) emit(ctx context.Context, severity log.Severity, msg string, args ...any) {
	record := log.Record{}
	record.SetTimestamp(time.Now())
	record.SetSeverity(severity)
	record.SetSeverityText(severityText(severity))
	record.SetBody(log.StringValue(msg))

	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}

		record.AddAttributes(log.KeyValue{Key: key, Value: logValue(args[i+1])})
	}

	l.logger.Emit(ctx, record)
}

func logValue(v any) log.Value {
	switch typed := v.(type) {
	case string:
		return log.StringValue(typed)
	case int:
		return log.IntValue(typed)
	case int64:
		return log.Int64Value(typed)
	case float64:
		return log.Float64Value(typed)
	case bool:
		return log.BoolValue(typed)
	case error:
		return log.StringValue(typed.Error())
	default:
		return log.StringValue(slog.AnyValue(v).String())
	}
}

func severityText(severity log.Severity) string {
	switch severity {
	case log.SeverityDebug:
		return "DEBUG"
	case log.SeverityWarn:
		return "WARN"
	case log.SeverityError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var (
	_ circulation.ContextualLogger = (*SlogBridgeLogger)(nil)
	_ circulation.ContextualLogger = (*OTelLogger)(nil)
)
