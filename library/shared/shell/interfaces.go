package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Command is implemented by all command types. CommandType names the command in logs, metrics and spans.
type Command interface {
	CommandType() string
}

// CommandResult is implemented by the result types of all command handlers.
type CommandResult interface {
	BusinessOutcome() circulation.Outcome
}

// CommandHandler processes one command type. Business rejections are reported through the
// result's BusinessOutcome, the error is reserved for infrastructure failures and invariant violations.
type CommandHandler[C Command, R CommandResult] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Query is implemented by all query types. QueryType names the query in logs, metrics and spans.
type Query interface {
	QueryType() string
}

// QueryHandler processes one query type and returns its projection.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Interface aliases so feature packages and wrappers do not need to import circulation for them.

// MetricsCollector collects handler metrics.
type MetricsCollector = circulation.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = circulation.ContextualMetricsCollector

// TracingCollector creates handler spans.
type TracingCollector = circulation.TracingCollector

// SpanContext is an active span.
type SpanContext = circulation.SpanContext

// ContextualLogger logs with trace correlation.
type ContextualLogger = circulation.ContextualLogger

// Logger logs without a context.
type Logger = circulation.Logger
