package shell

import (
	"context"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	// CommandHandlerDurationMetric tracks command handler execution duration.
	CommandHandlerDurationMetric = "circulation_command_duration_seconds"

	// CommandHandlerCallsMetric tracks command handler calls by status.
	CommandHandlerCallsMetric = "circulation_command_calls_total"

	// CommandHandlerRejectionsMetric tracks business rejections by outcome (unavailable, limit_reached, ...).
	CommandHandlerRejectionsMetric = "circulation_command_rejections_total"

	// CommandHandlerCanceledMetric tracks canceled command operations.
	CommandHandlerCanceledMetric = "circulation_command_canceled_total"

	// CommandHandlerTimeoutMetric tracks command operations that hit their deadline.
	CommandHandlerTimeoutMetric = "circulation_command_timeout_total"

	// CommandHandlerConflictMetric tracks invariant violations detected by command handlers.
	CommandHandlerConflictMetric = "circulation_command_conflicts_total"

	// QueryHandlerDurationMetric tracks query handler execution duration.
	QueryHandlerDurationMetric = "circulation_query_duration_seconds"

	// QueryHandlerCallsMetric tracks query handler calls by status.
	QueryHandlerCallsMetric = "circulation_query_calls_total"

	// QueryHandlerCanceledMetric tracks canceled query operations.
	QueryHandlerCanceledMetric = "circulation_query_canceled_total"

	// QueryHandlerTimeoutMetric tracks query operations that hit their deadline.
	QueryHandlerTimeoutMetric = "circulation_query_timeout_total"

	// CommandHandlerRetriesMetric tracks transactions a command handler ran again after a conflict.
	CommandHandlerRetriesMetric = "circulation_command_retries_total"

	// CommandHandlerMaxRetriesReachedMetric tracks commands which gave up after the last attempt.
	CommandHandlerMaxRetriesReachedMetric = "circulation_command_max_retries_reached_total"

	// NotificationsDroppedMetric tracks notifications an AsyncNotifier could not queue.
	NotificationsDroppedMetric = "circulation_notifications_dropped_total"
)

const (
	StatusSuccess    = "success"
	StatusIdempotent = "idempotent"
	StatusRejected   = "rejected"
	StatusError      = "error"
	StatusCanceled   = "canceled"
	StatusTimeout    = "timeout"
	StatusConflict   = "conflict"
)

const (
	LogMsgCommandStarted   = "command handler started"
	LogMsgCommandCompleted = "command handler completed"
	LogMsgCommandRejected  = "command handler rejected"
	LogMsgCommandFailed    = "command handler failed"
	LogMsgQueryStarted     = "query handler started"
	LogMsgQueryCompleted   = "query handler completed"
	LogMsgQueryFailed      = "query handler failed"

	LogAttrCommandType     = "command_type"
	LogAttrQueryType       = "query_type"
	LogAttrStatus          = "status"
	LogAttrDurationMS      = "duration_ms"
	LogAttrBusinessOutcome = "business_outcome"
	LogAttrError           = "error"
	LogAttrPatronID        = "patron_id"

	SpanNameCommandHandle = "circulation.command.handle"
	SpanNameQueryHandle   = "circulation.query.handle"
)

// BuildCommandLabels creates the metric labels for command handler operations.
func BuildCommandLabels(commandType string, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// BuildQueryLabels creates the metric labels for query handler operations.
func BuildQueryLabels(queryType string, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// RecordCommandMetrics records duration and call count of a command, plus the counter for
// rejections, cancellations, timeouts or conflicts where status calls for one.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	outcome circulation.Outcome,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)
	recordDuration(ctx, collector, CommandHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, CommandHandlerCallsMetric, labels)

	switch status {
	case StatusRejected:
		rejectionLabels := BuildCommandLabels(commandType, status)
		rejectionLabels[LogAttrBusinessOutcome] = string(outcome)
		incrementCounter(ctx, collector, CommandHandlerRejectionsMetric, rejectionLabels)
	case StatusCanceled:
		incrementCounter(ctx, collector, CommandHandlerCanceledMetric, BuildCommandLabels(commandType, status))
	case StatusTimeout:
		incrementCounter(ctx, collector, CommandHandlerTimeoutMetric, BuildCommandLabels(commandType, status))
	case StatusConflict:
		incrementCounter(ctx, collector, CommandHandlerConflictMetric, BuildCommandLabels(commandType, status))
	}
}

// RecordQueryMetrics records duration and call count of a query, plus the cancellation or timeout counter.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)
	recordDuration(ctx, collector, QueryHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, QueryHandlerCallsMetric, labels)

	switch status {
	case StatusCanceled:
		incrementCounter(ctx, collector, QueryHandlerCanceledMetric, BuildQueryLabels(queryType, status))
	case StatusTimeout:
		incrementCounter(ctx, collector, QueryHandlerTimeoutMetric, BuildQueryLabels(queryType, status))
	}
}

// StartCommandSpan starts a span for a command, returning ctx unchanged and a nil span if tracing is disabled.
func StartCommandSpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	commandType string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameCommandHandle, map[string]string{LogAttrCommandType: commandType})
}

// StartQuerySpan starts a span for a query, returning ctx unchanged and a nil span if tracing is disabled.
func StartQuerySpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	queryType string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameQueryHandle, map[string]string{LogAttrQueryType: queryType})
}

// FinishSpan completes a command or query span with its status.
func FinishSpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	outcome circulation.Outcome,
	duration time.Duration,
	err error,
) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if outcome != "" {
		attrs[LogAttrBusinessOutcome] = string(outcome)
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

// LogCommandStart logs the beginning of command processing.
func LogCommandStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandStarted, LogAttrCommandType, commandType)
}

// LogCommandSuccess logs a successful or idempotent command.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	outcome circulation.Outcome,
	duration time.Duration,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandCompleted,
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, string(outcome),
		LogAttrDurationMS, ToMilliseconds(duration),
	)
}

// LogCommandRejected logs a business rejection, which is an expected result and not an error.
func LogCommandRejected(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	outcome circulation.Outcome,
	duration time.Duration,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandRejected,
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, string(outcome),
		LogAttrDurationMS, ToMilliseconds(duration),
	)
}

// LogCommandError logs command processing errors.
func LogCommandError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string, err error) {
	logError(ctx, logger, contextualLogger, LogMsgCommandFailed, LogAttrCommandType, commandType, LogAttrError, err.Error())
}

// LogQueryStart logs the beginning of query processing.
func LogQueryStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, queryType string) {
	logInfo(ctx, logger, contextualLogger, LogMsgQueryStarted, LogAttrQueryType, queryType)
}

// LogQuerySuccess logs successful query completion.
func LogQuerySuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	duration time.Duration,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgQueryCompleted,
		LogAttrQueryType, queryType,
		LogAttrDurationMS, ToMilliseconds(duration),
	)
}

// LogQueryError logs query processing errors.
func LogQueryError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, queryType string, err error) {
	logError(ctx, logger, contextualLogger, LogMsgQueryFailed, LogAttrQueryType, queryType, LogAttrError, err.Error())
}

func logInfo(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Info(msg, args...)
	}
}

func logWarn(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.WarnContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Warn(msg, args...)
	}
}

func logError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Error(msg, args...)
	}
}

func recordDuration(ctx context.Context, collector MetricsCollector, metric string, d time.Duration, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	collector.RecordDuration(metric, d, labels)
}

func incrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	collector.IncrementCounter(metric, labels)
}

func formatDurationMS(duration time.Duration) string {
	return strconv.FormatFloat(ToMilliseconds(duration), 'f', 2, 64)
}
