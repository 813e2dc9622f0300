package postgresengine

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	metricQueryDuration       = "circulation_store_query_duration_seconds"
	metricTransactionDuration = "circulation_store_transaction_duration_seconds"
	metricDatabaseErrors      = "circulation_store_database_errors_total"
	spanNameTransaction       = "circulation.store.transaction"
	spanAttrOperation         = "operation"
	spanAttrErrorType         = "error_type"
	spanAttrDurationMS        = "duration_ms"
	labelStatus               = "status"
	statusSuccess             = "success"
	statusError               = "error"
	statusCanceled            = "canceled"
	errorTypeBuildQuery       = "build_query"
	errorTypeQuery            = "query"
	errorTypeExec             = "exec"
	errorTypeScan             = "scan"
	errorTypeBeginTx          = "begin_tx"
	errorTypeCommit           = "commit"
	errorTypeRolledBack       = "rolled_back"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	s.logDebug(ctx, logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
}

func (s *Store) logDebug(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	} else if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s *Store) logWarn(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, msg, allArgs...)
	} else if s.logger != nil {
		s.logger.Warn(msg, allArgs...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (s *Store) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	} else if s.logger != nil {
		s.logger.Error(msg, allArgs...)
	}
}

// recordDuration records a duration metric, using the context-aware method if the collector supports it.
func (s *Store) recordDuration(ctx context.Context, metric string, duration time.Duration, operation string, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
	} else {
		s.metricsCollector.RecordDuration(metric, duration, labels)
	}
}

// recordErrorMetrics counts database errors, using the context-aware method if the collector supports it.
func (s *Store) recordErrorMetrics(ctx context.Context, operation string, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// startTraceSpan starts a tracing span if a tracing collector is configured.
func (s *Store) startTraceSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, circulation.SpanContext) {
	if s.tracingCollector != nil {
		return s.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishTraceSpan finishes a tracing span if a tracing collector is configured.
func (s *Store) finishTraceSpan(span circulation.SpanContext, status string, attrs map[string]string) {
	if s.tracingCollector != nil && span != nil {
		s.tracingCollector.FinishSpan(span, status, attrs)
	}
}

// transactionObserver bundles span, metrics, and logging of one InTransaction call.
type transactionObserver struct {
	store *Store
	ctx   context.Context
	span  circulation.SpanContext
	start time.Time
}

func (s *Store) observeTransaction(ctx context.Context) (context.Context, *transactionObserver) {
	newCtx, span := s.startTraceSpan(ctx, spanNameTransaction, map[string]string{spanAttrOperation: operationTransaction})

	return newCtx, &transactionObserver{store: s, ctx: newCtx, span: span, start: time.Now()}
}

func (o *transactionObserver) finishSuccess() {
	duration := time.Since(o.start)

	o.store.recordDuration(o.ctx, metricTransactionDuration, duration, operationTransaction, statusSuccess)
	o.store.finishTraceSpan(o.span, statusSuccess, map[string]string{spanAttrDurationMS: formatMilliseconds(duration)})
	o.store.logOperation(o.ctx, logMsgTxCommitted, logAttrDurationMS, durationToMilliseconds(duration))
}

func (o *transactionObserver) finishError(err error, errorType string) {
	duration := time.Since(o.start)

	status := statusError
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		status = statusCanceled
	}

	o.store.recordDuration(o.ctx, metricTransactionDuration, duration, operationTransaction, status)
	o.store.finishTraceSpan(o.span, status, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: formatMilliseconds(duration),
	})
	o.store.logDebug(o.ctx, logMsgTxRolledBack, logAttrError, err.Error(), logAttrDurationMS, durationToMilliseconds(duration))
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return strconv.FormatFloat(durationToMilliseconds(d), 'f', 3, 64)
}
