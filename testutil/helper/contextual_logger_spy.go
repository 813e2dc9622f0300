package helper

import (
	"context"
	"sync"
)

// ContextualLogRecord represents a recorded contextual log call.
type ContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// ContextualLoggerSpy is a circulation.ContextualLogger that captures log calls for testing.
type ContextualLoggerSpy struct {
	records     []ContextualLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recordCalls: recordCalls}
}

// DebugContext implements the ContextualLogger interface.
func (l *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "debug", msg, args)
}

// InfoContext implements the ContextualLogger interface.
func (l *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "info", msg, args)
}

// WarnContext implements the ContextualLogger interface.
func (l *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "warn", msg, args)
}

// ErrorContext implements the ContextualLogger interface.
func (l *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "error", msg, args)
}

func (l *ContextualLoggerSpy) record(ctx context.Context, level string, msg string, args []any) {
	if !l.recordCalls {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, ContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

// HasInfoLog reports whether an info record with the message was captured.
func (l *ContextualLoggerSpy) HasInfoLog(msg string) bool {
	return l.has("info", msg)
}

// HasDebugLog reports whether a debug record with the message was captured.
func (l *ContextualLoggerSpy) HasDebugLog(msg string) bool {
	return l.has("debug", msg)
}

// HasErrorLog reports whether an error record with the message was captured.
func (l *ContextualLoggerSpy) HasErrorLog(msg string) bool {
	return l.has("error", msg)
}

// HasWarnLog reports whether a warn record with the message was captured.
func (l *ContextualLoggerSpy) HasWarnLog(msg string) bool {
	return l.has("warn", msg)
}

// GetRecords returns a copy of all captured records.
func (l *ContextualLoggerSpy) GetRecords() []ContextualLogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := make([]ContextualLogRecord, len(l.records))
	copy(records, l.records)

	return records
}

func (l *ContextualLoggerSpy) has(level string, msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, record := range l.records {
		if record.Level == level && record.Message == msg {
			return true
		}
	}

	return false
}
