package oteladapters_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/library-circulation-go/circulation/oteladapters"
)

func Test_SlogBridgeLogger_WritesAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message", "patron_id", "P1")
	logger.InfoContext(ctx, "info message", "open_loans", 2)
	logger.WarnContext(ctx, "warn message", "overdue", true)
	logger.ErrorContext(ctx, "error message", "fine", 1.5)

	// assert
	output := buf.String()
	assert.Contains(t, output, `"msg":"debug message"`)
	assert.Contains(t, output, `"patron_id":"P1"`)
	assert.Contains(t, output, `"open_loans":2`)
	assert.Contains(t, output, `"overdue":true`)
	assert.Contains(t, output, `"fine":1.5`)
	assert.Contains(t, output, `"level":"ERROR"`)
}

func Test_SlogBridgeLogger_WithActiveSpan(t *testing.T) {
	// arrange
	provider := sdktrace.NewTracerProvider()
	defer func() { _ = provider.Shutdown(context.Background()) }()

	ctx, span := provider.Tracer("test").Start(context.Background(), "circulation.test")
	defer span.End()

	logger := oteladapters.NewSlogBridgeLogger("test")

	// act & assert
	assert.NotPanics(t, func() {
		logger.InfoContext(ctx, "message inside a span", "item_id", "I1")
	})
}

func Test_OTelLogger_AcceptsArgumentShapes(t *testing.T) {
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))
	ctx := context.Background()

	testCases := []struct {
		name string
		args []any
	}{
		{name: "typed values", args: []any{"s", "x", "i", 1, "i64", int64(2), "f", 0.5, "b", true}},
		{name: "error value", args: []any{"error", errors.New("boom")}},
		{name: "odd number of args", args: []any{"key1", "value1", "key2"}},
		{name: "non string key", args: []any{42, "value"}},
		{name: "no args", args: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				logger.DebugContext(ctx, "debug", tc.args...)
				logger.InfoContext(ctx, "info", tc.args...)
				logger.WarnContext(ctx, "warn", tc.args...)
				logger.ErrorContext(ctx, "error", tc.args...)
			})
		})
	}
}
