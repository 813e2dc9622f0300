package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// CommandWrapper instruments a command handler with metrics, tracing and logging.
type CommandWrapper[C shell.Command, R shell.CommandResult] struct {
	coreHandler      shell.CommandHandler[C, R]
	commandType      string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// CommandOption defines a functional option for configuring CommandWrapper.
type CommandOption[C shell.Command, R shell.CommandResult] func(*CommandWrapper[C, R]) error

// NewCommandWrapper wraps coreHandler. The command type is taken from the zero value of C.
func NewCommandWrapper[C shell.Command, R shell.CommandResult](
	coreHandler shell.CommandHandler[C, R],
	opts ...CommandOption[C, R],
) (*CommandWrapper[C, R], error) {

	var zeroCommand C

	wrapper := &CommandWrapper[C, R]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle delegates to the wrapped handler and records the result.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, error) {
	commandStart := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, w.tracingCollector, w.commandType)
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)
	duration := time.Since(commandStart)

	if err != nil {
		w.recordCommandError(ctx, err, duration, span)
		return result, err
	}

	w.recordCommandResult(ctx, result, duration, span)

	return result, nil
}

// WithCommandMetrics sets the metrics collector for the CommandWrapper.
func WithCommandMetrics[C shell.Command, R shell.CommandResult](collector shell.MetricsCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithCommandTracing sets the tracing collector for the CommandWrapper.
func WithCommandTracing[C shell.Command, R shell.CommandResult](collector shell.TracingCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.tracingCollector = collector
		return nil
	}
}

// WithCommandContextualLogging sets the contextual logger for the CommandWrapper.
func WithCommandContextualLogging[C shell.Command, R shell.CommandResult](logger shell.ContextualLogger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.contextualLogger = logger
		return nil
	}
}

// WithCommandLogging sets the basic logger for the CommandWrapper.
func WithCommandLogging[C shell.Command, R shell.CommandResult](logger shell.Logger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.logger = logger
		return nil
	}
}

func (w *CommandWrapper[C, R]) recordCommandResult(ctx context.Context, result R, duration time.Duration, span shell.SpanContext) {
	outcome := result.BusinessOutcome()
	status := shell.StatusForOutcome(outcome)

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, outcome, duration)
	shell.FinishSpan(w.tracingCollector, span, status, outcome, duration, nil)

	if status == shell.StatusRejected {
		shell.LogCommandRejected(ctx, w.logger, w.contextualLogger, w.commandType, outcome, duration)
		return
	}

	shell.LogCommandSuccess(ctx, w.logger, w.contextualLogger, w.commandType, outcome, duration)
}

func (w *CommandWrapper[C, R]) recordCommandError(ctx context.Context, err error, duration time.Duration, span shell.SpanContext) {
	status := shell.StatusForError(err)

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, "", duration)
	shell.FinishSpan(w.tracingCollector, span, status, "", duration, err)
	shell.LogCommandError(ctx, w.logger, w.contextualLogger, w.commandType, err)
}
