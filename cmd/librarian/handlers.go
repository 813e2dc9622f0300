package main

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/observable"
)

func wrapCommand[C shell.Command, R shell.CommandResult](
	a *app,
	handler shell.CommandHandler[C, R],
) (*observable.CommandWrapper[C, R], error) {

	opts := []observable.CommandOption[C, R]{observable.WithCommandContextualLogging[C, R](a.contextualLogger)}

	if a.metrics != nil {
		opts = append(opts, observable.WithCommandMetrics[C, R](a.metrics))
	}

	if a.tracing != nil {
		opts = append(opts, observable.WithCommandTracing[C, R](a.tracing))
	}

	return observable.NewCommandWrapper(handler, opts...)
}

func wrapQuery[Q shell.Query, R any](
	a *app,
	handler shell.QueryHandler[Q, R],
) (*observable.QueryWrapper[Q, R], error) {

	opts := []observable.QueryOption[Q, R]{observable.WithQueryContextualLogging[Q, R](a.contextualLogger)}

	if a.metrics != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](a.metrics))
	}

	if a.tracing != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](a.tracing))
	}

	return observable.NewQueryWrapper(handler, opts...)
}
