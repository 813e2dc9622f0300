package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memengine"
	"github.com/AntonStoeckl/library-circulation-go/circulation/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

const (
	instrumentationName    = "github.com/AntonStoeckl/library-circulation-go/cmd/librarian"
	notificationBufferSize = 16
)

// app holds everything one invocation needs. Collectors stay nil unless enabled,
// the wrappers and engines skip nil collectors.
type app struct {
	opts             options
	today            time.Time
	out              *printer
	stderr           io.Writer
	logger           *slog.Logger
	contextualLogger circulation.ContextualLogger
	metrics          circulation.MetricsCollector
	tracing          circulation.TracingCollector
	providers        *config.ObservabilityProviders
	store            circulation.Store
	ensureSchema     func(ctx context.Context) error
	closeStore       func()
	notifier         *shell.AsyncNotifier
	fines            circulation.FineCalculator
}

func newApp(ctx context.Context, opts options, stdout io.Writer, stderr io.Writer) (*app, error) {
	a := &app{
		opts:       opts,
		out:        newPrinter(stdout, opts.json),
		stderr:     stderr,
		closeStore: func() {},
	}

	var err error
	if a.today, err = opts.businessDate(time.Now()); err != nil {
		return nil, err
	}

	if err = a.setUpLogging(); err != nil {
		return nil, err
	}

	if a.fines, err = opts.fineCalculator(a.logger); err != nil {
		return nil, err
	}

	if err = a.setUpTelemetry(); err != nil {
		return nil, err
	}

	if err = a.openStore(ctx); err != nil {
		a.shutdownTelemetry()
		return nil, err
	}

	a.setUpNotifier(stdout)

	return a, nil
}

func (a *app) setUpLogging() error {
	level, err := a.opts.logLevelValue()
	if err != nil {
		return err
	}

	handlerOptions := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if a.opts.logFormat == logFormatJSON {
		handler = slog.NewJSONHandler(a.stderr, handlerOptions)
	} else {
		handler = slog.NewTextHandler(a.stderr, handlerOptions)
	}

	a.logger = slog.New(handler)
	a.contextualLogger = oteladapters.NewSlogBridgeLoggerWithHandler(handler)

	return nil
}

func (a *app) setUpTelemetry() error {
	if !a.opts.trace && !a.opts.metrics {
		return nil
	}

	traceOut := io.Discard
	if a.opts.trace {
		traceOut = a.stderr
	}

	providers, err := config.NewObservabilityConfig(traceOut, version)
	if err != nil {
		return err
	}

	a.providers = providers

	if a.opts.trace {
		a.tracing = oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(instrumentationName))
	}

	if a.opts.metrics {
		a.metrics = oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(instrumentationName))
	}

	return nil
}

func (a *app) openStore(ctx context.Context) error {
	if a.opts.adapter == adapterMemory {
		store, err := memengine.NewStore(
			memengine.WithSnapshotFile(a.opts.stateFile),
			memengine.WithContextualLogger(a.contextualLogger),
		)
		if errors.Is(err, memengine.ErrEmptySnapshotFile) {
			return errors.Join(errUsage, err)
		}
		if err != nil {
			return err
		}

		a.store = store

		return nil
	}

	engineOptions := []postgresengine.Option{postgresengine.WithContextualLogger(a.contextualLogger)}
	if a.metrics != nil {
		engineOptions = append(engineOptions, postgresengine.WithMetrics(a.metrics))
	}
	if a.tracing != nil {
		engineOptions = append(engineOptions, postgresengine.WithTracing(a.tracing))
	}

	store, closeStore, err := openPostgresStore(ctx, a.opts.adapter, a.opts.postgresDSN, config.PostgresReplicaDSN(), engineOptions)
	if err != nil {
		if closeStore != nil {
			closeStore()
		}

		return err
	}

	a.store = store
	a.ensureSchema = store.EnsureSchema
	a.closeStore = closeStore

	return nil
}

func openPostgresStore(
	ctx context.Context,
	adapter string,
	dsn string,
	replicaDSN string,
	engineOptions []postgresengine.Option,
) (*postgresengine.Store, func(), error) {

	settings := config.CLIPoolSettings()

	switch adapter {
	case adapterPGXPool:
		pool, err := openPGXPool(ctx, dsn, settings)
		if err != nil {
			return nil, nil, err
		}

		if replicaDSN == "" {
			store, err := postgresengine.NewStoreFromPGXPool(pool, engineOptions...)
			return store, pool.Close, err
		}

		replica, err := openPGXPool(ctx, replicaDSN, settings)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromPGXPoolWithReplica(pool, replica, engineOptions...)

		return store, func() { pool.Close(); replica.Close() }, err

	case adapterSQLDB:
		db, err := config.PostgresSQLDBConfig(ctx, dsn, settings)
		if err != nil {
			return nil, nil, err
		}

		if replicaDSN == "" {
			store, err := postgresengine.NewStoreFromSQLDB(db, engineOptions...)
			return store, func() { _ = db.Close() }, err
		}

		replica, err := config.PostgresSQLDBConfig(ctx, replicaDSN, settings)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLDBWithReplica(db, replica, engineOptions...)

		return store, func() { _ = db.Close(); _ = replica.Close() }, err

	default:
		db, err := config.PostgresSQLXConfig(ctx, dsn, settings)
		if err != nil {
			return nil, nil, err
		}

		if replicaDSN == "" {
			store, err := postgresengine.NewStoreFromSQLX(db, engineOptions...)
			return store, func() { _ = db.Close() }, err
		}

		replica, err := config.PostgresSQLXConfig(ctx, replicaDSN, settings)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLXWithReplica(db, replica, engineOptions...)

		return store, func() { _ = db.Close(); _ = replica.Close() }, err
	}
}

func openPGXPool(ctx context.Context, dsn string, settings config.PoolSettings) (*pgxpool.Pool, error) {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn, settings)
	if err != nil {
		return nil, errors.Join(errUsage, err)
	}

	return pgxpool.NewWithConfig(ctx, poolConfig)
}

// setUpNotifier sends notifications to stdout, or to stderr when stdout carries JSON.
func (a *app) setUpNotifier(stdout io.Writer) {
	sink := stdout
	if a.opts.json {
		sink = a.stderr
	}

	writer := shell.NewWriterNotifier(sink, shell.WithWriterNotifierContextualLogger(a.contextualLogger))

	notifierOptions := []shell.AsyncNotifierOption{shell.WithAsyncNotifierContextualLogger(a.contextualLogger)}
	if a.metrics != nil {
		notifierOptions = append(notifierOptions, shell.WithAsyncNotifierMetrics(a.metrics))
	}

	a.notifier = shell.NewAsyncNotifier(writer, notificationBufferSize, notifierOptions...)
}

// retryOptions counts conflict retries of the command when metrics are enabled.
func (a *app) retryOptions(commandType string) []shell.RetryOption {
	if a.metrics == nil {
		return nil
	}

	return []shell.RetryOption{shell.WithRetryMetrics(a.metrics, commandType)}
}

// close flushes pending notifications, releases the store and writes the collected metrics.
func (a *app) close(ctx context.Context) error {
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shell.StopTimeout)
	defer cancel()

	err := a.notifier.Close(stopCtx)
	a.closeStore()

	if a.opts.metrics && a.providers != nil {
		if metricsErr := a.writeMetrics(stopCtx); metricsErr != nil {
			err = errors.Join(err, metricsErr)
		}
	}

	a.shutdownTelemetry()

	return err
}

func (a *app) shutdownTelemetry() {
	if a.providers == nil {
		return
	}

	if err := a.providers.Shutdown(); err != nil {
		a.logger.Warn("shutting down telemetry failed", "error", err.Error())
	}
}

func (a *app) writeMetrics(ctx context.Context) error {
	var collected metricdata.ResourceMetrics
	if err := a.providers.MetricReader.Collect(ctx, &collected); err != nil {
		return err
	}

	return writeJSON(a.stderr, summarizeMetrics(collected))
}
