package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

const (
	version          = "0.1.0"
	defaultStateFile = "librarian-state.json"

	adapterMemory  = "memory"
	adapterPGXPool = "pgx.pool"
	adapterSQLDB   = "sql.db"
	adapterSQLXDB  = "sqlx.db"

	logFormatText = "text"
	logFormatJSON = "json"
)

const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
	exitFailure  = 3
)

var (
	errUsage    = errors.New("usage error")
	errRejected = errors.New("rejected")
)

type options struct {
	stateFile   string
	adapter     string
	postgresDSN string
	fineRate    string
	logFormat   string
	logLevel    string
	trace       bool
	metrics     bool
	json        bool
	today       string
}

func parseOptions(args []string, stderr io.Writer) (options, []string, error) {
	var opts options

	fs := flag.NewFlagSet("librarian", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }

	fs.StringVar(&opts.stateFile, "state", defaultStateFile, "snapshot file of the memory adapter")
	fs.StringVar(&opts.adapter, "adapter", adapterMemory, "storage: memory, pgx.pool, sql.db or sqlx.db")
	fs.StringVar(&opts.postgresDSN, "postgres-dsn", config.PostgresDSN(), "PostgreSQL DSN of the primary")
	fs.StringVar(&opts.fineRate, "fine-rate", "", "fine per overdue day, default from CIRCULATION_FINE_RATE or 0.50")
	fs.StringVar(&opts.logFormat, "log-format", logFormatText, "log format: text or json")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&opts.trace, "trace", false, "write OpenTelemetry spans to stderr")
	fs.BoolVar(&opts.metrics, "metrics", false, "write collected OpenTelemetry metrics to stderr on exit")
	fs.BoolVar(&opts.json, "json", false, "print results as JSON")
	fs.StringVar(&opts.today, "today", "", "business date as YYYY-MM-DD, default is the current date")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, errors.Join(errUsage, err)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return options{}, nil, errors.Join(errUsage, errors.New("no command given"))
	}

	switch opts.adapter {
	case adapterMemory, adapterPGXPool, adapterSQLDB, adapterSQLXDB:
	default:
		return options{}, nil, errors.Join(errUsage, fmt.Errorf("unknown adapter %q", opts.adapter))
	}

	switch opts.logFormat {
	case logFormatText, logFormatJSON:
	default:
		return options{}, nil, errors.Join(errUsage, fmt.Errorf("unknown log format %q", opts.logFormat))
	}

	return opts, fs.Args(), nil
}

func (o options) businessDate(now time.Time) (time.Time, error) {
	if o.today == "" {
		return circulation.ToDate(now), nil
	}

	today, err := circulation.ParseDate(o.today)
	if err != nil {
		return time.Time{}, errors.Join(errUsage, err)
	}

	return today, nil
}

func (o options) fineCalculator(logger circulation.Logger) (circulation.FineCalculator, error) {
	rate := config.FineRateFromEnv(logger)

	if o.fineRate != "" {
		parsed, err := decimal.NewFromString(o.fineRate)
		if err != nil {
			return circulation.FineCalculator{}, errors.Join(errUsage, err)
		}
		rate = parsed
	}

	fines, err := circulation.NewFineCalculator(rate)
	if err != nil {
		return circulation.FineCalculator{}, errors.Join(errUsage, err)
	}

	return fines, nil
}

func (o options) logLevelValue() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return level, errors.Join(errUsage, err)
	}

	return level, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	_, _ = fmt.Fprintln(w, "usage: librarian [flags] <command> [command flags]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "commands:")

	for _, name := range subcommandNames() {
		_, _ = fmt.Fprintf(w, "  %-14s %s\n", name, subcommands[name].summary)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "flags:")
	fs.PrintDefaults()
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, errRejected), errors.Is(err, circulation.ErrAmbiguousPatronName):
		return exitRejected
	}

	if _, ok := circulation.OutcomeFromError(err); ok {
		return exitRejected
	}

	return exitFailure
}

func flattenError(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", ": ")
}
