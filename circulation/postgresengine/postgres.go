package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	logMsgBuildQueryFailed   = "failed to build query"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgBeginTxFailed      = "failed to begin transaction"
	logMsgCommitFailed       = "failed to commit transaction"
	logMsgRollbackFailed     = "failed to roll back transaction"
	logMsgTxCommitted        = "transaction committed"
	logMsgTxRolledBack       = "transaction rolled back"
	logMsgSchemaEnsured      = "schema ensured"
	logMsgSQLExecuted        = "executed sql for: "
	logMsgOperation          = "circulation store operation: "
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrAction            = "action"
	logAttrDurationMS        = "duration_ms"
	logAttrStatementCount    = "statement_count"
	operationTransaction     = "transaction"
	dialectPostgres          = "postgres"
	pgUniqueViolation        = "23505"
	pgSerializationFailure   = "40001"
	pgDeadlockDetected       = "40P01"
)

var dialect = goqu.Dialect(dialectPostgres)

// sqlBuilder is satisfied by all goqu datasets.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

// Store is a PostgreSQL circulation.Store.
type Store struct {
	db               adapters.DBAdapter
	logger           circulation.Logger
	contextualLogger circulation.ContextualLogger
	metricsCollector circulation.MetricsCollector
	tracingCollector circulation.TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options)
}

// NewStoreFromPGXPoolWithReplica creates a new Store using a primary and a replica pgx Pool.
func NewStoreFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options)
}

// NewStoreFromSQLDBWithReplica creates a new Store using a primary and a replica sql.DB.
func NewStoreFromSQLDBWithReplica(db *sql.DB, replica *sql.DB, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapterWithReplica(db, replica), options)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options)
}

// NewStoreFromSQLXWithReplica creates a new Store using a primary and a replica sqlx.DB.
func NewStoreFromSQLXWithReplica(db *sqlx.DB, replica *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapterWithReplica(db, replica), options)
}

func newStore(db adapters.DBAdapter, options []Option) (*Store, error) {
	s := &Store{db: db}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// InTransaction runs fn inside a database transaction on the primary.
// The transaction commits if fn returns nil and rolls back otherwise.
func (s *Store) InTransaction(ctx context.Context, fn func(tx circulation.Tx) error) error {
	ctx, observer := s.observeTransaction(ctx)

	dbTx, err := s.db.BeginTx(ctx)
	if err != nil {
		s.logError(ctx, logMsgBeginTxFailed, err)
		s.recordErrorMetrics(ctx, operationTransaction, errorTypeBeginTx)
		observer.finishError(err, errorTypeBeginTx)

		return errors.Join(circulation.ErrBeginTxFailed, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}

		if rollbackErr := dbTx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			s.logWarn(ctx, logMsgRollbackFailed, rollbackErr)
		}
	}()

	if err = fn(&pgTx{store: s, q: dbTx}); err != nil {
		observer.finishError(err, errorTypeRolledBack)

		if transactionConflict(err) {
			return errors.Join(circulation.ErrTransactionConflict, err)
		}

		return err
	}

	if err = dbTx.Commit(ctx); err != nil {
		s.logError(ctx, logMsgCommitFailed, err)
		s.recordErrorMetrics(ctx, operationTransaction, errorTypeCommit)
		observer.finishError(err, errorTypeCommit)

		if transactionConflict(err) {
			return errors.Join(circulation.ErrTransactionConflict, circulation.ErrCommitFailed, err)
		}

		return errors.Join(circulation.ErrCommitFailed, err)
	}

	committed = true
	observer.finishSuccess()

	return nil
}

// reader serves the reads made outside of transactions.
// They go to the replica if the context allows eventual consistency and a replica is configured.
func (s *Store) reader() *pgTx {
	return &pgTx{store: s, q: s.db}
}

// pgTx implements circulation.Tx on top of a Querier, which is either an open
// transaction or, for plain reads, the adapter itself.
type pgTx struct {
	store *Store
	q     adapters.Querier
}

// query builds and runs a select statement.
func (tx *pgTx) query(ctx context.Context, action string, builder sqlBuilder) (adapters.DBRows, error) {
	s := tx.store

	sqlQuery, _, err := builder.ToSQL()
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrAction, action)
		s.recordErrorMetrics(ctx, action, errorTypeBuildQuery)

		return nil, errors.Join(circulation.ErrBuildingQueryFailed, err)
	}

	start := time.Now()
	rows, err := tx.q.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		s.recordErrorMetrics(ctx, action, errorTypeQuery)
		s.recordDuration(ctx, metricQueryDuration, duration, action, statusError)

		return nil, errors.Join(circulation.ErrQueryingFailed, err)
	}

	s.recordDuration(ctx, metricQueryDuration, duration, action, statusSuccess)

	return rows, nil
}

// exec builds and runs a data modifying statement and returns the number of affected rows.
// Unique violations are returned unwrapped for the caller to classify, see uniqueViolation.
func (tx *pgTx) exec(ctx context.Context, action string, builder sqlBuilder) (int64, error) {
	s := tx.store

	sqlQuery, _, err := builder.ToSQL()
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrAction, action)
		s.recordErrorMetrics(ctx, action, errorTypeBuildQuery)

		return 0, errors.Join(circulation.ErrBuildingQueryFailed, err)
	}

	start := time.Now()
	result, err := tx.q.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if err != nil {
		if _, unique := uniqueViolation(err); unique {
			s.recordDuration(ctx, metricQueryDuration, duration, action, statusError)
			return 0, err
		}

		s.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, sqlQuery)
		s.recordErrorMetrics(ctx, action, errorTypeExec)
		s.recordDuration(ctx, metricQueryDuration, duration, action, statusError)

		return 0, errors.Join(circulation.ErrExecFailed, err)
	}

	s.recordDuration(ctx, metricQueryDuration, duration, action, statusSuccess)

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, err, logAttrAction, action)
		return 0, errors.Join(circulation.ErrExecFailed, err)
	}

	return rowsAffected, nil
}

// closeRows safely closes database rows and logs any errors.
func (tx *pgTx) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		tx.store.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

// collect runs the select statement and scans every row with scan.
func collect[T any](
	ctx context.Context,
	tx *pgTx,
	action string,
	builder sqlBuilder,
	scan func(rows adapters.DBRows) (T, error),
) ([]T, error) {

	rows, err := tx.query(ctx, action, builder)
	if err != nil {
		return nil, err
	}
	defer tx.closeRows(ctx, rows)

	result := make([]T, 0)

	for rows.Next() {
		value, scanErr := scan(rows)
		if scanErr != nil {
			tx.store.logError(ctx, logMsgScanRowFailed, scanErr, logAttrAction, action)
			tx.store.recordErrorMetrics(ctx, action, errorTypeScan)

			return nil, errors.Join(circulation.ErrScanningDBRowFailed, scanErr)
		}

		result = append(result, value)
	}

	if err = rows.Err(); err != nil {
		tx.store.logError(ctx, logMsgDBQueryFailed, err, logAttrAction, action)
		return nil, errors.Join(circulation.ErrQueryingFailed, err)
	}

	return result, nil
}

// first returns the first element of a collect result.
func first[T any](values []T, err error) (T, bool, error) {
	var empty T

	if err != nil || len(values) == 0 {
		return empty, false, err
	}

	return values[0], true, nil
}

// uniqueViolation reports whether err is a unique constraint violation from pgx or lib/pq
// and returns the name of the violated constraint.
func uniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return pqErr.Constraint, true
	}

	return "", false
}

// transactionConflict reports whether err is a serialization failure or a deadlock from pgx or lib/pq.
func transactionConflict(err error) bool {
	var code string

	var pgErr *pgconn.PgError
	var pqErr *pq.Error

	switch {
	case errors.As(err, &pgErr):
		code = pgErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	}

	return code == pgSerializationFailure || code == pgDeadlockDetected
}

var _ circulation.Store = (*Store)(nil)
var _ circulation.Tx = (*pgTx)(nil)
