package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

// Adapter type constants, selected with the ADAPTER_TYPE environment variable.
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const (
	envEnablePostgresTests = "CIRCULATION_POSTGRES_TESTS"
	truncateStatement      = "TRUNCATE TABLE loans, items, patrons, categories RESTART IDENTITY"
)

// Wrapper abstracts over the different database adapters.
type Wrapper interface {
	GetStore() *postgresengine.Store
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing.
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store *postgresengine.Store
}

func (w *PGXPoolWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing.
type SQLDBWrapper struct {
	db    *sql.DB
	store *postgresengine.Store
}

func (w *SQLDBWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing.
type SQLXWrapper struct {
	db    *sqlx.DB
	store *postgresengine.Store
}

func (w *SQLXWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// Enabled reports whether the PostgreSQL integration tests should run.
func Enabled() bool {
	return os.Getenv(envEnablePostgresTests) == "1"
}

// SkipUnlessEnabled skips the test unless CIRCULATION_POSTGRES_TESTS=1.
func SkipUnlessEnabled(t testing.TB) {
	t.Helper()

	if !Enabled() {
		t.Skip("set " + envEnablePostgresTests + "=1 to run the PostgreSQL integration tests")
	}
}

// CreateWrapperWithTestConfig creates the wrapper for the adapter named in ADAPTER_TYPE,
// ensures the schema and empties all tables. The wrapper is closed when the test ends.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()
	SkipUnlessEnabled(t)

	wrapper := createWrapper(t, config.PostgresDSN(), options)
	t.Cleanup(wrapper.Close)

	require.NoError(t, wrapper.GetStore().EnsureSchema(context.Background()), "error ensuring the schema")
	CleanUp(t, wrapper)

	return wrapper
}

func createWrapper(t testing.TB, dsn string, options []postgresengine.Option) Wrapper {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch engineTypeFromEnv {
	case typePGXPool, "":
		poolConfig, err := config.PostgresPGXPoolConfig(dsn, config.TestPoolSettings())
		require.NoError(t, err, "error parsing the test DSN")

		connPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
		require.NoError(t, err, "error connecting to DB pool in test setup")

		store, err := postgresengine.NewStoreFromPGXPool(connPool, options...)
		require.NoError(t, err, "error creating store")

		return &PGXPoolWrapper{pool: connPool, store: store}

	case typeSQLDB:
		db, err := config.PostgresSQLDBConfig(context.Background(), dsn, config.TestPoolSettings())
		require.NoError(t, err, "error connecting to DB in test setup")

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating store")

		return &SQLDBWrapper{db: db, store: store}

	case typeSQLXDB:
		db, err := config.PostgresSQLXConfig(context.Background(), dsn, config.TestPoolSettings())
		require.NoError(t, err, "error connecting to DB in test setup")

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating store")

		return &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}

// CleanUp empties all tables of the given wrapper.
func CleanUp(t testing.TB, wrapper Wrapper) {
	var err error

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err = w.pool.Exec(context.Background(), truncateStatement)

	case *SQLDBWrapper:
		_, err = w.db.Exec(truncateStatement)

	case *SQLXWrapper:
		_, err = w.db.Exec(truncateStatement)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}

	require.NoError(t, err, "error cleaning up the tables")
}
