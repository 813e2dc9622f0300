package adapters

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Querier executes fully interpolated SQL statements.
type Querier interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBAdapter defines the interface for database operations needed by the circulation store.
type DBAdapter interface {
	Querier
	BeginTx(ctx context.Context) (DBTx, error)
}

// DBTx is an open transaction on the primary database.
type DBTx interface {
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}

func readsFromReplica(ctx context.Context, hasReplica bool) bool {
	return hasReplica && circulation.GetConsistencyLevel(ctx) == circulation.EventualConsistency
}
