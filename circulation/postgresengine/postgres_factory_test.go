package postgresengine_test

import (
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine"
)

func Test_FactoryFunctions_RejectNilConnections(t *testing.T) {
	testCases := []struct {
		description string
		create      func() (*postgresengine.Store, error)
	}{
		{
			description: "pgx pool",
			create:      func() (*postgresengine.Store, error) { return postgresengine.NewStoreFromPGXPool(nil) },
		},
		{
			description: "pgx pool with nil replica",
			create: func() (*postgresengine.Store, error) {
				return postgresengine.NewStoreFromPGXPoolWithReplica(&pgxpool.Pool{}, nil)
			},
		},
		{
			description: "sql.DB",
			create:      func() (*postgresengine.Store, error) { return postgresengine.NewStoreFromSQLDB(nil) },
		},
		{
			description: "sql.DB with nil replica",
			create: func() (*postgresengine.Store, error) {
				return postgresengine.NewStoreFromSQLDBWithReplica(&sql.DB{}, nil)
			},
		},
		{
			description: "sqlx.DB",
			create:      func() (*postgresengine.Store, error) { return postgresengine.NewStoreFromSQLX(nil) },
		},
		{
			description: "sqlx.DB with nil replica",
			create: func() (*postgresengine.Store, error) {
				return postgresengine.NewStoreFromSQLXWithReplica(&sqlx.DB{}, nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			store, err := tc.create()

			// assert
			assert.ErrorIs(t, err, circulation.ErrNilDatabaseConnection)
			assert.Nil(t, store)
		})
	}
}

func Test_FactoryFunctions_AcceptOptions(t *testing.T) {
	// act
	store, err := postgresengine.NewStoreFromSQLDB(
		&sql.DB{},
		postgresengine.WithLogger(nil),
		postgresengine.WithMetrics(nil),
		postgresengine.WithTracing(nil),
		postgresengine.WithContextualLogger(nil),
	)

	// assert
	assert.NoError(t, err)
	assert.NotNil(t, store)
}
