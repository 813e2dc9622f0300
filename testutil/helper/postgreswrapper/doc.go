// Package postgreswrapper creates postgresengine stores for integration tests.
//
// The adapter is chosen with ADAPTER_TYPE (pgx.pool, sql.db, sqlx.db; default pgx.pool).
// Tests are skipped unless CIRCULATION_POSTGRES_TESTS=1, the database is taken from
// CIRCULATION_POSTGRES_DSN.
package postgreswrapper
