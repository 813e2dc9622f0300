// Package adapters provide database adapter implementations for the PostgreSQL circulation store.
//
// The adapters support pgxpool.Pool, sql.DB, and sqlx.DB behind the common DBAdapter interface.
// Plain reads go to an optional replica when the context asks for eventual consistency,
// everything else (writes and transactions) goes to the primary.
package adapters
