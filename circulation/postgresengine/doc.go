// Package postgresengine provides a PostgreSQL implementation of circulation.Store.
//
// All circulation tables live in one database, so a checkout
// or a return is a single database transaction. A partial unique index on the open loans of
// an item guarantees that an item is never lent twice, even under concurrent checkouts.
//
// Supported database adapters are pgxpool.Pool, sql.DB (lib/pq), and sqlx.DB.
// Each can be combined with a replica which serves reads made with an eventually
// consistent context, see circulation.WithEventualConsistency.
//
// Usage examples:
//
//	poolConfig, _ := config.PostgresPGXPoolConfig(dsn, config.CLIPoolSettings())
//	pool, _ := pgxpool.NewWithConfig(ctx, poolConfig)
//	store, _ := postgresengine.NewStoreFromPGXPool(
//		pool,
//		postgresengine.WithLogger(slog.Default()),
//	)
//	_ = store.EnsureSchema(ctx)
//
//	err := store.InTransaction(ctx, func(tx circulation.Tx) error {
//		return tx.AddItem(ctx, circulation.BuildItem(id, "The Hobbit", "J.R.R. Tolkien", 1))
//	})
package postgresengine
