// Package memengine provides an in-memory implementation of circulation.Store.
//
// All state lives in one structure guarded by a sync.RWMutex. Reads take the read lock,
// a transaction takes the write lock and works on a copy of the state which replaces the
// current state only when the transaction function succeeds. Concurrent transactions are
// therefore fully serialized, which trivially serializes borrow and return per item.
//
// Optionally the state is persisted to a JSON snapshot file after every committed
// transaction and loaded again on construction:
//
//	store, err := memengine.NewStore(
//		memengine.WithSnapshotFile("library.json"),
//		memengine.WithLogger(slog.Default()),
//	)
package memengine
