package memengine

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithSnapshotFile persists the state to path after every committed transaction.
// An existing file is loaded when the Store is created.
func WithSnapshotFile(path string) Option {
	return func(s *Store) error {
		if path == "" {
			return ErrEmptySnapshotFile
		}

		s.snapshotFile = path

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: transaction commits and rollbacks
// Info level: snapshot loading
// Error level: snapshot persistence failures.
func WithLogger(logger circulation.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It is preferred over the plain Logger when both are set.
func WithContextualLogger(logger circulation.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}
