// Package helper provides test fixtures and observability test doubles for the
// circulation packages: spies for slog records, metrics, spans, contextual logs,
// and notifications, plus helpers that arrange catalog, patron, and loan data.
package helper
