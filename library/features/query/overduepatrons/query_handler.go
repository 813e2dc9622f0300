package overduepatrons

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store is what the QueryHandler reads from.
type Store interface {
	circulation.CatalogReader
	circulation.PatronReader
	circulation.LedgerReader
}

// QueryHandler builds the overdue report.
type QueryHandler struct {
	store Store
	fines circulation.FineCalculator
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithFineCalculator replaces circulation.DefaultFineCalculator for the accrued fines.
func WithFineCalculator(fines circulation.FineCalculator) Option {
	return func(h *QueryHandler) {
		h.fines = fines
	}
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(store Store, opts ...Option) QueryHandler {
	handler := QueryHandler{store: store, fines: circulation.DefaultFineCalculator()}
	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle reads ledger, registry and catalog. Reports tolerate replica lag.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OverduePatrons, error) {
	ctx = circulation.WithEventualConsistency(ctx)

	loans, err := h.store.FindAllLoans(ctx)
	if err != nil {
		return OverduePatrons{}, err
	}

	allPatrons, err := h.store.FindAllPatrons(ctx)
	if err != nil {
		return OverduePatrons{}, err
	}

	allItems, err := h.store.FindAllItems(ctx)
	if err != nil {
		return OverduePatrons{}, err
	}

	patrons := make(map[uuid.UUID]circulation.Patron, len(allPatrons))
	for _, patron := range allPatrons {
		patrons[patron.ID] = patron
	}

	items := make(map[uuid.UUID]circulation.Item, len(allItems))
	for _, item := range allItems {
		items[item.ID] = item
	}

	return ProjectOverduePatrons(query, loans, patrons, items, h.fines), nil
}
