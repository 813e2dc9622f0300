package mostborrowed

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Store is what the QueryHandler reads from.
type Store interface {
	circulation.CatalogReader
	circulation.LedgerReader
}

// QueryHandler builds the most borrowed report.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle reads the whole ledger and catalog. Reports tolerate replica lag.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MostBorrowed, error) {
	ctx = circulation.WithEventualConsistency(ctx)

	loans, err := h.store.FindAllLoans(ctx)
	if err != nil {
		return MostBorrowed{}, err
	}

	all, err := h.store.FindAllItems(ctx)
	if err != nil {
		return MostBorrowed{}, err
	}

	items := make(map[uuid.UUID]circulation.Item, len(all))
	for _, item := range all {
		items[item.ID] = item
	}

	return ProjectMostBorrowed(query, loans, items), nil
}
