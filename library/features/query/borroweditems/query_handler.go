package borroweditems

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

// QueryHandler lists the items a patron holds.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle reads the patron's loans and the referenced items.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BorrowedItems, error) {
	ctx = circulation.WithEventualConsistency(ctx)

	loans, err := h.store.FindLoansByPatron(ctx, query.PatronID)
	if err != nil {
		return BorrowedItems{}, err
	}

	items := make(map[uuid.UUID]circulation.Item)
	for _, loan := range loans {
		if !loan.IsOpen() {
			continue
		}

		item, found, err := h.store.FindItemByID(ctx, loan.ItemID)
		if err != nil {
			return BorrowedItems{}, err
		}

		if found {
			items[item.ID] = item
		}
	}

	return ProjectBorrowedItems(query, loans, items), nil
}
