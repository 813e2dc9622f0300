package searchcatalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ErrUnknownCriterion is returned for a Query which was not built with one of the Build functions.
var ErrUnknownCriterion = errors.New("unknown search criterion")

// QueryHandler runs catalog searches.
type QueryHandler struct {
	catalog circulation.CatalogReader
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(catalog circulation.CatalogReader) QueryHandler {
	return QueryHandler{catalog: catalog}
}

// Handle runs the search. Searches tolerate replica lag, so they read with eventual consistency.
func (h QueryHandler) Handle(ctx context.Context, query Query) (SearchResult, error) {
	ctx = circulation.WithEventualConsistency(ctx)

	var (
		items []circulation.Item
		err   error
	)

	switch query.Criterion {
	case ByTitle:
		items, err = h.catalog.FindItemsByTitle(ctx, query.Term)
	case ByAuthor:
		items, err = h.catalog.FindItemsByAuthor(ctx, query.Term)
	case AvailableOnly:
		items, err = h.catalog.FindAvailableItems(ctx)
	default:
		return SearchResult{}, errors.Join(circulation.ErrInvalidInput, ErrUnknownCriterion, fmt.Errorf("criterion %q", query.Criterion))
	}

	if err != nil {
		return SearchResult{}, err
	}

	return ProjectSearchResult(query, items), nil
}
