package searchcatalog

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ProjectSearchResult builds the SearchResult for the items a store returned.
// It is a pure function, nil from the store becomes an empty list.
func ProjectSearchResult(query Query, items []circulation.Item) SearchResult {
	if items == nil {
		items = make([]circulation.Item, 0)
	}

	return SearchResult{
		Criterion: query.Criterion,
		Term:      query.Term,
		Items:     items,
		Count:     len(items),
	}
}
