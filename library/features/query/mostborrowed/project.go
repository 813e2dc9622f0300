package mostborrowed

import (
	"slices"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ProjectMostBorrowed counts loans per item and ranks the items. It is a pure function.
//
// Query Logic:
//
//	GIVEN: all loans of the ledger, in insertion order, and the catalog
//	WHEN: MostBorrowed query is executed
//	THEN: items ordered by loan count descending, ties in order of their first loan
//	EXCLUDES: items which are no longer in the catalog
func ProjectMostBorrowed(query Query, loans []circulation.Loan, items map[uuid.UUID]circulation.Item) MostBorrowed {
	counts := make(map[uuid.UUID]int)
	firstSeen := make([]uuid.UUID, 0)

	for _, loan := range loans {
		if _, seen := counts[loan.ItemID]; !seen {
			firstSeen = append(firstSeen, loan.ItemID)
		}
		counts[loan.ItemID]++
	}

	entries := make([]Entry, 0, len(firstSeen))
	for _, itemID := range firstSeen {
		item, found := items[itemID]
		if !found {
			continue
		}

		entries = append(entries, Entry{
			ItemID:      itemID,
			Title:       item.Title,
			Author:      item.Author,
			BorrowCount: counts[itemID],
		})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.BorrowCount - a.BorrowCount
	})

	if query.Limit > 0 && len(entries) > query.Limit {
		entries = entries[:query.Limit]
	}

	return MostBorrowed{Entries: entries, Count: len(entries)}
}
