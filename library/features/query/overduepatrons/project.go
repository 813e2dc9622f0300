package overduepatrons

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ProjectOverduePatrons selects the overdue loans and joins them with patrons and items.
// It is a pure function.
//
// Query Logic:
//
//	GIVEN: all loans of the ledger, the patron registry and the catalog
//	WHEN: OverduePatrons query is executed
//	THEN: one entry per open loan due strictly before today, with the fine accrued so far
//	EXCLUDES: loans whose patron or item is missing
func ProjectOverduePatrons(
	query Query,
	loans []circulation.Loan,
	patrons map[uuid.UUID]circulation.Patron,
	items map[uuid.UUID]circulation.Item,
	fines circulation.FineCalculator,
) OverduePatrons {

	entries := make([]Entry, 0)
	today := query.Today

	for _, loan := range loans {
		if !loan.IsOverdue(today) {
			continue
		}

		patron, patronFound := patrons[loan.PatronID]
		item, itemFound := items[loan.ItemID]
		if !patronFound || !itemFound {
			continue
		}

		entries = append(entries, Entry{
			PatronID:    patron.ID,
			PatronName:  patron.Name,
			ItemID:      item.ID,
			ItemTitle:   item.Title,
			DueDate:     loan.DueDate,
			DaysOverdue: circulation.DaysBetween(loan.DueDate, today),
			FineSoFar:   fines.CalculateFine(loan.DueDate, &today),
		})
	}

	return OverduePatrons{Today: today, Entries: entries, Count: len(entries)}
}
