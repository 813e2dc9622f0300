package borroweditems

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ProjectBorrowedItems joins the patron's open loans with the catalog.
// It is a pure function.
//
// Query Logic:
//
//	GIVEN: the loans of the patron and the catalog entries they reference
//	WHEN: BorrowedItems query is executed
//	THEN: one entry per open loan, in ledger order
//	EXCLUDES: closed loans, and loans whose item is missing from the catalog
func ProjectBorrowedItems(query Query, loans []circulation.Loan, items map[uuid.UUID]circulation.Item) BorrowedItems {
	borrowed := make([]BorrowedItem, 0, len(loans))

	for _, loan := range loans {
		if !loan.IsOpen() || loan.PatronID != query.PatronID {
			continue
		}

		item, found := items[loan.ItemID]
		if !found {
			continue
		}

		borrowed = append(borrowed, BorrowedItem{
			Item:       item,
			LoanID:     loan.ID.String(),
			BorrowDate: loan.BorrowDate,
			DueDate:    loan.DueDate,
			Overdue:    loan.IsOverdue(query.Today),
		})
	}

	return BorrowedItems{
		PatronID: query.PatronID.String(),
		Items:    borrowed,
		Count:    len(borrowed),
	}
}
