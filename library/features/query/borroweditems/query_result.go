package borroweditems

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// BorrowedItem is one item the patron holds, with the dates of its loan.
type BorrowedItem struct {
	Item       circulation.Item
	LoanID     string
	BorrowDate time.Time
	DueDate    time.Time
	Overdue    bool
}

// BorrowedItems is the list of items the patron holds, in borrowing order.
type BorrowedItems struct {
	PatronID string
	Items    []BorrowedItem
	Count    int
}
