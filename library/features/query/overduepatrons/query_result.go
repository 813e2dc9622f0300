package overduepatrons

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one overdue loan.
type Entry struct {
	PatronID    uuid.UUID
	PatronName  string
	ItemID      uuid.UUID
	ItemTitle   string
	DueDate     time.Time
	DaysOverdue int
	FineSoFar   decimal.Decimal
}

// OverduePatrons lists the overdue loans in ledger order.
type OverduePatrons struct {
	Today   time.Time
	Entries []Entry
	Count   int
}
