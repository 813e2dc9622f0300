package circulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanPeriodDays is the number of days between borrow date and due date.
const LoanPeriodDays = 14

// Loan records one item lent to one patron.
// It is OPEN while ReturnDate is nil and CLOSED afterward. A closed loan never changes again.
type Loan struct {
	ID         uuid.UUID       `json:"id"`
	PatronID   uuid.UUID       `json:"patron_id"`
	ItemID     uuid.UUID       `json:"item_id"`
	BorrowDate time.Time       `json:"borrow_date"`
	DueDate    time.Time       `json:"due_date"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
	Fine       decimal.Decimal `json:"fine"`
}

// BuildLoan creates an open loan, due LoanPeriodDays after the borrow date.
func BuildLoan(id uuid.UUID, patronID uuid.UUID, itemID uuid.UUID, borrowDate time.Time) Loan {
	borrowDate = ToDate(borrowDate)

	return Loan{
		ID:         id,
		PatronID:   patronID,
		ItemID:     itemID,
		BorrowDate: borrowDate,
		DueDate:    DueDateFor(borrowDate),
		Fine:       decimal.Zero,
	}
}

// DueDateFor returns the due date of a loan borrowed on the given day.
func DueDateFor(borrowDate time.Time) time.Time {
	return ToDate(borrowDate).AddDate(0, 0, LoanPeriodDays)
}

// IsOpen reports whether the loan has not been returned yet.
func (l Loan) IsOpen() bool {
	return l.ReturnDate == nil
}

// IsOverdue reports whether the loan is open and its due date lies strictly before today.
func (l Loan) IsOverdue(today time.Time) bool {
	return l.IsOpen() && l.DueDate.Before(ToDate(today))
}

// Closed returns a copy of the loan with return date and fine set.
func (l Loan) Closed(returnDate time.Time, fine decimal.Decimal) Loan {
	rd := ToDate(returnDate)
	l.ReturnDate = &rd
	l.Fine = fine

	return l
}
