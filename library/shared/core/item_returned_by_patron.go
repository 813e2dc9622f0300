package core

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	ItemReturnedByPatronEventName = "ItemReturnedByPatron"
	ReturningItemFailedEventName  = "ReturningItemFailed"
)

// ItemReturnedByPatron is the result of a successful return. Loan is the closed loan.
type ItemReturnedByPatron struct {
	SomethingHasHappened
	Loan        circulation.Loan
	OverdueDays int
}

// BuildItemReturnedByPatron creates an ItemReturnedByPatron event for the closed loan.
func BuildItemReturnedByPatron(closedLoan circulation.Loan) ItemReturnedByPatron {
	returnDate := closedLoan.DueDate
	if closedLoan.ReturnDate != nil {
		returnDate = *closedLoan.ReturnDate
	}

	return ItemReturnedByPatron{
		SomethingHasHappened: OccurredOnDay(returnDate),
		Loan:                 closedLoan,
		OverdueDays:          max(0, circulation.DaysBetween(closedLoan.DueDate, returnDate)),
	}
}

func (ItemReturnedByPatron) EventName() string  { return ItemReturnedByPatronEventName }
func (ItemReturnedByPatron) IsErrorEvent() bool { return false }

// HasFine reports whether the return was late and a fine was charged.
func (e ItemReturnedByPatron) HasFine() bool {
	return e.Loan.Fine.IsPositive()
}

// ReturningItemFailed is the result of a rejected return.
type ReturningItemFailed struct {
	SomethingHasFailed
}

// BuildReturningItemFailed creates a ReturningItemFailed event.
func BuildReturningItemFailed(outcome circulation.Outcome, reason string, today time.Time) ReturningItemFailed {
	return ReturningItemFailed{SomethingHasFailed: failed(outcome, reason, today)}
}

func (ReturningItemFailed) EventName() string { return ReturningItemFailedEventName }
