package core

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	ItemLentToPatronEventName  = "ItemLentToPatron"
	LendingItemFailedEventName = "LendingItemFailed"
)

// ItemLentToPatron is the result of a successful borrow.
type ItemLentToPatron struct {
	SomethingHasHappened
	Loan circulation.Loan
}

// BuildItemLentToPatron creates an ItemLentToPatron event for the loan.
func BuildItemLentToPatron(loan circulation.Loan) ItemLentToPatron {
	return ItemLentToPatron{
		SomethingHasHappened: OccurredOnDay(loan.BorrowDate),
		Loan:                 loan,
	}
}

func (ItemLentToPatron) EventName() string  { return ItemLentToPatronEventName }
func (ItemLentToPatron) IsErrorEvent() bool { return false }

// LendingItemFailed is the result of a rejected borrow.
type LendingItemFailed struct {
	SomethingHasFailed
}

// BuildLendingItemFailed creates a LendingItemFailed event.
func BuildLendingItemFailed(outcome circulation.Outcome, reason string, today time.Time) LendingItemFailed {
	return LendingItemFailed{SomethingHasFailed: failed(outcome, reason, today)}
}

func (LendingItemFailed) EventName() string { return LendingItemFailedEventName }
