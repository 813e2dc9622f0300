package borrowitem

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	failureReasonItemNotFound   = "item is not in the catalog"
	failureReasonPatronNotFound = "patron is not registered"
	failureReasonUnavailable    = "item is currently on loan"
	failureReasonLimitReached   = "patron has reached the borrowing limit of %d items"
)

var (
	errAvailableWithOpenLoan  = errors.New("item is flagged available but has an open loan")
	errUnavailableWithoutLoan = errors.New("item is flagged unavailable but has no open loan")
)

// State is what Decide needs to know, read inside the borrowing transaction.
type State struct {
	Item            circulation.Item
	ItemFound       bool
	Patron          circulation.Patron
	PatronFound     bool
	ItemHasOpenLoan bool
	PatronOpenLoans int
}

// Decide implements the business rules for borrowing an item. It is a pure function.
//
// Business Rules (checked in this order, the first failure wins):
//
//	GIVEN: an item with ItemID and the patron of the session
//	WHEN: BorrowItem command is received
//	THEN: ItemLentToPatron event with an open loan, due LoanPeriodDays after today
//	NOT FOUND: the item is not in the catalog, or the patron is no longer registered
//	VIOLATION: the availability flag contradicts the ledger
//	UNAVAILABLE: the item has an open loan
//	LIMIT REACHED: a Standard patron already holds StandardBorrowLimit open loans, Staff patrons have no limit
func Decide(s State, command Command, loanID uuid.UUID) core.DecisionResult {
	if !s.ItemFound {
		return rejected(circulation.OutcomeNotFound, failureReasonItemNotFound, command)
	}

	if !s.PatronFound {
		return rejected(circulation.OutcomeNotFound, failureReasonPatronNotFound, command)
	}

	if s.Item.Available && s.ItemHasOpenLoan {
		return core.ViolationDecision(errAvailableWithOpenLoan)
	}

	if !s.Item.Available && !s.ItemHasOpenLoan {
		return core.ViolationDecision(errUnavailableWithoutLoan)
	}

	if !s.Item.Available {
		return rejected(circulation.OutcomeUnavailable, failureReasonUnavailable, command)
	}

	if limit, limited := circulation.BorrowLimit(s.Patron.Category); limited && s.PatronOpenLoans >= limit {
		return rejected(circulation.OutcomeLimitReached, fmt.Sprintf(failureReasonLimitReached, limit), command)
	}

	loan := circulation.BuildLoan(loanID, s.Patron.ID, s.Item.ID, command.Today)

	return core.SuccessDecision(core.BuildItemLentToPatron(loan))
}

func rejected(outcome circulation.Outcome, reason string, command Command) core.DecisionResult {
	return core.RejectedDecision(core.BuildLendingItemFailed(outcome, reason, command.Today), outcome)
}
