package returnitem

import (
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	failureReasonItemNotFound = "item is not in the catalog"
	failureReasonNoActiveLoan = "item has no active loan"
)

var (
	errAvailableWithOpenLoan  = errors.New("item is flagged available but has an open loan")
	errUnavailableWithoutLoan = errors.New("item is flagged unavailable but has no open loan")
)

// State is what Decide needs to know, read inside the returning transaction.
type State struct {
	Item        circulation.Item
	ItemFound   bool
	OpenLoan    circulation.Loan
	HasOpenLoan bool
}

// Decide implements the business rules for returning an item. It is a pure function.
//
// Business Rules:
//
//	GIVEN: an item with ItemID which has an open loan
//	WHEN: ReturnItem command is received
//	THEN: ItemReturnedByPatron event with the closed loan, fined for each day past the due date
//	NOT FOUND: the item is not in the catalog
//	VIOLATION: the availability flag contradicts the ledger
//	NO ACTIVE LOAN: the item has no open loan
func Decide(s State, command Command, fines circulation.FineCalculator) core.DecisionResult {
	if !s.ItemFound {
		return rejected(circulation.OutcomeNotFound, failureReasonItemNotFound, command)
	}

	if s.Item.Available && s.HasOpenLoan {
		return core.ViolationDecision(errAvailableWithOpenLoan)
	}

	if !s.Item.Available && !s.HasOpenLoan {
		return core.ViolationDecision(errUnavailableWithoutLoan)
	}

	if !s.HasOpenLoan {
		return rejected(circulation.OutcomeNoActiveLoan, failureReasonNoActiveLoan, command)
	}

	returnDate := command.Today
	fine := fines.CalculateFine(s.OpenLoan.DueDate, &returnDate)

	return core.SuccessDecision(core.BuildItemReturnedByPatron(s.OpenLoan.Closed(returnDate, fine)))
}

func rejected(outcome circulation.Outcome, reason string, command Command) core.DecisionResult {
	return core.RejectedDecision(core.BuildReturningItemFailed(outcome, reason, command.Today), outcome)
}
