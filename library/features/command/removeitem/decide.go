package removeitem

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	failureReasonItemNotFound = "item is not in the catalog"
	failureReasonOnLoan       = "item is currently on loan"
)

// State is what Decide needs to know about the item.
type State struct {
	Item        circulation.Item
	ItemFound   bool
	HasOpenLoan bool
}

// Decide implements the business rules for removing an item. It is a pure function.
//
// Business Rules:
//
//	GIVEN: an item in the catalog without an open loan
//	WHEN: RemoveItem command is received
//	THEN: ItemRemovedFromCatalog event
//	NOT FOUND: the item is not in the catalog
//	HAS OPEN LOAN: the item is on loan, either per ledger or per availability flag
func Decide(s State, command Command) core.DecisionResult {
	if !s.ItemFound {
		return rejected(circulation.OutcomeNotFound, failureReasonItemNotFound, command)
	}

	if s.HasOpenLoan || !s.Item.Available {
		return rejected(circulation.OutcomeHasOpenLoan, failureReasonOnLoan, command)
	}

	return core.SuccessDecision(core.BuildItemRemovedFromCatalog(s.Item, command.Today))
}

func rejected(outcome circulation.Outcome, reason string, command Command) core.DecisionResult {
	return core.RejectedDecision(core.BuildRemovingItemFailed(outcome, reason, command.Today), outcome)
}
