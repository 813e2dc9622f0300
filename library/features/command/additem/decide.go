package additem

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	failureReasonDuplicateID = "another item with this id exists"
)

// State is the catalog entry stored under the command's item id, if any.
type State struct {
	Existing circulation.Item
	Exists   bool
}

// Decide implements the business rules for adding an item. It is a pure function.
//
// Business Rules:
//
//	GIVEN: a valid title and author
//	WHEN: AddItem command is received
//	THEN: ItemAddedToCatalog event with an available item
//	INVALID INPUT: title or author is blank
//	IDEMPOTENCY: an item with the same id and metadata exists, nothing to do
//	DUPLICATE ID: an item with the same id but different metadata exists
func Decide(s State, command Command) core.DecisionResult {
	item := command.Item()

	if err := item.Validate(); err != nil {
		return rejected(circulation.OutcomeInvalidInput, core.ValidationReason(err), command)
	}

	if s.Exists {
		if s.Existing.SameMetadata(item) {
			return core.IdempotentDecision()
		}

		return rejected(circulation.OutcomeDuplicateID, failureReasonDuplicateID, command)
	}

	return core.SuccessDecision(core.BuildItemAddedToCatalog(item, command.Today))
}

func rejected(outcome circulation.Outcome, reason string, command Command) core.DecisionResult {
	return core.RejectedDecision(core.BuildAddingItemFailed(outcome, reason, command.Today), outcome)
}
