package registerpatron

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	failureReasonDuplicateID = "another patron with this id exists"
)

// State is the patron stored under the command's patron id, if any.
type State struct {
	Existing circulation.Patron
	Exists   bool
}

// Decide implements the business rules for registering a patron. It is a pure function.
//
// Business Rules:
//
//	GIVEN: a non-blank name and a valid category
//	WHEN: RegisterPatron command is received
//	THEN: PatronRegistered event
//	INVALID INPUT: blank name, Staff without staff id, or unknown category
//	IDEMPOTENCY: the same patron is already registered
//	DUPLICATE ID: another patron is registered under the id
func Decide(s State, command Command) core.DecisionResult {
	patron := command.Patron()

	if err := patron.Validate(); err != nil {
		return rejected(circulation.OutcomeInvalidInput, core.ValidationReason(err), command)
	}

	if s.Exists {
		if s.Existing.Equal(patron) {
			return core.IdempotentDecision()
		}

		return rejected(circulation.OutcomeDuplicateID, failureReasonDuplicateID, command)
	}

	return core.SuccessDecision(core.BuildPatronRegistered(patron, command.Today))
}

func rejected(outcome circulation.Outcome, reason string, command Command) core.DecisionResult {
	return core.RejectedDecision(core.BuildRegisteringPatronFailed(outcome, reason, command.Today), outcome)
}
