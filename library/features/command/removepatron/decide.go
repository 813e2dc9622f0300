package removepatron

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	failureReasonPatronNotFound = "patron is not registered"
	failureReasonHasOpenLoans   = "patron still holds %d open loans"
)

// State is what Decide needs to know about the patron.
type State struct {
	Patron    circulation.Patron
	Found     bool
	OpenLoans int
}

// Decide implements the business rules for removing a patron. It is a pure function.
//
// Business Rules:
//
//	GIVEN: a registered patron without open loans
//	WHEN: RemovePatron command is received
//	THEN: PatronRemoved event, the patron's closed loans stay in the ledger
//	NOT FOUND: the patron is not registered
//	HAS OPEN LOAN: the patron holds at least one open loan
func Decide(s State, command Command) core.DecisionResult {
	if !s.Found {
		return rejected(circulation.OutcomeNotFound, failureReasonPatronNotFound, command)
	}

	if s.OpenLoans > 0 {
		return rejected(circulation.OutcomeHasOpenLoan, fmt.Sprintf(failureReasonHasOpenLoans, s.OpenLoans), command)
	}

	return core.SuccessDecision(core.BuildPatronRemoved(s.Patron, command.Today))
}

func rejected(outcome circulation.Outcome, reason string, command Command) core.DecisionResult {
	return core.RejectedDecision(core.BuildRemovingPatronFailed(outcome, reason, command.Today), outcome)
}
