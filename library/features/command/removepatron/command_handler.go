package removepatron

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// CommandHandler runs the remove workflow: Lock -> Decide -> Write.
type CommandHandler struct {
	store circulation.Transactor
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(store circulation.Transactor) CommandHandler {
	return CommandHandler{store: store}
}

// Handle deletes the patron unless it is unknown or still holds loans.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = circulation.WithStrongConsistency(ctx)

	var (
		decision core.DecisionResult
		state    State
	)

	err := h.store.InTransaction(ctx, func(tx circulation.Tx) error {
		var loadErr error
		if state.Patron, state.Found, loadErr = tx.LockPatron(ctx, command.PatronID); loadErr != nil {
			return loadErr
		}

		if state.Found {
			loans, err := tx.FindLoansByPatron(ctx, command.PatronID)
			if err != nil {
				return err
			}

			for _, loan := range loans {
				if loan.IsOpen() {
					state.OpenLoans++
				}
			}
		}

		decision = Decide(state, command)
		if !decision.HasStateChange() {
			return nil
		}

		return tx.DeletePatron(ctx, command.PatronID)
	})
	if err != nil {
		return Result{}, err
	}

	switch event := decision.Event.(type) {
	case core.PatronRemoved:
		return Result{Outcome: circulation.OutcomeSuccess, Patron: event.Patron}, nil
	case core.RemovingPatronFailed:
		return Result{Outcome: event.Outcome, Reason: event.Reason}, nil
	default:
		return Result{Outcome: decision.Outcome}, nil
	}
}
