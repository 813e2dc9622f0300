package registerpatron

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// CommandHandler runs the registration workflow: Query -> Decide -> Write.
type CommandHandler struct {
	store circulation.Transactor
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(store circulation.Transactor) CommandHandler {
	return CommandHandler{store: store}
}

// Handle registers the patron unless the input is invalid or the id is taken.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = circulation.WithStrongConsistency(ctx)

	var (
		decision core.DecisionResult
		state    State
	)

	err := h.store.InTransaction(ctx, func(tx circulation.Tx) error {
		var loadErr error
		if state.Existing, state.Exists, loadErr = tx.FindPatronByID(ctx, command.PatronID); loadErr != nil {
			return loadErr
		}

		decision = Decide(state, command)
		if !decision.HasStateChange() {
			return nil
		}

		registered, ok := decision.Event.(core.PatronRegistered)
		if !ok {
			return fmt.Errorf("unexpected event %s", decision.Event.EventName())
		}

		return tx.AddPatron(ctx, registered.Patron)
	})

	switch {
	case errors.Is(err, circulation.ErrDuplicateID):
		// a concurrent registration of the same id won the race
		return Result{Outcome: circulation.OutcomeDuplicateID, Reason: failureReasonDuplicateID}, nil
	case err != nil:
		return Result{}, err
	}

	switch event := decision.Event.(type) {
	case core.PatronRegistered:
		return Result{Outcome: circulation.OutcomeSuccess, Patron: event.Patron}, nil
	case core.RegisteringPatronFailed:
		return Result{Outcome: event.Outcome, Reason: event.Reason}, nil
	default:
		return Result{Outcome: decision.Outcome, Patron: state.Existing}, nil
	}
}
