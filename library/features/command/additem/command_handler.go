package additem

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// CommandHandler runs the add workflow: Query -> Decide -> Write.
type CommandHandler struct {
	store circulation.Transactor
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(store circulation.Transactor) CommandHandler {
	return CommandHandler{store: store}
}

// Handle adds the item unless it is invalid or its id is taken.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = circulation.WithStrongConsistency(ctx)

	var (
		decision core.DecisionResult
		state    State
	)

	err := h.store.InTransaction(ctx, func(tx circulation.Tx) error {
		var loadErr error
		if state.Existing, state.Exists, loadErr = tx.FindItemByID(ctx, command.ItemID); loadErr != nil {
			return loadErr
		}

		decision = Decide(state, command)
		if !decision.HasStateChange() {
			return nil
		}

		added, ok := decision.Event.(core.ItemAddedToCatalog)
		if !ok {
			return fmt.Errorf("unexpected event %s", decision.Event.EventName())
		}

		return tx.AddItem(ctx, added.Item)
	})

	switch {
	case errors.Is(err, circulation.ErrDuplicateID):
		// a concurrent add of the same id won the race
		return Result{Outcome: circulation.OutcomeDuplicateID, Reason: failureReasonDuplicateID}, nil
	case err != nil:
		return Result{}, err
	}

	switch event := decision.Event.(type) {
	case core.ItemAddedToCatalog:
		return Result{Outcome: circulation.OutcomeSuccess, Item: event.Item}, nil
	case core.AddingItemFailed:
		return Result{Outcome: event.Outcome, Reason: event.Reason}, nil
	default:
		return Result{Outcome: decision.Outcome, Item: state.Existing}, nil
	}
}
