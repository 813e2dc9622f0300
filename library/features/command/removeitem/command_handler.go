package removeitem

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

// Handle deletes the item unless it is unknown or on loan.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = circulation.WithStrongConsistency(ctx)

	var (
		decision core.DecisionResult
		state    State
	)

	err := h.store.InTransaction(ctx, func(tx circulation.Tx) error {
		var loadErr error
		if state.Item, state.ItemFound, loadErr = tx.LockItem(ctx, command.ItemID); loadErr != nil {
			return loadErr
		}

		if state.ItemFound {
			if _, state.HasOpenLoan, loadErr = tx.FindOpenLoanByItem(ctx, command.ItemID); loadErr != nil {
				return loadErr
			}
		}

		decision = Decide(state, command)
		if !decision.HasStateChange() {
			return nil
		}

		return tx.DeleteItem(ctx, command.ItemID)
	})
	if err != nil {
		return Result{}, err
	}

	switch event := decision.Event.(type) {
	case core.ItemRemovedFromCatalog:
		return Result{Outcome: circulation.OutcomeSuccess, Item: event.Item}, nil
	case core.RemovingItemFailed:
		return Result{Outcome: event.Outcome, Reason: event.Reason}, nil
	default:
		return Result{Outcome: decision.Outcome}, nil
	}
}
