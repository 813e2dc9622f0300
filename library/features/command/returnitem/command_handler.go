package returnitem

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

const (
	notificationReturned = "You have returned '%s'."
	notificationFined    = " A fine of $%s has been applied for the overdue return."
)

// ErrOpenLoanChanged is joined with circulation.ErrTransactionConflict when the open loan of the item
// was replaced between the unlocked and the locked read.
var ErrOpenLoanChanged = errors.New("open loan changed while locking")

// CommandHandler runs the return workflow: Lock -> Decide -> Write -> Notify.
type CommandHandler struct {
	store        circulation.Transactor
	notifier     circulation.Notifier
	fines        circulation.FineCalculator
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithFineCalculator replaces circulation.DefaultFineCalculator.
func WithFineCalculator(fines circulation.FineCalculator) Option {
	return func(h *CommandHandler) {
		h.fines = fines
	}
}

// WithRetryOptions configures how transaction conflicts are retried.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a CommandHandler. A nil notifier disables notifications.
func NewCommandHandler(store circulation.Transactor, notifier circulation.Notifier, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:    store,
		notifier: notifier,
		fines:    circulation.DefaultFineCalculator(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle closes the open loan of the item if there is one.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = circulation.WithStrongConsistency(ctx)

	var (
		decision core.DecisionResult
		state    State
		patron   circulation.Patron
		found    bool
	)

	_, err := shell.RetryOnConflict(ctx, func(ctx context.Context) error {
		return h.store.InTransaction(ctx, func(tx circulation.Tx) error {
			var loadErr error
			if state, patron, found, loadErr = loadState(ctx, tx, command); loadErr != nil {
				return loadErr
			}

			decision = Decide(state, command, h.fines)
			if violation := decision.HasError(); violation != nil {
				return violation
			}

			if !decision.HasStateChange() {
				return nil
			}

			return apply(ctx, tx, state.Item, decision.Event)
		})
	}, h.retryOptions...)
	if err != nil {
		return Result{}, err
	}

	return h.finish(ctx, state, patron, found, decision), nil
}

// loadState finds the borrower first, so that patron and item are locked in the usual order,
// and then reads the open loan again under the locks. If the loan changed hands in between,
// the locked patron is the wrong one and the transaction has to start over.
func loadState(ctx context.Context, tx circulation.Tx, command Command) (State, circulation.Patron, bool, error) {
	var (
		s           State
		patron      circulation.Patron
		patronFound bool
	)

	loan, hasLoan, err := tx.FindOpenLoanByItem(ctx, command.ItemID)
	if err != nil {
		return State{}, circulation.Patron{}, false, err
	}

	if hasLoan {
		if patron, patronFound, err = tx.LockPatron(ctx, loan.PatronID); err != nil {
			return State{}, circulation.Patron{}, false, err
		}
	}

	if s.Item, s.ItemFound, err = tx.LockItem(ctx, command.ItemID); err != nil {
		return State{}, circulation.Patron{}, false, err
	}

	if !s.ItemFound {
		return s, patron, patronFound, nil
	}

	if s.OpenLoan, s.HasOpenLoan, err = tx.FindOpenLoanByItem(ctx, command.ItemID); err != nil {
		return State{}, circulation.Patron{}, false, err
	}

	if s.HasOpenLoan && (!hasLoan || s.OpenLoan.ID != loan.ID) {
		return State{}, circulation.Patron{}, false, errors.Join(circulation.ErrTransactionConflict, ErrOpenLoanChanged)
	}

	return s, patron, patronFound, nil
}

func apply(ctx context.Context, tx circulation.Tx, item circulation.Item, event core.DomainEvent) error {
	returned, ok := event.(core.ItemReturnedByPatron)
	if !ok {
		return fmt.Errorf("unexpected event %s", event.EventName())
	}

	if err := tx.CloseLoan(ctx, returned.Loan.ID, *returned.Loan.ReturnDate, returned.Loan.Fine); err != nil {
		return err
	}

	item.Available = true

	return tx.UpdateItem(ctx, item)
}

func (h CommandHandler) finish(
	ctx context.Context,
	s State,
	patron circulation.Patron,
	patronFound bool,
	decision core.DecisionResult,
) Result {

	switch event := decision.Event.(type) {
	case core.ItemReturnedByPatron:
		item := s.Item
		item.Available = true

		if h.notifier != nil && patronFound {
			h.notifier.Notify(ctx, patron, returnMessage(item, event))
		}

		return Result{
			Outcome:     circulation.OutcomeSuccess,
			Loan:        event.Loan,
			Item:        item,
			Fine:        event.Loan.Fine,
			OverdueDays: event.OverdueDays,
		}

	case core.ReturningItemFailed:
		return Result{Outcome: event.Outcome, Reason: event.Reason}

	default:
		return Result{Outcome: decision.Outcome}
	}
}

func returnMessage(item circulation.Item, event core.ItemReturnedByPatron) string {
	message := fmt.Sprintf(notificationReturned, item.Title)
	if event.HasFine() {
		message += fmt.Sprintf(notificationFined, event.Loan.Fine.StringFixed(2))
	}

	return message
}
