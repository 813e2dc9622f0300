package borrowitem

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

const notificationBorrowed = "You have successfully borrowed '%s'. Due date: %s"

// ErrGeneratingLoanIDFailed is returned when no uuid could be generated for the new loan.
var ErrGeneratingLoanIDFailed = errors.New("generating loan id failed")

// CommandHandler runs the borrow workflow: Lock -> Decide -> Write -> Notify.
// Observability is added by wrapping it with observable.CommandWrapper.
type CommandHandler struct {
	store        circulation.Transactor
	notifier     circulation.Notifier
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

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
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle lends the item if the rules allow it. Business rejections are returned as Result.Outcome,
// the error is reserved for store failures and invariant violations.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	loanID, err := uuid.NewV7()
	if err != nil {
		return Result{}, errors.Join(ErrGeneratingLoanIDFailed, err)
	}

	ctx = circulation.WithStrongConsistency(ctx)

	var (
		decision core.DecisionResult
		state    State
	)

	_, err = shell.RetryOnConflict(ctx, func(ctx context.Context) error {
		return h.store.InTransaction(ctx, func(tx circulation.Tx) error {
			var loadErr error
			if state, loadErr = loadState(ctx, tx, command); loadErr != nil {
				return loadErr
			}

			decision = Decide(state, command, loanID)
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

	return h.finish(ctx, state, decision), nil
}

// loadState locks the patron before the item, the lock order every circulation transaction uses.
func loadState(ctx context.Context, tx circulation.Tx, command Command) (State, error) {
	var (
		s   State
		err error
	)

	if s.Patron, s.PatronFound, err = tx.LockPatron(ctx, command.Session.PatronID); err != nil {
		return State{}, err
	}

	if s.Item, s.ItemFound, err = tx.LockItem(ctx, command.ItemID); err != nil {
		return State{}, err
	}

	if !s.ItemFound || !s.PatronFound {
		return s, nil
	}

	if _, s.ItemHasOpenLoan, err = tx.FindOpenLoanByItem(ctx, command.ItemID); err != nil {
		return State{}, err
	}

	loans, err := tx.FindLoansByPatron(ctx, command.Session.PatronID)
	if err != nil {
		return State{}, err
	}

	for _, loan := range loans {
		if loan.IsOpen() {
			s.PatronOpenLoans++
		}
	}

	return s, nil
}

func apply(ctx context.Context, tx circulation.Tx, item circulation.Item, event core.DomainEvent) error {
	lent, ok := event.(core.ItemLentToPatron)
	if !ok {
		return fmt.Errorf("unexpected event %s", event.EventName())
	}

	if err := tx.RecordLoan(ctx, lent.Loan); err != nil {
		return err
	}

	item.Available = false

	return tx.UpdateItem(ctx, item)
}

func (h CommandHandler) finish(ctx context.Context, s State, decision core.DecisionResult) Result {
	switch event := decision.Event.(type) {
	case core.ItemLentToPatron:
		item := s.Item
		item.Available = false

		if h.notifier != nil {
			h.notifier.Notify(ctx, s.Patron, fmt.Sprintf(notificationBorrowed, item.Title, circulation.FormatDate(event.Loan.DueDate)))
		}

		return Result{Outcome: circulation.OutcomeSuccess, Loan: event.Loan, Item: item}

	case core.LendingItemFailed:
		return Result{Outcome: event.Outcome, Reason: event.Reason}

	default:
		return Result{Outcome: decision.Outcome}
	}
}
