package core

import (
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// DecisionResult is what a Decide function returns. Build it with the factory functions only.
//
//   - SuccessDecision: the event describes the state change to apply
//   - IdempotentDecision: the command was already applied, nothing to write
//   - RejectedDecision: a business rule refused the command, the event describes why
//   - ViolationDecision: the state read from the store breaks an invariant, nothing may be written
type DecisionResult struct {
	Outcome circulation.Outcome
	Event   DomainEvent
	Err     error
}

// SuccessDecision creates a DecisionResult for a state change described by event.
func SuccessDecision(event DomainEvent) DecisionResult {
	return DecisionResult{Outcome: circulation.OutcomeSuccess, Event: event}
}

// IdempotentDecision creates a DecisionResult for a command which needs no state change.
func IdempotentDecision() DecisionResult {
	return DecisionResult{Outcome: circulation.OutcomeIdempotent}
}

// RejectedDecision creates a DecisionResult for a business rule violation.
func RejectedDecision(event DomainEvent, outcome circulation.Outcome) DecisionResult {
	return DecisionResult{Outcome: outcome, Event: event}
}

// ViolationDecision creates a DecisionResult for inconsistent state, the cause is joined with
// circulation.ErrInvariantViolation.
func ViolationDecision(cause error) DecisionResult {
	return DecisionResult{Err: errors.Join(circulation.ErrInvariantViolation, cause)}
}

// HasStateChange returns true if the handler has to apply the event to the store.
func (r DecisionResult) HasStateChange() bool {
	return r.Err == nil && r.Outcome == circulation.OutcomeSuccess
}

// IsRejected returns true for business rule rejections.
func (r DecisionResult) IsRejected() bool {
	return r.Err == nil && !r.Outcome.IsSuccess()
}

// HasError returns the invariant violation, if any.
func (r DecisionResult) HasError() error {
	return r.Err
}

// ValidationReason returns the message of the most specific error joined into a validation error,
// e.g. "title must not be empty" for errors.Join(ErrInvalidInput, ErrEmptyTitle).
func ValidationReason(err error) string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err.Error()
	}

	errs := joined.Unwrap()
	if len(errs) == 0 {
		return err.Error()
	}

	return ValidationReason(errs[len(errs)-1])
}
