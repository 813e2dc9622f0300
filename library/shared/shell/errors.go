package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsInvariantViolationError checks if the store state contradicted itself, e.g. an available item with an open loan.
func IsInvariantViolationError(err error) bool {
	return errors.Is(err, circulation.ErrInvariantViolation)
}

// IsTransactionConflictError checks if the store gave up on a transaction after a serialization failure or deadlock.
func IsTransactionConflictError(err error) bool {
	return errors.Is(err, circulation.ErrTransactionConflict)
}

// StatusForError classifies a handler error for metrics and spans.
func StatusForError(err error) string {
	switch {
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	case IsInvariantViolationError(err), IsTransactionConflictError(err):
		return StatusConflict
	default:
		return StatusError
	}
}

// StatusForOutcome classifies a business outcome for metrics and spans.
func StatusForOutcome(outcome circulation.Outcome) string {
	switch outcome {
	case circulation.OutcomeSuccess:
		return StatusSuccess
	case circulation.OutcomeIdempotent:
		return StatusIdempotent
	default:
		return StatusRejected
	}
}
