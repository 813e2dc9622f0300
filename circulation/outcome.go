package circulation

import "errors"

// Outcome is the business result of a command. Rejections are outcomes, not errors.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeIdempotent   Outcome = "idempotent"
	OutcomeUnavailable  Outcome = "unavailable"
	OutcomeLimitReached Outcome = "limit_reached"
	OutcomeNoActiveLoan Outcome = "no_active_loan"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeHasOpenLoan  Outcome = "has_open_loan"
	OutcomeDuplicateID  Outcome = "duplicate_id"
	OutcomeInvalidInput Outcome = "invalid_input"
)

// IsSuccess reports whether the command changed state or was already applied.
func (o Outcome) IsSuccess() bool {
	return o == OutcomeSuccess || o == OutcomeIdempotent
}

// Err returns the sentinel error matching a rejection, nil for successful outcomes.
func (o Outcome) Err() error {
	switch o {
	case OutcomeUnavailable:
		return ErrUnavailable
	case OutcomeLimitReached:
		return ErrLimitReached
	case OutcomeNoActiveLoan:
		return ErrNoActiveLoan
	case OutcomeNotFound:
		return ErrNotFound
	case OutcomeHasOpenLoan:
		return ErrHasOpenLoan
	case OutcomeDuplicateID:
		return ErrDuplicateID
	case OutcomeInvalidInput:
		return ErrInvalidInput
	default:
		return nil
	}
}

// OutcomeFromError maps a business rejection error back to its Outcome.
// ok is false for errors which are not business rejections.
func OutcomeFromError(err error) (outcome Outcome, ok bool) {
	switch {
	case err == nil:
		return OutcomeSuccess, true
	case errors.Is(err, ErrUnavailable):
		return OutcomeUnavailable, true
	case errors.Is(err, ErrLimitReached):
		return OutcomeLimitReached, true
	case errors.Is(err, ErrNoActiveLoan):
		return OutcomeNoActiveLoan, true
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound, true
	case errors.Is(err, ErrHasOpenLoan):
		return OutcomeHasOpenLoan, true
	case errors.Is(err, ErrDuplicateID):
		return OutcomeDuplicateID, true
	case errors.Is(err, ErrInvalidInput):
		return OutcomeInvalidInput, true
	default:
		return "", false
	}
}
