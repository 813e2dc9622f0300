package circulation

import "errors"

// Business rejections. Command handlers report these as an Outcome, callers who prefer
// errors can convert with Outcome.Err().
var (
	ErrUnavailable  = errors.New("item is currently on loan")
	ErrLimitReached = errors.New("patron has reached the borrowing limit")
	ErrNoActiveLoan = errors.New("item has no active loan")
	ErrNotFound     = errors.New("not found")
	ErrHasOpenLoan  = errors.New("entity is referenced by an open loan")
	ErrDuplicateID  = errors.New("an entity with this id but different data exists")
	ErrInvalidInput = errors.New("invalid input")
)

// Ledger and consistency errors.
var (
	ErrInvariantViolation  = errors.New("circulation invariant violated")
	ErrAlreadyClosed       = errors.New("loan is already closed")
	ErrAmbiguousPatronName = errors.New("more than one patron matches the name")

	// ErrTransactionConflict marks a serialization failure or deadlock. The transaction was rolled back
	// and running it again may succeed.
	ErrTransactionConflict = errors.New("transaction conflict")
)

// Validation errors, always joined with ErrInvalidInput.
var (
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrEmptyAuthor      = errors.New("author must not be empty")
	ErrEmptyPatronName  = errors.New("patron name must not be empty")
	ErrEmptyStaffID     = errors.New("staff id must not be empty")
	ErrNegativeFineRate = errors.New("fine rate per day must not be negative")
	ErrUnknownCategory  = errors.New("unknown patron category")
)

// Infrastructure errors raised by the storage engines.
var (
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")
	ErrBuildingQueryFailed   = errors.New("building query failed")
	ErrQueryingFailed        = errors.New("querying failed")
	ErrExecFailed            = errors.New("executing statement failed")
	ErrScanningDBRowFailed   = errors.New("scanning db row failed")
	ErrBeginTxFailed         = errors.New("beginning transaction failed")
	ErrCommitFailed          = errors.New("committing transaction failed")
	ErrSnapshotFailed        = errors.New("persisting state snapshot failed")
	ErrLoadingSnapshotFailed = errors.New("loading state snapshot failed")
)
