package circulation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogReader reads items and categories. Searches match case-insensitive substrings
// and return an empty slice when nothing matches.
type CatalogReader interface {
	FindItemByID(ctx context.Context, id uuid.UUID) (Item, bool, error)
	FindAllItems(ctx context.Context) ([]Item, error)
	FindItemsByTitle(ctx context.Context, fragment string) ([]Item, error)
	FindItemsByAuthor(ctx context.Context, fragment string) ([]Item, error)
	FindAvailableItems(ctx context.Context) ([]Item, error)
	FindCategories(ctx context.Context) ([]Category, error)
}

// CatalogWriter mutates the catalog. UpdateItem overwrites all fields.
type CatalogWriter interface {
	AddItem(ctx context.Context, item Item) error
	UpdateItem(ctx context.Context, item Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	AddCategory(ctx context.Context, category Category) error
}

// PatronReader reads patrons. FindPatronsByName matches the exact name in registration order.
type PatronReader interface {
	FindPatronByID(ctx context.Context, id uuid.UUID) (Patron, bool, error)
	FindPatronsByName(ctx context.Context, name string) ([]Patron, error)
	FindAllPatrons(ctx context.Context) ([]Patron, error)
}

// PatronWriter mutates the patron registry.
type PatronWriter interface {
	AddPatron(ctx context.Context, patron Patron) error
	UpdatePatron(ctx context.Context, patron Patron) error
	DeletePatron(ctx context.Context, id uuid.UUID) error
}

// LedgerReader reads loans. Lists are in insertion order.
type LedgerReader interface {
	FindOpenLoanByItem(ctx context.Context, itemID uuid.UUID) (Loan, bool, error)
	FindLoansByPatron(ctx context.Context, patronID uuid.UUID) ([]Loan, error)
	FindAllLoans(ctx context.Context) ([]Loan, error)
}

// LedgerWriter records and closes loans.
//
// RecordLoan fails with ErrInvariantViolation if the item already has an open loan.
// CloseLoan fails with ErrNotFound for an unknown loan and ErrAlreadyClosed for a closed one,
// otherwise it sets return date and fine together.
type LedgerWriter interface {
	RecordLoan(ctx context.Context, loan Loan) error
	CloseLoan(ctx context.Context, loanID uuid.UUID, returnDate time.Time, fine decimal.Decimal) error
}

// Tx is the view of a store inside one transaction.
// LockPatron and LockItem serialize concurrent transactions touching the same rows;
// callers lock the patron before the item.
type Tx interface {
	CatalogReader
	CatalogWriter
	PatronReader
	PatronWriter
	LedgerReader
	LedgerWriter
	LockPatron(ctx context.Context, id uuid.UUID) (Patron, bool, error)
	LockItem(ctx context.Context, id uuid.UUID) (Item, bool, error)
}

// Transactor runs fn inside one transaction. The transaction commits if fn returns nil
// and rolls back otherwise, no partial effects remain.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(tx Tx) error) error
}

// Store is what the circulation handlers need from a storage engine.
type Store interface {
	CatalogReader
	PatronReader
	LedgerReader
	Transactor
}
