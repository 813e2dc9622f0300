package memengine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	logMsgTxCommitted      = "memengine transaction committed"
	logMsgTxRolledBack     = "memengine transaction rolled back"
	logMsgSnapshotLoaded   = "memengine snapshot loaded"
	logMsgSnapshotFailed   = "memengine snapshot failed"
	logAttrError           = "error"
	logAttrFile            = "file"
	logAttrItemCount       = "item_count"
	logAttrPatronCount     = "patron_count"
	logAttrLoanCount       = "loan_count"
	logAttrDurationMS      = "duration_ms"
	logAttrOpenLoanCount   = "open_loan_count"
	logAttrSnapshotVersion = "snapshot_version"
)

// ErrEmptySnapshotFile is returned by WithSnapshotFile for an empty path.
var ErrEmptySnapshotFile = errors.New("empty snapshot file supplied")

// Store is an in-memory circulation.Store.
type Store struct {
	mu               sync.RWMutex
	st               *state
	snapshotFile     string
	logger           circulation.Logger
	contextualLogger circulation.ContextualLogger
}

// NewStore creates an empty Store, or one restored from the snapshot file if configured and present.
func NewStore(options ...Option) (*Store, error) {
	s := &Store{st: newState()}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	if s.snapshotFile != "" {
		if err := s.loadSnapshot(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// InTransaction runs fn against a private copy of the state and publishes the copy if fn succeeds.
// Transactions are serialized by the write lock.
func (s *Store) InTransaction(ctx context.Context, fn func(tx circulation.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	work := s.st.clone()

	if err := fn(&memTx{st: work}); err != nil {
		s.logDebug(ctx, logMsgTxRolledBack, logAttrError, err.Error())
		return err
	}

	if s.snapshotFile != "" {
		if err := writeSnapshot(s.snapshotFile, work); err != nil {
			s.logError(ctx, logMsgSnapshotFailed, err, logAttrFile, s.snapshotFile)
			return errors.Join(circulation.ErrSnapshotFailed, err)
		}
	}

	s.st = work
	s.logDebug(ctx, logMsgTxCommitted,
		logAttrOpenLoanCount, len(work.openByItem),
		logAttrDurationMS, durationToMilliseconds(time.Since(start)))

	return nil
}

/*** reads outside of transactions ***/

// FindItemByID returns the item with the given id.
func (s *Store) FindItemByID(ctx context.Context, id uuid.UUID) (circulation.Item, bool, error) {
	if err := ctx.Err(); err != nil {
		return circulation.Item{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, found := s.st.findItemByID(id)

	return item, found, nil
}

// FindAllItems returns all items in insertion order.
func (s *Store) FindAllItems(ctx context.Context) ([]circulation.Item, error) {
	return s.readItems(ctx, func(circulation.Item) bool { return true })
}

// FindItemsByTitle returns items whose title contains fragment, ignoring case.
func (s *Store) FindItemsByTitle(ctx context.Context, fragment string) ([]circulation.Item, error) {
	return s.readItems(ctx, func(item circulation.Item) bool { return containsFold(item.Title, fragment) })
}

// FindItemsByAuthor returns items whose author contains fragment, ignoring case.
func (s *Store) FindItemsByAuthor(ctx context.Context, fragment string) ([]circulation.Item, error) {
	return s.readItems(ctx, func(item circulation.Item) bool { return containsFold(item.Author, fragment) })
}

// FindAvailableItems returns items which are not on loan.
func (s *Store) FindAvailableItems(ctx context.Context) ([]circulation.Item, error) {
	return s.readItems(ctx, func(item circulation.Item) bool { return item.Available })
}

// FindCategories returns all categories.
func (s *Store) FindCategories(ctx context.Context) ([]circulation.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]circulation.Category{}, s.st.categories...), nil
}

// FindPatronByID returns the patron with the given id.
func (s *Store) FindPatronByID(ctx context.Context, id uuid.UUID) (circulation.Patron, bool, error) {
	if err := ctx.Err(); err != nil {
		return circulation.Patron{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	patron, found := s.st.findPatronByID(id)

	return patron, found, nil
}

// FindPatronsByName returns all patrons with exactly this name in registration order.
func (s *Store) FindPatronsByName(ctx context.Context, name string) ([]circulation.Patron, error) {
	return s.readPatrons(ctx, func(patron circulation.Patron) bool { return patron.Name == name })
}

// FindAllPatrons returns all patrons in registration order.
func (s *Store) FindAllPatrons(ctx context.Context) ([]circulation.Patron, error) {
	return s.readPatrons(ctx, func(circulation.Patron) bool { return true })
}

// FindOpenLoanByItem returns the open loan of the item, if any.
func (s *Store) FindOpenLoanByItem(ctx context.Context, itemID uuid.UUID) (circulation.Loan, bool, error) {
	if err := ctx.Err(); err != nil {
		return circulation.Loan{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	loan, found := s.st.findOpenLoanByItem(itemID)

	return loan, found, nil
}

// FindLoansByPatron returns open and closed loans of the patron in insertion order.
func (s *Store) FindLoansByPatron(ctx context.Context, patronID uuid.UUID) ([]circulation.Loan, error) {
	return s.readLoans(ctx, func(loan circulation.Loan) bool { return loan.PatronID == patronID })
}

// FindAllLoans returns all loans in insertion order.
func (s *Store) FindAllLoans(ctx context.Context) ([]circulation.Loan, error) {
	return s.readLoans(ctx, func(circulation.Loan) bool { return true })
}

func (s *Store) readItems(ctx context.Context, match func(circulation.Item) bool) ([]circulation.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.itemsWhere(match), nil
}

func (s *Store) readPatrons(ctx context.Context, match func(circulation.Patron) bool) ([]circulation.Patron, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.patronsWhere(match), nil
}

func (s *Store) readLoans(ctx context.Context, match func(circulation.Loan) bool) ([]circulation.Loan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.loansWhere(match), nil
}

// memTx is the circulation.Tx handed to transaction functions. It works on the private
// copy of the state without further locking, the Store holds the write lock meanwhile.
type memTx struct {
	st *state
}

func (tx *memTx) LockPatron(_ context.Context, id uuid.UUID) (circulation.Patron, bool, error) {
	patron, found := tx.st.findPatronByID(id)
	return patron, found, nil
}

func (tx *memTx) LockItem(_ context.Context, id uuid.UUID) (circulation.Item, bool, error) {
	item, found := tx.st.findItemByID(id)
	return item, found, nil
}

func (tx *memTx) FindItemByID(_ context.Context, id uuid.UUID) (circulation.Item, bool, error) {
	item, found := tx.st.findItemByID(id)
	return item, found, nil
}

func (tx *memTx) FindAllItems(_ context.Context) ([]circulation.Item, error) {
	return tx.st.itemsWhere(func(circulation.Item) bool { return true }), nil
}

func (tx *memTx) FindItemsByTitle(_ context.Context, fragment string) ([]circulation.Item, error) {
	return tx.st.itemsWhere(func(item circulation.Item) bool { return containsFold(item.Title, fragment) }), nil
}

func (tx *memTx) FindItemsByAuthor(_ context.Context, fragment string) ([]circulation.Item, error) {
	return tx.st.itemsWhere(func(item circulation.Item) bool { return containsFold(item.Author, fragment) }), nil
}

func (tx *memTx) FindAvailableItems(_ context.Context) ([]circulation.Item, error) {
	return tx.st.itemsWhere(func(item circulation.Item) bool { return item.Available }), nil
}

func (tx *memTx) FindCategories(_ context.Context) ([]circulation.Category, error) {
	return append([]circulation.Category{}, tx.st.categories...), nil
}

func (tx *memTx) AddItem(_ context.Context, item circulation.Item) error {
	return tx.st.addItem(item)
}

func (tx *memTx) UpdateItem(_ context.Context, item circulation.Item) error {
	return tx.st.updateItem(item)
}

func (tx *memTx) DeleteItem(_ context.Context, id uuid.UUID) error {
	return tx.st.deleteItem(id)
}

func (tx *memTx) AddCategory(_ context.Context, category circulation.Category) error {
	return tx.st.addCategory(category)
}

func (tx *memTx) FindPatronByID(_ context.Context, id uuid.UUID) (circulation.Patron, bool, error) {
	patron, found := tx.st.findPatronByID(id)
	return patron, found, nil
}

func (tx *memTx) FindPatronsByName(_ context.Context, name string) ([]circulation.Patron, error) {
	return tx.st.patronsWhere(func(patron circulation.Patron) bool { return patron.Name == name }), nil
}

func (tx *memTx) FindAllPatrons(_ context.Context) ([]circulation.Patron, error) {
	return tx.st.patronsWhere(func(circulation.Patron) bool { return true }), nil
}

func (tx *memTx) AddPatron(_ context.Context, patron circulation.Patron) error {
	return tx.st.addPatron(patron)
}

func (tx *memTx) UpdatePatron(_ context.Context, patron circulation.Patron) error {
	return tx.st.updatePatron(patron)
}

func (tx *memTx) DeletePatron(_ context.Context, id uuid.UUID) error {
	return tx.st.deletePatron(id)
}

func (tx *memTx) FindOpenLoanByItem(_ context.Context, itemID uuid.UUID) (circulation.Loan, bool, error) {
	loan, found := tx.st.findOpenLoanByItem(itemID)
	return loan, found, nil
}

func (tx *memTx) FindLoansByPatron(_ context.Context, patronID uuid.UUID) ([]circulation.Loan, error) {
	return tx.st.loansWhere(func(loan circulation.Loan) bool { return loan.PatronID == patronID }), nil
}

func (tx *memTx) FindAllLoans(_ context.Context) ([]circulation.Loan, error) {
	return tx.st.loansWhere(func(circulation.Loan) bool { return true }), nil
}

func (tx *memTx) RecordLoan(_ context.Context, loan circulation.Loan) error {
	return tx.st.recordLoan(loan)
}

func (tx *memTx) CloseLoan(_ context.Context, loanID uuid.UUID, returnDate time.Time, fine decimal.Decimal) error {
	return tx.st.closeLoan(loanID, returnDate, fine)
}

func (s *Store) logDebug(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) logInfo(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Store) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	} else if s.logger != nil {
		s.logger.Error(msg, allArgs...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Round(time.Microsecond).Microseconds()) / 1000
}

var _ circulation.Store = (*Store)(nil)
var _ circulation.Tx = (*memTx)(nil)
