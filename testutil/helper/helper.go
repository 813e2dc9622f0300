package helper

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// FakeToday is the calendar day most tests borrow on.
var FakeToday = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

// DaysAfter returns the calendar day n days after day.
func DaysAfter(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// GivenUniqueID returns a fresh uuid v7.
func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	assert.NoError(t, err, "error in arranging test data")

	return id
}

// GivenItem adds an available item to the catalog.
func GivenItem(t testing.TB, store circulation.Transactor, title string, author string) circulation.Item {
	t.Helper()

	item := circulation.BuildItem(GivenUniqueID(t), title, author, 1)
	givenInTransaction(t, store, func(ctx context.Context, tx circulation.Tx) error {
		return tx.AddItem(ctx, item)
	})

	return item
}

// GivenItems adds count available items titled "<prefix> 1" ... "<prefix> count".
func GivenItems(t testing.TB, store circulation.Transactor, prefix string, count int) []circulation.Item {
	t.Helper()

	items := make([]circulation.Item, 0, count)
	for i := 1; i <= count; i++ {
		items = append(items, GivenItem(t, store, prefix+" "+strconv.Itoa(i), "Some Author"))
	}

	return items
}

// GivenStandardPatron registers a Standard patron.
func GivenStandardPatron(t testing.TB, store circulation.Transactor, name string) circulation.Patron {
	t.Helper()

	return givenPatron(t, store, name, circulation.Standard{Department: "Computer Science", YearOfStudy: 3})
}

// GivenStaffPatron registers a Staff patron.
func GivenStaffPatron(t testing.TB, store circulation.Transactor, name string) circulation.Patron {
	t.Helper()

	return givenPatron(t, store, name, circulation.Staff{StaffID: "EMP001"})
}

func givenPatron(t testing.TB, store circulation.Transactor, name string, category circulation.PatronCategory) circulation.Patron {
	patron := circulation.BuildPatron(GivenUniqueID(t), name, category)
	givenInTransaction(t, store, func(ctx context.Context, tx circulation.Tx) error {
		return tx.AddPatron(ctx, patron)
	})

	return patron
}

// GivenOpenLoan lends the item to the patron on borrowDate, the way a successful checkout does.
func GivenOpenLoan(
	t testing.TB,
	store circulation.Transactor,
	patron circulation.Patron,
	item circulation.Item,
	borrowDate time.Time,
) circulation.Loan {

	t.Helper()

	loan := circulation.BuildLoan(GivenUniqueID(t), patron.ID, item.ID, borrowDate)
	givenInTransaction(t, store, func(ctx context.Context, tx circulation.Tx) error {
		if err := tx.RecordLoan(ctx, loan); err != nil {
			return err
		}

		item.Available = false

		return tx.UpdateItem(ctx, item)
	})

	return loan
}

// GivenClosedLoan lends the item and takes it back on returnDate without a fine.
func GivenClosedLoan(
	t testing.TB,
	store circulation.Transactor,
	patron circulation.Patron,
	item circulation.Item,
	borrowDate time.Time,
	returnDate time.Time,
) circulation.Loan {

	t.Helper()

	loan := GivenOpenLoan(t, store, patron, item, borrowDate)
	givenInTransaction(t, store, func(ctx context.Context, tx circulation.Tx) error {
		if err := tx.CloseLoan(ctx, loan.ID, returnDate, circulation.DefaultFineCalculator().CalculateFine(loan.DueDate, &returnDate)); err != nil {
			return err
		}

		item.Available = true

		return tx.UpdateItem(ctx, item)
	})

	return loan
}

// FindItem reads the item and fails the test if it does not exist.
func FindItem(t testing.TB, store circulation.CatalogReader, id uuid.UUID) circulation.Item {
	t.Helper()

	item, found, err := store.FindItemByID(context.Background(), id)
	require.NoError(t, err, "error in reading test data")
	require.True(t, found, "item should exist")

	return item
}

// OpenLoanCount returns the number of open loans of the patron.
func OpenLoanCount(t testing.TB, store circulation.LedgerReader, patronID uuid.UUID) int {
	t.Helper()

	loans, err := store.FindLoansByPatron(context.Background(), patronID)
	require.NoError(t, err, "error in reading test data")

	count := 0
	for _, loan := range loans {
		if loan.IsOpen() {
			count++
		}
	}

	return count
}

// OpenLoansForItem returns all open loans of the item in the ledger.
func OpenLoansForItem(t testing.TB, store circulation.LedgerReader, itemID uuid.UUID) []circulation.Loan {
	t.Helper()

	loans, err := store.FindAllLoans(context.Background())
	require.NoError(t, err, "error in reading test data")

	open := make([]circulation.Loan, 0, 1)
	for _, loan := range loans {
		if loan.ItemID == itemID && loan.IsOpen() {
			open = append(open, loan)
		}
	}

	return open
}

// LoanCount returns the number of loans in the ledger, open and closed.
func LoanCount(t testing.TB, store circulation.LedgerReader) int {
	t.Helper()

	loans, err := store.FindAllLoans(context.Background())
	require.NoError(t, err, "error in reading test data")

	return len(loans)
}

func givenInTransaction(t testing.TB, store circulation.Transactor, fn func(ctx context.Context, tx circulation.Tx) error) {
	t.Helper()

	ctx := context.Background()
	err := store.InTransaction(ctx, func(tx circulation.Tx) error {
		return fn(ctx, tx)
	})
	require.NoError(t, err, "error in arranging test data")
}
