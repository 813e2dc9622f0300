package memengine_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memengine"
)

var fakeClock = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

func Test_InTransaction_RollsBackOnError(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenStore(t)
	item := circulation.BuildItem(uuid.New(), "Dune", "Frank Herbert", 1)
	failure := errors.New("boom")

	// act
	err := store.InTransaction(ctx, func(tx circulation.Tx) error {
		require.NoError(t, tx.AddItem(ctx, item))
		return failure
	})

	// assert
	assert.ErrorIs(t, err, failure, "Should return the error of the transaction function")
	_, found, err := store.FindItemByID(ctx, item.ID)
	assert.NoError(t, err)
	assert.False(t, found, "The item must not be visible after a rollback")
}

func Test_RecordLoan_RejectsSecondOpenLoanForItem(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenStore(t)
	itemID := uuid.New()
	givenOpenLoan(t, store, uuid.New(), itemID)

	// act
	err := store.InTransaction(ctx, func(tx circulation.Tx) error {
		return tx.RecordLoan(ctx, circulation.BuildLoan(uuid.New(), uuid.New(), itemID, fakeClock))
	})

	// assert
	assert.ErrorIs(t, err, circulation.ErrInvariantViolation, "Should reject a second open loan")
}

func Test_CloseLoan(t *testing.T) {
	ctx := context.Background()
	store := givenStore(t)
	loan := givenOpenLoan(t, store, uuid.New(), uuid.New())
	returnDate := loan.DueDate.AddDate(0, 0, 2)

	err := store.InTransaction(ctx, func(tx circulation.Tx) error {
		return tx.CloseLoan(ctx, loan.ID, returnDate, decimal.RequireFromString("1.00"))
	})
	require.NoError(t, err, "Should close an open loan")

	_, open, err := store.FindOpenLoanByItem(ctx, loan.ItemID)
	assert.NoError(t, err)
	assert.False(t, open, "The item should have no open loan anymore")

	loans, err := store.FindLoansByPatron(ctx, loan.PatronID)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	require.NotNil(t, loans[0].ReturnDate, "Return date should be set")
	assert.Equal(t, returnDate, *loans[0].ReturnDate, "Return date should be stored")
	assert.Equal(t, "1.00", loans[0].Fine.StringFixed(2), "Fine should be stored")

	err = store.InTransaction(ctx, func(tx circulation.Tx) error {
		return tx.CloseLoan(ctx, loan.ID, returnDate, decimal.Zero)
	})
	assert.ErrorIs(t, err, circulation.ErrAlreadyClosed, "Closing twice should fail")

	err = store.InTransaction(ctx, func(tx circulation.Tx) error {
		return tx.CloseLoan(ctx, uuid.New(), returnDate, decimal.Zero)
	})
	assert.ErrorIs(t, err, circulation.ErrNotFound, "Closing an unknown loan should fail")
}

func Test_FindItems_MatchCaseInsensitiveSubstrings(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := givenStore(t)
	hobbit := givenItem(t, store, "The Hobbit", "J.R.R. Tolkien")
	givenItem(t, store, "Dune", "Frank Herbert")

	// act
	byTitle, err := store.FindItemsByTitle(ctx, "hOBB")
	require.NoError(t, err)
	byAuthor, err := store.FindItemsByAuthor(ctx, "tolk")
	require.NoError(t, err)
	none, err := store.FindItemsByTitle(ctx, "Neuromancer")
	require.NoError(t, err)

	// assert
	assert.Equal(t, []circulation.Item{hobbit}, byTitle, "Should find by title fragment")
	assert.Equal(t, []circulation.Item{hobbit}, byAuthor, "Should find by author fragment")
	assert.NotNil(t, none, "No match should be an empty slice")
	assert.Empty(t, none, "No match should be an empty slice")
}

func Test_DeleteItem_And_DeletePatron_WithOpenLoan_AreRejected(t *testing.T) {
	ctx := context.Background()
	store := givenStore(t)
	patronID := uuid.New()
	itemID := uuid.New()
	givenOpenLoan(t, store, patronID, itemID)

	err := store.InTransaction(ctx, func(tx circulation.Tx) error {
		return tx.DeleteItem(ctx, itemID)
	})
	assert.ErrorIs(t, err, circulation.ErrHasOpenLoan, "Should not delete an item on loan")

	err = store.InTransaction(ctx, func(tx circulation.Tx) error {
		return tx.DeletePatron(ctx, patronID)
	})
	assert.ErrorIs(t, err, circulation.ErrHasOpenLoan, "Should not delete a patron holding an item")
}

func Test_SnapshotFile_RestoresState(t *testing.T) {
	// arrange
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "library.json")

	store, err := memengine.NewStore(memengine.WithSnapshotFile(file))
	require.NoError(t, err)
	loan := givenOpenLoan(t, store, uuid.New(), uuid.New())

	// act
	restored, err := memengine.NewStore(memengine.WithSnapshotFile(file))

	// assert
	require.NoError(t, err, "Should load the snapshot")
	item, found, err := restored.FindItemByID(ctx, loan.ItemID)
	require.NoError(t, err)
	assert.True(t, found, "Item should be restored")
	assert.False(t, item.Available, "Availability should be restored")

	openLoan, open, err := restored.FindOpenLoanByItem(ctx, loan.ItemID)
	require.NoError(t, err)
	assert.True(t, open, "Open loan should be restored")
	assert.Equal(t, loan.ID, openLoan.ID, "Loan id should be restored")
	assert.Equal(t, loan.DueDate, openLoan.DueDate, "Due date should be restored")

	patron, found, err := restored.FindPatronByID(ctx, loan.PatronID)
	require.NoError(t, err)
	assert.True(t, found, "Patron should be restored")
	assert.Equal(t, circulation.Standard{Department: "Physics", YearOfStudy: 2}, patron.Category, "Category variant should be restored")
}

func Test_SnapshotFile_WithInconsistentAvailability_IsRejected(t *testing.T) {
	// arrange
	file := filepath.Join(t.TempDir(), "library.json")
	itemID := uuid.New()
	content := `{"version":1,"categories":[],"patrons":[],` +
		`"items":[{"id":"` + itemID.String() + `","title":"Dune","author":"Frank Herbert","available":false,"category_id":1}],` +
		`"loans":[]}`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	// act
	_, err := memengine.NewStore(memengine.WithSnapshotFile(file))

	// assert
	assert.ErrorIs(t, err, circulation.ErrLoadingSnapshotFailed, "Should refuse to load")
	assert.ErrorIs(t, err, circulation.ErrInvariantViolation, "Should name the invariant violation")
}

func Test_NewStore_RejectsEmptySnapshotFile(t *testing.T) {
	_, err := memengine.NewStore(memengine.WithSnapshotFile(""))

	assert.ErrorIs(t, err, memengine.ErrEmptySnapshotFile)
}

func givenStore(t *testing.T) *memengine.Store {
	t.Helper()

	store, err := memengine.NewStore()
	require.NoError(t, err, "error in arranging test data")

	return store
}

func givenItem(t *testing.T, store *memengine.Store, title string, author string) circulation.Item {
	t.Helper()

	item := circulation.BuildItem(uuid.New(), title, author, 1)
	err := store.InTransaction(context.Background(), func(tx circulation.Tx) error {
		return tx.AddItem(context.Background(), item)
	})
	require.NoError(t, err, "error in arranging test data")

	return item
}

func givenOpenLoan(t *testing.T, store *memengine.Store, patronID uuid.UUID, itemID uuid.UUID) circulation.Loan {
	t.Helper()

	ctx := context.Background()
	loan := circulation.BuildLoan(uuid.New(), patronID, itemID, fakeClock)

	err := store.InTransaction(ctx, func(tx circulation.Tx) error {
		if err := tx.AddPatron(ctx, circulation.BuildPatron(patronID, "Reader", circulation.Standard{Department: "Physics", YearOfStudy: 2})); err != nil {
			return err
		}

		item := circulation.BuildItem(itemID, "Some Title", "Some Author", 1)
		item.Available = false
		if err := tx.AddItem(ctx, item); err != nil {
			return err
		}

		return tx.RecordLoan(ctx, loan)
	})
	require.NoError(t, err, "error in arranging test data")

	return loan
}
