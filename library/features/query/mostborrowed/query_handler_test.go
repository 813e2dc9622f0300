package mostborrowed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/mostborrowed"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper/storewrapper"
)

func Test_QueryHandler_Handle_CountsOpenAndClosedLoans(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := mostborrowed.NewQueryHandler(store)

	// arrange
	patron := helper.GivenStaffPatron(t, store, "librarian1")
	b := helper.GivenItem(t, store, "B", "Author B")
	a := helper.GivenItem(t, store, "A", "Author A")
	helper.GivenClosedLoan(t, store, patron, b, helper.FakeToday, helper.DaysAfter(helper.FakeToday, 1))
	for day := 1; day <= 2; day++ {
		helper.GivenClosedLoan(t, store, patron, a, helper.DaysAfter(helper.FakeToday, day), helper.DaysAfter(helper.FakeToday, day))
	}
	helper.GivenOpenLoan(t, store, patron, a, helper.DaysAfter(helper.FakeToday, 5))

	// act
	result, err := handler.Handle(ctx, mostborrowed.BuildQuery(0))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "A", result.Entries[0].Title)
	assert.Equal(t, 3, result.Entries[0].BorrowCount)
	assert.Equal(t, "B", result.Entries[1].Title)
	assert.Equal(t, 1, result.Entries[1].BorrowCount)
}
