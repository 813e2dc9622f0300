package borroweditems_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/borroweditems"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper/storewrapper"
)

func Test_QueryHandler_Handle_ReturnsOpenLoansOnly(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := borroweditems.NewQueryHandler(store)

	// arrange
	patron := helper.GivenStandardPatron(t, store, "student1")
	other := helper.GivenStandardPatron(t, store, "student2")
	items := helper.GivenItems(t, store, "Book", 4)
	helper.GivenOpenLoan(t, store, patron, items[0], helper.FakeToday)
	helper.GivenClosedLoan(t, store, patron, items[1], helper.FakeToday, helper.DaysAfter(helper.FakeToday, 1))
	helper.GivenOpenLoan(t, store, other, items[2], helper.FakeToday)
	helper.GivenOpenLoan(t, store, patron, items[3], helper.FakeToday)

	// act
	result, err := handler.Handle(ctx, borroweditems.BuildQuery(circulation.StartSession(patron, helper.FakeToday), helper.FakeToday))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "Book 1", result.Items[0].Item.Title)
	assert.Equal(t, "Book 4", result.Items[1].Item.Title)
}

func Test_QueryHandler_Handle_ReturnsEmptyList_WhenNothingBorrowed(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := borroweditems.NewQueryHandler(store)
	patron := helper.GivenStaffPatron(t, store, "librarian1")

	// act
	result, err := handler.Handle(ctx, borroweditems.BuildQuery(circulation.StartSession(patron, helper.FakeToday), helper.FakeToday))

	// assert
	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Equal(t, 0, result.Count)
}
