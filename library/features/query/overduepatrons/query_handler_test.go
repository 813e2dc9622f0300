package overduepatrons_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overduepatrons"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper/storewrapper"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := overduepatrons.NewQueryHandler(store)

	// arrange
	late := helper.GivenStandardPatron(t, store, "student1")
	punctual := helper.GivenStandardPatron(t, store, "student2")
	items := helper.GivenItems(t, store, "Book", 2)
	helper.GivenOpenLoan(t, store, late, items[0], helper.FakeToday)
	helper.GivenOpenLoan(t, store, punctual, items[1], helper.DaysAfter(helper.FakeToday, 10))

	// act
	result, err := handler.Handle(ctx, overduepatrons.BuildQuery(helper.DaysAfter(helper.FakeToday, 20)))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, late.ID, result.Entries[0].PatronID)
	assert.Equal(t, "Book 1", result.Entries[0].ItemTitle)
	assert.Equal(t, 6, result.Entries[0].DaysOverdue)
}
