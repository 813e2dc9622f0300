package registerpatron_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper/storewrapper"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	testCases := []struct {
		name     string
		category circulation.PatronCategory
	}{
		{name: "standard", category: circulation.Standard{Department: "Mathematics", YearOfStudy: 2}},
		{name: "staff", category: circulation.Staff{StaffID: "EMP007"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			ctx := context.Background()
			store := storewrapper.GivenStore(t)
			handler := registerpatron.NewCommandHandler(store)
			command := registerpatron.BuildCommand(helper.GivenUniqueID(t), "someone", tc.category, helper.FakeToday)

			// act
			result, err := handler.Handle(ctx, command)

			// assert
			require.NoError(t, err)
			assert.Equal(t, circulation.OutcomeSuccess, result.Outcome)

			stored, found, err := store.FindPatronByID(ctx, command.PatronID)
			require.NoError(t, err)
			require.True(t, found)
			assert.True(t, command.Patron().Equal(stored))
		})
	}
}

func Test_CommandHandler_Handle_Idempotent_WhenRegisteredTwice(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := registerpatron.NewCommandHandler(store)
	command := registerpatron.BuildCommand(helper.GivenUniqueID(t), "student1", circulation.Standard{}, helper.FakeToday)
	_, err := handler.Handle(ctx, command)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, circulation.OutcomeIdempotent, result.Outcome)
}

func Test_CommandHandler_Handle_DuplicateID(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := registerpatron.NewCommandHandler(store)
	patron := helper.GivenStandardPatron(t, store, "student1")

	// act
	result, err := handler.Handle(ctx, registerpatron.BuildCommand(patron.ID, "student2", circulation.Standard{}, helper.FakeToday))

	// assert
	require.NoError(t, err)
	assert.Equal(t, circulation.OutcomeDuplicateID, result.Outcome)
}

func Test_CommandHandler_Handle_InvalidInput(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := registerpatron.NewCommandHandler(store)
	command := registerpatron.BuildCommand(helper.GivenUniqueID(t), "librarian1", circulation.Staff{}, helper.FakeToday)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, circulation.OutcomeInvalidInput, result.Outcome)

	_, found, err := store.FindPatronByID(ctx, command.PatronID)
	require.NoError(t, err)
	assert.False(t, found)
}
