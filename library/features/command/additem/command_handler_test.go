package additem_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/additem"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper/storewrapper"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := additem.NewCommandHandler(store)
	command := additem.BuildCommand(helper.GivenUniqueID(t), "The Hobbit", "J.R.R. Tolkien", 1, helper.FakeToday)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, circulation.OutcomeSuccess, result.Outcome)
	stored := helper.FindItem(t, store, command.ItemID)
	assert.Equal(t, "The Hobbit", stored.Title)
	assert.True(t, stored.Available)
}

func Test_CommandHandler_Handle_Idempotent_WhenAddedTwice(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := additem.NewCommandHandler(store)
	command := additem.BuildCommand(helper.GivenUniqueID(t), "The Hobbit", "J.R.R. Tolkien", 1, helper.FakeToday)
	_, err := handler.Handle(ctx, command)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, circulation.OutcomeIdempotent, result.Outcome)

	items, err := store.FindAllItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func Test_CommandHandler_Handle_DuplicateID(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := additem.NewCommandHandler(store)
	item := helper.GivenItem(t, store, "Dune", "Frank Herbert")

	// act
	result, err := handler.Handle(ctx, additem.BuildCommand(item.ID, "The Hobbit", "J.R.R. Tolkien", 1, helper.FakeToday))

	// assert
	require.NoError(t, err)
	assert.Equal(t, circulation.OutcomeDuplicateID, result.Outcome)
	assert.Equal(t, "Dune", helper.FindItem(t, store, item.ID).Title)
}

func Test_CommandHandler_Handle_InvalidInput(t *testing.T) {
	// setup
	ctx := context.Background()
	store := storewrapper.GivenStore(t)
	handler := additem.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, additem.BuildCommand(helper.GivenUniqueID(t), "", "J.R.R. Tolkien", 1, helper.FakeToday))

	// assert
	require.NoError(t, err)
	assert.Equal(t, circulation.OutcomeInvalidInput, result.Outcome)
	assert.Equal(t, "title must not be empty", result.Reason)
}
