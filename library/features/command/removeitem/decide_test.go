package removeitem_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removeitem"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
)

func Test_Decide(t *testing.T) {
	item := circulation.BuildItem(uuid.New(), "The Hobbit", "J.R.R. Tolkien", 1)
	lentItem := item
	lentItem.Available = false

	testCases := []struct {
		name            string
		state           removeitem.State
		expectedOutcome circulation.Outcome
		expectedEvent   string
	}{
		{
			name:            "available item is removed",
			state:           removeitem.State{Item: item, ItemFound: true},
			expectedOutcome: circulation.OutcomeSuccess,
			expectedEvent:   core.ItemRemovedFromCatalogEventName,
		},
		{
			name:            "unknown item",
			state:           removeitem.State{},
			expectedOutcome: circulation.OutcomeNotFound,
			expectedEvent:   core.RemovingItemFailedEventName,
		},
		{
			name:            "item with open loan",
			state:           removeitem.State{Item: lentItem, ItemFound: true, HasOpenLoan: true},
			expectedOutcome: circulation.OutcomeHasOpenLoan,
			expectedEvent:   core.RemovingItemFailedEventName,
		},
		{
			name:            "item flagged unavailable",
			state:           removeitem.State{Item: lentItem, ItemFound: true},
			expectedOutcome: circulation.OutcomeHasOpenLoan,
			expectedEvent:   core.RemovingItemFailedEventName,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := removeitem.Decide(tc.state, removeitem.BuildCommand(item.ID, helper.FakeToday))

			// assert
			assert.Equal(t, tc.expectedOutcome, result.Outcome)
			assert.Equal(t, tc.expectedEvent, result.Event.EventName())
		})
	}
}
