package returnitem_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnitem"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
)

func Test_Decide_Success_ComputesFine(t *testing.T) {
	testCases := []struct {
		name                string
		returnedDaysAfter   int
		expectedFine        string
		expectedOverdueDays int
	}{
		{name: "returned on the borrow day", returnedDaysAfter: 0, expectedFine: "0", expectedOverdueDays: 0},
		{name: "returned on the due date", returnedDaysAfter: 14, expectedFine: "0", expectedOverdueDays: 0},
		{name: "returned one day late", returnedDaysAfter: 15, expectedFine: "0.5", expectedOverdueDays: 1},
		{name: "returned ten days late", returnedDaysAfter: 24, expectedFine: "5", expectedOverdueDays: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			state := givenLentState()
			command := returnitem.BuildCommand(state.Item.ID, helper.DaysAfter(helper.FakeToday, tc.returnedDaysAfter))

			// act
			result := returnitem.Decide(state, command, circulation.DefaultFineCalculator())

			// assert
			assert.True(t, result.HasStateChange())
			returned, ok := result.Event.(core.ItemReturnedByPatron)
			assert.True(t, ok, "event should be ItemReturnedByPatron")
			assert.False(t, returned.Loan.IsOpen())
			assert.Equal(t, command.Today, *returned.Loan.ReturnDate)
			assert.True(t, decimal.RequireFromString(tc.expectedFine).Equal(returned.Loan.Fine), "fine was %s", returned.Loan.Fine)
			assert.Equal(t, tc.expectedOverdueDays, returned.OverdueDays)
		})
	}
}

func Test_Decide_Success_UsesConfiguredRate(t *testing.T) {
	// arrange
	state := givenLentState()
	command := returnitem.BuildCommand(state.Item.ID, helper.DaysAfter(helper.FakeToday, 17))
	fines, err := circulation.NewFineCalculator(decimal.RequireFromString("1.25"))
	assert.NoError(t, err)

	// act
	result := returnitem.Decide(state, command, fines)

	// assert
	returned := result.Event.(core.ItemReturnedByPatron)
	assert.Equal(t, "3.75", returned.Loan.Fine.StringFixed(2))
}

func Test_Decide_BusinessRejections(t *testing.T) {
	testCases := []struct {
		name            string
		state           returnitem.State
		expectedOutcome circulation.Outcome
	}{
		{
			name:            "item not in catalog",
			state:           returnitem.State{},
			expectedOutcome: circulation.OutcomeNotFound,
		},
		{
			name: "item not on loan",
			state: returnitem.State{
				Item:      circulation.BuildItem(uuid.New(), "The Hobbit", "J.R.R. Tolkien", 1),
				ItemFound: true,
			},
			expectedOutcome: circulation.OutcomeNoActiveLoan,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := returnitem.BuildCommand(tc.state.Item.ID, helper.FakeToday)

			// act
			result := returnitem.Decide(tc.state, command, circulation.DefaultFineCalculator())

			// assert
			assert.True(t, result.IsRejected())
			assert.Equal(t, tc.expectedOutcome, result.Outcome)
			_, ok := result.Event.(core.ReturningItemFailed)
			assert.True(t, ok, "event should be ReturningItemFailed")
		})
	}
}

func Test_Decide_InvariantViolation_WhenAvailableItemHasOpenLoan(t *testing.T) {
	// arrange
	state := givenLentState()
	state.Item.Available = true
	command := returnitem.BuildCommand(state.Item.ID, helper.FakeToday)

	// act
	result := returnitem.Decide(state, command, circulation.DefaultFineCalculator())

	// assert
	assert.True(t, errors.Is(result.HasError(), circulation.ErrInvariantViolation))
}

func givenLentState() returnitem.State {
	item := circulation.BuildItem(uuid.New(), "The Hobbit", "J.R.R. Tolkien", 1)
	item.Available = false

	return returnitem.State{
		Item:        item,
		ItemFound:   true,
		OpenLoan:    circulation.BuildLoan(uuid.New(), uuid.New(), item.ID, helper.FakeToday),
		HasOpenLoan: true,
	}
}
