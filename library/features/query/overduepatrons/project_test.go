package overduepatrons_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/overduepatrons"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
)

func Test_ProjectOverduePatrons(t *testing.T) {
	// arrange
	patron := circulation.BuildPatron(uuid.New(), "student1", circulation.Standard{})
	item := circulation.BuildItem(uuid.New(), "The Hobbit", "J.R.R. Tolkien", 1)
	patrons := map[uuid.UUID]circulation.Patron{patron.ID: patron}
	items := map[uuid.UUID]circulation.Item{item.ID: item}
	loan := circulation.BuildLoan(uuid.New(), patron.ID, item.ID, helper.FakeToday)

	testCases := []struct {
		name          string
		loans         []circulation.Loan
		today         int
		expectedCount int
	}{
		{name: "due today is not overdue", loans: []circulation.Loan{loan}, today: 14, expectedCount: 0},
		{name: "due yesterday is overdue", loans: []circulation.Loan{loan}, today: 15, expectedCount: 1},
		{name: "closed loan is not overdue", loans: []circulation.Loan{loan.Closed(helper.FakeToday, decimal.Zero)}, today: 30, expectedCount: 0},
		{
			name:          "missing patron is skipped",
			loans:         []circulation.Loan{circulation.BuildLoan(uuid.New(), uuid.New(), item.ID, helper.FakeToday)},
			today:         30,
			expectedCount: 0,
		},
		{
			name:          "missing item is skipped",
			loans:         []circulation.Loan{circulation.BuildLoan(uuid.New(), patron.ID, uuid.New(), helper.FakeToday)},
			today:         30,
			expectedCount: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			query := overduepatrons.BuildQuery(helper.DaysAfter(helper.FakeToday, tc.today))
			result := overduepatrons.ProjectOverduePatrons(query, tc.loans, patrons, items, circulation.DefaultFineCalculator())

			// assert
			assert.Equal(t, tc.expectedCount, result.Count)
			assert.Len(t, result.Entries, tc.expectedCount)
		})
	}
}

func Test_ProjectOverduePatrons_ComputesDaysAndFine(t *testing.T) {
	// arrange
	patron := circulation.BuildPatron(uuid.New(), "student1", circulation.Standard{})
	item := circulation.BuildItem(uuid.New(), "The Hobbit", "J.R.R. Tolkien", 1)
	loan := circulation.BuildLoan(uuid.New(), patron.ID, item.ID, helper.FakeToday)
	query := overduepatrons.BuildQuery(helper.DaysAfter(loan.DueDate, 3))

	// act
	result := overduepatrons.ProjectOverduePatrons(
		query,
		[]circulation.Loan{loan},
		map[uuid.UUID]circulation.Patron{patron.ID: patron},
		map[uuid.UUID]circulation.Item{item.ID: item},
		circulation.DefaultFineCalculator(),
	)

	// assert
	assert.Equal(t, 1, result.Count)
	entry := result.Entries[0]
	assert.Equal(t, "student1", entry.PatronName)
	assert.Equal(t, "The Hobbit", entry.ItemTitle)
	assert.Equal(t, 3, entry.DaysOverdue)
	assert.Equal(t, "1.50", entry.FineSoFar.StringFixed(2))
}
