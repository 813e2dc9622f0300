package registerpatron_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
)

func Test_Decide(t *testing.T) {
	id := uuid.New()
	student := circulation.Standard{Department: "Computer Science", YearOfStudy: 3}
	existing := circulation.BuildPatron(id, "student1", student)

	testCases := []struct {
		name            string
		state           registerpatron.State
		command         registerpatron.Command
		expectedOutcome circulation.Outcome
		expectedReason  string
	}{
		{
			name:            "standard patron",
			command:         registerpatron.BuildCommand(id, "student1", student, helper.FakeToday),
			expectedOutcome: circulation.OutcomeSuccess,
		},
		{
			name:            "staff patron",
			command:         registerpatron.BuildCommand(id, "librarian1", circulation.Staff{StaffID: "EMP001"}, helper.FakeToday),
			expectedOutcome: circulation.OutcomeSuccess,
		},
		{
			name:            "same patron again",
			state:           registerpatron.State{Existing: existing, Exists: true},
			command:         registerpatron.BuildCommand(id, "student1", student, helper.FakeToday),
			expectedOutcome: circulation.OutcomeIdempotent,
		},
		{
			name:            "other patron under the same id",
			state:           registerpatron.State{Existing: existing, Exists: true},
			command:         registerpatron.BuildCommand(id, "student2", student, helper.FakeToday),
			expectedOutcome: circulation.OutcomeDuplicateID,
			expectedReason:  "another patron with this id exists",
		},
		{
			name:            "blank name",
			command:         registerpatron.BuildCommand(id, " ", student, helper.FakeToday),
			expectedOutcome: circulation.OutcomeInvalidInput,
			expectedReason:  "patron name must not be empty",
		},
		{
			name:            "staff without staff id",
			command:         registerpatron.BuildCommand(id, "librarian1", circulation.Staff{}, helper.FakeToday),
			expectedOutcome: circulation.OutcomeInvalidInput,
			expectedReason:  "staff id must not be empty",
		},
		{
			name:            "missing category",
			command:         registerpatron.BuildCommand(id, "someone", nil, helper.FakeToday),
			expectedOutcome: circulation.OutcomeInvalidInput,
			expectedReason:  "unknown patron category",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := registerpatron.Decide(tc.state, tc.command)

			// assert
			assert.Equal(t, tc.expectedOutcome, result.Outcome)

			if failure, ok := result.Event.(core.RegisteringPatronFailed); ok {
				assert.Equal(t, tc.expectedReason, failure.Reason)
			}

			if tc.expectedOutcome == circulation.OutcomeSuccess {
				registered, ok := result.Event.(core.PatronRegistered)
				assert.True(t, ok, "event should be PatronRegistered")
				assert.Equal(t, tc.command.Category, registered.Patron.Category)
			}
		})
	}
}
