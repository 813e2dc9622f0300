package circulation_test

import (
	"testing"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

func Test_BorrowLimit(t *testing.T) {
	limit, limited := circulation.BorrowLimit(circulation.Standard{})
	assert.True(t, limited, "Standard patrons should be limited")
	assert.Equal(t, 5, limit, "Standard patrons should be limited to 5 loans")

	_, limited = circulation.BorrowLimit(circulation.Staff{StaffID: "E-1"})
	assert.False(t, limited, "Staff patrons should not be limited")
}

func Test_Patron_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		patron      circulation.Patron
		expectedErr error
	}{
		{
			name:        "empty name",
			patron:      circulation.BuildPatron(uuid.New(), "  ", circulation.Standard{}),
			expectedErr: circulation.ErrEmptyPatronName,
		},
		{
			name:        "staff without staff id",
			patron:      circulation.BuildPatron(uuid.New(), "Jane", circulation.Staff{}),
			expectedErr: circulation.ErrEmptyStaffID,
		},
		{
			name:        "missing category",
			patron:      circulation.BuildPatron(uuid.New(), "Jane", nil),
			expectedErr: circulation.ErrUnknownCategory,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.patron.Validate()

			assert.ErrorIs(t, err, tc.expectedErr, "Should report the validation error")
			assert.ErrorIs(t, err, circulation.ErrInvalidInput, "Should be an invalid input error")
		})
	}
}

func Test_Patron_JSON_KeepsCategoryVariant(t *testing.T) {
	// arrange
	patron := circulation.BuildPatron(uuid.New(), "Ada", circulation.Staff{StaffID: "E-42"})

	// act
	data, err := jsoniter.Marshal(patron)
	require.NoError(t, err, "Should marshal patron")

	var restored circulation.Patron
	err = jsoniter.Unmarshal(data, &restored)

	// assert
	require.NoError(t, err, "Should unmarshal patron")
	assert.Contains(t, string(data), `"category":"staff"`, "Should write the category discriminator")
	assert.True(t, patron.Equal(restored), "Should restore the same patron")
}
