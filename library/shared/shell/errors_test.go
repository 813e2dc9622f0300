package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

func Test_StatusForError(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{err: errors.New("boom"), want: shell.StatusError},
		{err: fmt.Errorf("wrapped: %w", context.Canceled), want: shell.StatusCanceled},
		{err: context.DeadlineExceeded, want: shell.StatusTimeout},
		{err: errors.Join(circulation.ErrInvariantViolation, errors.New("flag mismatch")), want: shell.StatusConflict},
		{err: errors.Join(circulation.ErrTransactionConflict, errors.New("deadlock detected")), want: shell.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, shell.StatusForError(tc.err))
		})
	}
}

func Test_StatusForOutcome(t *testing.T) {
	assert.Equal(t, shell.StatusSuccess, shell.StatusForOutcome(circulation.OutcomeSuccess))
	assert.Equal(t, shell.StatusIdempotent, shell.StatusForOutcome(circulation.OutcomeIdempotent))
	assert.Equal(t, shell.StatusRejected, shell.StatusForOutcome(circulation.OutcomeNoActiveLoan))
}
