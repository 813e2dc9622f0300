package observable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/observable"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

const testQueryType = "TestQuery"

type mockQuery struct{}

func (mockQuery) QueryType() string { return testQueryType }

type mockQueryHandler struct {
	result []string
	err    error
}

func (h mockQueryHandler) Handle(_ context.Context, _ mockQuery) ([]string, error) {
	return h.result, h.err
}

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)
	tracingCollector := NewTracingCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)

	wrapper, err := observable.NewQueryWrapper[mockQuery, []string](
		mockQueryHandler{result: []string{"The Hobbit"}},
		observable.WithQueryMetrics[mockQuery, []string](metricsCollector),
		observable.WithQueryTracing[mockQuery, []string](tracingCollector),
		observable.WithQueryContextualLogging[mockQuery, []string](contextualLogger),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"The Hobbit"}, result)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
		WithLabel(shell.LogAttrQueryType, testQueryType).
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, tracingCollector.HasFinishedSpan(shell.SpanNameQueryHandle, shell.StatusSuccess))
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgQueryStarted))
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgQueryCompleted))
}

func Test_QueryWrapper_Handle_Errors(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		wantStatus    string
		wantExtraName string
	}{
		{name: "error", err: errors.New("replica down"), wantStatus: shell.StatusError},
		{name: "canceled", err: context.Canceled, wantStatus: shell.StatusCanceled, wantExtraName: shell.QueryHandlerCanceledMetric},
		{name: "timeout", err: context.DeadlineExceeded, wantStatus: shell.StatusTimeout, wantExtraName: shell.QueryHandlerTimeoutMetric},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			metricsCollector := NewMetricsCollectorSpy(true)
			contextualLogger := NewContextualLoggerSpy(true)

			wrapper, err := observable.NewQueryWrapper[mockQuery, []string](
				mockQueryHandler{err: tc.err},
				observable.WithQueryMetrics[mockQuery, []string](metricsCollector),
				observable.WithQueryContextualLogging[mockQuery, []string](contextualLogger),
			)
			require.NoError(t, err)

			// act
			_, err = wrapper.Handle(context.Background(), mockQuery{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
				WithStatus(tc.wantStatus).
				Assert())
			assert.True(t, contextualLogger.HasErrorLog(shell.LogMsgQueryFailed))

			if tc.wantExtraName != "" {
				assert.True(t, metricsCollector.HasCounterRecordForMetric(tc.wantExtraName).Assert())
			}
		})
	}
}
