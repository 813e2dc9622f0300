package postgresengine_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper/postgreswrapper"
)

func Test_Observability_CommittedTransaction(t *testing.T) {
	// arrange
	ctx := context.Background()
	logHandler := helper.NewLogHandlerSpy(false)
	metrics := helper.NewMetricsCollectorSpy(true)
	tracing := helper.NewTracingCollectorSpy(true)

	store := postgreswrapper.CreateWrapperWithTestConfig(
		t,
		postgresengine.WithLogger(slog.New(logHandler)),
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing),
	).GetStore()

	// act
	err := store.InTransaction(ctx, func(tx circulation.Tx) error {
		return tx.AddItem(ctx, circulation.BuildItem(helper.GivenUniqueID(t), "Dune", "Frank Herbert", 1))
	})

	// assert
	assert.NoError(t, err)
	assert.True(t, logHandler.HasInfoLogWithMessage("circulation store operation: transaction committed").WithDurationMS().Assert(),
		"Should log the commit with its duration")
	assert.True(t, logHandler.HasDebugLogWithMessage("executed sql for: insert_item").WithAttrKey("query").Assert(),
		"Should log the SQL statement at debug level")
	assert.True(t, metrics.HasDurationRecordForMetric("circulation_store_transaction_duration_seconds").WithStatus("success").Assert(),
		"Should record the transaction duration")
	assert.True(t, metrics.HasDurationRecordForMetric("circulation_store_query_duration_seconds").WithOperation("insert_item").Assert(),
		"Should record the statement duration")
	assert.True(t, tracing.HasFinishedSpan("circulation.store.transaction", "success"), "Should finish the transaction span")
}

func Test_Observability_RolledBackTransaction(t *testing.T) {
	// arrange
	ctx := context.Background()
	contextualLogger := helper.NewContextualLoggerSpy(true)
	metrics := helper.NewMetricsCollectorSpy(true)
	tracing := helper.NewTracingCollectorSpy(true)

	store := postgreswrapper.CreateWrapperWithTestConfig(
		t,
		postgresengine.WithContextualLogger(contextualLogger),
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing),
	).GetStore()

	// act
	err := store.InTransaction(ctx, func(circulation.Tx) error { return errors.New("boom") })

	// assert
	assert.Error(t, err)
	assert.True(t, contextualLogger.HasDebugLog("transaction rolled back"), "Should log the rollback")
	assert.True(t, metrics.HasDurationRecordForMetric("circulation_store_transaction_duration_seconds").WithStatus("error").Assert(),
		"Should record the failed transaction")
	assert.True(t, tracing.HasFinishedSpan("circulation.store.transaction", "error"), "Should finish the span with error status")
}
