package shell_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_WriterNotifier_Notify(t *testing.T) {
	// arrange
	var out bytes.Buffer
	logHandler := NewLogHandlerSpy(false)
	notifier := shell.NewWriterNotifier(&out, shell.WithWriterNotifierLogger(slog.New(logHandler)))
	patron := givenPatron("Alice")

	// act
	notifier.Notify(context.Background(), patron, "You have successfully borrowed 'The Hobbit'. Due date: 2026-03-16")

	// assert
	assert.Equal(t, "Notification for Alice: You have successfully borrowed 'The Hobbit'. Due date: 2026-03-16\n", out.String())
	assert.True(t, logHandler.HasInfoLogWithMessage("sent notification").
		WithAttr(shell.LogAttrPatronID, patron.ID.String()).
		Assert())
}

func Test_NotifierFunc_Notify(t *testing.T) {
	// arrange
	var got string
	notifier := shell.NotifierFunc(func(_ context.Context, patron circulation.Patron, message string) {
		got = patron.Name + ":" + message
	})

	// act
	notifier.Notify(context.Background(), givenPatron("Bob"), "hello")

	// assert
	assert.Equal(t, "Bob:hello", got)
}

func Test_AsyncNotifier_DeliversQueuedNotificationsOnClose(t *testing.T) {
	// arrange
	spy := NewNotifierSpy()
	notifier := shell.NewAsyncNotifier(spy, 10)
	patron := givenPatron("Alice")

	// act
	for i := 0; i < 5; i++ {
		notifier.Notify(context.Background(), patron, "message")
	}
	err := notifier.Close(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 5, spy.Count())
}

func Test_AsyncNotifier_DropsWhenQueueIsFull(t *testing.T) {
	// arrange
	release := make(chan struct{})
	started := make(chan struct{}, 3)

	blocking := shell.NotifierFunc(func(_ context.Context, _ circulation.Patron, _ string) {
		started <- struct{}{}
		<-release
	})

	metricsCollector := NewMetricsCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)
	notifier := shell.NewAsyncNotifier(
		blocking,
		1,
		shell.WithAsyncNotifierMetrics(metricsCollector),
		shell.WithAsyncNotifierContextualLogger(contextualLogger),
	)
	patron := givenPatron("Alice")

	notifier.Notify(context.Background(), patron, "first")
	<-started // the worker now blocks inside the first delivery

	// act
	notifier.Notify(context.Background(), patron, "second") // fills the queue
	notifier.Notify(context.Background(), patron, "third")  // dropped

	// assert
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.NotificationsDroppedMetric).
		WithLabel("reason", "queue_full").
		Assert())
	assert.True(t, contextualLogger.HasWarnLog("notification dropped"))

	close(release)
	assert.NoError(t, notifier.Close(context.Background()))
}

func Test_AsyncNotifier_DropsAfterClose(t *testing.T) {
	// arrange
	spy := NewNotifierSpy()
	metricsCollector := NewMetricsCollectorSpy(true)
	notifier := shell.NewAsyncNotifier(spy, 1, shell.WithAsyncNotifierMetrics(metricsCollector))
	require.NoError(t, notifier.Close(context.Background()))

	// act
	notifier.Notify(context.Background(), givenPatron("Alice"), "late")

	// assert
	assert.Equal(t, 0, spy.Count())
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.NotificationsDroppedMetric).
		WithLabel("reason", "closed").
		Assert())
}

func Test_AsyncNotifier_Close_GivesUpAfterDeadline(t *testing.T) {
	// arrange
	release := make(chan struct{})
	defer close(release)

	blocking := shell.NotifierFunc(func(_ context.Context, _ circulation.Patron, _ string) {
		<-release
	})
	notifier := shell.NewAsyncNotifier(blocking, 1)
	notifier.Notify(context.Background(), givenPatron("Alice"), "stuck")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// act
	err := notifier.Close(ctx)

	// assert
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func givenPatron(name string) circulation.Patron {
	return circulation.BuildPatron(uuid.New(), name, circulation.Standard{})
}
