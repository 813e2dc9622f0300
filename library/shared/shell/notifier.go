package shell

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	logMsgNotificationSent    = "sent notification"
	logMsgNotificationDropped = "notification dropped"
	logMsgNotifierStopTimeout = "notifier stop timeout, pending notifications discarded"

	dropReasonQueueFull = "queue_full"
	dropReasonClosed    = "closed"

	logAttrReason = "reason"
)

// NotifierFunc adapts a function to circulation.Notifier.
type NotifierFunc func(ctx context.Context, patron circulation.Patron, message string)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, patron circulation.Patron, message string) {
	f(ctx, patron, message)
}

// WriterNotifier prints notifications as "Notification for <name>: <message>" lines.
type WriterNotifier struct {
	mu               sync.Mutex
	out              io.Writer
	logger           Logger
	contextualLogger ContextualLogger
}

// WriterNotifierOption configures a WriterNotifier.
type WriterNotifierOption func(*WriterNotifier)

// WithWriterNotifierLogger logs every delivered notification.
func WithWriterNotifierLogger(logger Logger) WriterNotifierOption {
	return func(n *WriterNotifier) {
		n.logger = logger
	}
}

// WithWriterNotifierContextualLogger logs every delivered notification with trace correlation.
func WithWriterNotifierContextualLogger(logger ContextualLogger) WriterNotifierOption {
	return func(n *WriterNotifier) {
		n.contextualLogger = logger
	}
}

// NewWriterNotifier creates a WriterNotifier writing to out.
func NewWriterNotifier(out io.Writer, options ...WriterNotifierOption) *WriterNotifier {
	n := &WriterNotifier{out: out}
	for _, option := range options {
		option(n)
	}

	return n
}

// Notify writes one line. Write failures are ignored, a notification never fails its command.
func (n *WriterNotifier) Notify(ctx context.Context, patron circulation.Patron, message string) {
	n.mu.Lock()
	_, _ = fmt.Fprintf(n.out, "Notification for %s: %s\n", patron.Name, message)
	n.mu.Unlock()

	logInfo(ctx, n.logger, n.contextualLogger, logMsgNotificationSent, LogAttrPatronID, patron.ID.String())
}

type notification struct {
	ctx     context.Context
	patron  circulation.Patron
	message string
}

// AsyncNotifier hands notifications to a single worker which forwards them to the next Notifier.
// Notify never blocks: when the queue is full or the notifier is closed the notification is dropped,
// logged as a warning and counted in NotificationsDroppedMetric.
type AsyncNotifier struct {
	next             circulation.Notifier
	queue            chan notification
	wg               sync.WaitGroup
	mu               sync.RWMutex
	closed           bool
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
}

// AsyncNotifierOption configures an AsyncNotifier.
type AsyncNotifierOption func(*AsyncNotifier)

// WithAsyncNotifierLogger sets the logger for dropped notifications.
func WithAsyncNotifierLogger(logger Logger) AsyncNotifierOption {
	return func(n *AsyncNotifier) {
		n.logger = logger
	}
}

// WithAsyncNotifierContextualLogger sets the contextual logger for dropped notifications.
func WithAsyncNotifierContextualLogger(logger ContextualLogger) AsyncNotifierOption {
	return func(n *AsyncNotifier) {
		n.contextualLogger = logger
	}
}

// WithAsyncNotifierMetrics counts dropped notifications.
func WithAsyncNotifierMetrics(collector MetricsCollector) AsyncNotifierOption {
	return func(n *AsyncNotifier) {
		n.metricsCollector = collector
	}
}

// NewAsyncNotifier creates an AsyncNotifier with a queue of bufferSize (at least 1) and starts its worker.
// Callers must Close it to flush pending notifications.
func NewAsyncNotifier(next circulation.Notifier, bufferSize int, options ...AsyncNotifierOption) *AsyncNotifier {
	n := &AsyncNotifier{
		next:  next,
		queue: make(chan notification, max(1, bufferSize)),
	}

	for _, option := range options {
		option(n)
	}

	n.wg.Add(1)
	go n.work()

	return n
}

// Notify queues the notification. The context is detached from cancellation so a delivery
// after the command returned still carries its trace.
func (n *AsyncNotifier) Notify(ctx context.Context, patron circulation.Patron, message string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.drop(ctx, patron, dropReasonClosed)
		return
	}

	select {
	case n.queue <- notification{ctx: context.WithoutCancel(ctx), patron: patron, message: message}:
	default:
		n.drop(ctx, patron, dropReasonQueueFull)
	}
}

// Close stops accepting notifications and waits until the queued ones are delivered or ctx is done.
func (n *AsyncNotifier) Close(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logWarn(ctx, n.logger, n.contextualLogger, logMsgNotifierStopTimeout)
		return ctx.Err()
	}
}

func (n *AsyncNotifier) work() {
	defer n.wg.Done()

	for item := range n.queue {
		n.next.Notify(item.ctx, item.patron, item.message)
	}
}

func (n *AsyncNotifier) drop(ctx context.Context, patron circulation.Patron, reason string) {
	logWarn(ctx, n.logger, n.contextualLogger, logMsgNotificationDropped,
		LogAttrPatronID, patron.ID.String(),
		logAttrReason, reason,
	)

	if n.metricsCollector != nil {
		incrementCounter(ctx, n.metricsCollector, NotificationsDroppedMetric, map[string]string{logAttrReason: reason})
	}
}

// StopTimeout is the grace period the librarian binary gives an AsyncNotifier on shutdown.
const StopTimeout = 2 * time.Second

var (
	_ circulation.Notifier = NotifierFunc(nil)
	_ circulation.Notifier = (*WriterNotifier)(nil)
	_ circulation.Notifier = (*AsyncNotifier)(nil)
)
