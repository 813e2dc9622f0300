package shell

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	defaultMaxAttempts  = 4
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
	logAttrAttempt      = "attempt"
)

var (
	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

type retryConfig struct {
	maxAttempts      int
	baseDelay        time.Duration
	jitterFactor     float64
	metricsCollector MetricsCollector
	commandType      string
}

// RetryOption configures RetryOnConflict.
type RetryOption func(*retryConfig) error

// RetryOnConflict runs fn and runs it again while it fails with circulation.ErrTransactionConflict,
// waiting baseDelay, 2*baseDelay, 4*baseDelay ... plus jitter in between.
// All other errors, timeouts included, are returned at once.
// It returns the number of attempts made.
func RetryOnConflict(ctx context.Context, fn func(ctx context.Context) error, options ...RetryOption) (int, error) {
	config := &retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return 0, err
		}
	}

	var lastErr error

	for attempt := 1; attempt <= config.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := config.baseDelay * time.Duration(1<<(attempt-2))
			jitter := rand.Float64() * float64(delay) * config.jitterFactor //nolint:gosec // jitter needs no crypto rand

			select {
			case <-time.After(delay + time.Duration(jitter)):
			case <-ctx.Done():
				return attempt - 1, ctx.Err()
			}
		}

		lastErr = fn(ctx)
		if !errors.Is(lastErr, circulation.ErrTransactionConflict) {
			return attempt, lastErr
		}

		if attempt < config.maxAttempts {
			config.count(ctx, CommandHandlerRetriesMetric, attempt)
		}
	}

	config.count(ctx, CommandHandlerMaxRetriesReachedMetric, config.maxAttempts)

	return config.maxAttempts, lastErr
}

func (c *retryConfig) count(ctx context.Context, metric string, attempt int) {
	if c.metricsCollector == nil {
		return
	}

	incrementCounter(ctx, c.metricsCollector, metric, map[string]string{
		LogAttrCommandType: c.commandType,
		logAttrAttempt:     strconv.Itoa(attempt),
	})
}

// WithMaxAttempts sets how often fn runs at most, the first run included.
func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the wait before the first retry. It doubles with every further retry.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the random extra wait as a fraction of the delay, between 0.0 and 1.0.
func WithJitterFactor(factor float64) RetryOption {
	return func(config *retryConfig) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		config.jitterFactor = factor

		return nil
	}
}

// WithRetryMetrics counts retries and exhausted retries per command type. A nil collector is ignored.
func WithRetryMetrics(collector MetricsCollector, commandType string) RetryOption {
	return func(config *retryConfig) error {
		config.metricsCollector = collector
		config.commandType = commandType

		return nil
	}
}
