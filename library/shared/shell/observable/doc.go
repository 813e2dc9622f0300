// Package observable decorates command and query handlers with metrics, tracing and logging.
//
// The wrappers keep every handler free of observability code: a handler only returns its result
// and error, and the wrapper classifies them (success, idempotent, rejected, error, canceled,
// timeout, conflict) for the configured collectors.
package observable
