// Package shell is the imperative shell around the pure circulation core.
//
// It defines the contracts shared by all feature handlers (Command, Query and their handlers),
// the observability helpers used by the observable wrappers, and the notification sinks
// which deliver messages to patrons after a command has committed.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
