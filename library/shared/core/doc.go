// Package core contains the pure building blocks shared by all circulation features:
// the DecisionResult returned by every Decide function and the domain events describing
// what a decision did or refused to do.
//
// Nothing in this package performs I/O. Command handlers in library/features translate
// decisions into store writes and notifications.
package core
