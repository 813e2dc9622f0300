// Package overduepatrons implements the overdue report: open loans whose due date lies strictly
// before today, with the patron and item they belong to.
package overduepatrons
