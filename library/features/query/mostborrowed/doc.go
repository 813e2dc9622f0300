// Package mostborrowed implements the most borrowed items report.
//
// Every loan in the ledger counts, open or closed. Items with equal counts keep the order
// in which they were first borrowed.
package mostborrowed
