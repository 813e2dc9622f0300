// Package borrowitem implements lending an item to the patron of a session.
//
// The handler locks patron and item inside one store transaction, lets the pure Decide
// function check availability and the borrowing limit, and writes the loan together with
// the item's availability flag. The patron is notified after the transaction committed.
package borrowitem
