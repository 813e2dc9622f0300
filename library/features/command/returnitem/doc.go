// Package returnitem implements taking back a lent item.
//
// The open loan is closed with the return date and the fine computed by a circulation.FineCalculator,
// and the item becomes available again, both in one store transaction.
package returnitem
