// Package circulation provides the core abstractions and types for lending
// items of a library catalog to registered patrons.
//
// This package defines the data model (Item, Category, Patron, Loan), the
// fine calculation, the error taxonomy and the storage contracts which the
// different engines (memengine, postgresengine) implement.
//
// Key types:
//   - Item: a lendable catalog entry with an availability flag
//   - Patron: a registered borrower with a PatronCategory (Standard or Staff)
//   - Loan: the record of one item lent to one patron, open until returned
//   - FineCalculator: pure computation of overdue fines
//   - Store and Tx: the read and transactional write contracts of an engine
//
// Common usage pattern:
//
//	err := store.InTransaction(ctx, func(tx circulation.Tx) error {
//		item, found, err := tx.LockItem(ctx, itemID)
//		if err != nil || !found {
//			return err
//		}
//
//		// decide, then write loan record and availability in the same transaction
//		return tx.RecordLoan(ctx, loan)
//	})
package circulation
