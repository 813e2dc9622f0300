// Package additem implements adding an item to the catalog. Adding the same item twice is idempotent.
package additem
