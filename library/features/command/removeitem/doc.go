// Package removeitem implements deleting an item from the catalog. Items on loan cannot be removed.
package removeitem
