// Package searchcatalog implements the catalog search use case.
//
// Items are matched by a case-insensitive substring of their title or author, or listed when
// they are available for lending. No match is an empty result, never an error.
package searchcatalog
