// Package login implements looking up a patron by name and starting a Session for it.
//
// There is no password check. When several patrons share the name, the one registered first
// wins and a warning is logged, unless the handler was built WithStrictNameMatching.
package login
