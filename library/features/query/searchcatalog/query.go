package searchcatalog

import (
	"strings"
)

const (
	queryType = "SearchCatalog"
)

// Criterion selects what the search matches against.
type Criterion string

const (
	ByTitle       Criterion = "title"
	ByAuthor      Criterion = "author"
	AvailableOnly Criterion = "available"
)

// Query represents the intent to search the catalog.
type Query struct {
	Criterion Criterion
	Term      string
}

// BuildTitleQuery creates a Query matching titles containing term.
func BuildTitleQuery(term string) Query {
	return Query{Criterion: ByTitle, Term: strings.TrimSpace(term)}
}

// BuildAuthorQuery creates a Query matching authors containing term.
func BuildAuthorQuery(term string) Query {
	return Query{Criterion: ByAuthor, Term: strings.TrimSpace(term)}
}

// BuildAvailableQuery creates a Query listing all available items.
func BuildAvailableQuery() Query {
	return Query{Criterion: AvailableOnly}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
