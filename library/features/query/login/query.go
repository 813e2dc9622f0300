package login

import (
	"strings"
	"time"
)

const (
	queryType = "Login"
)

// Query represents the intent to log in as the patron with Name.
type Query struct {
	Name string
	At   time.Time
}

// BuildQuery creates a new Query.
func BuildQuery(name string, at time.Time) Query {
	return Query{
		Name: strings.TrimSpace(name),
		At:   at,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
