package overduepatrons

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	queryType = "OverduePatrons"
)

// Query represents the intent to list overdue loans as of today.
type Query struct {
	Today time.Time
}

// BuildQuery creates a new Query, today is normalized to its calendar day.
func BuildQuery(today time.Time) Query {
	return Query{Today: circulation.ToDate(today)}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
