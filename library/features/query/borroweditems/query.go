package borroweditems

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	queryType = "BorrowedItems"
)

// Query represents the intent to list the items of a patron's open loans.
type Query struct {
	PatronID uuid.UUID
	Today    time.Time
}

// BuildQuery creates a new Query for the patron of the session.
func BuildQuery(session circulation.Session, today time.Time) Query {
	return Query{
		PatronID: session.PatronID,
		Today:    circulation.ToDate(today),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
