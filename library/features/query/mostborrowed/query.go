package mostborrowed

const (
	queryType = "MostBorrowed"
)

// Query represents the intent to rank items by how often they were borrowed.
// A Limit of zero or less returns all borrowed items.
type Query struct {
	Limit int
}

// BuildQuery creates a new Query.
func BuildQuery(limit int) Query {
	return Query{Limit: limit}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
