package searchcatalog

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// SearchResult holds the matching items in catalog order.
type SearchResult struct {
	Criterion Criterion
	Term      string
	Items     []circulation.Item
	Count     int
}
