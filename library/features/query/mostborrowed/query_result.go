package mostborrowed

import (
	"github.com/google/uuid"
)

// Entry is one ranked item.
type Entry struct {
	ItemID      uuid.UUID
	Title       string
	Author      string
	BorrowCount int
}

// MostBorrowed is the ranking, most borrowed first.
type MostBorrowed struct {
	Entries []Entry
	Count   int
}
