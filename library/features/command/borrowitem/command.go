package borrowitem

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	commandType = "BorrowItem"
)

// Command represents the intent of the session's patron to borrow an item today.
type Command struct {
	Session circulation.Session
	ItemID  uuid.UUID
	Today   time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command, today is normalized to its calendar day.
func BuildCommand(session circulation.Session, itemID uuid.UUID, today time.Time) Command {
	return Command{
		Session: session,
		ItemID:  itemID,
		Today:   circulation.ToDate(today),
	}
}
