package returnitem

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	commandType = "ReturnItem"
)

// Command represents the intent to return an item today. Any patron's loan can be returned at the desk,
// so the command carries no session.
type Command struct {
	ItemID uuid.UUID
	Today  time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command, today is normalized to its calendar day.
func BuildCommand(itemID uuid.UUID, today time.Time) Command {
	return Command{
		ItemID: itemID,
		Today:  circulation.ToDate(today),
	}
}
