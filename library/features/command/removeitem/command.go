package removeitem

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	commandType = "RemoveItem"
)

// Command represents the intent to remove an item from the catalog.
type Command struct {
	ItemID uuid.UUID
	Today  time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(itemID uuid.UUID, today time.Time) Command {
	return Command{
		ItemID: itemID,
		Today:  circulation.ToDate(today),
	}
}
