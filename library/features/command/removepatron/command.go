package removepatron

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	commandType = "RemovePatron"
)

// Command represents the intent to remove a patron.
type Command struct {
	PatronID uuid.UUID
	Today    time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(patronID uuid.UUID, today time.Time) Command {
	return Command{
		PatronID: patronID,
		Today:    circulation.ToDate(today),
	}
}
